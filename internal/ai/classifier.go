package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvloznov/financewise/internal/domain"
)

// Classify asks the model for a single category label. Any failure or output
// outside the closed set falls back to domain.CategoryOther.
func (c *GeminiClient) Classify(ctx context.Context, merchant, description string) domain.Category {
	prompt := buildClassifyPrompt(merchant, description)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		c.log.Error().Err(err).Str("merchant", merchant).Msg("AI categorization failed")
		return domain.CategoryOther
	}

	return domain.ParseCategory(text)
}

func buildClassifyPrompt(merchant, description string) string {
	labels := make([]string, 0, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		labels = append(labels, string(cat))
	}

	return fmt.Sprintf(
		"Categorize this transaction into one of these categories:\n%s\n\n"+
			"Merchant: %s\nDescription: %s\n\n"+
			"Respond with ONLY the category name in lowercase.",
		strings.Join(labels, ", "), merchant, description)
}
