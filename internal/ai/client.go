// Package ai wraps the Gemini API behind the narrow capabilities the rest of
// the system depends on: classify one transaction, generate insights from a
// spending summary. Both capabilities recover from every failure internally
// and hand back a safe default, so callers never see an AI error.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/dvloznov/financewise/internal/domain"
)

// DefaultModelName is the Gemini model used for classification and insights.
const DefaultModelName = "gemini-2.0-flash"

// Classifier maps free-text merchant/description to one category from the
// closed set. Implementations must never fail: unusable output maps to
// domain.CategoryOther.
type Classifier interface {
	Classify(ctx context.Context, merchant, description string) domain.Category
}

// GeneratedInsight is one insight record returned by the model.
type GeneratedInsight struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"` // spending, saving or warning
	ImpactAmount *float64 `json:"impact_amount,omitempty"`
}

// SpendingSummary is the structured input handed to the insight generator.
type SpendingSummary struct {
	CategoryTotals   map[domain.Category]float64
	TransactionCount int
}

// InsightGenerator produces natural-language insights from a spending
// summary. Implementations must never fail: any communication or parsing
// problem degrades to an empty list.
type InsightGenerator interface {
	Generate(ctx context.Context, summary SpendingSummary) []GeneratedInsight
}

// GeminiClient implements Classifier and InsightGenerator on the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiClient creates a Gemini-backed AI client. Credentials come from
// the environment (GEMINI_API_KEY), as with the rest of the genai SDK.
func NewGeminiClient(ctx context.Context, model string, log zerolog.Logger) (*GeminiClient, error) {
	if model == "" {
		model = DefaultModelName
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClient: create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model, log: log}, nil
}

// generateText sends a single-prompt request and returns the raw model text.
func (c *GeminiClient) generateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generateText: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generateText: empty response from model")
	}
	return text, nil
}

// cleanModelJSON strips Markdown fences the model sometimes adds despite
// instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
