package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

// Generate asks the model for actionable insights over the spending summary.
// Any communication or parsing failure degrades to an empty list.
func (c *GeminiClient) Generate(ctx context.Context, summary SpendingSummary) []GeneratedInsight {
	prompt, err := buildInsightsPrompt(summary)
	if err != nil {
		c.log.Error().Err(err).Msg("Insight prompt construction failed")
		return nil
	}

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		c.log.Error().Err(err).Msg("Insight generation failed")
		return nil
	}

	insights, err := parseInsights(text)
	if err != nil {
		c.log.Error().Err(err).Msg("Insight response parsing failed")
		return nil
	}
	return insights
}

func buildInsightsPrompt(summary SpendingSummary) (string, error) {
	totals, err := json.MarshalIndent(summary.CategoryTotals, "", "  ")
	if err != nil {
		return "", fmt.Errorf("buildInsightsPrompt: marshaling totals: %w", err)
	}

	return fmt.Sprintf(
		"Analyze this spending data (INR) and provide 3 actionable insights:\n\n"+
			"Monthly Spending by Category:\n%s\n\n"+
			"Total transactions: %d\n\n"+
			"Provide insights in this JSON format:\n"+
			`[{"title": "Short title", "description": "Detailed insight with specific numbers", `+
			`"category": "spending/saving/warning", "impact_amount": estimated monthly savings if applicable}]`+
			"\n\nFocus on:\n"+
			"1. Unusual spending patterns\n"+
			"2. Potential savings opportunities\n"+
			"3. Positive financial habits\n\n"+
			"Respond with ONLY the JSON array.",
		totals, summary.TransactionCount), nil
}

// parseInsights decodes the model's JSON array, tolerating Markdown fences.
func parseInsights(raw string) ([]GeneratedInsight, error) {
	clean := cleanModelJSON(raw)

	var insights []GeneratedInsight
	if err := json.Unmarshal([]byte(clean), &insights); err != nil {
		return nil, fmt.Errorf("parseInsights: unmarshal JSON: %w", err)
	}
	return insights, nil
}
