package ai

import (
	"strings"
	"testing"

	"github.com/dvloznov/financewise/internal/domain"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain JSON untouched",
			raw:  `[{"title":"a"}]`,
			want: `[{"title":"a"}]`,
		},
		{
			name: "json fence",
			raw:  "```json\n[{\"title\":\"a\"}]\n```",
			want: `[{"title":"a"}]`,
		},
		{
			name: "bare fence",
			raw:  "```\n[1, 2]\n```",
			want: `[1, 2]`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n[1]\n  ",
			want: `[1]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseInsights(t *testing.T) {
	raw := "```json\n" + `[
		{"title": "High food spend", "description": "Food is 40% of spending", "category": "warning", "impact_amount": 1800},
		{"title": "Good saving habit", "description": "Income exceeds spending", "category": "saving"}
	]` + "\n```"

	insights, err := parseInsights(raw)
	if err != nil {
		t.Fatalf("parseInsights failed: %v", err)
	}

	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2", len(insights))
	}
	if insights[0].Title != "High food spend" || insights[0].Category != "warning" {
		t.Errorf("first insight = %+v", insights[0])
	}
	if insights[0].ImpactAmount == nil || *insights[0].ImpactAmount != 1800 {
		t.Errorf("first insight impact = %v, want 1800", insights[0].ImpactAmount)
	}
	if insights[1].ImpactAmount != nil {
		t.Errorf("second insight impact = %v, want nil", insights[1].ImpactAmount)
	}
}

func TestParseInsights_Malformed(t *testing.T) {
	if _, err := parseInsights("the model rambled instead of returning JSON"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestBuildClassifyPrompt_ListsAllCategories(t *testing.T) {
	prompt := buildClassifyPrompt("Swiggy", "Dinner order")

	for _, cat := range domain.AllCategories() {
		if !strings.Contains(prompt, string(cat)) {
			t.Errorf("prompt missing category %q", cat)
		}
	}
	if !strings.Contains(prompt, "Swiggy") {
		t.Error("prompt missing merchant")
	}
}
