package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestStrengths(t *testing.T) {
	entries := []CategoryScoreEntry{
		{CategoryID: "performance", Score: 90},
		{CategoryID: "cash_flow", Score: 85},
		{CategoryID: "documentation", Score: 84},
		{CategoryID: "unknown_category", Score: 100},
	}

	got := SuggestStrengths(entries)
	assert.Equal(t, []string{
		strengthSuggestions["performance"],
		strengthSuggestions["cash_flow"],
	}, got, "threshold is inclusive at 85 and unknown ids emit nothing")
}

func TestSuggestConsiderations(t *testing.T) {
	entries := []CategoryScoreEntry{
		{CategoryID: "performance", Score: 69},
		{CategoryID: "cash_flow", Score: 70},
		{CategoryID: "documentation", Score: 0},
		{CategoryID: "structure", Score: 1},
		{CategoryID: "unknown_category", Score: 30},
	}

	got := SuggestConsiderations(entries)
	assert.Equal(t, []string{
		considerationSuggestions["performance"],
		considerationSuggestions["structure"],
	}, got, "zero scores and scores at 70 earn nothing")
}

func TestMergeSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		user        []string
		suggestions []string
		want        []string
	}{
		{
			name:        "blank user entries dropped",
			user:        []string{"Solid sponsor track record", "  ", ""},
			suggestions: nil,
			want:        []string{"Solid sponsor track record"},
		},
		{
			name:        "suggestions appended after user text",
			user:        []string{"Solid sponsor track record"},
			suggestions: []string{"Well-diversified revenue and counterparty base."},
			want:        []string{"Solid sponsor track record", "Well-diversified revenue and counterparty base."},
		},
		{
			name:        "exact duplicate suggestion not repeated",
			user:        []string{"Well-diversified revenue and counterparty base."},
			suggestions: []string{"Well-diversified revenue and counterparty base."},
			want:        []string{"Well-diversified revenue and counterparty base."},
		},
		{
			name:        "empty everything yields empty list",
			user:        []string{"", " "},
			suggestions: nil,
			want:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSuggestions(tt.user, tt.suggestions))
		})
	}
}

func TestRecommendationTemplate(t *testing.T) {
	ready := RecommendationTemplate(ReadinessReady, GradeA)
	conditional := RecommendationTemplate(ReadinessConditional, GradeC)
	notReady := RecommendationTemplate(ReadinessNotReady, GradeF)

	assert.Contains(t, ready, "grade of A")
	assert.Contains(t, ready, "distribution pipeline")
	assert.Contains(t, conditional, "conditionally")
	assert.Contains(t, conditional, "grade of C")
	assert.Contains(t, notReady, "does not currently meet")
	assert.Contains(t, notReady, "grade F")

	// One template per readiness value.
	assert.NotEqual(t, ready, conditional)
	assert.NotEqual(t, conditional, notReady)
}

func TestSuggestionTablesCoverEveryCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.Contains(t, strengthSuggestions, c.ID)
		assert.Contains(t, considerationSuggestions, c.ID)
	}
}
