package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputsFromScores(scores map[string]int) []CategoryScoreInput {
	inputs := NewCategoryInputs()
	for i := range inputs {
		if score, ok := scores[inputs[i].CategoryID]; ok {
			s := score
			inputs[i].Score = &s
		}
	}
	return inputs
}

func TestFinalizeScores_MissingCategories(t *testing.T) {
	tests := []struct {
		name        string
		scores      map[string]int
		wantMissing []string
	}{
		{
			name: "one missing category listed by display name",
			scores: map[string]int{
				"performance": 90, "cash_flow": 40, "documentation": 85,
				"structure": 70, "diversification": 60,
			},
			wantMissing: []string{"Regulatory Standing"},
		},
		{
			name:   "empty form lists every category",
			scores: map[string]int{},
			wantMissing: []string{
				"Historical Performance", "Cash Flow Quality", "Documentation Completeness",
				"Legal Structure", "Diversification", "Regulatory Standing",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := FinalizeScores(inputsFromScores(tt.scores))
			assert.Nil(t, entries, "no partial computation on validation failure")

			var missingErr *MissingScoresError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.wantMissing, missingErr.CategoryNames)
		})
	}
}

func TestFinalizeScores_ClampsOutOfRangeInput(t *testing.T) {
	scores := uniformScores(100)
	scores["performance"] = 150
	scores["cash_flow"] = -10

	entries, err := FinalizeScores(inputsFromScores(scores))
	require.NoError(t, err)

	byID := make(map[string]CategoryScoreEntry)
	for _, e := range entries {
		byID[e.CategoryID] = e
	}
	assert.Equal(t, 100, byID["performance"].Score)
	assert.Equal(t, 0, byID["cash_flow"].Score)
}

func TestFinalizeScores_CopiesRegistryWeight(t *testing.T) {
	entries, err := FinalizeScores(inputsFromScores(referenceScores()))
	require.NoError(t, err)
	require.Len(t, entries, len(Categories()))

	for i, cat := range Categories() {
		assert.Equal(t, cat.ID, entries[i].CategoryID, "entries follow registry order")
		assert.Equal(t, cat.Weight, entries[i].Weight)
		assert.InDelta(t, WeightedScore(entries[i].Score, cat.Weight), entries[i].WeightedScore, 0.0001)
	}
}

func TestAssembleBreakdown_ReferenceScenario(t *testing.T) {
	b, err := AssembleBreakdown(
		inputsFromScores(referenceScores()),
		[]string{"Experienced management team"},
		nil,
		"",
		nil,
		"reviewer-42",
	)
	require.NoError(t, err)

	assert.Equal(t, BreakdownSchemaVersion, b.SchemaVersion)
	assert.Equal(t, 72, b.Overall)
	assert.Equal(t, GradeC, b.Grade)
	assert.Equal(t, ReadinessConditional, b.Readiness, "72 < 75 with zero flags")
	assert.Equal(t, "reviewer-42", b.ScoredBy)
	assert.WithinDuration(t, time.Now().UTC(), b.ScoredAt, 5*time.Second)

	// performance 90 and regulatory 95 earn strengths after the user entry;
	// cash_flow 40 and diversification 60 earn considerations.
	assert.Equal(t, []string{
		"Experienced management team",
		strengthSuggestions["performance"],
		strengthSuggestions["regulatory"],
	}, b.Strengths)
	assert.Equal(t, []string{
		considerationSuggestions["cash_flow"],
		considerationSuggestions["diversification"],
	}, b.Considerations)

	// Empty recommendation field gets the conditional template.
	assert.Equal(t, RecommendationTemplate(ReadinessConditional, GradeC), b.Recommendation)
}

func TestAssembleBreakdown_PerfectScore(t *testing.T) {
	b, err := AssembleBreakdown(inputsFromScores(uniformScores(100)), nil, nil, "", nil, "")
	require.NoError(t, err)

	assert.Equal(t, 100, b.Overall)
	assert.Equal(t, GradeA, b.Grade)
	assert.Equal(t, ReadinessReady, b.Readiness)
	assert.Empty(t, b.Considerations)
	assert.Len(t, b.Strengths, len(Categories()), "every category earns its strength at 100")
}

func TestAssembleBreakdown_HighFlagOverridesPerfectScore(t *testing.T) {
	b, err := AssembleBreakdown(
		inputsFromScores(uniformScores(100)),
		nil, nil, "",
		[]string{"pending_litigation"},
		"",
	)
	require.NoError(t, err)

	assert.Equal(t, 100, b.Overall)
	assert.Equal(t, ReadinessNotReady, b.Readiness)
	assert.Equal(t, []string{"pending_litigation"}, b.RedFlags)
	assert.Equal(t, RecommendationTemplate(ReadinessNotReady, GradeA), b.Recommendation)
}

func TestAssembleBreakdown_HumanRecommendationWins(t *testing.T) {
	b, err := AssembleBreakdown(
		inputsFromScores(uniformScores(100)),
		nil, nil,
		"Hold for the Q3 distribution window.",
		nil, "",
	)
	require.NoError(t, err)
	assert.Equal(t, "Hold for the Q3 distribution window.", b.Recommendation)
}

func TestAssembleBreakdown_Idempotent(t *testing.T) {
	inputs := inputsFromScores(referenceScores())
	flags := []string{"inconsistent_valuations"}

	first, err := AssembleBreakdown(inputs, []string{"note"}, []string{"caveat"}, "", flags, "reviewer-1")
	require.NoError(t, err)
	second, err := AssembleBreakdown(inputs, []string{"note"}, []string{"caveat"}, "", flags, "reviewer-1")
	require.NoError(t, err)

	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.Grade, second.Grade)
	assert.Equal(t, first.Readiness, second.Readiness)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Strengths, second.Strengths)
	assert.Equal(t, first.Considerations, second.Considerations)
	assert.Equal(t, first.Recommendation, second.Recommendation)
}
