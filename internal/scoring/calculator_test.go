package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entriesFromScores finalizes one input per registered category using the
// given scores. Fails the test if a category is left out.
func entriesFromScores(t *testing.T, scores map[string]int) []CategoryScoreEntry {
	t.Helper()
	inputs := NewCategoryInputs()
	for i := range inputs {
		score, ok := scores[inputs[i].CategoryID]
		require.True(t, ok, "no score provided for %s", inputs[i].CategoryID)
		inputs[i].Score = &score
	}
	entries, err := FinalizeScores(inputs)
	require.NoError(t, err)
	return entries
}

func referenceScores() map[string]int {
	return map[string]int{
		"performance":     90,
		"cash_flow":       40,
		"documentation":   85,
		"structure":       70,
		"diversification": 60,
		"regulatory":      95,
	}
}

func uniformScores(score int) map[string]int {
	scores := make(map[string]int)
	for _, c := range Categories() {
		scores[c.ID] = score
	}
	return scores
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		weight int
		want   float64
	}{
		{name: "performance 90 at weight 30", score: 90, weight: 30, want: 27},
		{name: "cash flow 40 at weight 25", score: 40, weight: 25, want: 10},
		{name: "documentation 85 at weight 20", score: 85, weight: 20, want: 17},
		{name: "structure 70 at weight 15 keeps half point", score: 70, weight: 15, want: 10.5},
		{name: "diversification 60 at weight 5", score: 60, weight: 5, want: 3},
		{name: "regulatory 95 at weight 5 keeps two decimals", score: 95, weight: 5, want: 4.75},
		{name: "zero score contributes nothing", score: 0, weight: 30, want: 0},
		{name: "full marks at full weight", score: 100, weight: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeightedScore(tt.score, tt.weight), 0.0001)
		})
	}
}

func TestOverallScore_ReferenceScenario(t *testing.T) {
	// 27 + 10 + 17 + 10.5 + 3 + 4.75 = 72.25 -> 72
	entries := entriesFromScores(t, referenceScores())
	assert.Equal(t, 72, OverallScore(entries))
}

func TestOverallScore_StaysWithinBounds(t *testing.T) {
	for _, score := range []int{0, 1, 37, 50, 99, 100} {
		overall := OverallScore(entriesFromScores(t, uniformScores(score)))
		assert.GreaterOrEqual(t, overall, 0)
		assert.LessOrEqual(t, overall, 100)
		assert.Equal(t, score, overall, "uniform scores collapse to the same overall")
	}
}

func TestGradeFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{100, GradeA}, {80, GradeA},
		{79, GradeB}, {70, GradeB},
		{69, GradeC}, {60, GradeC},
		{59, GradeD}, {50, GradeD},
		{49, GradeF}, {0, GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFromScore(tt.score), "score %d", tt.score)
	}
}

func TestGradeFromScore_Monotonic(t *testing.T) {
	rank := map[Grade]int{GradeF: 0, GradeD: 1, GradeC: 2, GradeB: 3, GradeA: 4}
	prev := GradeFromScore(0)
	for s := 1; s <= 100; s++ {
		cur := GradeFromScore(s)
		assert.GreaterOrEqual(t, rank[cur], rank[prev], "grade regressed at score %d", s)
		prev = cur
	}
}

func TestDistributionReadiness(t *testing.T) {
	tests := []struct {
		name    string
		overall int
		flags   []string
		want    Readiness
	}{
		{name: "clean high score is ready", overall: 90, flags: nil, want: ReadinessReady},
		{name: "exactly 75 is ready", overall: 75, flags: nil, want: ReadinessReady},
		{name: "below 75 downgrades to conditional", overall: 72, flags: nil, want: ReadinessConditional},
		{name: "below 50 is not ready", overall: 49, flags: nil, want: ReadinessNotReady},
		{
			name:    "single high flag disqualifies a perfect score",
			overall: 100,
			flags:   []string{"pending_litigation"},
			want:    ReadinessNotReady,
		},
		{
			name:    "two medium flags are tolerated",
			overall: 90,
			flags:   []string{"inconsistent_valuations", "concentrated_revenue_base"},
			want:    ReadinessReady,
		},
		{
			name:    "three medium flags fire the count rule despite the score",
			overall: 90,
			flags:   []string{"inconsistent_valuations", "concentrated_revenue_base", "complex_holding_structure"},
			want:    ReadinessConditional,
		},
		{
			name:    "low flags are informational only",
			overall: 90,
			flags:   []string{"short_operating_history", "manual_reporting_process", "single_jurisdiction_exposure"},
			want:    ReadinessReady,
		},
		{
			name:    "unknown flag ids are skipped",
			overall: 90,
			flags:   []string{"not_a_registered_flag"},
			want:    ReadinessReady,
		},
		{
			name:    "high flag dominates medium count",
			overall: 95,
			flags:   []string{"negative_cash_flow_trend", "inconsistent_valuations"},
			want:    ReadinessNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DistributionReadiness(tt.overall, tt.flags))
		})
	}
}

func TestAnyHighFlagForcesNotReadyAtEveryScore(t *testing.T) {
	for s := 0; s <= 100; s += 10 {
		got := DistributionReadiness(s, []string{"missing_audited_financials"})
		assert.Equal(t, ReadinessNotReady, got, "overall %d", s)
	}
}
