package scoring

import (
	"fmt"
	"strings"
	"time"
)

// MissingScoresError reports the categories still unscored at save time. The
// save is rejected wholesale; no partial breakdown is computed.
type MissingScoresError struct {
	CategoryNames []string
}

func (e *MissingScoresError) Error() string {
	return fmt.Sprintf("missing scores for: %s", strings.Join(e.CategoryNames, ", "))
}

// FinalizeScores is the validation gate between the editing record and the
// persisted entry. Every registered category must appear in inputs with a
// non-nil score; otherwise it returns a MissingScoresError listing the
// missing categories by display name. Scores are clamped at this boundary.
func FinalizeScores(inputs []CategoryScoreInput) ([]CategoryScoreEntry, error) {
	byCategory := make(map[string]CategoryScoreInput, len(inputs))
	for _, in := range inputs {
		byCategory[in.CategoryID] = in
	}

	var missing []string
	entries := make([]CategoryScoreEntry, 0, len(categories))
	for _, cat := range Categories() {
		in, ok := byCategory[cat.ID]
		if !ok || in.Score == nil {
			missing = append(missing, cat.Name)
			continue
		}
		score := ClampScore(*in.Score)
		entries = append(entries, CategoryScoreEntry{
			CategoryID:    cat.ID,
			Score:         score,
			Weight:        cat.Weight,
			WeightedScore: WeightedScore(score, cat.Weight),
			Notes:         in.Notes,
		})
	}
	if len(missing) > 0 {
		return nil, &MissingScoresError{CategoryNames: missing}
	}
	return entries, nil
}

// AssembleBreakdown builds the complete, self-contained breakdown snapshot
// from validated inputs. Apart from ScoredAt, identical inputs always yield
// an identical snapshot; downstream consumers never recompute derived fields.
func AssembleBreakdown(
	inputs []CategoryScoreInput,
	strengths, considerations []string,
	recommendation string,
	selectedRedFlagIDs []string,
	scoredBy string,
) (*ScoreBreakdownData, error) {
	entries, err := FinalizeScores(inputs)
	if err != nil {
		return nil, err
	}

	overall := OverallScore(entries)
	grade := GradeFromScore(overall)
	readiness := DistributionReadiness(overall, selectedRedFlagIDs)

	if strings.TrimSpace(recommendation) == "" {
		recommendation = RecommendationTemplate(readiness, grade)
	}

	return &ScoreBreakdownData{
		SchemaVersion:  BreakdownSchemaVersion,
		Overall:        overall,
		Grade:          grade,
		Categories:     entries,
		Strengths:      MergeSuggestions(strengths, SuggestStrengths(entries)),
		Considerations: MergeSuggestions(considerations, SuggestConsiderations(entries)),
		Recommendation: recommendation,
		RedFlags:       append([]string(nil), selectedRedFlagIDs...),
		Readiness:      readiness,
		ScoredAt:       time.Now().UTC(),
		ScoredBy:       scoredBy,
	}, nil
}
