package scoring

import (
	"fmt"
	"strings"
)

// Suggestion thresholds. A category scoring at or above the strength
// threshold earns a canned strength; one scoring above zero but below the
// consideration threshold earns a canned consideration.
const (
	strengthScoreThreshold      = 85
	considerationScoreThreshold = 70
)

// Canned suggestion text keyed by category id. Unknown ids emit nothing.
var strengthSuggestions = map[string]string{
	"performance":     "Strong and consistent historical performance across the review period.",
	"cash_flow":       "High-quality, predictable cash flows with solid obligation coverage.",
	"documentation":   "Complete, well-organized document package with audited financials.",
	"structure":       "Clean legal structure with clearly traceable investor claims.",
	"diversification": "Well-diversified revenue and counterparty base.",
	"regulatory":      "Excellent regulatory standing with no open proceedings.",
}

var considerationSuggestions = map[string]string{
	"performance":     "Historical performance is below expectations and warrants closer monitoring.",
	"cash_flow":       "Cash flow quality raises concerns about distribution sustainability.",
	"documentation":   "Documentation gaps should be remediated before distribution.",
	"structure":       "The legal structure introduces complexity that may concern investors.",
	"diversification": "Concentration risk in the revenue or counterparty base.",
	"regulatory":      "Regulatory standing requires follow-up before distribution.",
}

// SuggestStrengths returns the canned strength sentences earned by the given
// entries, in entry order.
func SuggestStrengths(entries []CategoryScoreEntry) []string {
	var out []string
	for _, e := range entries {
		if e.Score < strengthScoreThreshold {
			continue
		}
		if text, ok := strengthSuggestions[e.CategoryID]; ok {
			out = append(out, text)
		}
	}
	return out
}

// SuggestConsiderations returns the canned consideration sentences earned by
// the given entries. A zero score earns nothing; an unscored category is a
// validation failure upstream, not a consideration.
func SuggestConsiderations(entries []CategoryScoreEntry) []string {
	var out []string
	for _, e := range entries {
		if e.Score <= 0 || e.Score >= considerationScoreThreshold {
			continue
		}
		if text, ok := considerationSuggestions[e.CategoryID]; ok {
			out = append(out, text)
		}
	}
	return out
}

// MergeSuggestions merges machine suggestions into the admin's entries.
// Blank user entries are dropped, user text is never replaced, and a
// suggestion already present verbatim is not duplicated.
func MergeSuggestions(userEntries, suggestions []string) []string {
	merged := make([]string, 0, len(userEntries)+len(suggestions))
	seen := make(map[string]bool)
	for _, entry := range userEntries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		merged = append(merged, trimmed)
		seen[trimmed] = true
	}
	for _, s := range suggestions {
		if seen[s] {
			continue
		}
		merged = append(merged, s)
		seen[s] = true
	}
	return merged
}

// RecommendationTemplate produces the boilerplate recommendation for a
// readiness verdict and grade. Callers use it only when the admin left the
// free-text recommendation empty; human-edited text always wins.
func RecommendationTemplate(readiness Readiness, grade Grade) string {
	switch readiness {
	case ReadinessReady:
		return fmt.Sprintf("This asset meets the distribution criteria with a grade of %s. Recommended for inclusion in the investor distribution pipeline.", grade)
	case ReadinessConditional:
		return fmt.Sprintf("This asset is conditionally approved with a grade of %s. Address the noted considerations before proceeding to distribution.", grade)
	default:
		return fmt.Sprintf("This asset does not currently meet the distribution criteria (grade %s). Resolve the identified red flags and resubmit for qualification.", grade)
	}
}
