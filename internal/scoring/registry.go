// Package scoring implements the manual asset qualification rubric: weighted
// category scores, letter grades, red flags and the distribution readiness
// verdict.
package scoring

import "fmt"

// Severity levels for red flag templates.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ScoringCategory is one weighted dimension of asset quality. Categories and
// their weights are build-time constants; changing them is a redeploy, not a
// data edit.
type ScoringCategory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Weight      int      `json:"weight"`
	Guidelines  []string `json:"guidelines"`
}

// RedFlagTemplate is a named, severity-tagged concern an admin can attach to
// a category during review. Category must reference a registered category id.
type RedFlagTemplate struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// categories is ordered; the order is the display order on the scoring form
// and the order of entries in a persisted breakdown. Weights sum to 100.
var categories = []ScoringCategory{
	{
		ID:          "performance",
		Name:        "Historical Performance",
		Description: "Return history and valuation consistency of the underlying asset",
		Weight:      30,
		Guidelines: []string{
			"Review at least three years of return data where available",
			"Compare stated valuations against independent marks",
			"Flag unexplained period-over-period swings greater than 20%",
		},
	},
	{
		ID:          "cash_flow",
		Name:        "Cash Flow Quality",
		Description: "Stability and predictability of cash generation",
		Weight:      25,
		Guidelines: []string{
			"Verify recurring cash flows against bank statements",
			"Discount one-off or related-party receipts",
			"Assess seasonality and coverage of fixed obligations",
		},
	},
	{
		ID:          "documentation",
		Name:        "Documentation Completeness",
		Description: "Quality and completeness of the submitted document package",
		Weight:      20,
		Guidelines: []string{
			"Audited financials preferred over management accounts",
			"Ownership and title records must be current",
			"Material contracts should be executed copies, not drafts",
		},
	},
	{
		ID:          "structure",
		Name:        "Legal Structure",
		Description: "Clarity of the holding structure and investor protections",
		Weight:      15,
		Guidelines: []string{
			"Map the full ownership chain to ultimate beneficial owners",
			"Check for subordination or encumbrances on distributed interests",
		},
	},
	{
		ID:          "diversification",
		Name:        "Diversification",
		Description: "Concentration of revenue, counterparties and collateral",
		Weight:      5,
		Guidelines: []string{
			"Flag any single counterparty above 40% of revenue",
		},
	},
	{
		ID:          "regulatory",
		Name:        "Regulatory Standing",
		Description: "Licensing, compliance history and open proceedings",
		Weight:      5,
		Guidelines: []string{
			"Confirm required licenses are active in every operating jurisdiction",
			"Search for open enforcement actions or litigation",
		},
	},
}

var redFlags = []RedFlagTemplate{
	{ID: "missing_audited_financials", Category: "documentation", Severity: SeverityHigh,
		Message: "No audited financial statements provided for the review period"},
	{ID: "negative_cash_flow_trend", Category: "cash_flow", Severity: SeverityHigh,
		Message: "Operating cash flow declining across consecutive reporting periods"},
	{ID: "pending_litigation", Category: "regulatory", Severity: SeverityHigh,
		Message: "Unresolved litigation or enforcement action against the issuer"},
	{ID: "inconsistent_valuations", Category: "performance", Severity: SeverityMedium,
		Message: "Stated valuations diverge from independent marks without explanation"},
	{ID: "incomplete_ownership_records", Category: "documentation", Severity: SeverityMedium,
		Message: "Ownership chain cannot be traced to ultimate beneficial owners"},
	{ID: "concentrated_revenue_base", Category: "diversification", Severity: SeverityMedium,
		Message: "Single counterparty accounts for a dominant share of revenue"},
	{ID: "complex_holding_structure", Category: "structure", Severity: SeverityMedium,
		Message: "Multi-layer holding structure obscures investor claims"},
	{ID: "short_operating_history", Category: "performance", Severity: SeverityLow,
		Message: "Less than three years of operating history available"},
	{ID: "manual_reporting_process", Category: "documentation", Severity: SeverityLow,
		Message: "Financial reporting is produced manually without system controls"},
	{ID: "single_jurisdiction_exposure", Category: "regulatory", Severity: SeverityLow,
		Message: "All operations concentrated in a single regulatory jurisdiction"},
}

var categoryIndex = func() map[string]ScoringCategory {
	idx := make(map[string]ScoringCategory, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}()

var redFlagIndex = func() map[string]RedFlagTemplate {
	idx := make(map[string]RedFlagTemplate, len(redFlags))
	for _, f := range redFlags {
		idx[f.ID] = f
	}
	return idx
}()

func init() {
	// A broken registry is a deploy-time defect, not a runtime condition.
	if err := ValidateRegistry(); err != nil {
		panic(err)
	}
}

// ValidateRegistry checks the weight-sum invariant and red flag category
// references. Exposed so tests can assert the invariants directly.
func ValidateRegistry() error {
	if total := TotalWeight(); total != 100 {
		return fmt.Errorf("scoring: category weights sum to %d, want 100", total)
	}
	for _, f := range redFlags {
		if _, ok := categoryIndex[f.Category]; !ok {
			return fmt.Errorf("scoring: red flag %q references unknown category %q", f.ID, f.Category)
		}
		switch f.Severity {
		case SeverityHigh, SeverityMedium, SeverityLow:
		default:
			return fmt.Errorf("scoring: red flag %q has invalid severity %q", f.ID, f.Severity)
		}
	}
	return nil
}

// Categories returns the registered categories in display order. The returned
// slice is a copy; callers may not mutate registry state.
func Categories() []ScoringCategory {
	out := make([]ScoringCategory, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a category. ok is false for unknown ids.
func CategoryByID(id string) (ScoringCategory, bool) {
	c, ok := categoryIndex[id]
	return c, ok
}

// TotalWeight sums all registered category weights.
func TotalWeight() int {
	total := 0
	for _, c := range categories {
		total += c.Weight
	}
	return total
}

// RedFlags returns all registered red flag templates.
func RedFlags() []RedFlagTemplate {
	out := make([]RedFlagTemplate, len(redFlags))
	copy(out, redFlags)
	return out
}

// RedFlagByID looks up a red flag template. ok is false for unknown ids.
func RedFlagByID(id string) (RedFlagTemplate, bool) {
	f, ok := redFlagIndex[id]
	return f, ok
}

// RedFlagsByCategory returns the templates tagged with the given category id.
func RedFlagsByCategory(categoryID string) []RedFlagTemplate {
	var out []RedFlagTemplate
	for _, f := range redFlags {
		if f.Category == categoryID {
			out = append(out, f)
		}
	}
	return out
}

// RedFlagsBySeverity returns the templates carrying the given severity.
func RedFlagsBySeverity(severity Severity) []RedFlagTemplate {
	var out []RedFlagTemplate
	for _, f := range redFlags {
		if f.Severity == severity {
			out = append(out, f)
		}
	}
	return out
}
