// internal/workers/qualification/score-asset/models.go
package scoreasset

import "asset-qualification-workers/internal/scoring"

type Input struct {
	AssetID        string                       `json:"assetId"`
	ReviewerID     string                       `json:"reviewerId"`
	CategoryScores []scoring.CategoryScoreInput `json:"categoryScores"`
	Strengths      []string                     `json:"strengths,omitempty"`
	Considerations []string                     `json:"considerations,omitempty"`
	Recommendation string                       `json:"recommendation,omitempty"`
	RedFlags       []string                     `json:"redFlags,omitempty"`
}

type Output struct {
	AssetID        string                      `json:"assetId"`
	Overall        int                         `json:"overall"`
	Grade          string                      `json:"grade"`
	Readiness      string                      `json:"distributionReadiness"`
	ScoreBreakdown *scoring.ScoreBreakdownData `json:"scoreBreakdown"`
}
