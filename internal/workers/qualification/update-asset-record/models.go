// internal/workers/qualification/update-asset-record/models.go
package updateassetrecord

import "asset-qualification-workers/internal/scoring"

type Input struct {
	AssetID        string                      `json:"assetId"`
	ReviewerID     string                      `json:"reviewerId"`
	Action         string                      `json:"action"` // "save_scores" or "complete_qualification"
	ScoreBreakdown *scoring.ScoreBreakdownData `json:"scoreBreakdown"`
}

type Output struct {
	AssetID        string `json:"assetId"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
	AuditID        string `json:"auditId,omitempty"`
	UpdatedAt      string `json:"updatedAt"` // ISO 8601
}
