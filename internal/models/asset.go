// internal/models/asset.go
package models

import (
	"encoding/json"
	"time"
)

// AssetStatus values follow the qualification workflow.
const (
	StatusDraft                 = "draft"
	StatusSubmitted             = "submitted"
	StatusInReview              = "in_review"
	StatusQualificationComplete = "qualification_complete"
	StatusRejected              = "rejected"
	StatusDistributed           = "distributed"
)

// Asset is the portal record the scoring engine writes to. Score, Grade,
// ScoreBreakdown, Recommendation and Status are always updated as a unit.
type Asset struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	Name           string          `json:"name"`
	AssetType      string          `json:"assetType"`
	Score          *int            `json:"score,omitempty"`
	Grade          string          `json:"grade,omitempty"`
	ScoreBreakdown json.RawMessage `json:"scoreBreakdown,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AuditEntry records one semantic change to an asset, old value to new value,
// not a raw field diff.
type AuditEntry struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"assetId"`
	Action    string    `json:"action"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
