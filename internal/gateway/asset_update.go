// internal/gateway/asset_update.go
package gateway

import (
	"context"
	"database/sql"
	"time"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/common/logger"
	"asset-qualification-workers/internal/common/metrics"
	"asset-qualification-workers/internal/models"
	"asset-qualification-workers/internal/scoring"

	"github.com/google/uuid"
)

// Save actions accepted by the gateway. save_scores stores an in-progress
// pass; complete_qualification closes the review and derives the terminal
// status from the breakdown's readiness verdict.
const (
	ActionSaveScores            = "save_scores"
	ActionCompleteQualification = "complete_qualification"
)

// Authorizer answers whether a reviewer may write scoring decisions.
type Authorizer interface {
	AuthorizeAdmin(ctx context.Context, reviewerID string) error
}

// Cache invalidates portal-side cached asset records after a write.
type Cache interface {
	InvalidateAsset(ctx context.Context, assetID string) error
}

// AuditIndexer mirrors audit entries into the search index.
type AuditIndexer interface {
	IndexAuditDocument(ctx context.Context, docID string, doc interface{}) error
}

// UpdateRequest carries one persistence pass through the gateway.
type UpdateRequest struct {
	AssetID    string
	ReviewerID string
	Action     string
	Breakdown  *scoring.ScoreBreakdownData
}

// UpdateResult reports what the gateway wrote.
type UpdateResult struct {
	AssetID   string
	OldStatus string
	NewStatus string
	AuditID   string
}

// AssetUpdateGateway is the single write path for scoring results. Every save
// goes through authorization, breakdown encoding, and one transaction covering
// the asset row and its audit entry. Nothing else writes the scoring columns.
type AssetUpdateGateway struct {
	db      *sql.DB
	auth    Authorizer
	cache   Cache
	indexer AuditIndexer
	logger  logger.Logger
}

func NewAssetUpdateGateway(db *sql.DB, auth Authorizer, cache Cache, indexer AuditIndexer, log logger.Logger) *AssetUpdateGateway {
	return &AssetUpdateGateway{
		db:      db,
		auth:    auth,
		cache:   cache,
		indexer: indexer,
		logger:  log,
	}
}

// PersistBreakdown authorizes the reviewer, encodes the breakdown, and writes
// the asset's scoring fields, derived status, and audit entry in one
// transaction. Cache invalidation and audit indexing happen after commit and
// never fail the save.
func (g *AssetUpdateGateway) PersistBreakdown(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	if err := g.auth.AuthorizeAdmin(ctx, req.ReviewerID); err != nil {
		if stdErr, ok := err.(*errors.StandardError); ok {
			return nil, stdErr
		}
		return nil, errors.NewAuthCheckFailedError(err)
	}

	raw, err := scoring.EncodeBreakdown(req.Breakdown)
	if err != nil {
		return nil, errors.NewBreakdownDecodeError(err)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseConnectionError(err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM assets WHERE id = $1 FOR UPDATE`,
		req.AssetID,
	).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return nil, errors.NewAssetNotFoundError(req.AssetID)
	}
	if err != nil {
		return nil, errors.NewAssetUpdateFailedError(err)
	}

	newStatus := deriveStatus(req.Action, oldStatus, req.Breakdown.Readiness)
	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE assets
		 SET score = $1, grade = $2, score_breakdown = $3, recommendation = $4, status = $5, updated_at = $6
		 WHERE id = $7`,
		req.Breakdown.Overall,
		string(req.Breakdown.Grade),
		raw,
		req.Breakdown.Recommendation,
		newStatus,
		now,
		req.AssetID,
	)
	if err != nil {
		return nil, errors.NewAssetUpdateFailedError(err)
	}

	result := &UpdateResult{
		AssetID:   req.AssetID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	var audit *models.AuditEntry
	if newStatus != oldStatus {
		audit = &models.AuditEntry{
			ID:        uuid.New().String(),
			AssetID:   req.AssetID,
			Action:    req.Action,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Actor:     req.ReviewerID,
			CreatedAt: now,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO asset_audit (id, asset_id, action, old_status, new_status, actor, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			audit.ID, audit.AssetID, audit.Action, audit.OldStatus, audit.NewStatus, audit.Actor, audit.CreatedAt,
		)
		if err != nil {
			return nil, errors.NewAssetUpdateFailedError(err)
		}
		result.AuditID = audit.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewAssetUpdateFailedError(err)
	}

	metrics.AssetStatusTransitions.WithLabelValues(oldStatus, newStatus).Inc()

	if g.cache != nil {
		if err := g.cache.InvalidateAsset(ctx, req.AssetID); err != nil {
			g.logger.Warn("Failed to invalidate asset cache", map[string]interface{}{
				"asset_id": req.AssetID,
				"error":    err.Error(),
			})
		}
	}

	if g.indexer != nil && audit != nil {
		if err := g.indexer.IndexAuditDocument(ctx, audit.ID, audit); err != nil {
			g.logger.Warn("Failed to index audit entry", map[string]interface{}{
				"asset_id": req.AssetID,
				"audit_id": audit.ID,
				"error":    err.Error(),
			})
		}
	}

	g.logger.Info("Persisted score breakdown", map[string]interface{}{
		"asset_id":   req.AssetID,
		"action":     req.Action,
		"old_status": oldStatus,
		"new_status": newStatus,
		"overall":    req.Breakdown.Overall,
		"grade":      string(req.Breakdown.Grade),
		"readiness":  string(req.Breakdown.Readiness),
	})

	return result, nil
}

// deriveStatus maps a save action onto the asset's workflow status. Saving
// scores pulls a submitted asset into review and otherwise leaves the status
// untouched; completing qualification lands on rejected or
// qualification_complete based on the readiness verdict.
func deriveStatus(action, current string, readiness scoring.Readiness) string {
	switch action {
	case ActionSaveScores:
		if current == models.StatusSubmitted {
			return models.StatusInReview
		}
		return current
	case ActionCompleteQualification:
		if readiness == scoring.ReadinessNotReady {
			return models.StatusRejected
		}
		return models.StatusQualificationComplete
	default:
		return current
	}
}
