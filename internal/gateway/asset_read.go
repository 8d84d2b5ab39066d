// internal/gateway/asset_read.go
package gateway

import (
	"context"
	"database/sql"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/scoring"
)

// LoadBreakdown fetches an asset's stored score breakdown. Returns nil when
// the asset has never been scored. Stored documents are schema-validated on
// the way out; a malformed document is an error, not a silent nil.
func (g *AssetUpdateGateway) LoadBreakdown(ctx context.Context, assetID string) (*scoring.ScoreBreakdownData, error) {
	var raw sql.NullString
	err := g.db.QueryRowContext(ctx,
		`SELECT score_breakdown FROM assets WHERE id = $1`,
		assetID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.NewAssetNotFoundError(assetID)
	}
	if err != nil {
		return nil, errors.NewDatabaseConnectionError(err)
	}

	if !raw.Valid || raw.String == "" {
		return nil, nil
	}

	breakdown, err := scoring.DecodeBreakdown([]byte(raw.String))
	if err != nil {
		return nil, errors.NewBreakdownDecodeError(err)
	}
	return breakdown, nil
}
