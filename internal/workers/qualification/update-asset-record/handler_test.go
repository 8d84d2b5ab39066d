// internal/workers/qualification/update-asset-record/handler_test.go
package updateassetrecord

import (
	"context"
	stderrors "errors"
	"testing"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/common/logger"
	"asset-qualification-workers/internal/gateway"
	"asset-qualification-workers/internal/models"
	"asset-qualification-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	result   *gateway.UpdateResult
	err      error
	requests []gateway.UpdateRequest
}

func (m *mockGateway) PersistBreakdown(_ context.Context, req gateway.UpdateRequest) (*gateway.UpdateResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func createTestHandler(t *testing.T, gw UpdateGateway) *Handler {
	return NewHandler(LoadConfig(), gw, logger.NewTestLogger(t))
}

func createTestBreakdown(t *testing.T) *scoring.ScoreBreakdownData {
	t.Helper()
	inputs := scoring.NewCategoryInputs()
	for i := range inputs {
		score := 85
		inputs[i].Score = &score
	}
	b, err := scoring.AssembleBreakdown(inputs, nil, nil, "", nil, "rev-1")
	require.NoError(t, err)
	return b
}

func TestHandler_Execute_PersistsThroughGateway(t *testing.T) {
	gw := &mockGateway{
		result: &gateway.UpdateResult{
			AssetID:   "asset-1",
			OldStatus: models.StatusSubmitted,
			NewStatus: models.StatusInReview,
			AuditID:   "audit-1",
		},
	}
	handler := createTestHandler(t, gw)
	breakdown := createTestBreakdown(t)

	output, err := handler.Execute(context.Background(), &Input{
		AssetID:        "asset-1",
		ReviewerID:     "rev-1",
		Action:         gateway.ActionSaveScores,
		ScoreBreakdown: breakdown,
	})

	require.NoError(t, err)
	assert.Equal(t, "asset-1", output.AssetID)
	assert.Equal(t, models.StatusInReview, output.Status)
	assert.Equal(t, models.StatusSubmitted, output.PreviousStatus)
	assert.Equal(t, "audit-1", output.AuditID)
	assert.NotEmpty(t, output.UpdatedAt)

	require.Len(t, gw.requests, 1)
	assert.Equal(t, gateway.ActionSaveScores, gw.requests[0].Action)
	assert.Same(t, breakdown, gw.requests[0].Breakdown)
}

func TestHandler_Execute_MissingBreakdownFails(t *testing.T) {
	gw := &mockGateway{}
	handler := createTestHandler(t, gw)

	_, err := handler.Execute(context.Background(), &Input{
		AssetID:    "asset-2",
		ReviewerID: "rev-1",
		Action:     gateway.ActionSaveScores,
	})

	require.Error(t, err)
	assert.Empty(t, gw.requests)
}

func TestHandler_Execute_PropagatesGatewayErrors(t *testing.T) {
	tests := []struct {
		name          string
		gatewayErr    *errors.StandardError
		wantRetryable bool
	}{
		{"asset not found", errors.NewAssetNotFoundError("asset-3"), false},
		{"unauthorized reviewer", errors.NewUnauthorizedReviewerError("rev-2"), false},
		{"update failed", errors.NewAssetUpdateFailedError(stderrors.New("deadlock")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, &mockGateway{err: tt.gatewayErr})

			_, err := handler.Execute(context.Background(), &Input{
				AssetID:        "asset-3",
				ReviewerID:     "rev-2",
				Action:         gateway.ActionCompleteQualification,
				ScoreBreakdown: createTestBreakdown(t),
			})

			require.Error(t, err)
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.gatewayErr.Code, stdErr.Code)
			assert.Equal(t, tt.wantRetryable, stdErr.Retryable)
		})
	}
}
