// internal/workers/qualification/update-asset-record/handler.go
package updateassetrecord

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/common/logger"
	"asset-qualification-workers/internal/common/metrics"
	"asset-qualification-workers/internal/gateway"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-asset-record"
)

// UpdateGateway is the write path for scoring results.
type UpdateGateway interface {
	PersistBreakdown(ctx context.Context, req gateway.UpdateRequest) (*gateway.UpdateResult, error)
}

// Handler persists an assembled breakdown through the asset update gateway.
// Authorization, status derivation, and audit writes all happen inside the
// gateway; this worker only translates job variables and error semantics.
type Handler struct {
	config  *Config
	gateway UpdateGateway
	logger  logger.Logger
}

func NewHandler(config *Config, gw UpdateGateway, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		gateway: gw,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.throwError(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			bpmnErr := errors.ConvertToBPMNError(stdErr)
			metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()
			if stdErr.Retryable {
				h.failJob(client, job, bpmnErr.Message, int32(bpmnErr.Retries))
			} else {
				h.throwError(client, job, bpmnErr.Code, bpmnErr.Details)
			}
			return nil
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "ASSET_UPDATE_FAILED").Inc()
		h.throwError(client, job, "ASSET_UPDATE_FAILED", err.Error())
		return nil
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ScoreBreakdown == nil {
		return nil, fmt.Errorf("missing scoreBreakdown variable for asset %s", input.AssetID)
	}

	result, err := h.gateway.PersistBreakdown(ctx, gateway.UpdateRequest{
		AssetID:    input.AssetID,
		ReviewerID: input.ReviewerID,
		Action:     input.Action,
		Breakdown:  input.ScoreBreakdown,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("asset record updated", map[string]interface{}{
		"assetId":        result.AssetID,
		"action":         input.Action,
		"previousStatus": result.OldStatus,
		"status":         result.NewStatus,
	})

	return &Output{
		AssetID:        result.AssetID,
		Status:         result.NewStatus,
		PreviousStatus: result.OldStatus,
		AuditID:        result.AuditID,
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) throwError(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorMessage string, retries int32) {
	h.logger.Error("job failed, will retry", map[string]interface{}{
		"jobKey":       job.Key,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send fail job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
