// internal/workers/qualification/score-asset/handler.go
package scoreasset

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/common/logger"
	"asset-qualification-workers/internal/common/metrics"
	"asset-qualification-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-asset"
)

// Handler validates a full set of category scores and assembles the score
// breakdown. An incomplete score set throws SCORE_VALIDATION_FAILED back to
// the process so the scoring form can reopen; nothing is persisted here.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
			h.throwError(client, job, bpmnErr.Code, bpmnErr.Details)
			return nil
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "SCORE_ASSET_FAILED").Inc()
		h.throwError(client, job, "SCORE_ASSET_FAILED", err.Error())
		return nil
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	breakdown, err := scoring.AssembleBreakdown(
		input.CategoryScores,
		input.Strengths,
		input.Considerations,
		input.Recommendation,
		input.RedFlags,
		input.ReviewerID,
	)
	if err != nil {
		var missing *scoring.MissingScoresError
		if stderrors.As(err, &missing) {
			return nil, errors.NewScoreValidationError(missing.CategoryNames)
		}
		return nil, err
	}

	metrics.BreakdownsAssembled.WithLabelValues(string(breakdown.Readiness)).Inc()

	h.logger.Info("score breakdown assembled", map[string]interface{}{
		"assetId":   input.AssetID,
		"overall":   breakdown.Overall,
		"grade":     string(breakdown.Grade),
		"readiness": string(breakdown.Readiness),
		"redFlags":  len(breakdown.RedFlags),
	})

	return &Output{
		AssetID:        input.AssetID,
		Overall:        breakdown.Overall,
		Grade:          string(breakdown.Grade),
		Readiness:      string(breakdown.Readiness),
		ScoreBreakdown: breakdown,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
