// internal/common/camunda/worker.go
package camunda

import (
	"context"

	"asset-qualification-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler must return an error (required by the Zeebe client wrapper).
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// QualificationWorker binds one task type of the asset-qualification process
// to its handler.
type QualificationWorker struct {
	client   zbc.Client
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	taskType string,
	maxJobsActive int,
	handler JobHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *QualificationWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(client worker.JobClient, job entities.Job) {
			if tracer != nil {
				_, span := tracer.StartJobSpan(context.Background(), taskType, job.Key)
				defer span.End()
			}
			if err := handler.Handle(client, job); err != nil {
				logger.Error("handler returned error", zap.Error(err), zap.Int64("jobKey", job.Key))
			}
		}).
		MaxJobsActive(maxJobsActive).
		Open()

	return &QualificationWorker{
		client:   client,
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

func (w *QualificationWorker) Start() {
	w.logger.Info("worker started", zap.String("taskType", w.taskType))
}

func (w *QualificationWorker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}
