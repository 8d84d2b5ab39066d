// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qualification_jobs_completed_total",
			Help: "Total number of qualification jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qualification_jobs_failed_total",
			Help: "Total number of qualification jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "qualification_job_duration_seconds",
			Help: "Duration of qualification job processing in seconds",
		},
		[]string{"task_type"},
	)

	BreakdownsAssembled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_breakdowns_assembled_total",
			Help: "Total number of score breakdowns assembled, by readiness verdict",
		},
		[]string{"readiness"},
	)

	AssetStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_status_transitions_total",
			Help: "Total number of asset status transitions written by the gateway",
		},
		[]string{"from", "to"},
	)
)
