// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	FusionQuality = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fusion_overall_quality",
			Help:    "Distribution of overall data quality scores per fusion run",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	QuestionsEmitted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "questions_emitted_count",
			Help:    "Number of clarifying questions emitted per generation",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	SitesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sites_generated_total",
			Help: "Total number of sites fully populated",
		},
		[]string{"industry", "positioning"},
	)
)
