package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_runs_total",
		Help: "Count of ingestion runs by terminal status",
	}, []string{"status"})

	metricUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_upload_failures_total",
		Help: "Count of failed per-entry uploads during publish fan-out",
	})

	metricCallbackFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_status_callback_failures_total",
		Help: "Count of failed post-status callbacks",
	})
)
