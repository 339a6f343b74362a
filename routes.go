package gameplay

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ryanshappa/GamePlay-sub000/ingest"
)

var (
	metricHTTPStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of HTTP requests with path, method and (return) code",
	}, []string{"path", "method", "code"})

	metricHTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram of HTTP response duration with path, method and (return) code",
	}, []string{"path", "method", "code"})
)

func registerRoutes(mux *http.ServeMux, pipeline *ingest.Pipeline) error {
	{
		path := "/events"
		mux.Handle("POST "+path,
			promhttp.InstrumentHandlerDuration(metricHTTPDuration.MustCurryWith(prometheus.Labels{"path": path}),
				promhttp.InstrumentHandlerCounter(metricHTTPStatus.MustCurryWith(prometheus.Labels{"path": path}),
					ingest.HandleUploadEvents(pipeline))))
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return nil
}
