package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultStale = "stale"
	ResultBusy  = "busy"
)

var (
	// PageFetchTotal counts page loads per collection.
	// Labels: collection (projects, videos), result (ok, error, stale, busy)
	PageFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crpix_page_fetch_total",
			Help: "Total number of page fetches",
		},
		[]string{"collection", "result"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crpix_uploads_total",
			Help: "Total number of image uploads to object storage",
		},
		[]string{"result"},
	)

	// PublishTotal counts admin publishes.
	// Labels: kind (project, video), result (ok, error)
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crpix_publish_total",
			Help: "Total number of publish attempts",
		},
		[]string{"kind", "result"},
	)

	AdminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crpix_admin_logins_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"result"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crpix_http_request_duration_seconds",
			Help:    "HTTP request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)
)

func RecordPageFetch(collection, result string) {
	PageFetchTotal.WithLabelValues(collection, result).Inc()
}

func RecordUpload(err error) {
	UploadsTotal.WithLabelValues(result(err)).Inc()
}

func RecordPublish(kind string, err error) {
	PublishTotal.WithLabelValues(kind, result(err)).Inc()
}

func RecordLogin(ok bool) {
	if ok {
		AdminLoginsTotal.WithLabelValues(ResultOK).Inc()
		return
	}
	AdminLoginsTotal.WithLabelValues(ResultError).Inc()
}

func RecordRequest(method, route, status string, seconds float64) {
	RequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
