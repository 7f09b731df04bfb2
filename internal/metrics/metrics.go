package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"raintarget/internal/target"
)

// Calculation sources.
const (
	SourceCLI   = "cli"
	SourceWeb   = "web"
	SourceAPI   = "api"
	SourceBatch = "batch"
	SourceBot   = "bot"
)

// OutcomeOK labels accepted calculations; rejections use their error kind.
const OutcomeOK = "ok"

// Recorder holds the Prometheus collectors. A nil *Recorder discards
// everything so callers never need to check whether metrics are enabled.
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raintarget",
			Name:      "calculations_total",
			Help:      "Revised target calculations by outcome and source.",
		}, []string{"outcome", "source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raintarget",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "raintarget",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(r.calculations, r.httpRequests, r.httpDuration)
	return r
}

// RecordCalculation counts one Compute call. err is the error Compute returned.
func (r *Recorder) RecordCalculation(source string, err error) {
	if r == nil {
		return
	}
	r.calculations.WithLabelValues(Outcome(err), source).Inc()
}

// RecordHTTPRequest tracks one served request.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Outcome maps a Compute error to its metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if ve, ok := target.AsValidation(err); ok {
		return string(ve.Kind)
	}
	return "error"
}
