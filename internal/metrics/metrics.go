// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the timeout sweep. Collectors live on a dedicated registry served at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lexicard"

// Sweep results used as the "result" label.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds every collector the server registers.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	sweepRuns        *prometheus.CounterVec
	sweepSkipped     prometheus.Counter
	sweepDuration    prometheus.Histogram
	wordsReactivated prometheus.Counter
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timeout_sweep",
			Name:      "runs_total",
			Help:      "Timeout sweeps by result.",
		}, []string{"result"}),
		sweepSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timeout_sweep",
			Name:      "skipped_total",
			Help:      "Ticks skipped because the previous sweep was still running.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "timeout_sweep",
			Name:      "duration_seconds",
			Help:      "Duration of timeout sweeps.",
			Buckets:   prometheus.DefBuckets,
		}),
		wordsReactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timeout_sweep",
			Name:      "words_reactivated_total",
			Help:      "Words moved from timeout back to active.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.sweepRuns,
		m.sweepSkipped,
		m.sweepDuration,
		m.wordsReactivated,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveSweep records one finished sweep.
func (m *Metrics) ObserveSweep(reactivated int, elapsed time.Duration, err error) {
	m.sweepDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.sweepRuns.WithLabelValues(ResultError).Inc()
		return
	}
	m.sweepRuns.WithLabelValues(ResultSuccess).Inc()
	m.wordsReactivated.Add(float64(reactivated))
}

// SweepSkipped records a tick dropped by the single-flight guard.
func (m *Metrics) SweepSkipped() {
	m.sweepSkipped.Inc()
}
