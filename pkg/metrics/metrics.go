// Package metrics exposes Prometheus metrics for the API server.
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

const namespace = "money_movements"

// Metrics collects the HTTP and domain metrics of the application.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	movementWrites  *prometheus.CounterVec
	exports         *prometheus.CounterVec
	authAttempts    *prometheus.CounterVec
	liveSubscribers prometheus.Gauge
	liveDropped     prometheus.Counter
}

// New initialises the registry and every metric.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		movementWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_writes_total",
			Help:      "Movement mutations by action and result.",
		}, []string{"action", "result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Report exports by format and result.",
		}, []string{"format", "result"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Sign-up and sign-in attempts by operation and result code.",
		}, []string{"operation", "code"}),
		liveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_subscribers",
			Help:      "Open live dashboard connections.",
		}),
		liveDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_dropped_messages_total",
			Help:      "Live messages dropped because a subscriber was too slow.",
		}),
	}
	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.movementWrites,
		m.exports,
		m.authAttempts,
		m.liveSubscribers,
		m.liveDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records the count and duration of every request by route pattern.
// The chi wrapper keeps websocket hijacking working.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// MovementWrite counts a create, update, delete or settle.
func (m *Metrics) MovementWrite(action string, err error) {
	if m == nil {
		return
	}
	m.movementWrites.WithLabelValues(action, result(err)).Inc()
}

// Export counts a rendered report.
func (m *Metrics) Export(format string, err error) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, result(err)).Inc()
}

// AuthAttempt counts a sign-up or sign-in. code is "" on success.
func (m *Metrics) AuthAttempt(operation, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	m.authAttempts.WithLabelValues(operation, code).Inc()
}

// LiveConnected tracks an open live connection. Call the returned func on disconnect.
func (m *Metrics) LiveConnected() func() {
	if m == nil {
		return func() {}
	}
	m.liveSubscribers.Inc()
	return m.liveSubscribers.Dec
}

// LiveDropped counts a message dropped for a slow subscriber.
func (m *Metrics) LiveDropped(string) {
	if m == nil {
		return
	}
	m.liveDropped.Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
