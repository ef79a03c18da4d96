package site

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the site's Prometheus collectors. Each Server owns its own
// registry so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	wizardEvents  *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	chatMessages  *prometheus.CounterVec
	konami        prometheus.Counter
	activeSession prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cybertalent",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cybertalent",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		wizardEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cybertalent",
				Subsystem: "wizard",
				Name:      "events_total",
				Help:      "Wizard events by kind and validation outcome.",
			},
			[]string{"event", "result"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cybertalent",
				Name:      "submissions_total",
				Help:      "Accepted simulated submissions by form.",
			},
			[]string{"form"},
		),
		chatMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cybertalent",
				Subsystem: "chat",
				Name:      "messages_total",
				Help:      "Chat messages by whether a keyword matched.",
			},
			[]string{"matched"},
		),
		konami: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cybertalent",
			Name:      "konami_total",
			Help:      "Times the konami code was entered.",
		}),
		activeSession: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cybertalent",
			Name:      "sessions",
			Help:      "Visitor sessions held in memory.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.wizardEvents, m.submissions,
		m.chatMessages, m.konami, m.activeSession,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) wizardEvent(kind string, valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.wizardEvents.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) submitted(form string) {
	m.submissions.WithLabelValues(form).Inc()
}

func (m *Metrics) chat(matched bool) {
	m.chatMessages.WithLabelValues(strconv.FormatBool(matched)).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// instrument records the request under route, the mux pattern, so metrics
// keep a bounded label set.
func (m *Metrics) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		m.observeRequest(r.Method, route, rec.status, time.Since(start))
	})
}
