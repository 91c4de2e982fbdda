package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/tweetstream/internal/connection"
)

const namespace = "tweetstream"

// StatsSource is anything that can report manager statistics.
type StatsSource interface {
	Stats() connection.ManagerStats
}

// Metrics holds the Prometheus registry and the collaborator counters.
type Metrics struct {
	registry      *prometheus.Registry
	events        prometheus.Counter
	notifications *prometheus.CounterVec
}

// New creates a registry with Go runtime and process collectors plus the
// stream counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "events_displayed_total",
			Help:      "Events handed to the renderer",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      "notifications_total",
			Help:      "Lifecycle notifications emitted, by severity",
		}, []string{"severity"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.events,
		m.notifications,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Renderer wraps next so every displayed event is counted.
func (m *Metrics) Renderer(next connection.Renderer) connection.Renderer {
	return connection.RendererFunc(func(ev connection.Event) {
		next.Display(ev)
		m.events.Inc()
	})
}

// Notifier wraps next so every notification is counted by severity.
func (m *Metrics) Notifier(next connection.Notifier) connection.Notifier {
	return connection.NotifierFunc(func(n connection.Notification) {
		m.notifications.WithLabelValues(string(n.Severity)).Inc()
		next.Notify(n)
	})
}

// RegisterManager exposes manager statistics as gauges read at scrape time.
func (m *Metrics) RegisterManager(src StatsSource) {
	gauge := func(name, help string, f func(connection.ManagerStats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      name,
			Help:      help,
		}, func() float64 { return f(src.Stats()) })
	}
	counter := func(name, help string, f func(connection.ManagerStats) float64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      name,
			Help:      help,
		}, func() float64 { return f(src.Stats()) })
	}

	m.registry.MustRegister(
		gauge("state", "Manager state (0 idle, 1 connecting, 2 open, 3 retry_wait, 4 terminal)",
			func(s connection.ManagerStats) float64 { return float64(s.State) }),
		gauge("attempt", "Current attempt number of the retry policy",
			func(s connection.ManagerStats) float64 { return float64(s.Attempt) }),
		counter("dials_total", "Connection attempts started",
			func(s connection.ManagerStats) float64 { return float64(s.Dials) }),
		counter("reconnects_total", "Opens that recovered from a lost connection",
			func(s connection.ManagerStats) float64 { return float64(s.Reconnects) }),
		counter("decode_errors_total", "Inbound messages that could not be decoded",
			func(s connection.ManagerStats) float64 { return float64(s.DecodeErrors) }),
	)
}
