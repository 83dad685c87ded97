package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters for sessions, messages and the
// directory.
type Metrics struct {
	// Session metrics
	SessionsEstablished *prometheus.CounterVec
	SessionFailures     *prometheus.CounterVec

	// Message metrics
	MessagesEncrypted prometheus.Counter
	MessagesDecrypted *prometheus.CounterVec

	// Directory metrics
	DirectoryRequests *prometheus.CounterVec
	OneTimeKeysServed prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the counters and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers the counters on reg. g backs Handler and may be
// nil when metrics are not served.
func NewMetricsWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsEstablished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asyncpfs_sessions_established_total",
				Help: "Sessions established",
			},
			[]string{"role"},
		),

		SessionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asyncpfs_session_failures_total",
				Help: "Failed key agreements",
			},
			[]string{"role", "kind"},
		),

		MessagesEncrypted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "asyncpfs_messages_encrypted_total",
				Help: "Messages encrypted",
			},
		),

		MessagesDecrypted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asyncpfs_messages_decrypted_total",
				Help: "Decrypt attempts by result",
			},
			[]string{"result"},
		),

		DirectoryRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asyncpfs_directory_requests_total",
				Help: "Directory HTTP requests",
			},
			[]string{"route", "status"},
		),

		OneTimeKeysServed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "asyncpfs_directory_one_time_keys_served_total",
				Help: "One-time keys handed out and retired",
			},
		),

		gatherer: g,
	}
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
