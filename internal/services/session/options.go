package session

import "asyncpfs/internal/observability"

// Option configures a Facade or Service.
type Option func(*options)

type options struct {
	log     *observability.Logger
	metrics *observability.Metrics
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *observability.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the counters to update. The default updates none.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func newOptions(opts []Option) options {
	o := options{log: observability.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) countEstablished(role string) {
	if o.metrics != nil {
		o.metrics.SessionsEstablished.WithLabelValues(role).Inc()
	}
}

func (o options) countFailed(role, kind string) {
	if o.metrics != nil {
		o.metrics.SessionFailures.WithLabelValues(role, kind).Inc()
	}
}

func (o options) countEncrypted() {
	if o.metrics != nil {
		o.metrics.MessagesEncrypted.Inc()
	}
}

func (o options) countDecrypted(result string) {
	if o.metrics != nil {
		o.metrics.MessagesDecrypted.WithLabelValues(result).Inc()
	}
}
