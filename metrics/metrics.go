// Package metrics provides Prometheus collectors for request signing,
// callback verification and outbound Target365 API calls.
//
// All methods are safe to call on a nil *Metrics and do nothing in that case,
// so instrumentation stays optional for library users.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "target365"

// Verification results used as the "result" label.
const (
	ResultValid     = "valid"
	ResultInvalid   = "invalid"
	ResultMalformed = "malformed"
	ResultStale     = "stale"
	ResultError     = "error"
)

// Metrics holds the collectors registered for one SDK instance.
type Metrics struct {
	registry *prometheus.Registry

	signaturesTotal               prometheus.Counter
	signatureVerificationsTotal   *prometheus.CounterVec
	signatureVerificationDuration prometheus.Histogram

	keyCacheHits   prometheus.Counter
	keyCacheMisses prometheus.Counter

	httpOutboundRequestsTotal *prometheus.CounterVec
	httpOutboundDuration      *prometheus.HistogramVec

	httpInboundRequestsTotal *prometheus.CounterVec
	httpInboundDuration      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registry.
// When registry is nil a fresh one is created.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		signaturesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signatures_total",
				Help:      "Total number of authorization headers signed",
			},
		),
		signatureVerificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signature_verifications_total",
				Help:      "Total number of authorization header verifications by result",
			},
			[]string{"result"},
		),
		signatureVerificationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "signature_verification_duration_seconds",
				Help:      "Duration of authorization header verifications",
				Buckets:   prometheus.DefBuckets,
			},
		),

		keyCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "public_key_cache_hits_total",
				Help:      "Total number of server public key cache hits",
			},
		),
		keyCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "public_key_cache_misses_total",
				Help:      "Total number of server public key cache misses",
			},
		),

		httpOutboundRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of outbound API requests",
			},
			[]string{"method", "code"},
		),
		httpOutboundDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of outbound API requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		httpInboundRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_inbound_requests_total",
				Help:      "Total number of inbound callback requests",
			},
			[]string{"method", "code"},
		),
		httpInboundDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_inbound_request_duration_seconds",
				Help:      "Duration of inbound callback requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	collectors := []prometheus.Collector{
		m.signaturesTotal,
		m.signatureVerificationsTotal,
		m.signatureVerificationDuration,
		m.keyCacheHits,
		m.keyCacheMisses,
		m.httpOutboundRequestsTotal,
		m.httpOutboundDuration,
		m.httpInboundRequestsTotal,
		m.httpInboundDuration,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Registry returns the Prometheus registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Signing metrics
func (m *Metrics) IncSignatures() {
	if m == nil {
		return
	}

	m.signaturesTotal.Inc()
}

// Verification metrics
func (m *Metrics) IncSignatureVerifications(result string) {
	if m == nil {
		return
	}

	m.signatureVerificationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSignatureVerificationDuration(seconds float64) {
	if m == nil {
		return
	}

	m.signatureVerificationDuration.Observe(seconds)
}

// Public key cache metrics
func (m *Metrics) IncKeyCacheHits() {
	if m == nil {
		return
	}

	m.keyCacheHits.Inc()
}

func (m *Metrics) IncKeyCacheMisses() {
	if m == nil {
		return
	}

	m.keyCacheMisses.Inc()
}
