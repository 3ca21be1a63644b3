package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InstrumentRoundTripper records request count and duration for outbound API
// calls made through next.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if m == nil {
		return next
	}

	return promhttp.InstrumentRoundTripperCounter(m.httpOutboundRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(m.httpOutboundDuration, next))
}

// InstrumentHandler records request count and duration for inbound callbacks
// served by next.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return promhttp.InstrumentHandlerCounter(m.httpInboundRequestsTotal,
		promhttp.InstrumentHandlerDuration(m.httpInboundDuration, next))
}
