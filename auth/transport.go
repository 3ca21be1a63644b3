package auth

import (
	"bytes"
	"io"
	"net/http"
)

// TransportConfig configures outbound request signing.
type TransportConfig struct {
	// Signer produces signatures. Required.
	Signer Signer

	// KeyName identifies the client's public key on the server. Required.
	KeyName string
}

// Transport is an http.RoundTripper that adds a signed Authorization header
// to every outgoing request.
type Transport struct {
	base   http.RoundTripper
	config TransportConfig
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used.
//
// Configure base for custom proxy, TLS, timeouts, and connection pool
// settings:
//
//	base := &http.Transport{
//	    Proxy:           http.ProxyFromEnvironment,
//	    TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
//	}
//	transport := auth.NewTransport(base, auth.TransportConfig{Signer: signer, KeyName: "MyKey"})
func NewTransport(base *http.Transport, cfg TransportConfig) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   rt,
		config: cfg,
	}
}

// RoundTrip signs a clone of the request and delegates to the base
// transport. When GetBody is available, the clone receives its own body
// copy so signing does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	if err := SignRequest(clone, t.config.Signer, t.config.KeyName); err != nil {
		if clone.Body != nil {
			clone.Body.Close()
		}
		return nil, err
	}

	return t.base.RoundTrip(clone)
}

// SignRequest signs r in place. The canonical uri is the absolute request
// URL and the content is the request body, which is restored afterwards.
func SignRequest(r *http.Request, signer Signer, keyName string) error {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	value, err := SignHeader(signer, keyName, r.Method, r.URL.String(), string(body))
	if err != nil {
		return err
	}

	r.Header.Set(HeaderName, value)

	return nil
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again downstream.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
