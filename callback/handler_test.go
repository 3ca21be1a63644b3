package callback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/target365/sdk-for-go/auth"
	"github.com/target365/sdk-for-go/client"
	"github.com/target365/sdk-for-go/metrics"
)

const (
	serverKeyName = "Target365"
	inMessageBody = `{"transactionId":"in-1","sender":"+4798079008","recipient":"2002","content":"HELLO"}`
	reportBody    = `{"transactionId":"tx-1","statusCode":"Ok","detailedStatusCode":"Delivered"}`
)

type fixture struct {
	server  *httptest.Server
	signer  *auth.ECDSASigner
	metrics *metrics.Metrics

	inMessages []*client.InMessage
	reports    []*client.DeliveryReport
	hookErr    error
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	key, err := auth.GenerateKey()
	require.NoError(t, err)

	signer, err := auth.NewSigner(key)
	require.NoError(t, err)

	verifier, err := auth.NewVerifier(&key.PublicKey)
	require.NoError(t, err)

	m, err := metrics.NewMetrics(nil)
	require.NoError(t, err)

	f := &fixture{signer: signer, metrics: m}

	cfg.Resolver = func(_ context.Context, keyName string) (auth.Verifier, error) {
		if keyName != serverKeyName {
			return nil, fmt.Errorf("server public key %q: %w", keyName, client.ErrNotFound)
		}
		return verifier, nil
	}
	cfg.OnInMessage = func(_ context.Context, message *client.InMessage) error {
		f.inMessages = append(f.inMessages, message)
		return f.hookErr
	}
	cfg.OnDeliveryReport = func(_ context.Context, report *client.DeliveryReport) error {
		f.reports = append(f.reports, report)
		return f.hookErr
	}

	h, err := NewHandler(cfg, zap.NewNop(), m)
	require.NoError(t, err)

	f.server = httptest.NewServer(h)
	t.Cleanup(f.server.Close)

	return f
}

// post sends body to path, signed with keyName unless keyName is empty.
func (f *fixture) post(t *testing.T, path, body, keyName string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if keyName != "" {
		require.NoError(t, auth.SignRequest(req, f.signer, keyName))
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	return resp
}

func (f *fixture) scrape(t *testing.T) string {
	t.Helper()

	w := httptest.NewRecorder()
	f.metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	return w.Body.String()
}

func TestNewHandler(t *testing.T) {
	t.Run("requires resolver", func(t *testing.T) {
		_, err := NewHandler(Config{}, nil, nil)
		assert.ErrorIs(t, err, auth.ErrNoResolver)
	})

	t.Run("rejects negative body limit", func(t *testing.T) {
		_, err := NewHandler(Config{MaxBodyBytes: -1}, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidMaxSize)
	})
}

func TestHandler(t *testing.T) {
	f := newFixture(t, Config{})

	resp := f.post(t, "/callbacks/in-messages", inMessageBody, serverKeyName)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	require.Len(t, f.inMessages, 1)
	assert.Equal(t, "in-1", f.inMessages[0].TransactionID)
	assert.Equal(t, "HELLO", f.inMessages[0].Content)

	resp = f.post(t, "/callbacks/delivery-reports", reportBody, serverKeyName)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, f.reports, 1)
	assert.Equal(t, client.StatusOk, f.reports[0].StatusCode)

	assert.Equal(t, http.StatusBadRequest, f.post(t, "/callbacks/in-messages", "{", serverKeyName).StatusCode)
	assert.Equal(t, http.StatusNotFound, f.post(t, "/callbacks/other", "{}", serverKeyName).StatusCode)

	assert.Equal(t, http.StatusUnauthorized, f.post(t, "/callbacks/in-messages", inMessageBody, "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, f.post(t, "/callbacks/in-messages", inMessageBody, "Unknown").StatusCode)
	assert.Len(t, f.inMessages, 1, "rejected callbacks never reach the hook")

	scraped := f.scrape(t)
	assert.Contains(t, scraped, `target365_signature_verifications_total{result="valid"} 4`)
	assert.Contains(t, scraped, `target365_signature_verifications_total{result="malformed"} 1`)
	assert.Contains(t, scraped, `target365_signature_verifications_total{result="error"} 1`)
	assert.Contains(t, scraped, `target365_http_inbound_requests_total{code="200",method="post"} 2`)
	assert.Contains(t, scraped, `target365_http_inbound_requests_total{code="401",method="post"} 2`)
}

func TestHandlerTamperedBody(t *testing.T) {
	f := newFixture(t, Config{})

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/callbacks/in-messages", strings.NewReader(inMessageBody))
	require.NoError(t, err)
	require.NoError(t, auth.SignRequest(req, f.signer, serverKeyName))

	req.Body = http.NoBody
	req.ContentLength = 0
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, f.scrape(t), `target365_signature_verifications_total{result="invalid"} 1`)
}

func TestHandlerCustomPath(t *testing.T) {
	f := newFixture(t, Config{Path: "/hooks"})

	assert.Equal(t, http.StatusOK, f.post(t, "/hooks/in-messages", inMessageBody, serverKeyName).StatusCode)
	assert.Equal(t, http.StatusNotFound, f.post(t, "/callbacks/in-messages", inMessageBody, serverKeyName).StatusCode)
}

func TestHandlerContentType(t *testing.T) {
	f := newFixture(t, Config{})

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/callbacks/in-messages", strings.NewReader(inMessageBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")
	require.NoError(t, auth.SignRequest(req, f.signer, serverKeyName))

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	assert.Empty(t, f.inMessages)
}

func TestHandlerBodyLimit(t *testing.T) {
	f := newFixture(t, Config{MaxBodyBytes: 16})

	assert.Equal(t, http.StatusRequestEntityTooLarge, f.post(t, "/callbacks/in-messages", inMessageBody, serverKeyName).StatusCode)
	assert.Empty(t, f.inMessages)
}

func TestHandlerHookError(t *testing.T) {
	f := newFixture(t, Config{})
	f.hookErr = errors.New("store unavailable")

	assert.Equal(t, http.StatusInternalServerError, f.post(t, "/callbacks/in-messages", inMessageBody, serverKeyName).StatusCode)
	assert.Equal(t, http.StatusInternalServerError, f.post(t, "/callbacks/delivery-reports", reportBody, serverKeyName).StatusCode)
}

func TestVerificationResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: auth.ErrMissingHeader, want: metrics.ResultMalformed},
		{err: fmt.Errorf("%w: 3 fields", auth.ErrMalformedHeader), want: metrics.ResultMalformed},
		{err: fmt.Errorf("%w: outside", auth.ErrClockDriftExceeded), want: metrics.ResultStale},
		{err: auth.ErrSignatureInvalid, want: metrics.ResultInvalid},
		{err: errors.New("lookup failed"), want: metrics.ResultError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, VerificationResult(tc.err))
		})
	}
}
