// Package client is a Target365 REST API client. Every request carries an
// ECDSA-signed Authorization header produced by package auth, and inbound
// callbacks can be verified against the server's published public keys.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/target365/sdk-for-go/auth"
	"github.com/target365/sdk-for-go/metrics"
)

// DefaultTimeout bounds each API call when Config.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. https://shared.target365.io/.
	BaseURL string

	// KeyName names the client's public key registered with Target365.
	KeyName string

	// PrivateKey is the PKCS8 P-256 private key text (PEM or bare base64).
	PrivateKey string

	// Timeout bounds each API call. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Window is the replay window for VerifySignature and KeyResolver
	// users. Defaults to auth.DefaultWindow.
	Window auth.Window

	// KeyCacheTTL is how long fetched server public keys are reused.
	// Zero disables caching.
	KeyCacheTTL time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records signing, verification and request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTransport sets the base transport under the signing layer, for custom
// proxy, TLS and connection pool settings.
func WithTransport(t *http.Transport) Option {
	return func(c *Client) {
		c.base = t
	}
}

// WithClock sets the clock used for replay windows and key cache expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// Client calls the Target365 API. It is safe for concurrent use.
type Client struct {
	baseURL string
	keyName string
	window  auth.Window

	httpClient *http.Client
	base       *http.Transport

	logger  *zap.Logger
	metrics *metrics.Metrics
	clock   clockwork.Clock

	keys *keyCache
}

// New creates a Client. The private key is parsed here; invalid key material
// refuses construction with auth.ErrKeyLoad.
func New(cfg Config, opts ...Option) (*Client, error) {
	var v validator
	v.notBlank("baseUrl", cfg.BaseURL)
	v.notBlank("keyName", cfg.KeyName)
	v.notBlank("privateKey", cfg.PrivateKey)
	if err := v.err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ValidationError{Violations: []string{"baseUrl must be an absolute URL"}}
	}

	signer, err := auth.NewSignerFromText(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: strings.TrimSuffix(base.String(), "/") + "/",
		keyName: cfg.KeyName,
		window:  cfg.Window,
		logger:  zap.NewNop(),
		clock:   clockwork.NewRealClock(),
	}

	if c.window == (auth.Window{}) {
		c.window = auth.DefaultWindow
	}

	for _, opt := range opts {
		opt(c)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := auth.NewTransport(c.base, auth.TransportConfig{
		Signer:  &countingSigner{signer: signer, metrics: c.metrics},
		KeyName: cfg.KeyName,
	})

	c.httpClient = &http.Client{
		Timeout:   timeout,
		Transport: c.metrics.InstrumentRoundTripper(transport),
	}

	c.keys = newKeyCache(cfg.KeyCacheTTL, c.clock, c.metrics)

	return c, nil
}

// countingSigner counts every signature produced.
type countingSigner struct {
	signer  auth.Signer
	metrics *metrics.Metrics
}

func (s *countingSigner) Sign(message []byte) ([]byte, error) {
	sig, err := s.signer.Sign(message)
	if err == nil {
		s.metrics.IncSignatures()
	}

	return sig, err
}

// response is a fully read API response.
type response struct {
	status int
	header http.Header
	body   []byte
}

// do sends a signed request to path (relative to the base URL) and fails
// with *ResponseError unless the status is one of expected.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any, expected ...int) (*response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader = http.NoBody
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("client: encode request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := c.clock.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", c.clock.Since(start)))

	for _, code := range expected {
		if resp.StatusCode == code {
			return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
		}
	}

	c.logger.Warn("unexpected response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	return nil, &ResponseError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(data),
	}
}

// getJSON decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, http.StatusOK)
	if err != nil {
		return err
	}

	return decode(resp.body, out)
}

// getResource decodes a 200 response into out and maps 404 to ErrNotFound.
func (c *Client) getResource(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return err
	}

	if resp.status == http.StatusNotFound {
		return ErrNotFound
	}

	return decode(resp.body, out)
}

// create posts in, expects 201 and returns the last Location path segment.
func (c *Client) create(ctx context.Context, path string, in any) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, in, http.StatusCreated)
	if err != nil {
		return "", err
	}

	return locationID(resp.header), nil
}

// send issues a request that expects a single status and no result body.
func (c *Client) send(ctx context.Context, method, path string, in any, expected int) error {
	_, err := c.do(ctx, method, path, nil, in, expected)
	return err
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}

	return nil
}

// locationID returns the last path segment of the Location header.
func locationID(header http.Header) string {
	location := header.Get("Location")
	if location == "" {
		return ""
	}

	if u, err := url.Parse(location); err == nil {
		location = u.Path
	}

	return location[strings.LastIndex(location, "/")+1:]
}

// segment escapes one path segment.
func segment(s string) string {
	return url.PathEscape(s)
}
