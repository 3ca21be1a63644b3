package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/target365/sdk-for-go/auth"
	"github.com/target365/sdk-for-go/metrics"
)

// signatureHeaderPattern is the lexical form accepted by VerifySignature,
// without the optional "HMAC " scheme token.
var signatureHeaderPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+:[0-9]+:[A-Za-z0-9_-]+:[A-Za-z0-9+/_=-]+$`)

// VerifySignature verifies the Authorization header of a callback received
// from Target365. uri is the absolute URL the callback was sent to and
// content its body. The header is parsed, its timestamp checked against the
// configured window, and the server public key named in it fetched.
//
// Malformed input and a timestamp outside the window are reported as
// *ValidationError; a signature that does not match returns false, nil.
func (c *Client) VerifySignature(ctx context.Context, method, uri, content, signature string) (bool, error) {
	start := c.clock.Now()
	defer func() {
		c.metrics.ObserveSignatureVerificationDuration(c.clock.Since(start).Seconds())
	}()

	var v validator
	v.notBlank("method", method)
	v.notBlank("uri", uri)
	v.notBlank("signature", signature)

	h, err := auth.ParseHeader(signature)
	if err != nil {
		v.add("signature must conform to the pattern %s", signatureHeaderPattern.String())
	}

	if err := v.err(); err != nil {
		c.metrics.IncSignatureVerifications(metrics.ResultMalformed)
		return false, err
	}

	if err := c.window.Check(h.Timestamp, c.clock.Now()); err != nil {
		c.metrics.IncSignatureVerifications(metrics.ResultStale)
		return false, &ValidationError{Violations: []string{"timestamp clock-drift too big"}}
	}

	verifier, err := c.serverVerifier(ctx, h.KeyName)
	if err != nil {
		c.metrics.IncSignatureVerifications(metrics.ResultError)
		return false, err
	}

	ok := auth.VerifyHeader(verifier, method, uri, h.Timestamp, h.Nonce, content, h.Signature)
	if ok {
		c.metrics.IncSignatureVerifications(metrics.ResultValid)
	} else {
		c.metrics.IncSignatureVerifications(metrics.ResultInvalid)
		c.logger.Warn("callback signature mismatch", zap.String("keyName", h.KeyName))
	}

	return ok, nil
}

// KeyResolver returns an auth.KeyResolver backed by the server public key
// endpoint, for use with auth.Middleware.
func (c *Client) KeyResolver() auth.KeyResolver {
	return c.serverVerifier
}

// Window returns the replay window the client enforces.
func (c *Client) Window() auth.Window {
	return c.window
}

// ClearKeyCache drops every cached server public key.
func (c *Client) ClearKeyCache() {
	c.keys.purge()
}

// serverVerifier resolves keyName through the key cache. The validity
// period is checked on every call, so a cached key stops verifying once it
// expires.
func (c *Client) serverVerifier(ctx context.Context, keyName string) (auth.Verifier, error) {
	key, err := c.keys.get(ctx, keyName, c.fetchServerKey)
	if err != nil {
		return nil, err
	}

	if !key.key.UsableAt(c.clock.Now()) {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotUsable, keyName)
	}

	return key.verifier, nil
}

func (c *Client) fetchServerKey(ctx context.Context, keyName string) (*serverKey, error) {
	key, err := c.GetServerPublicKey(ctx, keyName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("server public key %q: %w", keyName, err)
		}
		return nil, err
	}

	verifier, err := auth.NewVerifierFromText(key.PublicKeyString)
	if err != nil {
		return nil, fmt.Errorf("server public key %q: %w", keyName, err)
	}

	return &serverKey{key: key, verifier: verifier}, nil
}
