package auth

import (
	"context"
	"time"
)

// KeyResolver returns a Verifier for the public key named keyName.
// It is called during verification to look up the counterparty's key.
type KeyResolver func(ctx context.Context, keyName string) (Verifier, error)

// VerifyConfig configures authorization header verification.
type VerifyConfig struct {
	// Resolver looks up a Verifier for a key name. Required.
	Resolver KeyResolver

	// Window is the accepted timestamp drift. When zero, DefaultWindow is
	// used.
	Window Window

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (cfg VerifyConfig) window() Window {
	if cfg.Window == (Window{}) {
		return DefaultWindow
	}

	return cfg.Window
}

func (cfg VerifyConfig) now() time.Time {
	if cfg.Now == nil {
		return time.Now()
	}

	return cfg.Now()
}

// VerifyHeader recomputes the canonical message and checks signature (the
// base64 field of the header) against it. Any malformed signature yields
// false, indistinguishable from a mismatch. The replay window is not
// checked here; callers run Window.Check first.
func VerifyHeader(verifier Verifier, method, uri string, timestamp int64, nonce, content, signature string) bool {
	if verifier == nil {
		return false
	}

	raw, err := decodeSignature(signature)
	if err != nil {
		return false
	}

	return verifier.Verify(CanonicalMessage(method, uri, timestamp, nonce, content), raw)
}

// VerifyAuthorization runs the full inbound check on an Authorization
// header value: parse, replay window, key lookup by name, then signature
// verification. It returns the parsed header on success.
func VerifyAuthorization(ctx context.Context, value, method, uri, content string, cfg VerifyConfig) (Header, error) {
	if cfg.Resolver == nil {
		return Header{}, ErrNoResolver
	}

	if value == "" {
		return Header{}, ErrMissingHeader
	}

	h, err := ParseHeader(value)
	if err != nil {
		return Header{}, err
	}

	if err := cfg.window().Check(h.Timestamp, cfg.now()); err != nil {
		return Header{}, err
	}

	verifier, err := cfg.Resolver(ctx, h.KeyName)
	if err != nil {
		return Header{}, err
	}

	if !VerifyHeader(verifier, method, uri, h.Timestamp, h.Nonce, content, h.Signature) {
		return Header{}, ErrSignatureInvalid
	}

	return h, nil
}
