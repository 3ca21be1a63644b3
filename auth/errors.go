package auth

import "errors"

// Signature encoding errors.
var (
	// ErrMalformedSignature is returned when signature bytes do not decode to
	// a valid DER SEQUENCE of two INTEGERs or to a 64-byte raw r||s value.
	ErrMalformedSignature = errors.New("auth: malformed signature")
)

// Header errors.
var (
	// ErrMalformedHeader is returned when an authorization header does not
	// split into keyName, timestamp, nonce and signature, or a field fails
	// its lexical pattern.
	ErrMalformedHeader = errors.New("auth: malformed authorization header")

	// ErrClockDriftExceeded is returned when the header timestamp falls
	// outside the accepted replay window.
	ErrClockDriftExceeded = errors.New("auth: timestamp clock-drift too big")
)

// Key material errors.
var (
	// ErrKeyLoad is returned when key text is not a PKCS8 private key or an
	// X.509 SubjectPublicKeyInfo public key for curve P-256.
	ErrKeyLoad = errors.New("auth: invalid key material")
)

// Signing errors.
var (
	// ErrNoSigner is returned when a signing transport has no Signer.
	ErrNoSigner = errors.New("auth: signer must not be nil")

	// ErrNoKeyName is returned when a signing transport has no key name.
	ErrNoKeyName = errors.New("auth: key name must not be empty")
)

// Verification errors.
var (
	// ErrNoResolver is returned when VerifyConfig has no KeyResolver.
	ErrNoResolver = errors.New("auth: key resolver must not be nil")

	// ErrMissingHeader is returned when a request carries no Authorization
	// header.
	ErrMissingHeader = errors.New("auth: authorization header not found")

	// ErrSignatureInvalid is returned by VerifyAuthorization when the
	// signature does not match the request. VerifyHeader reports the same
	// outcome as false.
	ErrSignatureInvalid = errors.New("auth: signature verification failed")
)
