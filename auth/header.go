package auth

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scheme is the authorization scheme token that prefixes the header value.
const Scheme = "HMAC"

// HeaderName is the HTTP header that carries the authorization value.
const HeaderName = "Authorization"

var (
	tokenPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	timestampPattern = regexp.MustCompile(`^[0-9]+$`)
	signaturePattern = regexp.MustCompile(`^[A-Za-z0-9+/_=-]+$`)
)

// Header is a parsed authorization header:
//
//	HMAC <keyName>:<unixSeconds>:<nonce>:<base64(r||s)>
type Header struct {
	// KeyName identifies the public key that verifies the signature.
	KeyName string

	// Timestamp is the signing time in Unix seconds.
	Timestamp int64

	// Nonce is a random per-request token.
	Nonce string

	// Signature is the base64-encoded 64-byte raw signature.
	Signature string
}

// String formats the header value including the scheme token.
func (h Header) String() string {
	return Scheme + " " + h.Credentials()
}

// Credentials formats the header value without the scheme token.
func (h Header) Credentials() string {
	return h.KeyName + ":" + strconv.FormatInt(h.Timestamp, 10) + ":" + h.Nonce + ":" + h.Signature
}

// ParseHeader parses an authorization header value. The leading scheme
// token is optional. The value must split on ':' into exactly four fields
// that match their lexical patterns; nothing is repaired.
func ParseHeader(value string) (Header, error) {
	value = strings.TrimSpace(value)
	if rest, ok := strings.CutPrefix(value, Scheme+" "); ok {
		value = strings.TrimSpace(rest)
	}

	parts := strings.Split(value, ":")
	if len(parts) != 4 {
		return Header{}, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformedHeader, len(parts))
	}

	keyName, ts, nonce, sig := parts[0], parts[1], parts[2], parts[3]

	if !tokenPattern.MatchString(keyName) {
		return Header{}, fmt.Errorf("%w: invalid key name", ErrMalformedHeader)
	}

	if !timestampPattern.MatchString(ts) {
		return Header{}, fmt.Errorf("%w: timestamp must be a non-negative integer", ErrMalformedHeader)
	}

	timestamp, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: timestamp out of range", ErrMalformedHeader)
	}

	if !tokenPattern.MatchString(nonce) {
		return Header{}, fmt.Errorf("%w: invalid nonce", ErrMalformedHeader)
	}

	if !signaturePattern.MatchString(sig) {
		return Header{}, fmt.Errorf("%w: invalid signature encoding", ErrMalformedHeader)
	}

	return Header{
		KeyName:   keyName,
		Timestamp: timestamp,
		Nonce:     nonce,
		Signature: sig,
	}, nil
}

// decodeSignature decodes a base64 signature, accepting the standard and
// URL-safe alphabets.
func decodeSignature(sig string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(sig); err == nil {
		return raw, nil
	}

	raw, err := base64.URLEncoding.DecodeString(sig)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64", ErrMalformedSignature)
	}

	return raw, nil
}
