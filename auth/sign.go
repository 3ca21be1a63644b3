package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateNonce returns a fresh random UUID string for use as a header nonce.
func GenerateNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("auth: generate nonce: %w", err)
	}

	return id.String(), nil
}

// SignHeader signs a request with the current time and a fresh nonce and
// returns the Authorization header value:
//
//	HMAC <keyName>:<unixSeconds>:<nonce>:<base64(r||s)>
//
// uri is the absolute request URL and content the request body text.
func SignHeader(signer Signer, keyName, method, uri, content string) (string, error) {
	nonce, err := GenerateNonce()
	if err != nil {
		return "", err
	}

	h, err := SignHeaderAt(signer, keyName, method, uri, content, time.Now(), nonce)
	if err != nil {
		return "", err
	}

	return h.String(), nil
}

// SignHeaderAt signs a request with an explicit timestamp and nonce.
func SignHeaderAt(signer Signer, keyName, method, uri, content string, at time.Time, nonce string) (Header, error) {
	if signer == nil {
		return Header{}, ErrNoSigner
	}

	if keyName == "" {
		return Header{}, ErrNoKeyName
	}

	timestamp := at.Unix()
	message := CanonicalMessage(method, uri, timestamp, nonce, content)

	sig, err := signer.Sign(message)
	if err != nil {
		return Header{}, err
	}

	if len(sig) != RawSignatureSize {
		return Header{}, fmt.Errorf("%w: signer returned %d bytes", ErrMalformedSignature, len(sig))
	}

	return Header{
		KeyName:   keyName,
		Timestamp: timestamp,
		Nonce:     nonce,
		Signature: base64.StdEncoding.EncodeToString(sig),
	}, nil
}
