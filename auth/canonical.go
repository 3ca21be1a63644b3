package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
)

// ContentHash returns the base64-encoded SHA-256 digest of content, or the
// empty string when content is empty.
func ContentHash(content string) string {
	if content == "" {
		return ""
	}

	digest := sha256.Sum256([]byte(content))

	return base64.StdEncoding.EncodeToString(digest[:])
}

// CanonicalMessage builds the exact bytes that are signed and verified:
//
//	lower(method) + lower(uri) + decimal(timestamp) + nonce + ContentHash(content)
//
// concatenated with no separators. The remote service computes the same
// bytes, so the layout must not change.
func CanonicalMessage(method, uri string, timestamp int64, nonce, content string) []byte {
	var sb strings.Builder

	hash := ContentHash(content)
	sb.Grow(len(method) + len(uri) + 20 + len(nonce) + len(hash))

	sb.WriteString(strings.ToLower(method))
	sb.WriteString(strings.ToLower(uri))
	sb.WriteString(strconv.FormatInt(timestamp, 10))
	sb.WriteString(nonce)
	sb.WriteString(hash)

	return []byte(sb.String())
}
