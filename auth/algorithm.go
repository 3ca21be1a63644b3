package auth

// Signer creates raw r||s signatures over canonical messages.
type Signer interface {
	// Sign produces a 64-byte raw signature over the given message bytes.
	// Signing is randomized; two signatures over the same message differ
	// but both verify.
	Sign(message []byte) ([]byte, error)
}

// Verifier validates raw r||s signatures over canonical messages.
type Verifier interface {
	// Verify reports whether signature is valid for message. Malformed
	// signatures are reported as false, the same as a mismatch.
	Verify(message, signature []byte) bool
}
