// Package auth implements the Target365 request authentication scheme:
// ECDSA P-256 signatures with SHA-256 over a canonical request message,
// carried in an Authorization header.
//
// It provides client-side signing (via Transport or SignHeader) and
// server-side verification of inbound callbacks (via Middleware or
// VerifyAuthorization). No shared secret is involved; each side holds its
// own private key and looks up the counterparty's public key by name.
//
// # Wire Format
//
// The header value is
//
//	HMAC <keyName>:<unixSeconds>:<nonce>:<base64(r||s)>
//
// where r||s is the 64-byte raw signature (two 32-byte big-endian
// integers). The signed message is
//
//	lower(method) + lower(uri) + unixSeconds + nonce + base64(sha256(body))
//
// with the hash term omitted for an empty body. DERToRaw and RawToDER
// convert between the raw form and the ASN.1 DER form used by crypto/ecdsa.
//
// # Keys
//
// Private keys are PKCS8 and public keys X.509 SubjectPublicKeyInfo, as
// base64 text with optional PEM wrapper lines:
//
//	signer, err := auth.NewSignerFromText(privateKeyText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	verifier, err := auth.NewVerifierFromText(publicKeyText)
//
// # Signing Requests
//
//	value, err := auth.SignHeader(signer, "MyKey", "POST", "https://test.target365.io/api/out-messages", body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	req.Header.Set(auth.HeaderName, value)
//
// Or sign every outgoing request through a Transport:
//
//	client := &http.Client{
//	    Transport: auth.NewTransport(nil, auth.TransportConfig{
//	        Signer:  signer,
//	        KeyName: "MyKey",
//	    }),
//	}
//
// # Verifying Callbacks
//
// The replay window is checked before the signature. Timestamps older than
// Window.Past or newer than Window.Future are rejected with
// ErrClockDriftExceeded:
//
//	resolver := func(ctx context.Context, keyName string) (auth.Verifier, error) {
//	    // Look up the public key for keyName.
//	    return verifier, nil
//	}
//
//	mw, err := auth.Middleware(auth.MiddlewareConfig{
//	    Verify: auth.VerifyConfig{
//	        Resolver: resolver,
//	        Window:   auth.DefaultWindow,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/callbacks/", mw(handler))
//
// Nonces are not tracked here; deduplication, if needed, belongs to the
// verifying service.
package auth
