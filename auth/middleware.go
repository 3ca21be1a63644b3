package auth

import (
	"context"
	"net/http"
)

type contextKey struct{}

// MiddlewareConfig configures the server-side verification middleware for
// inbound callbacks.
type MiddlewareConfig struct {
	// Verify configures how headers are verified.
	Verify VerifyConfig

	// URI returns the absolute URL the sender signed. When nil, the URL is
	// rebuilt from the request (see RequestURL).
	URI func(r *http.Request) string

	// OnError is called when verification fails. When nil, a plain 401
	// Unauthorized response is sent.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns an http middleware that verifies the Authorization
// header of incoming requests. The verified Header is stored in the request
// context; see HeaderFromContext.
//
// It returns ErrNoResolver if VerifyConfig.Resolver is nil.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Verify.Resolver == nil {
		return nil, ErrNoResolver
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	uri := cfg.URI
	if uri == nil {
		uri = RequestURL
	}

	verifyCfg := cfg.Verify

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h, err := VerifyRequest(r, uri(r), verifyCfg)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, h)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// VerifyRequest verifies the Authorization header of r against uri and the
// request body. The body is restored for downstream handlers.
func VerifyRequest(r *http.Request, uri string, cfg VerifyConfig) (Header, error) {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return Header{}, err
	}

	return VerifyAuthorization(r.Context(), r.Header.Get(HeaderName), r.Method, uri, string(body), cfg)
}

// HeaderFromContext returns the Header verified by Middleware.
func HeaderFromContext(ctx context.Context) (Header, bool) {
	h, ok := ctx.Value(contextKey{}).(Header)
	return h, ok
}

// RequestURL rebuilds the absolute URL of an inbound request. The scheme
// comes from X-Forwarded-Proto when present, otherwise from the TLS state.
func RequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// defaultOnError writes a 401 Unauthorized response with no body.
func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusUnauthorized)
}
