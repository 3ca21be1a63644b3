package callback

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/target365/sdk-for-go/auth"
	"github.com/target365/sdk-for-go/client"
	"github.com/target365/sdk-for-go/metrics"
)

// Defaults.
const (
	DefaultPath         = "/callbacks/"
	DefaultMaxBodyBytes = 1 << 20
)

// Config configures the callback handler.
type Config struct {
	// Path is the prefix under which in-messages and delivery-reports are
	// served. Defaults to DefaultPath.
	Path string

	// Resolver looks up the Target365 server key named in a request's
	// Authorization header. Required; see client.Client.KeyResolver.
	Resolver auth.KeyResolver

	// Window is the accepted timestamp drift. Zero means auth.DefaultWindow.
	Window auth.Window

	// MaxBodyBytes caps callback bodies. Defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// OnInMessage is called for each verified in-message. An error answers
	// 500 so Target365 retries the delivery.
	OnInMessage func(ctx context.Context, message *client.InMessage) error

	// OnDeliveryReport is called for each verified delivery report.
	OnDeliveryReport func(ctx context.Context, report *client.DeliveryReport) error
}

// NewHandler returns an http.Handler serving Target365 callbacks. Requests
// whose Authorization header does not verify are answered with 401 before
// any body parsing. m may be nil.
func NewHandler(cfg Config, logger *zap.Logger, m *metrics.Metrics) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	base := strings.TrimSuffix(path, "/")

	maxBytes := cfg.MaxBodyBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	limit, err := BodyLimit(maxBytes)
	if err != nil {
		return nil, err
	}

	verify, err := auth.Middleware(auth.MiddlewareConfig{
		Verify: auth.VerifyConfig{
			Resolver: cfg.Resolver,
			Window:   cfg.Window,
		},
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				logger.Warn("callback body too large", zap.Int64("limit", maxErr.Limit))
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}

			m.IncSignatureVerifications(VerificationResult(err))
			logger.Warn("callback rejected",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("requestId", RequestIDFromContext(r.Context())),
				zap.Error(err))
			w.WriteHeader(http.StatusUnauthorized)
		},
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("POST "+base+"/in-messages", inMessageHandler(cfg.OnInMessage, logger))
	mux.Handle("POST "+base+"/delivery-reports", deliveryReportHandler(cfg.OnDeliveryReport, logger))

	verified := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.IncSignatureVerifications(metrics.ResultValid)
		mux.ServeHTTP(w, r)
	})

	return Chain(verified,
		RequestID(),
		Recovery(logger),
		Middleware(m.InstrumentHandler),
		limit,
		verify,
		RequireJSON(),
	), nil
}

func inMessageHandler(hook func(context.Context, *client.InMessage) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		message, err := client.ParseInMessage(body)
		if err != nil {
			logger.Warn("invalid in-message callback", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		logger.Info("in-message received",
			zap.String("transactionId", message.TransactionID),
			zap.String("sender", message.Sender),
			zap.String("recipient", message.Recipient),
			zap.String("keyName", keyNameOf(r)),
			zap.String("requestId", RequestIDFromContext(r.Context())))

		if hook != nil {
			if err := hook(r.Context(), message); err != nil {
				logger.Error("in-message hook failed", zap.String("transactionId", message.TransactionID), zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func deliveryReportHandler(hook func(context.Context, *client.DeliveryReport) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		report, err := client.ParseDeliveryReport(body)
		if err != nil {
			logger.Warn("invalid delivery report callback", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		logger.Info("delivery report received",
			zap.String("transactionId", report.TransactionID),
			zap.String("statusCode", string(report.StatusCode)),
			zap.String("detailedStatusCode", string(report.DetailedStatusCode)),
			zap.String("keyName", keyNameOf(r)),
			zap.String("requestId", RequestIDFromContext(r.Context())))

		if hook != nil {
			if err := hook(r.Context(), report); err != nil {
				logger.Error("delivery report hook failed", zap.String("transactionId", report.TransactionID), zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

// VerificationResult maps a verification error to a metrics result label.
func VerificationResult(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingHeader), errors.Is(err, auth.ErrMalformedHeader):
		return metrics.ResultMalformed
	case errors.Is(err, auth.ErrClockDriftExceeded):
		return metrics.ResultStale
	case errors.Is(err, auth.ErrSignatureInvalid):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

func keyNameOf(r *http.Request) string {
	h, _ := auth.HeaderFromContext(r.Context())
	return h.KeyName
}
