package callback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/target365/sdk-for-go/metrics"
)

// ShutdownGracePeriod bounds how long Serve waits for in-flight requests.
const ShutdownGracePeriod = 10 * time.Second

// ServerConfig configures Serve.
type ServerConfig struct {
	// Address is the listen address of the callback server.
	Address string

	// MetricsAddress and MetricsPath serve Prometheus metrics on a separate
	// listener when metrics are enabled.
	MetricsAddress string
	MetricsPath    string
}

// Serve runs handler on cfg.Address, plus a metrics server when m is set,
// until ctx is cancelled or the callback server fails. Both listeners are
// bound before serving starts, and both servers are shut down on every exit
// path.
func Serve(ctx context.Context, cfg ServerConfig, handler http.Handler, logger *zap.Logger, m *metrics.Metrics) error {
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("callback: listen on %s: %w", cfg.Address, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var metricsServer *http.Server
	if m != nil {
		metricsLn, err := net.Listen("tcp", cfg.MetricsAddress)
		if err != nil {
			ln.Close()
			return fmt.Errorf("callback: metrics listen on %s: %w", cfg.MetricsAddress, err)
		}

		mux := http.NewServeMux()
		mux.Handle(cfg.MetricsPath, m.Handler())

		metricsServer = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info("starting metrics server",
				zap.String("address", metricsLn.Addr().String()),
				zap.String("path", cfg.MetricsPath))
			if err := metricsServer.Serve(metricsLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting callback server", zap.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownGracePeriod)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop callback server", zap.Error(err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to stop metrics server", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
	return serveErr
}
