package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/target365/sdk-for-go/callback"
	"github.com/target365/sdk-for-go/logging"
	"github.com/target365/sdk-for-go/metrics"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Serve a callback endpoint that verifies Target365 signatures",
	Long: `The listen command serves in-message and delivery report callbacks under the
configured path. Every request must carry a valid Authorization header signed
by a Target365 server key; others are rejected with 401. Accepted callbacks
are logged. With metrics enabled, Prometheus metrics are served on a separate
address.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer logger.Sync()

		var m *metrics.Metrics
		if cfg.Metrics.Enabled {
			m, err = metrics.NewMetrics(nil)
			if err != nil {
				return err
			}
		}

		c, err := newClient(cfg, logger, m)
		if err != nil {
			return err
		}

		handler, err := callback.NewHandler(callback.Config{
			Path:     cfg.Listen.Path,
			Resolver: c.KeyResolver(),
			Window:   cfg.Window(),
		}, logger, m)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return callback.Serve(ctx, callback.ServerConfig{
			Address:        cfg.Listen.Address,
			MetricsAddress: cfg.Metrics.Address,
			MetricsPath:    cfg.Metrics.Path,
		}, handler, logger, m)
	},
}
