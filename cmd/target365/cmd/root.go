package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/target365/sdk-for-go/client"
	"github.com/target365/sdk-for-go/config"
	"github.com/target365/sdk-for-go/logging"
	"github.com/target365/sdk-for-go/metrics"
)

var configPath string

// AddCommands adds all the subcommands to the root command.
func AddCommands(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (TARGET365_* environment variables override it)")

	root.AddCommand(keygenCmd)
	root.AddCommand(signCmd)
	root.AddCommand(verifyCmd)
	root.AddCommand(pingCmd)
	root.AddCommand(publicKeysCmd)
	root.AddCommand(listenCmd)
	root.AddCommand(configCmd)
	root.AddCommand(smsPartsCmd)
}

// loadConfig reads the configuration selected by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// newClient builds an API client from cfg. m may be nil.
func newClient(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*client.Client, error) {
	privateKey, err := cfg.PrivateKeyText()
	if err != nil {
		return nil, err
	}

	c, err := client.New(client.Config{
		BaseURL:     cfg.API.BaseURL,
		KeyName:     cfg.API.KeyName,
		PrivateKey:  privateKey,
		Timeout:     cfg.API.Timeout,
		Window:      cfg.Window(),
		KeyCacheTTL: cfg.Auth.KeyCacheTTL,
	}, client.WithLogger(logger), client.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return c, nil
}

// setup loads config, logger and client for commands that call the API.
func setup() (*config.Config, *zap.Logger, *client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := newClient(cfg, logger, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, c, nil
}
