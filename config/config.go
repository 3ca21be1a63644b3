// Package config loads SDK and CLI configuration from a YAML file with
// TARGET365_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/target365/sdk-for-go/auth"
)

// EnvPrefix prefixes environment overrides, e.g. TARGET365_API_KEYNAME.
const EnvPrefix = "TARGET365"

// Defaults.
const (
	DefaultBaseURL        = "https://shared.target365.io/"
	DefaultTimeout        = 60 * time.Second
	DefaultMaxPastDrift   = 5 * time.Minute
	DefaultMaxFutureDrift = 0
	DefaultKeyCacheTTL    = time.Hour
	DefaultMetricsAddress = ":9365"
	DefaultMetricsPath    = "/metrics"
	DefaultListenAddress  = ":8365"
	DefaultListenPath     = "/callbacks/"
)

// Config is the complete configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Listen  ListenConfig  `mapstructure:"listen"`
}

// APIConfig describes the Target365 endpoint and the client's key.
type APIConfig struct {
	BaseURL        string        `mapstructure:"baseUrl"`
	KeyName        string        `mapstructure:"keyName"`
	PrivateKeyFile string        `mapstructure:"privateKeyFile"`
	PrivateKey     string        `mapstructure:"privateKey"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// AuthConfig is the replay window for inbound headers and the public key
// cache lifetime. At least one drift limit must be positive.
type AuthConfig struct {
	MaxPastDrift   time.Duration `mapstructure:"maxPastDrift"`
	MaxFutureDrift time.Duration `mapstructure:"maxFutureDrift"`
	KeyCacheTTL    time.Duration `mapstructure:"keyCacheTtl"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Encoding   string `mapstructure:"encoding"`
	OutputPath string `mapstructure:"outputPath"`
}

// MetricsConfig for the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// ListenConfig for the callback receiver.
type ListenConfig struct {
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// Window returns the replay window configured for inbound verification.
func (c *Config) Window() auth.Window {
	return auth.Window{Past: c.Auth.MaxPastDrift, Future: c.Auth.MaxFutureDrift}
}

// PrivateKeyText returns the inline private key, or the contents of
// PrivateKeyFile when no inline key is set.
func (c *Config) PrivateKeyText() (string, error) {
	if c.API.PrivateKey != "" {
		return c.API.PrivateKey, nil
	}

	if c.API.PrivateKeyFile == "" {
		return "", errors.New("no private key configured")
	}

	data, err := os.ReadFile(c.API.PrivateKeyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read private key: %w", err)
	}

	return string(data), nil
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Auth: AuthConfig{
			MaxPastDrift:   DefaultMaxPastDrift,
			MaxFutureDrift: DefaultMaxFutureDrift,
			KeyCacheTTL:    DefaultKeyCacheTTL,
		},
		Log: LogConfig{
			Level:      "info",
			Encoding:   "json",
			OutputPath: "stderr",
		},
		Metrics: MetricsConfig{
			Address: DefaultMetricsAddress,
			Path:    DefaultMetricsPath,
		},
		Listen: ListenConfig{
			Address: DefaultListenAddress,
			Path:    DefaultListenPath,
		},
	}
}

// Load reads configuration using Viper. An empty configPath skips the file
// and uses defaults plus environment overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so environment overrides apply even when
// the file omits them.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("api.baseUrl", d.API.BaseURL)
	v.SetDefault("api.keyName", "")
	v.SetDefault("api.privateKeyFile", "")
	v.SetDefault("api.privateKey", "")
	v.SetDefault("api.timeout", d.API.Timeout)

	v.SetDefault("auth.maxPastDrift", d.Auth.MaxPastDrift)
	v.SetDefault("auth.maxFutureDrift", d.Auth.MaxFutureDrift)
	v.SetDefault("auth.keyCacheTtl", d.Auth.KeyCacheTTL)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("log.outputPath", d.Log.OutputPath)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.address", d.Metrics.Address)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("listen.address", d.Listen.Address)
	v.SetDefault("listen.path", d.Listen.Path)
}

// validate ensures configuration is valid.
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.baseUrl must be an absolute URL, got %q", cfg.API.BaseURL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if cfg.Auth.MaxPastDrift < 0 || cfg.Auth.MaxFutureDrift < 0 {
		return fmt.Errorf("auth drift limits must not be negative")
	}

	// A zero auth.Window means "use the default" to client and auth callers.
	if cfg.Auth.MaxPastDrift == 0 && cfg.Auth.MaxFutureDrift == 0 {
		return fmt.Errorf("auth.maxPastDrift and auth.maxFutureDrift must not both be zero")
	}

	if cfg.Auth.KeyCacheTTL < 0 {
		return fmt.Errorf("auth.keyCacheTtl must not be negative")
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	switch cfg.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("log.encoding must be json or console")
	}

	if !strings.HasPrefix(cfg.Listen.Path, "/") {
		return fmt.Errorf("listen.path must start with /")
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}

	return nil
}
