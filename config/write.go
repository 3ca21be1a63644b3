package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML layout. Durations are written in
// time.ParseDuration form so Load reads them back unchanged.
type fileConfig struct {
	API struct {
		BaseURL        string `yaml:"baseUrl"`
		KeyName        string `yaml:"keyName"`
		PrivateKeyFile string `yaml:"privateKeyFile,omitempty"`
		PrivateKey     string `yaml:"privateKey,omitempty"`
		Timeout        string `yaml:"timeout"`
	} `yaml:"api"`

	Auth struct {
		MaxPastDrift   string `yaml:"maxPastDrift"`
		MaxFutureDrift string `yaml:"maxFutureDrift"`
		KeyCacheTTL    string `yaml:"keyCacheTtl"`
	} `yaml:"auth"`

	Log struct {
		Level      string `yaml:"level"`
		Encoding   string `yaml:"encoding"`
		OutputPath string `yaml:"outputPath"`
	} `yaml:"log"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Address string `yaml:"address"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	Listen struct {
		Address string `yaml:"address"`
		Path    string `yaml:"path"`
	} `yaml:"listen"`
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var f fileConfig

	f.API.BaseURL = cfg.API.BaseURL
	f.API.KeyName = cfg.API.KeyName
	f.API.PrivateKeyFile = cfg.API.PrivateKeyFile
	f.API.PrivateKey = cfg.API.PrivateKey
	f.API.Timeout = cfg.API.Timeout.String()

	f.Auth.MaxPastDrift = cfg.Auth.MaxPastDrift.String()
	f.Auth.MaxFutureDrift = cfg.Auth.MaxFutureDrift.String()
	f.Auth.KeyCacheTTL = cfg.Auth.KeyCacheTTL.String()

	f.Log.Level = cfg.Log.Level
	f.Log.Encoding = cfg.Log.Encoding
	f.Log.OutputPath = cfg.Log.OutputPath

	f.Metrics.Enabled = cfg.Metrics.Enabled
	f.Metrics.Address = cfg.Metrics.Address
	f.Metrics.Path = cfg.Metrics.Path

	f.Listen.Address = cfg.Listen.Address
	f.Listen.Path = cfg.Listen.Path

	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return data, nil
}

// Write encodes cfg as YAML and writes it to path with owner-only
// permissions, since the file may hold a private key.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
