package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/target365/sdk-for-go/config"
)

func TestNew(t *testing.T) {
	t.Run("levels", func(t *testing.T) {
		tests := map[string]zapcore.Level{
			"debug":   zap.DebugLevel,
			"info":    zap.InfoLevel,
			"warn":    zap.WarnLevel,
			"error":   zap.ErrorLevel,
			"unknown": zap.InfoLevel,
		}

		for name, want := range tests {
			t.Run(name, func(t *testing.T) {
				logger, err := New(config.LogConfig{Level: name, OutputPath: filepath.Join(t.TempDir(), "log")})
				require.NoError(t, err)

				assert.True(t, logger.Core().Enabled(want))
				if want > zap.DebugLevel {
					assert.False(t, logger.Core().Enabled(want-1))
				}
			})
		}
	})

	t.Run("writes json to output path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")

		logger, err := New(config.LogConfig{Level: "info", Encoding: "json", OutputPath: path})
		require.NoError(t, err)

		logger.Info("signed request", zap.String("keyName", "MyKey"))
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		line := strings.TrimSpace(string(data))
		assert.Contains(t, line, `"msg":"signed request"`)
		assert.Contains(t, line, `"keyName":"MyKey"`)
		assert.Contains(t, line, `"timestamp":`)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := New(config.LogConfig{Encoding: "xml"})
		assert.Error(t, err)
	})
}
