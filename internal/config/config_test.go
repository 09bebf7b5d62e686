package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/config"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hwscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
probe_timeout: 5s
output: yaml
database: /var/lib/hwscore/history.db
retention_days: 30
purge_interval: 1h
api_secret: s3cret
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, config.OutputYAML, cfg.Output)
	assert.Equal(t, "/var/lib/hwscore/history.db", cfg.DatabasePath)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, time.Hour, cfg.PurgeInterval)
	assert.Equal(t, "s3cret", cfg.ApiSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, config.OutputJSON, cfg.Output)
	assert.Equal(t, "hwscore.db", cfg.DatabasePath)
	assert.Equal(t, ":9650", cfg.Listen)
	assert.Equal(t, ":9651", cfg.HTTPListen)
	assert.True(t, cfg.EnableSwagger)
	assert.Equal(t, 24*time.Hour, cfg.PurgeInterval)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HWSCORE_PROBE_TIMEOUT", "90s")
	t.Setenv("HWSCORE_CLIENT_SECRET", "grpc-s3cret")
	t.Setenv("HWSCORE_API_SECRET", "rest-k3y")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "grpc-s3cret", cfg.ClientSecret)
	assert.Equal(t, "rest-k3y", cfg.ApiSecret)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"log level", "log_level: loud\n", errors.ErrInvalidLogLevel},
		{"timeout", "probe_timeout: 0s\n", errors.ErrInvalidConfig},
		{"output", "output: xml\n", errors.ErrInvalidConfig},
		{"retention", "retention_days: -1\n", errors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), err.Error())
		})
	}
}
