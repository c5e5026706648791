package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstage/mockstage/pkg/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mockstage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, models.SensitivityMedium, cfg.Proctor.Sensitivity)
		assert.True(t, cfg.Interview.Adaptive())
		assert.False(t, cfg.Database.Enabled)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
  shutdown_timeout: 30s
interview:
  adaptive_difficulty: false
proctor:
  sensitivity: high
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout.Std())
		assert.False(t, cfg.Interview.Adaptive())
		assert.Equal(t, models.SensitivityHigh, cfg.Proctor.Sensitivity)
		// Unset sections keep their defaults.
		assert.Equal(t, 65.0, cfg.Interview.WeakScoreThreshold)
	})

	t.Run("environment variables expand", func(t *testing.T) {
		t.Setenv("MOCKSTAGE_DB_PASSWORD", "sup3r$ecret")
		path := writeConfig(t, `
database:
  enabled: true
  password: "{{.MOCKSTAGE_DB_PASSWORD}}"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sup3r$ecret", cfg.Database.Password)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [not a mapping")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "port out of range",
			mutate: func(c *Config) { c.Server.Port = 0 },
			errMsg: "server.port",
		},
		{
			name:   "weak threshold above strong",
			mutate: func(c *Config) { c.Interview.WeakScoreThreshold = 90 },
			errMsg: "weak_score_threshold",
		},
		{
			name:   "adjust thresholds inverted",
			mutate: func(c *Config) { c.Interview.AdjustDownThreshold = 90 },
			errMsg: "adjust_down_threshold",
		},
		{
			name:   "unknown sensitivity",
			mutate: func(c *Config) { c.Proctor.Sensitivity = "paranoid" },
			errMsg: "proctor.sensitivity",
		},
		{
			name: "enabled database without host",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.Host = ""
			},
			errMsg: "database.host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("defaults validate", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})
}
