package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "app_secret: secret\ndb:\n  driver: memory\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.AppSecret)
		assert.Equal(t, DriverMemory, cfg.DB.Driver)
		assert.Equal(t, "8000", cfg.Server.Port)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 3, cfg.Workers.Count)
		assert.False(t, cfg.SMTP.Enabled)
	})
	t.Run("repo config", func(t *testing.T) {
		cfg, err := Load(filepath.Join("..", "..", "config", "local.yml"))
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, cfg.DB.Driver)
		assert.True(t, cfg.Limiter.Enabled)
	})
	t.Run("postgres without dsn", func(t *testing.T) {
		_, err := Load(writeConfig(t, "app_secret: secret\ndb:\n  driver: postgres\n"))
		assert.ErrorContains(t, err, "db.dsn")
	})
	t.Run("unknown driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, "app_secret: secret\ndb:\n  driver: sqlite\n"))
		assert.ErrorContains(t, err, "unknown db driver")
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
}
