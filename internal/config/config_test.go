package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaboard/rotaboard/internal/config"
)

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ROTA_STORAGE_TYPE", "memory")

		cfg, err := config.LoadServerConfig()
		require.NoError(t, err)

		assert.Equal(t, "Africa/Johannesburg", cfg.Schedule.Timezone)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("postgres requires a DSN", func(t *testing.T) {
		t.Setenv("ROTA_STORAGE_TYPE", "postgres")
		t.Setenv("ROTA_DB_DSN", "")

		_, err := config.LoadServerConfig()
		assert.ErrorIs(t, err, config.ErrDSNRequired)
	})

	t.Run("rejects unknown storage type", func(t *testing.T) {
		t.Setenv("ROTA_STORAGE_TYPE", "oracle")

		_, err := config.LoadServerConfig()
		assert.Error(t, err)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ROTA_STORAGE_TYPE", "sqlite")
		t.Setenv("ROTA_SQLITE_PATH", "/tmp/rota-test.db")
		t.Setenv("ROTA_HTTP_PORT", "9090")
		t.Setenv("ROTA_TIMEZONE", "Europe/London")

		cfg, err := config.LoadServerConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.HTTP.Port)
		assert.Equal(t, "Europe/London", cfg.Schedule.Timezone)
		assert.Equal(t, "/tmp/rota-test.db", cfg.Storage.SQLitePath)
	})
}

func TestLoadWorkerConfig(t *testing.T) {
	t.Setenv("ROTA_STORAGE_TYPE", "memory")
	t.Setenv("ROTA_SNAPSHOT_INTERVAL", "15m")

	cfg, err := config.LoadWorkerConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Interval)
	assert.Equal(t, 30*time.Second, cfg.OperationTimeout)
}
