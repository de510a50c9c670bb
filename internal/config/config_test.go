package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := NewConfig()

	assert.Equal(t, int32(5000), cfg.HTTP.Port)
	assert.Equal(t, DefaultAPIPrefix, cfg.HTTP.APIPrefix)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, AuthModeNone, cfg.Auth.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://fullsco@localhost/fullsco")
	t.Setenv("AUTH_MODE", "local")
	t.Setenv("AUTH_SESSION_LIFETIME", "2h")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("AUDIT_CLEANUP_SCHEDULE", "30 4 * * 0")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://fullsco@localhost/fullsco", cfg.Database.DSN)
	assert.Equal(t, AuthModeLocal, cfg.Auth.Mode)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionLifetime)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, "30 4 * * 0", cfg.Audit.CleanupSchedule)
}

func TestNewConfig_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HOST=127.0.0.1\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("HOST") })

	cfg := NewConfig()

	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	// Variables already in the environment win over the file.
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestNewConfig_UnreadableDotEnvIsReported(t *testing.T) {
	// A directory passes the existence check but cannot be read as a file.
	dir := t.TempDir()
	t.Setenv("ENV_FILE", dir)

	cfg := NewConfig()

	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], dir)
	assert.Equal(t, int32(5000), cfg.HTTP.Port)
}
