package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/logging"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     dbPath,
		LogLevel: "silent",
	}, logging.Nop())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase_MigratesAndSeeds(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, model := range Models() {
		assert.True(t, db.DB.Migrator().HasTable(model), "%T", model)
	}

	var settings entities.SiteSettings
	require.NoError(t, db.DB.First(&settings, entities.SiteSettingsID).Error)
	assert.Equal(t, "FULLSCO", settings.SiteName)
	assert.True(t, settings.RTLDirection)
	assert.False(t, settings.EnableDarkMode)
	assert.Equal(t, config.DriverSQLite, db.Driver())
}

func TestNewDatabase_SeedIsIdempotent(t *testing.T) {
	dbPath := "./test_seed_twice.db"
	defer os.Remove(dbPath)
	cfg := config.Database{Driver: config.DriverSQLite, Path: dbPath, LogLevel: "silent"}

	first, err := NewDatabase(cfg, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, first.DB.Model(&entities.SiteSettings{}).
		Where("id = ?", entities.SiteSettingsID).
		Update("site_name", "Renamed").Error)
	require.NoError(t, first.Close())

	second, err := NewDatabase(cfg, logging.Nop())
	require.NoError(t, err)
	defer second.Close()

	var count int64
	second.DB.Model(&entities.SiteSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var settings entities.SiteSettings
	require.NoError(t, second.DB.First(&settings).Error)
	assert.Equal(t, "Renamed", settings.SiteName)
}

func TestDatabase_Ping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, db.Ping(context.Background()))
}

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Database
		wantErr bool
	}{
		{"sqlite", config.Database{Driver: config.DriverSQLite, Path: "./x.db"}, false},
		{"sqlite without path", config.Database{Driver: config.DriverSQLite}, true},
		{"postgres", config.Database{Driver: config.DriverPostgres, DSN: "postgres://u:p@localhost/db"}, false},
		{"postgres without dsn", config.Database{Driver: config.DriverPostgres}, true},
		{"unknown driver", config.Database{Driver: "oracle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dialectorFor(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "./a.db?_busy_timeout=5000", sqliteDSN("./a.db"))
	assert.Equal(t, "./a.db?mode=ro", sqliteDSN("./a.db?mode=ro"))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
}

func TestGormLogLevel(t *testing.T) {
	assert.EqualValues(t, 1, gormLogLevel("silent"))
	assert.EqualValues(t, 2, gormLogLevel("error"))
	assert.EqualValues(t, 3, gormLogLevel("warn"))
	assert.EqualValues(t, 3, gormLogLevel(""))
	assert.EqualValues(t, 4, gormLogLevel("INFO"))
}
