package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/logging"
)

// Database owns the connection pool. It is opened once on startup and closed
// on shutdown by the entrypoint.
type Database struct {
	DB     *gorm.DB
	driver config.DatabaseDriver
}

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Category{},
		&entities.Country{},
		&entities.Level{},
		&entities.Scholarship{},
		&entities.Post{},
		&entities.Menu{},
		&entities.MenuItem{},
		&entities.Media{},
		&entities.SeoSetting{},
		&entities.SiteSettings{},
		&entities.Course{},
		&entities.Section{},
		&entities.Lesson{},
		&entities.Enrollment{},
		&entities.LessonProgress{},
		&entities.Certificate{},
		&entities.AuditEvent{},
	}
}

func NewDatabase(cfg config.Database, log *logging.Logger) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.With("gorm"), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db, driver: cfg.Driver}

	if err := database.seedSiteSettings(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed site settings: %w", err)
	}

	log.Infof("Database initialized (%s)", cfg.Driver)

	return database, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path == "" {
			return nil, errors.New("database path is required for sqlite")
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("DATABASE_URL is required for postgres")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN adds a busy timeout so concurrent writers wait instead of failing
// immediately with SQLITE_BUSY.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") || path == ":memory:" {
		return path
	}
	return path + "?_busy_timeout=5000"
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (d *Database) Driver() config.DatabaseDriver {
	return d.driver
}

// Ping checks that the database is reachable. Used by the health endpoint.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedSiteSettings() error {
	var count int64
	if err := d.DB.Model(&entities.SiteSettings{}).Where("id = ?", entities.SiteSettingsID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := entities.DefaultSiteSettings()
	return d.DB.Create(&defaults).Error
}
