// Package database opens the catalog's gorm handle, migrates the schema and
// provides the unit-of-work primitive every write path runs in.
package database

import (
	"fmt"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/config"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database.
func Open(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pgCfg := postgres.Config{DSN: cfg.DBDSN}
		// An empty DriverName makes the dialector use pgx directly.
		if cfg.PostgresDriverName == "postgres" {
			pgCfg.DriverName = "postgres"
		}
		return postgres.New(pgCfg), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DBDSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBDSN), nil
	}
	return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
}

// Migrate creates or updates every catalog table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Brand{},
		&models.Category{},
		&models.Size{},
		&models.EducationLevel{},
		&models.TargetAudience{},
		&models.Product{},
		&models.ProductGroup{},
		&models.PendingRestock{},
	)
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...))
}

// NewGormLogger routes gorm's slow-query and error output into the zap logger.
func NewGormLogger(log *logger.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: log.With("component", "gorm")}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
