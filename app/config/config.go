// Package config loads runtime configuration from an optional .env file and
// the process environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds the knobs for the HTTP server, the database and logging.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DBDriver           string
	DBDSN              string
	PostgresDriverName string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBAutoMigrate      bool

	LogMode string

	DefaultPageLimit int
	MaxPageLimit     int
}

func defaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_DSN", "")
	v.SetDefault("POSTGRES_DRIVER_NAME", "pgx")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("DEFAULT_PAGE_LIMIT", 10)
	v.SetDefault("MAX_PAGE_LIMIT", 100)
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:              v.GetString("DB_DSN"),
		PostgresDriverName: v.GetString("POSTGRES_DRIVER_NAME"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBAutoMigrate:      v.GetBool("DB_AUTO_MIGRATE"),
		LogMode:            v.GetString("LOG_MODE"),
		DefaultPageLimit:   v.GetInt("DEFAULT_PAGE_LIMIT"),
		MaxPageLimit:       v.GetInt("MAX_PAGE_LIMIT"),
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverMySQL:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for driver %q", cfg.DBDriver)
		}
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = "file:catalog.db"
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.PostgresDriverName {
	case "pgx", "postgres":
	default:
		return nil, fmt.Errorf("unsupported POSTGRES_DRIVER_NAME %q", cfg.PostgresDriverName)
	}

	if cfg.DefaultPageLimit < 1 {
		cfg.DefaultPageLimit = 10
	}
	if cfg.MaxPageLimit < cfg.DefaultPageLimit {
		cfg.MaxPageLimit = cfg.DefaultPageLimit
	}
	return cfg, nil
}
