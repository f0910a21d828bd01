package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported session stores.
const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

var (
	// ErrUnknownDriver is returned by Load when DB_DRIVER is not supported.
	ErrUnknownDriver = errors.New("unknown database driver")
	// ErrUnknownSessionStore is returned by Load when SESSION_STORE is not supported.
	ErrUnknownSessionStore = errors.New("unknown session store")
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"taskuser"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"taskpassword"`
	DBName     string `env:"DB_NAME" envDefault:"task_tracker"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"task_tracker.db"`

	SessionStore  string `env:"SESSION_STORE" envDefault:"cookie"`
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"default-secret-key-change-me"`

	GinMode       string `env:"GIN_MODE" envDefault:"debug"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	Debug         bool   `env:"APP_DEBUG" envDefault:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RedisAddress returns host:port of the session Redis.
func (c *Config) RedisAddress() string {
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DBDriver)
	}

	switch c.SessionStore {
	case SessionStoreCookie, SessionStoreRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, c.SessionStore)
	}

	return nil
}
