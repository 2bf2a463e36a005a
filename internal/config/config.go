package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Report   ReportConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN                string
	MaxConns           int32
	MinConns           int32
	RunMigrations      bool
	ConnMaxIdleSec     int32
	ConnMaxLifeSec     int32
	StatementTimeoutMs int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	EventsChannel string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. An empty JWTSecret disables
// bearer verification on the API.
type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
}

// ReportConfig controls report bucketing.
type ReportConfig struct {
	Timezone string
}

var defaults = map[string]any{
	"APP_NAME":                       "helpdesk-service",
	"APP_ENV":                        "development",
	"APP_HOST":                       "0.0.0.0",
	"APP_PORT":                       "8080",
	"APP_VERSION":                    "dev",
	"HTTP_REQUEST_TIMEOUT_SECONDS":   30,
	"POSTGRES_DSN":                   "",
	"POSTGRES_MAX_CONNS":             10,
	"POSTGRES_MIN_CONNS":             2,
	"POSTGRES_RUN_MIGRATIONS":        true,
	"POSTGRES_CONN_MAX_IDLE_SECONDS": 30,
	"POSTGRES_CONN_MAX_LIFE_SECONDS": 300,
	"POSTGRES_STATEMENT_TIMEOUT_MS":  5000,
	"REDIS_ADDR":                     "127.0.0.1:6379",
	"REDIS_PASSWORD":                 "",
	"REDIS_DB":                       0,
	"REDIS_EVENTS_CHANNEL":           "helpdesk.events",
	"LOG_LEVEL":                      "info",
	"AUTH_JWT_SECRET":                "",
	"AUTH_BCRYPT_COST":               12,
	"REPORT_TIMEZONE":                "Europe/Moscow",
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:                  v.GetString("APP_NAME"),
			Env:                   v.GetString("APP_ENV"),
			Host:                  v.GetString("APP_HOST"),
			Port:                  v.GetString("APP_PORT"),
			Version:               v.GetString("APP_VERSION"),
			RequestTimeoutSeconds: v.GetInt("HTTP_REQUEST_TIMEOUT_SECONDS"),
		},
		Postgres: PostgresConfig{
			DSN:                v.GetString("POSTGRES_DSN"),
			MaxConns:           v.GetInt32("POSTGRES_MAX_CONNS"),
			MinConns:           v.GetInt32("POSTGRES_MIN_CONNS"),
			RunMigrations:      v.GetBool("POSTGRES_RUN_MIGRATIONS"),
			ConnMaxIdleSec:     v.GetInt32("POSTGRES_CONN_MAX_IDLE_SECONDS"),
			ConnMaxLifeSec:     v.GetInt32("POSTGRES_CONN_MAX_LIFE_SECONDS"),
			StatementTimeoutMs: v.GetInt("POSTGRES_STATEMENT_TIMEOUT_MS"),
		},
		Redis: RedisConfig{
			Addr:          v.GetString("REDIS_ADDR"),
			Password:      v.GetString("REDIS_PASSWORD"),
			DB:            v.GetInt("REDIS_DB"),
			EventsChannel: v.GetString("REDIS_EVENTS_CHANNEL"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("AUTH_JWT_SECRET"),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Report: ReportConfig{
			Timezone: v.GetString("REPORT_TIMEZONE"),
		},
	}

	if cfg.Postgres.MinConns > cfg.Postgres.MaxConns {
		return nil, fmt.Errorf("POSTGRES_MIN_CONNS (%d) exceeds POSTGRES_MAX_CONNS (%d)", cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
	}
	if _, err := cfg.Report.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// StatementTimeout returns the server-side statement timeout, zero when disabled.
func (p PostgresConfig) StatementTimeout() time.Duration {
	if p.StatementTimeoutMs <= 0 {
		return 0
	}
	return time.Duration(p.StatementTimeoutMs) * time.Millisecond
}

// Location resolves the report time zone.
func (r ReportConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", r.Timezone, err)
	}
	return loc, nil
}
