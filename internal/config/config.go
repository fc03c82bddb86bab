// Package config loads the service configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// `.env` file in the working directory. Every key has a default so the service
// starts with no configuration at all; the result is validated before use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the root configuration object.
type Config struct {
	App      AppConfig      `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	RabbitMQ RabbitMQConfig `mapstructure:",squash"`
}

// AppConfig holds HTTP and logging settings.
type AppConfig struct {
	Env         string `mapstructure:"APP_ENV" validate:"required"`
	Port        string `mapstructure:"APP_PORT" validate:"required"`
	LogLevel    string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	FrontendURL string `mapstructure:"FRONTEND_URL" validate:"required,http_url"`
}

// DatabaseConfig selects the store driver and its connection string.
type DatabaseConfig struct {
	Driver string `mapstructure:"DATABASE_DRIVER" validate:"required,oneof=postgres sqlite memory"`
	URL    string `mapstructure:"DATABASE_URL" validate:"required_unless=Driver memory"`
}

// RabbitMQConfig enables product event publishing when URL is set.
type RabbitMQConfig struct {
	URL   string `mapstructure:"RABBITMQ_URL"`
	Queue string `mapstructure:"RABBITMQ_QUEUE" validate:"required"`
}

// IsDevelopment reports whether the service runs in a local development environment.
func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Enabled reports whether a broker URL was configured.
func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// New returns a viper instance populated with defaults and bound to the environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.AutomaticEnv()
	return v
}

// Load reads `.env` when present, then builds and validates the configuration
// from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromViper(New())
}

// FromViper decodes and validates a configuration from an already prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.App.FrontendURL = strings.TrimSuffix(cfg.App.FrontendURL, "/")
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
