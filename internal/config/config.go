// Package config loads the service configuration from the environment.
//
// Variables are read with the NEWSAPI_ prefix, a double underscore marks
// nesting: NEWSAPI_DATABASE__MAX_CONNS -> database.max_conns. A `.env` file in
// the working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "NEWSAPI_"

type Config struct {
	Env      string         `koanf:"env" validate:"required,oneof=local test production"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Addr         string `koanf:"addr" validate:"required"`
	DiagAddr     string `koanf:"diag_addr" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"gte=0"`
}

// DatabaseConfig pool sizes of zero keep the pgx defaults. MinConns may not
// exceed a non-zero MaxConns.
type DatabaseConfig struct {
	URL      string `koanf:"url" validate:"required"`
	MaxConns int32  `koanf:"max_conns" validate:"gte=0"`
	MinConns int32  `koanf:"min_conns" validate:"gte=0"`
}

func validateDatabaseConfig(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	if db.MaxConns > 0 && db.MinConns > db.MaxConns {
		sl.ReportError(db.MinConns, "MinConns", "MinConns", "ltefield", "MaxConns")
	}
}

type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used for every key the environment does
// not set.
func Default() *Config {
	return &Config{
		Env: "production",
		Server: ServerConfig{
			Addr:         ":3333",
			DiagAddr:     ":9999",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
		},
		Database: DatabaseConfig{
			MaxConns: 10,
			MinConns: 2,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads NEWSAPI_* variables on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", keyFromEnv), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	validate.RegisterStructValidation(validateDatabaseConfig, DatabaseConfig{})

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Env == "local"
}

func keyFromEnv(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
