// Package config loads each service's immutable configuration from the
// environment. Every value has a development default and a plain
// environment override; an optional .env file is applied first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

type HTTPConfig struct {
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// DatabaseConfig names a database/sql driver ("sqlite", "postgres", "pgx"),
// the file path or DSN, and an optional directory of goose migrations that
// replaces the embedded schema.
type DatabaseConfig struct {
	Driver     string
	Path       string
	SchemaPath string
}

type JWTConfig struct {
	Secret     string `env:"JWT_SECRET" env-default:"dev-secret"`
	Algorithm  string `env:"JWT_ALGORITHM" env-default:"HS256"`
	TTLMinutes int    `env:"JWT_EXPIRES_MINUTES" env-default:"60"`
}

func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.TTLMinutes) * time.Minute
}

type AuthConfig struct {
	Port string `env:"PORT" env-default:"5002"`
	Log  LogConfig
	HTTP HTTPConfig
	JWT  JWTConfig

	DBDriver     string `env:"AUTH_DB_DRIVER" env-default:"sqlite"`
	DBPath       string `env:"AUTH_DB_PATH" env-default:"auth.db"`
	DBSchemaPath string `env:"AUTH_SCHEMA_PATH"`
}

func (c AuthConfig) Database() DatabaseConfig {
	return DatabaseConfig{Driver: c.DBDriver, Path: c.DBPath, SchemaPath: c.DBSchemaPath}
}

type BlogConfig struct {
	Port string `env:"PORT" env-default:"5001"`
	Log  LogConfig
	HTTP HTTPConfig

	DBDriver     string `env:"BLOG_DB_DRIVER" env-default:"sqlite"`
	DBPath       string `env:"BLOG_DB_PATH" env-default:"database.db"`
	DBSchemaPath string `env:"BLOG_SCHEMA_PATH"`
}

func (c BlogConfig) Database() DatabaseConfig {
	return DatabaseConfig{Driver: c.DBDriver, Path: c.DBPath, SchemaPath: c.DBSchemaPath}
}

type FrontendConfig struct {
	Port string `env:"PORT" env-default:"5000"`
	Log  LogConfig
	HTTP HTTPConfig

	BlogAPIBase string        `env:"BLOG_API_BASE" env-default:"http://localhost:5001/"`
	AuthAPIBase string        `env:"AUTH_API_BASE" env-default:"http://localhost:5002/"`
	SecretKey   string        `env:"SECRET_KEY" env-default:"dev-secret"`
	APITimeout  time.Duration `env:"API_TIMEOUT" env-default:"5s"`
}

func LoadAuth() (AuthConfig, error) {
	var cfg AuthConfig
	if err := load(&cfg); err != nil {
		return AuthConfig{}, err
	}
	if cfg.JWT.Secret == "" {
		return AuthConfig{}, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.JWT.TTLMinutes <= 0 {
		return AuthConfig{}, fmt.Errorf("JWT_EXPIRES_MINUTES must be positive, got %d", cfg.JWT.TTLMinutes)
	}
	return cfg, nil
}

func LoadBlog() (BlogConfig, error) {
	var cfg BlogConfig
	if err := load(&cfg); err != nil {
		return BlogConfig{}, err
	}
	return cfg, nil
}

func LoadFrontend() (FrontendConfig, error) {
	var cfg FrontendConfig
	if err := load(&cfg); err != nil {
		return FrontendConfig{}, err
	}
	if cfg.APITimeout <= 0 {
		return FrontendConfig{}, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	return cfg, nil
}

func load(cfg any) error {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}
