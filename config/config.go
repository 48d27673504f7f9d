// Package config loads the service configuration from defaults, an optional
// YAML file and BLOG_ environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix marks environment overrides. Nested keys are joined with "__",
// e.g. BLOG_DATABASE__MIGRATIONS_DIR sets database.migrations_dir.
const EnvPrefix = "BLOG_"

// Default configuration values.
const (
	DefaultPort          = "8080"
	DefaultDriver        = "sqlite3"
	DefaultDatabasePath  = "./blog_api.db"
	DefaultMigrationsDir = "./database/migrations"
	DefaultCacheType     = "memory"
	DefaultRedisAddr     = "localhost:6379"
	DefaultBcryptCost    = 12
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Auth     AuthConfig     `koanf:"auth"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type DatabaseConfig struct {
	Driver        string `koanf:"driver"`
	Path          string `koanf:"path"`
	MigrationsDir string `koanf:"migrations_dir"`
}

// CacheConfig selects the read cache backend: "memory" or "redis".
type CacheConfig struct {
	Type          string `koanf:"type"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Database: DatabaseConfig{
			Driver:        DefaultDriver,
			Path:          DefaultDatabasePath,
			MigrationsDir: DefaultMigrationsDir,
		},
		Cache: CacheConfig{
			Type:      DefaultCacheType,
			RedisAddr: DefaultRedisAddr,
		},
		Auth: AuthConfig{BcryptCost: DefaultBcryptCost},
	}
}

// Load builds the configuration. path may be empty to skip the YAML file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Database.Driver != "sqlite3" {
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("cache.redis_addr is required for the redis cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.type %q is not supported", c.Cache.Type))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}
