package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, DefaultPort)
	}
	if cfg.Auth.BcryptCost != DefaultBcryptCost {
		t.Errorf("Auth.BcryptCost = %d, want %d", cfg.Auth.BcryptCost, DefaultBcryptCost)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9090"
database:
  path: /tmp/blog.db
cache:
  type: redis
  redis_addr: cache:6379
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BLOG_SERVER__PORT", "7070")
	t.Setenv("BLOG_AUTH__BCRYPT_COST", "10")
	t.Setenv("BLOG_DATABASE__MIGRATIONS_DIR", "/srv/migrations")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want env override 7070", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/blog.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Database.Driver != DefaultDriver {
		t.Errorf("Database.Driver = %q, default lost", cfg.Database.Driver)
	}
	if cfg.Database.MigrationsDir != "/srv/migrations" {
		t.Errorf("Database.MigrationsDir = %q", cfg.Database.MigrationsDir)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("Auth.BcryptCost = %d, want 10", cfg.Auth.BcryptCost)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() of a missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = ""
	cfg.Database.Driver = "oracle"
	cfg.Cache.Type = "memcached"
	cfg.Auth.BcryptCost = 99

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	for _, want := range []string{"server.port", "database.driver", "cache.type", "auth.bcrypt_cost"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err, want)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
