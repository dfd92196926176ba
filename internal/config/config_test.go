package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "admin-token", cfg.JWT.CookieName)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, "admin@mittirang.com", cfg.Admin.DefaultEmail)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("JWT_ACCESS_TTL", "24")
	t.Setenv("REDIS_TTL", "90s")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://mittirang.com, https://admin.mittirang.com,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://mittirang.com", "https://admin.mittirang.com"}, cfg.Frontend.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "production",
			Database:    DatabaseConfig{Driver: "postgres", Password: "secret"},
			JWT:         JWTConfig{SecretKey: "prod-secret"},
			Admin:       AdminConfig{DefaultPassword: "long-and-random", SeedDefault: true},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.JWT.SecretKey = defaultJWTSecret
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Admin.DefaultPassword = defaultAdminPassword
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Environment = "development"
	cfg.JWT.SecretKey = defaultJWTSecret
	assert.NoError(t, cfg.Validate())
}

func TestDSN_Postgres(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Database: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", d.DSN())
}
