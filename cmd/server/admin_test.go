package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittirang/mittirang-backend/internal/config"
)

func TestAdminCreate(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("ADMIN_SEED_DEFAULT", "false")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"admin", "create", "--email", "Ops@Mittirang.com"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Created admin ops@mittirang.com")
	assert.Contains(t, out.String(), "Generated password: Mr-")

	rootCmd.SetArgs([]string{"admin", "create", "--email", "ops@mittirang.com", "--password", "Str0ng!Pass"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetFormatter(&logrus.TextFormatter{})
	defer logrus.SetLevel(logrus.InfoLevel)

	setupLogging(&config.Config{Environment: "production", Log: config.LogConfig{Level: "debug"}})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	setupLogging(&config.Config{Environment: "development", Log: config.LogConfig{Level: "nonsense"}})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}
