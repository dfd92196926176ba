package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.AdminUser{}, &models.AuditLog{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: time.Hour,
			CookieName:     "admin-token",
		},
		Upload: config.UploadConfig{
			Dir:         t.TempDir(),
			PublicURL:   "http://localhost:8080/uploads",
			MaxFileSize: 1024,
		},
		Admin: config.AdminConfig{
			DefaultEmail:    "admin@mittirang.com",
			DefaultPassword: "admin123",
			SeedDefault:     true,
		},
	}
}

func ptr(f float64) *float64 { return &f }
