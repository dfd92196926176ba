// cmd/server/boot.go
package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/database"
	"github.com/mittirang/mittirang-backend/internal/services"
)

// boot loads configuration, sets up logging and opens a migrated database.
func boot() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogging(cfg)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return cfg, db, nil
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	authService := services.NewAuthService(db, cfg)
	return database.SeedInitialData(db, func() error {
		return authService.EnsureDefaultAdmin(ctx)
	})
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch {
	case cfg.Log.Format == "json", cfg.Log.Format == "" && cfg.IsProduction():
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
