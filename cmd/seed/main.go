// Command seed creates the database, applies migrations and inserts the
// default categories without starting the server. Running it again is safe.
package main

import (
	"context"
	"log"

	"finance-tracker/pkg/config"
	"finance-tracker/pkg/logger"
	"finance-tracker/pkg/sqlite"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	storageLogger := logger.Named(logger.ComponentStorage)

	// Connect to database
	ctx := context.Background()
	db, err := sqlite.Open(ctx, &cfg.Database, storageLogger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Starting database seeding...")

	if err := sqlite.Initialize(ctx, db, &cfg.Database, storageLogger); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	logger.Info("Database seeding completed successfully!", zap.String("path", cfg.Database.Path))
}
