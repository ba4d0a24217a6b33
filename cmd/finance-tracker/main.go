package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/api"
	"finance-tracker/internal/api/handlers"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/logger"
	"finance-tracker/pkg/sqlite"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: categories, transactions and period analytics.

// @host localhost:8000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finance tracker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	storageLogger := logger.Named(logger.ComponentStorage)
	db, err := sqlite.Open(ctx, &cfg.Database, storageLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := sqlite.Initialize(ctx, db, &cfg.Database, storageLogger); err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	repoLogger := logger.Named(logger.ComponentRepository)
	categoryRepo := repository.NewCategoryRepository(db, repoLogger)
	txRepo := repository.NewTransactionRepository(db, repoLogger)
	analyticsRepo := repository.NewAnalyticsRepository(db, repoLogger)
	settingsRepo := repository.NewSettingsRepository(db, repoLogger)

	// Initialize JWT manager
	if cfg.Auth.TokenSecret == "" {
		appLogger.Warn("AUTH_TOKEN_SECRET is not set, sessions will not survive a restart")
	}
	jwtManager, err := auth.NewJWTManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		appLogger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(settingsRepo, jwtManager, logger.Named(logger.ComponentAuth))
	financeService := service.NewFinanceService(categoryRepo, txRepo, analyticsRepo, logger.Named(logger.ComponentFinance))

	// Initialize handlers
	httpLogger := logger.Named(logger.ComponentHTTP)
	validator := handlers.NewRequestValidator()
	app := api.SetupRouter(api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, httpLogger),
		Categories:   handlers.NewCategoryHandler(financeService, validator, httpLogger),
		Transactions: handlers.NewTransactionHandler(financeService, validator, httpLogger),
		Analytics:    handlers.NewAnalyticsHandler(financeService, validator, httpLogger),
	}, jwtManager, &cfg.Server, httpLogger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		return app.Listen(addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}
