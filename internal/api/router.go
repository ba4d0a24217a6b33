package api

import (
	"errors"
	"os"
	"path/filepath"

	"finance-tracker/docs"
	"finance-tracker/internal/api/handlers"
	"finance-tracker/internal/dto"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Categories   *handlers.CategoryHandler
	Transactions *handlers.TransactionHandler
	Analytics    *handlers.AnalyticsHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	serverCfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "finance-tracker",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Detail: fe.Message})
			}
			appLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Detail: "internal server error",
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// Importing docs registers the OpenAPI document with swag through init().
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public routes
	authRoutes := api.Group("/auth")
	authRoutes.Get("/status", h.Auth.Status)
	authRoutes.Post("/setup", h.Auth.Setup)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/verify", h.Auth.Verify)
	api.Get("/periods", h.Analytics.Periods)

	// Protected routes
	requireAuth := middleware.AuthMiddleware(jwtManager, appLogger)

	authRoutes.Post("/change-password", requireAuth, h.Auth.ChangePassword)

	categories := api.Group("/categories", requireAuth)
	categories.Get("", h.Categories.ListCategories)
	categories.Post("", h.Categories.CreateCategory)
	categories.Delete("/:id", h.Categories.DeactivateCategory)

	transactions := api.Group("/transactions", requireAuth)
	transactions.Get("", h.Transactions.ListTransactions)
	transactions.Post("", h.Transactions.CreateTransaction)
	transactions.Get("/:id", h.Transactions.GetTransaction)
	transactions.Put("/:id", h.Transactions.UpdateTransaction)
	transactions.Delete("/:id", h.Transactions.DeleteTransaction)

	analytics := api.Group("/analytics", requireAuth)
	analytics.Post("", h.Analytics.Analytics)
	analytics.Post("/savings", h.Analytics.SavingsAnalytics)

	// Static frontend
	if staticPath := findStaticPath(serverCfg.StaticDir, appLogger); staticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", staticPath))
		app.Static("/", staticPath, fiber.Static{Index: "index.html"})
	} else {
		appLogger.Warn("Frontend directory not found, static files will not be served",
			zap.String("static_dir", serverCfg.StaticDir))
	}

	return app
}

// findStaticPath returns the first candidate directory holding index.html,
// starting with the configured one.
func findStaticPath(configured string, logger *zap.Logger) string {
	paths := []string{
		configured,
		"./frontend",
		"../frontend",
		"../../frontend",
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried static path", zap.String("path", path))
	}

	return ""
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
