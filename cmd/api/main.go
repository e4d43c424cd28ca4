package main

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderapi/docs"
	"orderapi/internal/cache"
	"orderapi/internal/config"
	"orderapi/internal/database"
	"orderapi/internal/database/migration"
	handlers "orderapi/internal/http/handler"
	"orderapi/internal/http/middleware"
	"orderapi/internal/logger"
	"orderapi/internal/otel"
	"orderapi/internal/repository/postgres"
	"orderapi/internal/service"
	"orderapi/internal/storage"
)

// @title Transport Order API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger.Init(cfg.Env)

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("tracing_init")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("tracing_shutdown")
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database_connect")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		logger.Fatal().Err(err).Msg("database_migrate")
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		logger.Fatal().Err(err).Msg("object_storage_init")
	}

	// Conversion cache is optional; an empty REDIS_URL disables it and every
	// document is converted on demand.
	var convCache cache.ConversionCache
	if cfg.Redis.URL != "" {
		convCache, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis_init")
		}
		logger.Info().Msg("conversion_cache_enabled")
	} else {
		logger.Info().Msg("conversion_cache_disabled")
	}

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	orderRepo := postgres.NewOrderPostgres(db)
	ingestSvc := service.NewIngestService(objStore, docRepo, orderRepo, convCache, cfg.Extract)
	orderSvc := service.NewOrderService(orderRepo, ingestSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Extract.MaxUploadBytes()) + 1024*1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal().Err(err).Msg("prometheus_init")
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, ingestSvc, orderSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("server_listen")
	}
}
