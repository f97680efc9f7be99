package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ragdocs/docs"
	"ragdocs/internal/config"
	handlers "ragdocs/internal/http/handler"
	"ragdocs/internal/http/middleware"
	"ragdocs/internal/llm"
	"ragdocs/internal/logger"
	"ragdocs/internal/otel"
	"ragdocs/internal/search"
	"ragdocs/internal/service"
	"ragdocs/internal/storage"
)

// @title RAG Documents API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Collaborators are built once and shared read-only by all requests
	objStore, err := storage.New(cfg.Storage)
	if err != nil {
		zl.Fatal("failed to initialize object storage", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	searcher, err := search.NewAzureSearch(cfg.Search)
	if err != nil {
		zl.Fatal("failed to initialize search client", zap.Error(err))
	}
	completer, err := llm.NewAzureOpenAI(cfg.OpenAI)
	if err != nil {
		zl.Fatal("failed to initialize language model client", zap.Error(err))
	}

	docSvc := service.NewDocumentService(objStore)
	promptSvc := service.NewPromptService(searcher, completer)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		zl.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.MaxUploadSize,
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// Access log and request-scoped logger
	app.Use(middleware.Logger(zl))
	app.Use(metrics.Handler())

	app.Get("/metrics", middleware.MetricsHandler(reg))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, docSvc, promptSvc)

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

	addr := cfg.Addr()
	serverErr := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", addr), zap.String("storage_driver", cfg.Storage.Driver))
		serverErr <- app.Listen(addr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			zl.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zl.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zl.Error("tracer shutdown failed", zap.Error(err))
	}
	zl.Info("server stopped")
}
