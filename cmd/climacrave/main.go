package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/climacrave/internal/api/http"
	"github.com/i474232898/climacrave/internal/config"
	"github.com/i474232898/climacrave/internal/food"
	"github.com/i474232898/climacrave/internal/logger"
	"github.com/i474232898/climacrave/internal/metrics"
	"github.com/i474232898/climacrave/internal/recommend"
	"github.com/i474232898/climacrave/internal/scheduler"
	"github.com/i474232898/climacrave/internal/store"
	"github.com/i474232898/climacrave/internal/weather"
	"github.com/i474232898/climacrave/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.OpenWeatherAPIKey == "" {
		zlog.Warn("OPENWEATHER_API_KEY is not set; weather requests will be rejected")
	}

	// Static catalog, loaded once.
	catalog, err := food.Load(cfg.CatalogPath)
	if err != nil {
		zlog.Fatal("failed to load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	metrics.CatalogItems.Set(float64(catalog.Len()))
	zlog.Info("catalog loaded", zap.Int("items", catalog.Len()))

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	client := openweather.New(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey)
	service := weather.NewService(client, store.NewMemoryStore(), zlog)
	engine := recommend.New(recommend.WithLimit(cfg.RecommendLimit))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Startup fetch runs in the background; /weather/current reports loading until it ends.
	go func() {
		bootCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
		defer cancel()
		if _, err := service.Bootstrap(bootCtx, cfg.DefaultCoordinates, cfg.DefaultCity); err != nil {
			zlog.Warn("initial weather fetch failed", zap.Error(err))
		}
	}()

	// Scheduler that periodically refreshes the current location.
	sched := scheduler.New(cfg.RefreshInterval, service, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "climacrave",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "climacrave",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather: service,
		Catalog: catalog,
		Engine:  engine,
		Logger:  zlog,
	})

	go func() {
		zlog.Info("http server listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("fiber server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
