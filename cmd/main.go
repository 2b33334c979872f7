package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-availability/internal/app"
	"github.com/KasumiMercury/primind-availability/internal/config"
	"github.com/KasumiMercury/primind-availability/internal/infra/cache"
	"github.com/KasumiMercury/primind-availability/internal/infra/handler"
	"github.com/KasumiMercury/primind-availability/internal/infra/repository"
	"github.com/KasumiMercury/primind-availability/internal/observability/logging"
	"github.com/KasumiMercury/primind-availability/internal/observability/metrics"
	"github.com/KasumiMercury/primind-availability/internal/observability/middleware"
	"github.com/KasumiMercury/primind-availability/internal/observability/tracing"
)

const tracerName = "github.com/KasumiMercury/primind-availability"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.Log.Level)

	ctx := context.Background()

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.Tracing.ServiceVersion,
		Endpoint:       cfg.Tracing.Endpoint,
	})
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	db, err := initDatabase(cfg.Database, cfg.Log)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		slog.Error("failed to register http metrics", "error", err)
		os.Exit(1)
	}

	availabilityMetrics, err := metrics.NewAvailabilityMetrics(registry)
	if err != nil {
		slog.Error("failed to register availability metrics", "error", err)
		os.Exit(1)
	}

	publisher, err := initPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize publisher", "error", err)
		os.Exit(1)
	}

	prefRepo := initPreferenceRepository(ctx, cfg, repository.NewPreferenceRepository(db))
	eventRepo := repository.NewBusyEventRepository(db)

	opts := app.Options{
		DefaultTimezone:    cfg.Availability.DefaultTimezone,
		DefaultSlotMinutes: cfg.Availability.DefaultSlotMinutes,
		MaxWindowDays:      cfg.Availability.MaxWindowDays,
		FetchTimeout:       cfg.Availability.FetchTimeout,
		Publisher:          publisher,
		Metrics:            availabilityMetrics,
		Locations:          cache.NewLocationCache(cache.DefaultLocationCacheSize),
	}

	availabilityUseCase := app.NewAvailabilityUseCase(prefRepo, eventRepo, opts)

	availabilityHandler := handler.NewAvailabilityHandler(availabilityUseCase)

	router := setupRouter(availabilityHandler, registry, httpMetrics)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "address", cfg.Server.Address())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			slog.Warn("failed to close publisher", "error", err)
		}
	}

	if err := prefRepo.Close(); err != nil {
		slog.Warn("failed to close preference cache", "error", err)
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		slog.Warn("failed to shutdown tracer provider", "error", err)
	}

	slog.Info("server exited properly")
}

func initDatabase(cfg config.DatabaseConfig, logCfg config.LogConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(200*time.Millisecond, logCfg.Level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	availabilityHandler *handler.AvailabilityHandler,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:      []string{"/ping", "/metrics"},
		ModuleResolver: middleware.ModuleByRoute,
		TracerName:     tracerName,
		HTTPMetrics:    httpMetrics,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	availabilityHandler.RegisterRoutes(v1)

	return router
}
