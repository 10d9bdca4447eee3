package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hsgill/go-stubble-watch/internal/api"
	"github.com/hsgill/go-stubble-watch/internal/config"
	"github.com/hsgill/go-stubble-watch/internal/loader"
	"github.com/hsgill/go-stubble-watch/internal/logging"
	"github.com/hsgill/go-stubble-watch/internal/models"
	"github.com/hsgill/go-stubble-watch/internal/observability"
	"github.com/hsgill/go-stubble-watch/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "events_source", cfg.Data.EventsSource)

	metrics := observability.NewMetrics()

	var source loader.EventSource
	switch cfg.Data.EventsSource {
	case "sqlite":
		db, err := repository.NewSQLiteDB(cfg.DB.Path)
		if err != nil {
			logging.Fatalf("Failed to open event store: %v", err)
		}
		defer db.Close()
		source = func(ctx context.Context) ([]models.FireEvent, loader.Report, error) {
			events, err := db.ListEvents(ctx, repository.Filter{})
			if err != nil {
				return nil, loader.Report{}, err
			}
			return events, loader.Report{Rows: len(events), Loaded: len(events)}, nil
		}
	default:
		source = loader.CSVEventSource(cfg.Data.EventsPath)
	}

	cache := loader.NewCache(loader.DatasetLoader(cfg.Data.BoundaryPath, source), cfg.Cache.TTL, nil, metrics)

	// Warm the cache so the first request does not pay the load cost. A
	// failure here is not fatal: the API keeps answering 503 until the
	// backing files are fixed and a later request retries.
	if _, err := cache.Get(context.Background()); err != nil {
		slog.Error("initial dataset load failed", "error", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.API.RateLimitRPS))

	handler := api.NewHandler(cache, metrics)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
