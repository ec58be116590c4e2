package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AleXx313/shareit/internal/api"
	"github.com/AleXx313/shareit/internal/config"
	"github.com/AleXx313/shareit/internal/database"
	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/export"
	"github.com/AleXx313/shareit/internal/logging"
	"github.com/AleXx313/shareit/internal/metrics"
	"github.com/AleXx313/shareit/internal/repository"
	"github.com/AleXx313/shareit/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	searchCache, cacheCloser := initSearchCache(cfg, &logger)
	if cacheCloser != nil {
		defer cacheCloser.Close()
	}

	server := buildServer(cfg, db, searchCache, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()
	logger.Info().Int("port", cfg.HTTP.Port).Msg("server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	return cfg, logger, closer, nil
}

// initSearchCache assembles the search cache: redis in front when
// configured and reachable, in-memory behind it so a redis outage
// degrades instead of failing.
func initSearchCache(cfg *config.Config, logger *zerolog.Logger) (domain.SearchCache, io.Closer) {
	ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
	memory := repository.NewMemorySearchCache(ttl)

	if !cfg.Redis.Enabled {
		logger.Info().Msg("redis disabled, using in-memory search cache")
		return memory, nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing with in-memory search cache")
		_ = client.Close()
		return memory, nil
	}
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")

	primary := repository.NewRedisSearchCache(client, ttl)
	return repository.NewFailoverSearchCache(primary, memory, logger), client
}

func buildServer(cfg *config.Config, db *database.DB, searchCache domain.SearchCache, logger *zerolog.Logger) *api.Server {
	users := service.NewUserService(db, logger)
	items := service.NewItemService(db, searchCache, logger)
	bookings := service.NewBookingService(db, logger)
	requests := service.NewRequestService(db, logger)
	exporter := export.NewBookingExporter(cfg.Exports.Path, logger)

	handlers := api.NewHandlers(users, items, bookings, requests, exporter, logger)
	return api.NewServer(cfg, handlers, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
