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

	"omservice/internal/api"
	"omservice/internal/config"
	"omservice/internal/database"
	"omservice/internal/domain"
	"omservice/internal/events"
	"omservice/internal/logging"
	"omservice/internal/mailer"
	"omservice/internal/metrics"
	"omservice/internal/repository"
	"omservice/internal/service"
	"omservice/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
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

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	statsCache := initStatsCache(cfg, redisClient, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emailWorker := initEmailWorker(ctx, cfg, redisClient, &logger)

	eventBus := events.NewEventBus()
	subscribeAuditLog(eventBus, &logger)

	bookings := service.NewBookingService(db, eventBus, emailWorker, statsCache, &logger)
	partners := service.NewPartnerService(db, eventBus, emailWorker, &logger)
	reviews := service.NewReviewService(db, &logger)
	catalog := service.NewCatalogService(db, &logger)

	server := api.NewServer(cfg, bookings, partners, reviews, catalog, &logger)

	startMetrics(ctx, cfg, &logger)

	return serve(ctx, server, cfg, &logger)
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
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled || cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initStatsCache wires the statistics cache: redis fronted by an
// in-memory fallback when redis is available, memory-only otherwise.
func initStatsCache(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.StatsCache {
	ttl := time.Duration(cfg.Redis.StatsTTL) * time.Second
	memory := repository.NewMemoryStatsCache(ttl)
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverStatsCache(
		repository.NewRedisStatsCache(redisClient, ttl), memory, logger)
}

// initEmailWorker builds the background mail worker and starts its
// delivery loop. Without SMTP configured the queue still accepts
// messages but nothing drains it.
func initEmailWorker(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) *worker.EmailWorker {
	sender := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger)

	emailWorker := worker.NewEmailWorker(sender, redisClient, worker.RetryPolicy{}, logger)
	if cfg.SMTP.Host == "" {
		logger.Warn().Msg("SMTP is not configured, outgoing mail will not be delivered")
		return emailWorker
	}

	go emailWorker.Start(ctx)
	return emailWorker
}

func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	eventTypes := []string{
		events.EventBookingCreated,
		events.EventBookingStatusChanged,
		events.EventBookingDeleted,
		events.EventPartnerJoined,
	}
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, func(event *events.Event) error {
			logger.Info().
				Str("event", event.Type).
				RawJSON("payload", event.Payload).
				Msg("domain event")
			return nil
		})
	}
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

func serve(ctx context.Context, server *api.Server, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.Server.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
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
