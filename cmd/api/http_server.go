package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/items/infra/config"
	"github.com/giovaniif/items/infra/gateways"
	"github.com/giovaniif/items/infra/loki"
	"github.com/giovaniif/items/infra/metrics"
	"github.com/giovaniif/items/infra/repositories"
	"github.com/giovaniif/items/infra/requestid"
	"github.com/giovaniif/items/infra/tracing"
	"github.com/giovaniif/items/protocols"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

func StartServer() error {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	var logOutput io.Writer = os.Stdout
	if lokiWriter := loki.NewWriter(cfg.LokiURL, cfg.ServiceName); lokiWriter != nil {
		logOutput = io.MultiWriter(os.Stdout, lokiWriter)
		defer func() {
			if err := lokiWriter.Close(); err != nil {
				slog.Error("failed to ship logs to loki", slog.Any("error", err))
			}
		}()
	}
	gin.DefaultWriter = logOutput
	logger := slog.New(requestid.NewLogHandler(slog.NewJSONHandler(logOutput, nil)))

	shutdownTracing := tracing.Init(cfg.ServiceName, cfg.OTLPEndpoint)
	if shutdownTracing == nil {
		logger.Info("tracing disabled (set OTEL_EXPORTER_OTLP_ENDPOINT to enable)")
	}

	itemRepository := repositories.NewItemRepositoryMemory()
	prometheus.MustRegister(metrics.NewItemsGauge(func() float64 {
		n, _ := itemRepository.Count(context.Background())
		return float64(n)
	}))

	var redisClient redis.UniversalClient
	var idempotencyGateway protocols.IdempotencyGateway
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis ping failed, using in-memory idempotency", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
			_ = rdb.Close()
			idempotencyGateway = gateways.NewIdempotencyGatewayMemory()
		} else {
			logger.Info("create idempotency: redis (TTL 24h)", slog.String("addr", cfg.RedisAddr))
			redisClient = rdb
			defer rdb.Close()
			idempotencyGateway = gateways.NewIdempotencyGatewayRedis(rdb)
		}
	} else {
		logger.Info("create idempotency: in-memory (set REDIS_ADDR for redis)")
		idempotencyGateway = gateways.NewIdempotencyGatewayMemory()
	}

	var eventPublisher protocols.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := gateways.NewEventPublisherKafka(gateways.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), gateways.NewSleeper())
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		logger.Info("item events: kafka", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	} else {
		eventPublisher = gateways.NewEventPublisherLog(logger)
	}

	router, err := NewRouter(Dependencies{
		Items:        itemRepository,
		IdGenerator:  gateways.NewIdGeneratorUUID(),
		Idempotency:  idempotencyGateway,
		Events:       eventPublisher,
		Logger:       logger,
		AccessLog:    logOutput,
		Redis:        redisClient,
		KafkaEnabled: len(cfg.KafkaBrokers) > 0,
		StaticDir:    cfg.StaticDir,
		Greeting:     cfg.Greeting,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("items is running", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if shutdownTracing != nil {
		_ = shutdownTracing(shutdownCtx)
	}
	return nil
}
