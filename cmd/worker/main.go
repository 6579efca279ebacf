package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DioGolang/GoBank/configs"
	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/infra/audit"
	"github.com/DioGolang/GoBank/internal/infra/database"
	"github.com/DioGolang/GoBank/internal/infra/event"
	"github.com/DioGolang/GoBank/internal/infra/storage"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/DioGolang/GoBank/pkg/otel"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

const (
	serviceName = "gobank-audit-signer"
	queueName   = "audit.sign"
	handlerName = "sign_audit_record"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configs.LoadConfig(".")
	if err != nil {
		return err
	}
	log := logger.NewLogger(serviceName, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := otel.InitProvider(ctx, otel.ProviderOptions{
		ServiceName:   serviceName,
		Version:       version,
		Environment:   cfg.Environment,
		CollectorAddr: cfg.OTelCollector,
	})
	if err != nil {
		log.Warn(ctx, "tracing disabled", logger.WithError(err))
	} else {
		defer shutdownTracer()
	}

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DSN(), database.PoolOptions{MaxOpenConns: 10})
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return fmt.Errorf("%w: rabbitmq: %w", outbound.ErrConnection, err)
	}
	defer conn.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg, serviceName)
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server stopped", logger.WithError(err))
		}
	}()
	defer metricsServer.Close()

	clk := clock.NewSystem()
	repo := audit.NewPostgresRepository(db, clk, audit.NewHMACSigner([]byte(cfg.AuditSigningKey)), log)

	var store outbound.IdempotencyStore = storage.NewMemoryIdempotencyStore(clk)
	if addr := cfg.RedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		store = storage.NewRedisIdempotencyStore(rdb, "gobank:dedup:")
	}

	// Outermost first: dedup, then the breaker, then retries around the
	// signature itself.
	handler := event.NewSignHandler(repo, log)
	handler = event.WrapExponentialBackoff(log, m, handlerName, 3, 200*time.Millisecond, handler)
	handler = event.WrapResilientConsumer(m, handlerName, 10*time.Second,
		event.NewCircuitBreaker(handlerName, 5, 30*time.Second), handler)
	handler = event.WrapIdempotency(log, store, handlerName, cfg.IdempotencyTTL, handler)

	log.Info(ctx, "audit signing worker started", logger.String("queue", queueName))

	consumer := event.NewConsumer(conn, event.DefaultExchange, log)
	return consumer.Start(ctx, queueName, event.AuditRecordedName, handler)
}
