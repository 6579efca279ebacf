package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DioGolang/GoBank/configs"
	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/account"
	"github.com/DioGolang/GoBank/internal/application/usecase/card"
	"github.com/DioGolang/GoBank/internal/application/usecase/customer"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/infra/audit"
	"github.com/DioGolang/GoBank/internal/infra/database"
	"github.com/DioGolang/GoBank/internal/infra/event"
	"github.com/DioGolang/GoBank/internal/infra/grpc/service"
	"github.com/DioGolang/GoBank/internal/infra/storage"
	"github.com/DioGolang/GoBank/internal/infra/web"
	"github.com/DioGolang/GoBank/internal/infra/web/handler"
	"github.com/DioGolang/GoBank/internal/infra/web/middleware"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/DioGolang/GoBank/pkg/otel"
	"github.com/DioGolang/GoBank/pkg/security"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"
)

const serviceName = "gobank-api"

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

	isolation, _ := cfg.Isolation()
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DSN(), database.PoolOptions{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg, serviceName)
	clk := clock.NewSystem()

	store, rdb := openIdempotencyStore(ctx, cfg, clk, log)
	if rdb != nil {
		defer rdb.Close()
	}

	var auditRepo outbound.AuditRepository
	postgresAudit := audit.NewPostgresRepository(db, clk, audit.NewHMACSigner([]byte(cfg.AuditSigningKey)), log)
	auditRepo = postgresAudit
	if conn, err := amqp.Dial(cfg.AMQPURL); err != nil {
		log.Warn(ctx, "rabbitmq unavailable, records are signed by the relay only", logger.WithError(err))
	} else {
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("open amqp channel: %w", err)
		}
		defer ch.Close()
		auditRepo = event.NewAuditPublisher(postgresAudit, event.NewDispatcher(ch, event.DefaultExchange), log)
	}

	units := database.NewUnitOfWorkFactory(database.NewConnectionFactory(database.DefaultDataSource, db), isolation)
	orchestrator := operation.NewOrchestrator(units, log, m)
	guard := operation.NewGuard(store, auditRepo, clk, cfg.IdempotencyTTL, log, m)
	hasher, err := security.NewHasher(security.Options{Iterations: cfg.HashIterations})
	if err != nil {
		return fmt.Errorf("%w: %w", outbound.ErrConfiguration, err)
	}

	healthHandler, err := handler.NewHealthHandler(serviceName, version,
		handler.WithDatabase("postgres", db),
		handler.WithRedis(rdb),
		handler.WithRabbitMQ(cfg.AMQPURL),
	)
	if err != nil {
		return err
	}

	router := web.NewRouter(web.RouterConfig{
		ServiceName: serviceName,
		Log:         log,
		Metrics:     m,
		RateLimiter: middleware.NewRateLimiter(ctx, middleware.RateLimiterConfig{RequestsPerSecond: 20, Burst: 40}),
		Auth:        middleware.NewActorAuth(cfg.JWTSecret, log),

		Customers: handler.NewCustomerHandler(customer.NewService(orchestrator, guard, hasher, clk), log),
		Accounts:  handler.NewAccountHandler(account.NewService(orchestrator, guard, clk), log),
		Cards:     handler.NewCardHandler(card.NewService(orchestrator, guard, hasher, clk), log),
		Audit:     handler.NewAuditHandler(auditRepo, log),

		Health:        healthHandler,
		MetricsExport: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.WebServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcServer := service.NewServer(m)
	healthService := service.NewHealthService(db, log)
	healthService.Register(grpcServer)
	if !cfg.IsProduction() {
		reflection.Register(grpcServer)
	}
	relay := event.NewSigningRelay(auditRepo, log, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "http server listening", logger.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return err
		}
		log.Info(gctx, "grpc server listening", logger.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		healthService.Run(gctx)
		return nil
	})
	g.Go(func() error {
		relay.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down")

		shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutCtx)
	})

	return g.Wait()
}

// openIdempotencyStore prefers Redis so keys hold across instances and
// falls back to process memory when REDIS_HOST is unset or unreachable.
func openIdempotencyStore(ctx context.Context, cfg *configs.Conf, clk clock.Clock, log logger.Logger) (outbound.IdempotencyStore, redis.UniversalClient) {
	if cfg.RedisAddr() == "" {
		log.Warn(ctx, "REDIS_HOST not set, idempotency keys are kept in memory")
		return storage.NewMemoryIdempotencyStore(clk), nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn(ctx, "redis unavailable, idempotency keys are kept in memory", logger.WithError(err))
		_ = rdb.Close()
		return storage.NewMemoryIdempotencyStore(clk), nil
	}
	return storage.NewRedisIdempotencyStore(rdb, "gobank:idem:"), rdb
}
