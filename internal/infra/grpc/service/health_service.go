package service

import (
	"context"
	"time"

	"github.com/DioGolang/GoBank/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// BackOfficeService is the name health probes ask about besides the
// server-wide empty name.
const BackOfficeService = "gobank.v1.BackOffice"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthService reports SERVING while the database answers pings.
type HealthService struct {
	server   *health.Server
	db       Pinger
	log      logger.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewHealthService(db Pinger, log logger.Logger) *HealthService {
	s := &HealthService{
		server:   health.NewServer(),
		db:       db,
		log:      log,
		interval: 10 * time.Second,
		timeout:  2 * time.Second,
	}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *HealthService) Register(gs *grpc.Server) {
	healthpb.RegisterHealthServer(gs, s.server)
}

// Probe pings the database once and publishes the outcome.
func (s *HealthService) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(ctx); err != nil {
		s.log.Warn(ctx, "database ping failed", logger.WithError(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.set(status)
	return status
}

// Run probes every interval until ctx ends, then marks every service
// NOT_SERVING so clients drain before the listener closes.
func (s *HealthService) Run(ctx context.Context) {
	s.Probe(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.server.Shutdown()
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

func (s *HealthService) set(status healthpb.HealthCheckResponse_ServingStatus) {
	s.server.SetServingStatus("", status)
	s.server.SetServingStatus(BackOfficeService, status)
}
