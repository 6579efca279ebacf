package service

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) PingContext(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func startServer(t *testing.T, db Pinger, reg *prometheus.Registry) (*HealthService, healthpb.HealthClient) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	gs := NewServer(metrics.NewPrometheusMetrics(reg, "test"))
	hs := NewHealthService(db, logger.NewNop())
	hs.Register(gs)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return hs, healthpb.NewHealthClient(conn)
}

func TestHealthService_FollowsDatabase(t *testing.T) {
	//Arrange
	db := &fakePinger{}
	hs, client := startServer(t, db, prometheus.NewRegistry())
	ctx := context.Background()

	//Act
	before, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: BackOfficeService})
	require.NoError(t, err)
	hs.Probe(ctx)
	up, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	db.fail(errors.New("connection refused"))
	hs.Probe(ctx)
	down, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: BackOfficeService})
	require.NoError(t, err)

	//Assert
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, before.Status)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, up.Status)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, down.Status)
}

func TestHealthService_RecordsLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, client := startServer(t, &fakePinger{}, reg)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "grpc_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSplitMethod(t *testing.T) {
	tests := []struct {
		full   string
		svc    string
		method string
	}{
		{full: "/grpc.health.v1.Health/Check", svc: "grpc.health.v1.Health", method: "Check"},
		{full: "Check", svc: "unknown", method: "Check"},
	}

	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			svc, method := splitMethod(tt.full)
			assert.Equal(t, tt.svc, svc)
			assert.Equal(t, tt.method, method)
		})
	}
}
