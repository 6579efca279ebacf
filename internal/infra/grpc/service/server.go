package service

import (
	"context"
	"strings"
	"time"

	"github.com/DioGolang/GoBank/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// NewServer builds a traced gRPC server that records call latency.
func NewServer(m metrics.Metrics, opts ...grpc.ServerOption) *grpc.Server {
	base := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(MetricsInterceptor(m)),
	}
	return grpc.NewServer(append(base, opts...)...)
}

func MetricsInterceptor(m metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		svc, method := splitMethod(info.FullMethod)
		m.ObserveGRPCRequestDuration(svc, method, status.Code(err).String(), time.Since(start).Seconds())
		return resp, err
	}
}

// splitMethod turns "/pkg.Service/Method" into its two parts.
func splitMethod(full string) (string, string) {
	full = strings.TrimPrefix(full, "/")
	if i := strings.LastIndex(full, "/"); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "unknown", full
}
