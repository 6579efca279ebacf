package metrics

import "time"

type Metrics interface {
	// Business
	RecordUseCaseExecution(useCaseName string, success bool, duration time.Duration)
	RecordUnitOfWork(outcome string)
	RecordIdempotency(outcome string)
	RecordAuditWrite(status string)
	RecordAuditSigned(status string)

	// Infrastructure (HTTP & gRPC)
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)
	ObserveGRPCRequestDuration(service, method, code string, duration float64)
}
