package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Prometheus struct {
	useCaseTotal    *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	unitOfWork      *prometheus.CounterVec
	idempotency     *prometheus.CounterVec
	auditWrites     *prometheus.CounterVec
	auditSigned     *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	grpcDuration    *prometheus.HistogramVec
}

func NewPrometheusMetrics(reg prometheus.Registerer, serviceName string) *Prometheus {
	m := &Prometheus{
		useCaseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_usecase_total",
			Help:        "Total number of Use Case executions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_usecase_duration_seconds",
			Help:        "Use Case execution latency.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		unitOfWork: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gobank_unit_of_work_total",
			Help:        "Units of work by outcome (committed, rolled_back, disposed_open).",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"outcome"}),
		idempotency: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gobank_idempotency_total",
			Help:        "Idempotency gate decisions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"outcome"}),
		auditWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gobank_audit_writes_total",
			Help:        "Audit records written.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		auditSigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gobank_audit_signatures_total",
			Help:        "Audit signatures appended.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "Duration of HTTP requests.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
		grpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "grpc_duration_seconds",
			Help:        "Duration of gRPC requests.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"grpc_service", "grpc_method", "status_code"}),
	}

	reg.MustRegister(
		m.useCaseTotal,
		m.useCaseDuration,
		m.unitOfWork,
		m.idempotency,
		m.auditWrites,
		m.auditSigned,
		m.httpDuration,
		m.grpcDuration,
	)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (p *Prometheus) RecordUseCaseExecution(useCase string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.useCaseTotal.WithLabelValues(useCase, status).Inc()
	p.useCaseDuration.WithLabelValues(useCase, status).Observe(duration.Seconds())
}

func (p *Prometheus) RecordUnitOfWork(outcome string) {
	p.unitOfWork.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) RecordIdempotency(outcome string) {
	p.idempotency.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) RecordAuditWrite(status string) {
	p.auditWrites.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordAuditSigned(status string) {
	p.auditSigned.WithLabelValues(status).Inc()
}

func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}

func (p *Prometheus) ObserveGRPCRequestDuration(service, method, code string, duration float64) {
	p.grpcDuration.WithLabelValues(service, method, code).Observe(duration)
}
