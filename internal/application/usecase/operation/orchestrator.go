package operation

import (
	"context"
	"errors"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Step is the body of an operation. It issues repository calls in order
// and returns on the first failure.
type Step[T any] func(ctx context.Context, repos outbound.RepositoryProvider) Result[T]

type Orchestrator struct {
	units   outbound.UnitOfWorkFactory
	log     logger.Logger
	metrics metrics.Metrics
	tracer  trace.Tracer
}

func NewOrchestrator(units outbound.UnitOfWorkFactory, log logger.Logger, m metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		units:   units,
		log:     log,
		metrics: m,
		tracer:  otel.Tracer("gobank/operation"),
	}
}

func (o *Orchestrator) RunUnitOfWork(ctx context.Context, transactional bool) (outbound.UnitOfWork, error) {
	return o.units.Begin(ctx, transactional)
}

// Execute runs step inside a fresh unit of work. A failed result rolls the
// unit back; a successful one is committed exactly once. The unit is always
// closed before Execute returns.
//
// The returned error is reserved for infrastructure faults (no connection,
// misuse of the unit). Business failures travel in the Result.
func Execute[T any](ctx context.Context, o *Orchestrator, name string, transactional bool, step Step[T]) (res Result[T], err error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Bool("uow.transactional", transactional),
	))
	defer func() {
		ok := err == nil && res.IsOk()
		if !ok {
			span.SetStatus(codes.Error, failureReason(res, err))
		}
		span.End()
		o.metrics.RecordUseCaseExecution(name, ok, time.Since(start))
	}()

	uow, err := o.RunUnitOfWork(ctx, transactional)
	if err != nil {
		o.log.Error(ctx, "unable to open unit of work",
			logger.String("operation", name),
			logger.WithError(err),
		)
		return Result[T]{}, err
	}
	defer func() {
		if cErr := uow.Close(); cErr != nil {
			o.log.Warn(ctx, "unit of work close failed",
				logger.String("operation", name),
				logger.WithError(cErr),
			)
		}
	}()

	res = step(ctx, uow.Repositories())

	if !transactional {
		return res, nil
	}

	if !res.IsOk() {
		if rbErr := uow.Rollback(); rbErr != nil {
			if errors.Is(rbErr, outbound.ErrInvalidState) {
				o.log.Error(ctx, "rollback on invalid unit of work", logger.String("operation", name), logger.WithError(rbErr))
				return res, rbErr
			}
			o.log.Warn(ctx, "rollback failed", logger.String("operation", name), logger.WithError(rbErr))
		}
		o.metrics.RecordUnitOfWork("rolled_back")
		o.log.Debug(ctx, "unit of work rolled back",
			logger.String("operation", name),
			logger.Int("code", int(res.Failure().Code)),
			logger.String("reason", res.Failure().Reason),
		)
		return res, nil
	}

	if cmErr := uow.Commit(); cmErr != nil {
		if errors.Is(cmErr, outbound.ErrInvalidState) {
			o.log.Error(ctx, "commit on invalid unit of work", logger.String("operation", name), logger.WithError(cmErr))
			return Result[T]{}, cmErr
		}
		o.metrics.RecordUnitOfWork("commit_failed")
		o.log.Warn(ctx, "commit failed", logger.String("operation", name), logger.WithError(cmErr))
		return Failed[T](CodeCommitFailed, "commit failed", cmErr), nil
	}

	o.metrics.RecordUnitOfWork("committed")
	o.log.Debug(ctx, "unit of work committed", logger.String("operation", name))
	return res, nil
}

func failureReason[T any](res Result[T], err error) string {
	if err != nil {
		return err.Error()
	}
	if f := res.Failure(); f != nil {
		return f.Error()
	}
	return ""
}
