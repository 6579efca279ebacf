package operation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
)

var ErrIdempotencyUnavailable = errors.New("idempotency store unavailable")

// Action names the audited operation and its target.
type Action struct {
	Name       string
	TargetType string
	TargetID   *int64
	Before     any
}

// Targeted lets a result name the entity it created or changed.
type Targeted interface {
	AuditTargetID() int64
}

// Guard gates entry with the idempotency store and records every exit in
// the audit trail. Neither takes part in the operation's transaction.
type Guard struct {
	store   outbound.IdempotencyStore
	audit   outbound.AuditRepository
	clock   clock.Clock
	ttl     time.Duration
	log     logger.Logger
	metrics metrics.Metrics
}

func NewGuard(
	store outbound.IdempotencyStore,
	audit outbound.AuditRepository,
	clk clock.Clock,
	ttl time.Duration,
	log logger.Logger,
	m metrics.Metrics,
) *Guard {
	return &Guard{store: store, audit: audit, clock: clk, ttl: ttl, log: log, metrics: m}
}

// Guarded runs fn at most once per idempotency key within the TTL. A key
// is completed only on success; after a failure it stays in progress until
// it expires, so clients retry a failed request with a new key.
func Guarded[T any](ctx context.Context, g *Guard, action Action, fn func(ctx context.Context) (Result[T], error)) (Result[T], error) {
	req := RequestFrom(ctx)

	var key string
	if req.IdempotencyKey != "" {
		key = action.Name + ":" + req.IdempotencyKey

		started, err := g.store.TryStart(ctx, key, g.ttl)
		if err != nil {
			g.metrics.RecordIdempotency("unavailable")
			g.log.Error(ctx, "idempotency check failed",
				logger.String("action", action.Name),
				logger.WithError(err),
			)
			return Result[T]{}, fmt.Errorf("%w: %w", ErrIdempotencyUnavailable, err)
		}
		if !started {
			g.metrics.RecordIdempotency("duplicate")
			g.log.Info(ctx, "duplicate request rejected",
				logger.String("action", action.Name),
				logger.String("idempotency_key", req.IdempotencyKey),
			)
			g.record(ctx, req, action, entity.AuditDenied, "duplicate request", nil)
			return Failed[T](CodeDuplicateRequest, "duplicate request", nil), nil
		}
		g.metrics.RecordIdempotency("started")
	}

	res, err := fn(ctx)

	switch {
	case err != nil:
		g.record(ctx, req, action, entity.AuditFailed, err.Error(), nil)
	case !res.IsOk():
		g.record(ctx, req, action, entity.AuditFailed, res.Failure().Error(), nil)
	default:
		if key != "" {
			if cErr := g.store.Complete(ctx, key); cErr != nil {
				g.log.Warn(ctx, "unable to complete idempotency key",
					logger.String("key", key),
					logger.WithError(cErr),
				)
			} else {
				g.metrics.RecordIdempotency("completed")
			}
		}
		value := res.Value()
		g.record(ctx, req, withTarget(action, value), entity.AuditSuccess, "", value)
	}

	return res, err
}

func (g *Guard) record(ctx context.Context, req Request, action Action, status entity.AuditStatus, reason string, after any) {
	entry := entity.AuditEntry{
		OccurredAt:     g.clock.UtcNow(),
		ActorUserID:    req.ActorUserID,
		ActorRole:      req.ActorRole,
		Action:         action.Name,
		TargetType:     action.TargetType,
		TargetID:       action.TargetID,
		CorrelationID:  req.CorrelationID,
		ClientIP:       req.ClientIP,
		UserAgent:      req.UserAgent,
		Status:         status,
		Reason:         reason,
		BeforeSnapshot: action.Before,
		AfterSnapshot:  after,
	}

	// the audit trail must survive a client that hung up
	if !g.audit.Write(context.WithoutCancel(ctx), entry) {
		g.metrics.RecordAuditWrite("error")
		g.log.Warn(ctx, "audit write rejected",
			logger.String("action", action.Name),
			logger.String("status", status.String()),
		)
		return
	}
	g.metrics.RecordAuditWrite(status.String())
}

func withTarget[T any](action Action, value T) Action {
	if action.TargetID != nil {
		return action
	}
	switch v := any(value).(type) {
	case int64:
		action.TargetID = &v
	case Targeted:
		id := v.AuditTargetID()
		action.TargetID = &id
	}
	return action
}
