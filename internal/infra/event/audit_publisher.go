package event

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/events"
	"github.com/DioGolang/GoBank/pkg/logger"
)

// AuditStore is an audit repository that can report the record it wrote.
type AuditStore interface {
	outbound.AuditRepository
	Record(ctx context.Context, entry entity.AuditEntry) (entity.AuditRecord, error)
}

// AuditPublisher announces every written record so the signing worker can
// pick it up. Publishing is best effort; the signing relay catches records
// whose event was lost.
type AuditPublisher struct {
	next       AuditStore
	dispatcher events.EventDispatcher
	log        logger.Logger
}

func NewAuditPublisher(next AuditStore, dispatcher events.EventDispatcher, log logger.Logger) *AuditPublisher {
	return &AuditPublisher{next: next, dispatcher: dispatcher, log: log}
}

func (p *AuditPublisher) Write(ctx context.Context, entry entity.AuditEntry) bool {
	rec, err := p.next.Record(ctx, entry)
	if err != nil {
		p.log.Error(ctx, "audit write failed", logger.String("action", entry.Action), logger.WithError(err))
		return false
	}

	if err := p.dispatcher.Dispatch(ctx, NewAuditRecorded(rec)); err != nil {
		p.log.Warn(ctx, "audit event not published",
			logger.Int64("audit_id", rec.ID),
			logger.WithError(err),
		)
	}
	return true
}

func (p *AuditPublisher) Query(ctx context.Context, q entity.AuditQuery) ([]entity.AuditRecord, error) {
	return p.next.Query(ctx, q)
}

func (p *AuditPublisher) AppendSignature(ctx context.Context, id int64) bool {
	return p.next.AppendSignature(ctx, id)
}
