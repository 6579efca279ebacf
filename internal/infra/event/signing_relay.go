package event

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// SigningRelay periodically signs audit records that are still unsigned,
// for instance because their audit.recorded event never reached a worker.
type SigningRelay struct {
	repo      outbound.AuditRepository
	logger    logger.Logger
	metrics   metrics.Metrics
	batchSize int
	workers   int
	interval  time.Duration
}

func NewSigningRelay(repo outbound.AuditRepository, log logger.Logger, m metrics.Metrics) *SigningRelay {
	return &SigningRelay{
		repo:      repo,
		logger:    log,
		metrics:   m,
		batchSize: 100,
		workers:   10,
		interval:  5 * time.Second,
	}
}

func (r *SigningRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.SignPending(ctx); err != nil {
				r.logger.Error(ctx, "signing batch had errors", logger.WithError(err))
			}
		}
	}
}

// SignPending signs one batch of unsigned records and returns how many it
// signed.
func (r *SigningRelay) SignPending(ctx context.Context) (int, error) {
	unsigned := false
	pending, err := r.repo.Query(ctx, entity.AuditQuery{Signed: &unsigned, Limit: r.batchSize})
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var signed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, rec := range pending {
		rec := rec
		g.Go(func() error {
			if !r.repo.AppendSignature(gCtx, rec.ID) {
				r.metrics.RecordAuditSigned("error")
				return fmt.Errorf("audit record %d not signed", rec.ID)
			}
			r.metrics.RecordAuditSigned("signed")
			signed.Add(1)
			return nil
		})
	}

	err = g.Wait()
	return int(signed.Load()), err
}
