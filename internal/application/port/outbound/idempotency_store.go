package outbound

import (
	"context"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

type IdempotencyStore interface {
	// TryStart records the key as in progress unless an unexpired entry
	// exists. Only one of several concurrent callers gets true.
	TryStart(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Complete marks an existing key completed without touching its expiry.
	Complete(ctx context.Context, key string) error
	GetStatus(ctx context.Context, key string) (entity.IdempotencyStatus, error)
}
