package event

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/pkg/logger"
)

// WrapIdempotency drops messages whose event id was already handled within
// ttl. The store fails closed: if it is unreachable the message is
// rejected rather than processed twice. A failed message keeps its key
// until ttl; the signing relay covers records it left unsigned.
func WrapIdempotency(
	log logger.Logger,
	store outbound.IdempotencyStore,
	handlerName string,
	ttl time.Duration,
	next MessageHandler,
) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]any) error {
		var eventID string
		if v, ok := headers["x-event-id"]; ok {
			eventID = fmt.Sprintf("%v", v)
		}
		if eventID == "" {
			eventID = fmt.Sprintf("hash:%x", sha256.Sum256(msg))
		}

		key := fmt.Sprintf("dedup:%s:%s", handlerName, eventID)

		started, err := store.TryStart(ctx, key, ttl)
		if err != nil {
			log.Error(ctx, "idempotency store unavailable", logger.WithError(err))
			return fmt.Errorf("idempotency store unavailable: %w", err)
		}
		if !started {
			log.Info(ctx, "duplicate event dropped",
				logger.String("handler", handlerName),
				logger.String("event_id", eventID),
			)
			return nil
		}

		if err := next(ctx, msg, headers); err != nil {
			return err
		}

		if err := store.Complete(ctx, key); err != nil {
			log.Warn(ctx, "unable to complete dedup key", logger.String("key", key), logger.WithError(err))
		}
		return nil
	}
}
