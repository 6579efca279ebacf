package operation

import (
	"context"

	"github.com/google/uuid"
)

// Request describes the caller of an operation. It is attached to the
// context by the transport layer.
type Request struct {
	IdempotencyKey string
	ActorUserID    *int64
	ActorRole      string
	ClientIP       string
	UserAgent      string
	CorrelationID  uuid.UUID
}

type requestKey struct{}

func WithRequest(ctx context.Context, r Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

func RequestFrom(ctx context.Context) Request {
	r, _ := ctx.Value(requestKey{}).(Request)
	return r
}
