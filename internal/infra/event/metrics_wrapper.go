package event

import (
	"context"
	"errors"
	"time"

	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/sony/gobreaker"
)

// WrapResilientConsumer bounds each call with timeout and trips cb after
// repeated failures, so a sick database is not hammered by redeliveries.
func WrapResilientConsumer(
	m metrics.Metrics,
	handlerName string,
	timeout time.Duration,
	cb *gobreaker.CircuitBreaker,
	next MessageHandler,
) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]any) error {
		start := time.Now()

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		_, err := cb.Execute(func() (any, error) {
			return nil, next(ctx, msg, headers)
		})

		m.RecordUseCaseExecution(handlerName, err == nil, time.Since(start))
		return err
	}
}

func NewCircuitBreaker(name string, maxFailures uint32, openFor time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrPermanent)
		},
	})
}
