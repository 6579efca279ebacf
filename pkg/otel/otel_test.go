package otel

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestAMQPHeadersCarrier_RoundTripsTraceContext(t *testing.T) {
	//Arrange
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()
	prop := propagation.TraceContext{}
	headers := amqp.Table{"x-event-id": "audit-1"}

	//Act
	prop.Inject(ctx, AMQPHeadersCarrier(headers))
	extracted := trace.SpanContextFromContext(prop.Extract(context.Background(), AMQPHeadersCarrier(headers)))

	//Assert
	assert.Equal(t, span.SpanContext().TraceID(), extracted.TraceID())
	assert.Contains(t, AMQPHeadersCarrier(headers).Keys(), "traceparent")
}

func TestAMQPHeadersCarrier_Get(t *testing.T) {
	c := AMQPHeadersCarrier{"s": "text", "b": []byte("bytes"), "n": int32(5)}

	assert.Equal(t, "text", c.Get("s"))
	assert.Equal(t, "bytes", c.Get("b"))
	assert.Empty(t, c.Get("n"))
	assert.Empty(t, c.Get("missing"))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Contains(t, sampler(0.25).Description(), "ParentBased")
}
