package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/DioGolang/GoBank/pkg/logger"
	carrier "github.com/DioGolang/GoBank/pkg/otel"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Consumer struct {
	conn     *amqp.Connection
	exchange string
	log      logger.Logger
}

func NewConsumer(conn *amqp.Connection, exchange string, l logger.Logger) *Consumer {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Consumer{conn: conn, exchange: exchange, log: l}
}

// Start consumes queueName until ctx is done or the channel closes.
// Handler errors are nacked without requeue; the queue's dead letter
// policy decides what happens next.
func (c *Consumer) Start(ctx context.Context, queueName, routingKey string, handler MessageHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := c.setupTopology(ch, queueName, routingKey); err != nil {
		return fmt.Errorf("error when configuring topology: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, queueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.log.Info(ctx, "waiting for messages", logger.String("queue", queueName))

	tracer := otel.GetTracerProvider().Tracer("gobank/worker")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, tracer, queueName, d, handler)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, tracer trace.Tracer, queueName string, d amqp.Delivery, handler MessageHandler) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier.AMQPHeadersCarrier(d.Headers))
	ctx, span := tracer.Start(ctx, "ConsumeAuditRecorded", trace.WithAttributes(
		attribute.String("queue.name", queueName),
		attribute.String("messaging.message_id", d.MessageId),
	))
	defer span.End()

	if err := handler(ctx, d.Body, d.Headers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn(ctx, "message rejected",
			logger.String("message_id", d.MessageId),
			logger.WithError(err),
		)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (c *Consumer) setupTopology(ch *amqp.Channel, queueName, routingKey string) error {
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(queueName, routingKey, c.exchange, false, nil)
}
