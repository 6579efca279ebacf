package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DioGolang/GoBank/pkg/events"
	carrier "github.com/DioGolang/GoBank/pkg/otel"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
)

const DefaultExchange = "amq.direct"

// Publisher is the part of *amqp.Channel the dispatcher needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Dispatcher struct {
	channel  Publisher
	exchange string
}

func NewDispatcher(ch Publisher, exchange string) *Dispatcher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Dispatcher{channel: ch, exchange: exchange}
}

// Dispatch publishes the event under its name as routing key, carrying the
// trace context and event id in the headers.
func (d *Dispatcher) Dispatch(ctx context.Context, event events.Event) error {
	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, carrier.AMQPHeadersCarrier(headers))
	headers["x-event-id"] = event.GetID()

	payload, err := json.Marshal(event.GetPayload())
	if err != nil {
		return err
	}

	return d.channel.PublishWithContext(
		ctx,
		d.exchange,
		event.GetName(),
		false,
		false,
		amqp.Publishing{
			Headers:      headers,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.GetID(),
			Timestamp:    time.Now(),
			Body:         payload,
		})
}
