package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AllEvents binds a queue to every routing key.
const AllEvents = "#"

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery channel.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

type amqpConsumer struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	tag    string
	logger logger.Logger
}

// NewAMQPConsumer declares the exchange and a durable queue bound to the given routing keys.
// With no keys the queue receives every event.
func NewAMQPConsumer(settings *config.MessagingSettings, tag string, keys []string, logger logger.Logger) (events.Consumer, error) {
	if len(keys) == 0 {
		keys = []string{AllEvents}
	}

	conn, err := amqp.Dial(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	fail := func(err error) (events.Consumer, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err := declareExchange(ch, settings.Exchange); err != nil {
		return fail(err)
	}
	q, err := ch.QueueDeclare(settings.Queue, true, false, false, false, nil)
	if err != nil {
		return fail(fmt.Errorf("declare queue: %w", err))
	}
	for _, key := range keys {
		if err := ch.QueueBind(q.Name, key, settings.Exchange, false, nil); err != nil {
			return fail(fmt.Errorf("bind %s: %w", key, err))
		}
	}
	if settings.Prefetch > 0 {
		if err := ch.Qos(settings.Prefetch, 0, false); err != nil {
			return fail(fmt.Errorf("set qos: %w", err))
		}
	}

	logger.Info("Consuming queue ", q.Name, " bound to ", keys)
	return &amqpConsumer{conn: conn, ch: ch, queue: q.Name, tag: tag, logger: logger}, nil
}

// Run hands every delivery to handler until ctx is done or the broker goes away.
func (c *amqpConsumer) Run(ctx context.Context, handler events.Handler) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, c.tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			dispatch(ctx, d, handler, c.logger)
		}
	}
}

func (c *amqpConsumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// dispatch decodes one delivery and settles it. Bodies that cannot be decoded are
// dropped, handler failures are requeued.
func dispatch(ctx context.Context, d amqp.Delivery, handler events.Handler, log logger.Logger) {
	event, err := decodeEvent(d.Body, d.RoutingKey)
	if err != nil {
		log.Warn("Dropping undecodable delivery key=", d.RoutingKey, " err=", err)
		if err := d.Nack(false, false); err != nil {
			log.Error("Nack failed: ", err)
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		log.Error("Handler failed for ", event.Type, " ", event.ID, ": ", err, " -> requeue")
		if err := d.Nack(false, true); err != nil {
			log.Error("Nack failed: ", err)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		log.Error("Ack failed: ", err)
	}
}
