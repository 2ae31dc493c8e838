package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	// amqp channels are not safe for concurrent publishing
	mu     sync.Mutex
	logger logger.Logger
}

// NewAMQPPublisher dials the broker and declares the durable topic exchange.
func NewAMQPPublisher(settings *config.MessagingSettings, logger logger.Logger) (events.Publisher, error) {
	conn, err := amqp.Dial(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(ch, settings.Exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	logger.Info("Publishing events to exchange ", settings.Exchange)
	return &amqpPublisher{conn: conn, ch: ch, exchange: settings.Exchange, logger: logger}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event *events.Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type,
		AppId:        event.Source,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return nil
}

type noopPublisher struct {
	logger logger.Logger
}

// NewNoopPublisher returns a Publisher that only logs. It is used when messaging is disabled.
func NewNoopPublisher(logger logger.Logger) events.Publisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(_ context.Context, event *events.Event) error {
	p.logger.Debug("Messaging disabled, dropping event ", event.Type, " ", event.ID)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// NewPublisher returns an AMQP publisher, or a no-op one when no broker URL is configured.
func NewPublisher(settings *config.MessagingSettings, logger logger.Logger) (events.Publisher, error) {
	if !settings.Enabled() {
		return NewNoopPublisher(logger), nil
	}
	return NewAMQPPublisher(settings, logger)
}
