package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/medflow/arztliste/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher publishes typed events. Implemented by *Publisher and by test doubles.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// channel is the subset of *amqp.Channel the publisher needs
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher handles publishing events to RabbitMQ
type Publisher struct {
	mu       sync.Mutex
	channel  channel
	exchange string
	source   string
	logger   *logger.Logger

	// reconnect reopens the connection and returns the fresh channel
	reconnect func(ctx context.Context) (channel, error)
}

// NewPublisher declares the exchange and returns a publisher bound to it
func NewPublisher(rmq *RabbitMQ, exchange, source string, log *logger.Logger) (*Publisher, error) {
	if err := rmq.DeclareExchange(exchange); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		channel:   rmq.Channel(),
		exchange:  exchange,
		source:    source,
		logger:    log,
		reconnect: func(ctx context.Context) (channel, error) {
			if err := rmq.Reconnect(ctx); err != nil {
				return nil, err
			}
			if err := rmq.DeclareExchange(exchange); err != nil {
				return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
			}
			return rmq.Channel(), nil
		},
	}, nil
}

// Publish wraps data in an Event envelope and publishes it with the event type as routing key
func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	correlationID := getCorrelationID(ctx)

	event, err := NewEvent(eventType, p.source, correlationID, data)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: correlationID,
		MessageId:     event.ID,
		Timestamp:     event.Timestamp,
		Body:          body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.send(ctx, eventType, msg)
	if errors.Is(err, amqp.ErrClosed) && p.reconnect != nil {
		p.logger.Warn().Err(err).Str("event_type", eventType).Msg("channel closed, reconnecting")

		ch, rerr := p.reconnect(ctx)
		if rerr != nil {
			return fmt.Errorf("failed to publish event: %w", errors.Join(err, rerr))
		}
		p.channel = ch
		err = p.send(ctx, eventType, msg)
	}
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug().
		Str("event_type", eventType).
		Str("event_id", event.ID).
		Str("correlation_id", correlationID).
		Msg("event published")

	return nil
}

func (p *Publisher) send(ctx context.Context, eventType string, msg amqp.Publishing) error {
	return p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
}

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// WithCorrelationID adds a correlation ID to the context
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

func getCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}
