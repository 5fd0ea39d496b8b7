// Package notify forwards daemon snapshot events to a message broker.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finburn/internal/log"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Message is the envelope published for every event.
type Message struct {
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Encode wraps payload in a Message and marshals it.
func Encode(eventType string, at time.Time, payload any) ([]byte, error) {
	if eventType == "" {
		return nil, errors.New("event type is required")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(Message{
		Type:      eventType,
		Source:    "finburn",
		Timestamp: at.UTC(),
		Payload:   raw,
	})
}

// AMQPPublisher publishes JSON messages to a durable direct exchange.
type AMQPPublisher struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
	log        *log.Logger
}

// DialAMQP connects to url and declares exchange.
func DialAMQP(url, exchange, routingKey string, logger *log.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = log.Nop()
	}
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		log:        logger.WithComponent(log.ComponentNotify),
	}, nil
}

// Publish sends one encoded event.
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, at time.Time, payload any) error {
	body, err := Encode(eventType, at, payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    at,
			Type:         eventType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	p.log.DebugContext(ctx, "published event",
		log.FieldKind, eventType,
		"exchange", p.exchange,
		"routing_key", p.routingKey)
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
