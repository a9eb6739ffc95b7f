package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers catalog events.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// AMQPPublisher publishes persistent JSON messages to a durable queue through
// the default exchange.  Each call dials its own connection, which keeps the
// publisher stateless at the cost of a connection per event; catalog writes
// are rare enough for that to be acceptable.
type AMQPPublisher struct {
	URL   string
	Queue string
	now   func() time.Time
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Queue: queue, now: time.Now}
}

// encode builds the message published for payload.
func (p *AMQPPublisher) encode(eventType string, payload any) (amqp.Publishing, error) {
	now := p.now().UTC()
	body, err := json.Marshal(Envelope{Type: eventType, OccurredAt: now, Payload: payload})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         eventType,
		Timestamp:    now,
		Body:         body,
	}, nil
}

// Publish declares the queue (idempotent) and sends the event.
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	msg, err := p.encode(eventType, payload)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
