package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPRelay publishes envelopes to a durable topic exchange, routing key = event.
type AMQPRelay struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPRelay(url, exchange string) (*AMQPRelay, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("relay: dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("relay: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("relay: declare exchange: %w", err)
	}
	return &AMQPRelay{conn: conn, ch: ch, exchange: exchange}, nil
}

func (r *AMQPRelay) Notify(ctx context.Context, event Event, payload any) error {
	now := time.Now().UTC()
	body, err := json.Marshal(Envelope{Event: event, Data: payload, SentAt: now})
	if err != nil {
		return fmt.Errorf("relay: marshal %s: %w", event, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch.PublishWithContext(ctx, r.exchange, string(event), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   now,
		Body:        body,
	})
}

func (r *AMQPRelay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
