// Package relay fans state changes out to the external realtime server.
// Delivery is best effort: nothing is retried and failures never reach the
// request that triggered them.
package relay

import (
	"context"
	"fmt"
	"time"
)

type Event string

const (
	EventSendMessage   Event = "send-message"
	EventPayment       Event = "payment"
	EventPriceUpdated  Event = "price_updated"
	EventBookingStatus Event = "booking_status"
)

// Envelope is the body every sink delivers.
type Envelope struct {
	Event  Event     `json:"event"`
	Data   any       `json:"data"`
	SentAt time.Time `json:"sent_at"`
}

type Notifier interface {
	Notify(ctx context.Context, event Event, payload any) error
	Close() error
}

type Config struct {
	Driver       string
	URL          string
	Timeout      time.Duration
	AMQPURL      string
	AMQPExchange string
}

// New builds the sink selected by cfg.Driver.
func New(cfg Config) (Notifier, error) {
	switch cfg.Driver {
	case "", "http":
		return NewHTTPRelay(cfg.URL, cfg.Timeout), nil
	case "amqp":
		return NewAMQPRelay(cfg.AMQPURL, cfg.AMQPExchange)
	case "noop":
		return Noop{}, nil
	}
	return nil, fmt.Errorf("relay: unknown driver %q", cfg.Driver)
}

type Noop struct{}

func (Noop) Notify(context.Context, Event, any) error { return nil }
func (Noop) Close() error                             { return nil }
