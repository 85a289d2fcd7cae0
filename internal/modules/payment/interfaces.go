package payment

import (
	"context"
	"time"

	"sahayak/internal/domain"
	"sahayak/internal/relay"
)

// Order is what a gateway hands back when a payment is opened.
type Order struct {
	ID           string
	ClientSecret string
}

// Gateway is one payment provider. VerifySignature returns ErrSignatureMismatch
// when the provider does not vouch for paymentID settling orderID.
type Gateway interface {
	Name() string
	KeyID() string
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
	VerifySignature(ctx context.Context, orderID, paymentID, signature string) error
}

type BookingStore interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	SetOrderID(ctx context.Context, id, userID, orderID string) (bool, error)
	MarkPaid(ctx context.Context, orderID, paymentID, signature string, at time.Time) (bool, error)
}

type Notifier interface {
	Fire(event relay.Event, payload any)
}
