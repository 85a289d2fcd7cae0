package chat

import (
	"context"

	"sahayak/internal/domain"
	"sahayak/internal/relay"
)

type BookingReader interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListByBooking(ctx context.Context, bookingID string, limit int) ([]domain.Message, error)
}

type Notifier interface {
	Fire(event relay.Event, payload any)
}
