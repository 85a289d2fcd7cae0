package booking

import (
	"context"

	"sahayak/internal/domain"
	"sahayak/internal/relay"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error)
	ListAvailable(ctx context.Context, categoryID string) ([]domain.Booking, error)
	UpdateGuarded(ctx context.Context, id string, guard domain.BookingGuard, updates map[string]any) (bool, error)
}

type ServiceCatalog interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
}

type ProviderDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
}

// Notifier is satisfied by *relay.Dispatcher.
type Notifier interface {
	Fire(event relay.Event, payload any)
}
