package rating

import (
	"context"

	"sahayak/internal/domain"
)

type RatingRepository interface {
	CreateOnce(ctx context.Context, r *domain.Rating) error
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Rating, error)
	Update(ctx context.Context, bookingID, userID string, stars int, review string) (*domain.Rating, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Rating, error)
	ProviderSummary(ctx context.Context, providerID string) (float64, int64, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}
