package admin

import (
	"context"

	"sahayak/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error
	List(ctx context.Context, role domain.Role, offset, limit int) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error
	List(ctx context.Context, categoryID string, offset, limit int) ([]domain.ServiceProvider, int64, error)
	Count(ctx context.Context) (int64, error)
}

type BookingStats interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
}
