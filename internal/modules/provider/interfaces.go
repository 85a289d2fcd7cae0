package provider

import (
	"context"

	"sahayak/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	List(ctx context.Context, categoryID string, offset, limit int) ([]domain.ServiceProvider, int64, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]any) error
	SetImageURL(ctx context.Context, id, url string) error
	ServiceIDs(ctx context.Context, providerID string) ([]string, error)
}

type RatingSummary interface {
	ProviderSummary(ctx context.Context, providerID string) (float64, int64, error)
}
