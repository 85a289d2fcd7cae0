package catalog

import (
	"context"

	"sahayak/internal/domain"
	"sahayak/internal/repository"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *domain.ServiceCategory) error
	GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error)
	ListCategories(ctx context.Context) ([]domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.ServiceCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateService(ctx context.Context, s *domain.Service) error
	GetService(ctx context.Context, id string) (*domain.Service, error)
	ListServices(ctx context.Context, categoryID string) ([]domain.Service, error)
	UpdateService(ctx context.Context, id string, updates map[string]any) (*domain.Service, error)
	DeleteServiceCascade(ctx context.Context, id string) (*repository.CascadeResult, error)
}
