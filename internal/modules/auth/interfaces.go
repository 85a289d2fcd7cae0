package auth

import (
	"context"

	"sahayak/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProviderRepository interface {
	CreateWithServices(ctx context.Context, p *domain.ServiceProvider) (int, error)
	GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	GetByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error)
}

type TokenIssuer interface {
	GenerateToken(subject, role string) (string, error)
}
