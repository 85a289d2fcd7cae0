package ticket

import (
	"context"

	"sahayak/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByRaiser(ctx context.Context, role domain.Role, id string) ([]domain.Ticket, error)
	List(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}
