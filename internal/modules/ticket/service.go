package ticket

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sahayak/internal/domain"
)

type Service struct {
	tickets  Repository
	bookings BookingReader
	log      *zap.Logger
}

func NewService(tickets Repository, bookings BookingReader, log *zap.Logger) *Service {
	return &Service{tickets: tickets, bookings: bookings, log: log}
}

// Create files a ticket for a customer or provider. A referenced booking must
// be the caller's own (placed by the customer, or assigned to the provider).
func (s *Service) Create(ctx context.Context, raiserID string, role domain.Role, req CreateTicketRequest) (*domain.Ticket, error) {
	t := &domain.Ticket{
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Status:      domain.TicketOpen,
	}
	switch role {
	case domain.RoleUser:
		t.UserID = &raiserID
	case domain.RoleProvider:
		t.ProviderID = &raiserID
	default:
		return nil, ErrRoleCannotFile
	}

	if req.BookingID != nil && *req.BookingID != "" {
		b, err := s.bookings.GetByID(ctx, *req.BookingID)
		if err != nil {
			return nil, err
		}
		if !ownsBooking(b, raiserID, role) {
			return nil, ErrForeignBooking
		}
		t.BookingID = &b.ID
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info("ticket raised",
		zap.String("ticket_id", t.ID),
		zap.String("raiser_id", raiserID),
		zap.String("role", string(role)))
	return t, nil
}

func (s *Service) ListMine(ctx context.Context, raiserID string, role domain.Role) ([]domain.Ticket, error) {
	return s.tickets.ListByRaiser(ctx, role, raiserID)
}

func (s *Service) Get(ctx context.Context, id, principalID string, role domain.Role) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin || raisedBy(t, principalID, role) {
		return t, nil
	}
	return nil, ErrNotRaiser
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Ticket, error) {
	st := domain.TicketStatus(strings.ToUpper(status))
	if st != "" && !st.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.tickets.List(ctx, st)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Ticket, error) {
	st := domain.TicketStatus(strings.ToUpper(status))
	if !st.IsValid() {
		return nil, ErrInvalidStatus
	}
	t, err := s.tickets.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket status changed", zap.String("ticket_id", id), zap.String("status", string(st)))
	return t, nil
}

func ownsBooking(b *domain.Booking, id string, role domain.Role) bool {
	if role == domain.RoleUser {
		return b.UserID == id
	}
	return b.IsAssignedTo(id)
}

func raisedBy(t *domain.Ticket, id string, role domain.Role) bool {
	switch role {
	case domain.RoleUser:
		return t.UserID != nil && *t.UserID == id
	case domain.RoleProvider:
		return t.ProviderID != nil && *t.ProviderID == id
	}
	return false
}
