package booking

import (
	"context"

	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/relay"
)

type Service struct {
	bookings  BookingRepository
	catalog   ServiceCatalog
	providers ProviderDirectory
	notifier  Notifier
	log       *zap.Logger
}

func NewService(bookings BookingRepository, catalog ServiceCatalog, providers ProviderDirectory, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		bookings:  bookings,
		catalog:   catalog,
		providers: providers,
		notifier:  notifier,
		log:       log,
	}
}

// Create opens a PENDING booking. The service's category is copied onto the
// booking and the base price defaults to the catalog price.
func (s *Service) Create(ctx context.Context, userID string, req CreateBookingRequest) (*domain.Booking, error) {
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if req.BasePrice != nil && *req.BasePrice <= 0 {
		return nil, ErrInvalidPrice
	}

	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	price := svc.Price
	if req.BasePrice != nil {
		price = *req.BasePrice
	}

	b := &domain.Booking{
		UserID:            userID,
		ServiceID:         svc.ID,
		ServiceCategoryID: svc.CategoryID,
		Date:              req.Date.UTC(),
		Status:            domain.BookingPending,
		BasePrice:         price,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created", zap.String("booking_id", b.ID), zap.String("user_id", userID))
	s.notify(relay.EventBookingStatus, b)
	return b, nil
}

// Accept assigns a PENDING booking to an active provider of the booking's category.
func (s *Service) Accept(ctx context.Context, bookingID, providerID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, ErrNotPending
	}

	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.StatusActive {
		return nil, ErrProviderBlocked
	}
	if p.CategoryID != b.ServiceCategoryID {
		return nil, ErrCategoryMismatch
	}

	guard := domain.BookingGuard{Status: domain.BookingPending}
	return s.transition(ctx, bookingID, guard, ErrNotPending, map[string]any{
		"status":      domain.BookingAccepted,
		"provider_id": providerID,
	}, relay.EventBookingStatus)
}

// UpdatePrice re-prices an ACCEPTED booking. Only the assigned provider may do it.
func (s *Service) UpdatePrice(ctx context.Context, bookingID, providerID string, price float64) (*domain.Booking, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	guard := domain.BookingGuard{Status: domain.BookingAccepted, ProviderID: providerID}
	return s.transition(ctx, bookingID, guard, ErrNotAccepted, map[string]any{
		"base_price": price,
	}, relay.EventPriceUpdated)
}

func (s *Service) Complete(ctx context.Context, bookingID, providerID string) (*domain.Booking, error) {
	guard := domain.BookingGuard{Status: domain.BookingAccepted, ProviderID: providerID}
	return s.transition(ctx, bookingID, guard, ErrNotAccepted, map[string]any{
		"status": domain.BookingCompleted,
	}, relay.EventBookingStatus)
}

// Cancel is open to the booking's customer while it is still PENDING.
func (s *Service) Cancel(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
	guard := domain.BookingGuard{Status: domain.BookingPending, UserID: userID}
	return s.transition(ctx, bookingID, guard, ErrNotPending, map[string]any{
		"status": domain.BookingCancelled,
	}, relay.EventBookingStatus)
}

// transition runs one conditional update and, when it matches nothing,
// reads the booking back to report why.
func (s *Service) transition(
	ctx context.Context,
	bookingID string,
	guard domain.BookingGuard,
	wrongState error,
	updates map[string]any,
	event relay.Event,
) (*domain.Booking, error) {
	ok, err := s.bookings.UpdateGuarded(ctx, bookingID, guard, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explain(ctx, bookingID, guard, wrongState)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.log.Info("booking updated",
		zap.String("booking_id", b.ID),
		zap.String("status", b.Status.String()),
		zap.Float64("base_price", b.BasePrice),
	)
	s.notify(event, b)
	return b, nil
}

func (s *Service) explain(ctx context.Context, bookingID string, guard domain.BookingGuard, wrongState error) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if guard.UserID != "" && b.UserID != guard.UserID {
		return ErrNotOwner
	}
	if guard.Status != "" && b.Status != guard.Status {
		return wrongState
	}
	if guard.ProviderID != "" && !b.IsAssignedTo(guard.ProviderID) {
		return ErrNotAssigned
	}
	// The row matched on re-read, so a concurrent writer got there first.
	return wrongState
}

// Get returns a booking visible to the caller: its customer, its provider,
// any provider while it is still open, or an admin.
func (s *Service) Get(ctx context.Context, bookingID, principalID string, role domain.Role) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch role {
	case domain.RoleAdmin:
		return b, nil
	case domain.RoleUser:
		if b.UserID == principalID {
			return b, nil
		}
		return nil, ErrNotOwner
	case domain.RoleProvider:
		if b.IsAssignedTo(principalID) || b.Status == domain.BookingPending {
			return b, nil
		}
		return nil, ErrNotAssigned
	}
	return nil, ErrNotOwner
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListAssigned(ctx context.Context, providerID string) ([]domain.Booking, error) {
	return s.bookings.ListByProvider(ctx, providerID)
}

// ListAvailable lists open bookings in the provider's category.
func (s *Service) ListAvailable(ctx context.Context, providerID string) ([]domain.Booking, error) {
	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListAvailable(ctx, p.CategoryID)
}

func (s *Service) notify(event relay.Event, b *domain.Booking) {
	if s.notifier == nil {
		return
	}
	s.notifier.Fire(event, StatusEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		ProviderID: b.ProviderID,
		Status:     b.Status.String(),
		BasePrice:  b.BasePrice,
	})
}
