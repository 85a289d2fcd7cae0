package rating

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/pkg/apperror"
)

type Service struct {
	ratings  RatingRepository
	bookings BookingReader
	log      *zap.Logger
}

func NewService(ratings RatingRepository, bookings BookingReader, log *zap.Logger) *Service {
	return &Service{ratings: ratings, bookings: bookings, log: log}
}

// Create stores the single rating of a completed booking. Provider and
// service are taken from the booking, never from the caller.
func (s *Service) Create(ctx context.Context, userID, bookingID string, stars int, review string) (*domain.Rating, error) {
	if !domain.ValidStars(stars) {
		return nil, ErrInvalidStars
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status != domain.BookingCompleted || b.ProviderID == nil {
		return nil, ErrNotCompleted
	}

	r := &domain.Rating{
		BookingID:  b.ID,
		UserID:     userID,
		ProviderID: *b.ProviderID,
		ServiceID:  b.ServiceID,
		Stars:      stars,
		Review:     strings.TrimSpace(review),
	}
	if err := s.ratings.CreateOnce(ctx, r); err != nil {
		return nil, err
	}

	s.log.Info("rating created", zap.String("booking_id", b.ID), zap.Int("stars", stars))
	return r, nil
}

func (s *Service) Update(ctx context.Context, userID, bookingID string, stars int, review string) (*domain.Rating, error) {
	if !domain.ValidStars(stars) {
		return nil, ErrInvalidStars
	}
	return s.ratings.Update(ctx, bookingID, userID, stars, strings.TrimSpace(review))
}

// Check reports whether a booking has been rated. The booking's customer, its
// assigned provider and admins may ask.
func (s *Service) Check(ctx context.Context, bookingID, principalID string, role domain.Role) (*CheckResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canSee(b, principalID, role) {
		return nil, ErrNotVisible
	}

	r, err := s.ratings.GetByBookingID(ctx, bookingID)
	if errors.Is(err, apperror.ErrNotFound) {
		return &CheckResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &CheckResult{HasReviewed: true, Review: r}, nil
}

func (s *Service) ListForProvider(ctx context.Context, providerID string) (*ProviderRatings, error) {
	avg, count, err := s.ratings.ProviderSummary(ctx, providerID)
	if err != nil {
		return nil, err
	}
	list, err := s.ratings.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Rating{}
	}
	return &ProviderRatings{
		Average: math.Round(avg*10) / 10,
		Count:   count,
		Ratings: list,
	}, nil
}

func canSee(b *domain.Booking, principalID string, role domain.Role) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return b.UserID == principalID
	case domain.RoleProvider:
		return b.IsAssignedTo(principalID)
	}
	return false
}
