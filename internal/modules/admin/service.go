package admin

import (
	"context"

	"go.uber.org/zap"

	"sahayak/internal/domain"
)

type Service struct {
	users     UserRepository
	providers ProviderRepository
	bookings  BookingStats
	log       *zap.Logger
}

func NewService(users UserRepository, providers ProviderRepository, bookings BookingStats, log *zap.Logger) *Service {
	return &Service{users: users, providers: providers, bookings: bookings, log: log}
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) (*UserListResponse, error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.users.List(ctx, domain.RoleUser, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return &UserListResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) ListProviders(ctx context.Context, categoryID string, page, limit int) (*ProviderListResponse, error) {
	page, limit = normalizePage(page, limit)
	providers, total, err := s.providers.List(ctx, categoryID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []domain.ServiceProvider{}
	}
	return &ProviderListResponse{Providers: providers, Total: total, Page: page, Limit: limit}, nil
}

// SetUserStatus blocks or unblocks a customer. Blocked accounts are rejected
// by the auth middleware on their next request.
func (s *Service) SetUserStatus(ctx context.Context, adminID, userID string, status domain.AccountStatus) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role == domain.RoleAdmin {
		return nil, ErrAdminImmutable
	}
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	u.Status = status

	s.log.Info("user status changed",
		zap.String("admin_id", adminID),
		zap.String("user_id", userID),
		zap.String("status", string(status)))
	return u, nil
}

func (s *Service) SetProviderStatus(ctx context.Context, adminID, providerID string, status domain.AccountStatus) (*domain.ServiceProvider, error) {
	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if err := s.providers.UpdateStatus(ctx, providerID, status); err != nil {
		return nil, err
	}
	p.Status = status

	s.log.Info("provider status changed",
		zap.String("admin_id", adminID),
		zap.String("provider_id", providerID),
		zap.String("status", string(status)))
	return p, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	users, err := s.users.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	providers, err := s.providers.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.bookings.PaidRevenue(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	return &StatisticsResponse{
		TotalUsers:     users,
		TotalProviders: providers,
		TotalBookings:  total,
		Bookings:       byStatus,
		PaidRevenue:    revenue,
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
