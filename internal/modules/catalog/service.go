package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/repository"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

/* ---------- CATEGORIES ---------- */

func (s *Service) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.ServiceCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	c := &domain.ServiceCategory{
		Name:        name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("category created", zap.String("category_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*domain.ServiceCategory, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	return s.repo.UpdateCategory(ctx, id, updates)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.log.Info("category deleted", zap.String("category_id", id))
	return nil
}

/* ---------- SERVICES ---------- */

func (s *Service) ListServices(ctx context.Context, categoryID string) ([]domain.Service, error) {
	return s.repo.ListServices(ctx, categoryID)
}

func (s *Service) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	svc := &domain.Service{
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	s.log.Info("service created",
		zap.String("service_id", svc.ID),
		zap.String("category_id", svc.CategoryID),
		zap.Float64("price", svc.Price))
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (*domain.Service, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *req.Price
	}
	return s.repo.UpdateService(ctx, id, updates)
}

// DeleteService removes the service and every booking, rating and provider
// link that references it.
func (s *Service) DeleteService(ctx context.Context, id string) (*repository.CascadeResult, error) {
	res, err := s.repo.DeleteServiceCascade(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("service deleted",
		zap.String("service_id", id),
		zap.Int64("bookings", res.Bookings),
		zap.Int64("ratings", res.Ratings),
		zap.Int64("messages", res.Messages),
		zap.Int64("tickets_detached", res.TicketsDetached),
		zap.Int64("provider_links", res.ProviderLinks))
	return res, nil
}
