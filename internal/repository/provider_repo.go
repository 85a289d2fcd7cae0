package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sahayak/internal/domain"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// CreateWithServices inserts the provider and links it to every service of
// its category in one transaction. A category without services is rejected
// and nothing is written.
func (r *ProviderRepository) CreateWithServices(ctx context.Context, p *domain.ServiceProvider) (int, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	var linked int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var serviceIDs []string
		if err := tx.Model(&domain.Service{}).
			Where("category_id = ?", p.CategoryID).
			Order("created_at").
			Pluck("id", &serviceIDs).Error; err != nil {
			return err
		}
		if len(serviceIDs) == 0 {
			return ErrEmptyCategory
		}

		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return normalize(err, "provider")
		}

		links := make([]domain.ServiceProviderService, 0, len(serviceIDs))
		for _, sid := range serviceIDs {
			links = append(links, domain.ServiceProviderService{ProviderID: p.ID, ServiceID: sid})
		}
		if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
			return normalize(err, "provider service link")
		}
		linked = len(links)
		return nil
	})
	return linked, err
}

func (r *ProviderRepository) GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	var p domain.ServiceProvider
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, normalize(err, "provider")
	}
	return &p, nil
}

func (r *ProviderRepository) GetByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error) {
	var p domain.ServiceProvider
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&p).Error
	if err != nil {
		return nil, normalize(err, "provider")
	}
	return &p, nil
}

func (r *ProviderRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error {
	return r.update(ctx, id, map[string]any{"status": status})
}

func (r *ProviderRepository) UpdateProfile(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.update(ctx, id, updates)
}

func (r *ProviderRepository) SetImageURL(ctx context.Context, id, url string) error {
	return r.update(ctx, id, map[string]any{"image_url": url})
}

func (r *ProviderRepository) update(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.ServiceProvider{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return normalize(gorm.ErrRecordNotFound, "provider")
	}
	return nil
}

func (r *ProviderRepository) List(ctx context.Context, categoryID string, offset, limit int) ([]domain.ServiceProvider, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ServiceProvider{})
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.ServiceProvider
	err := q.Preload("Category").Order("created_at DESC").Offset(offset).Limit(limit).Find(&out).Error
	return out, total, err
}

func (r *ProviderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ServiceProvider{}).Count(&n).Error
	return n, err
}

func (r *ProviderRepository) ServiceIDs(ctx context.Context, providerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.ServiceProviderService{}).
		Where("provider_id = ?", providerID).
		Pluck("service_id", &ids).Error
	return ids, err
}
