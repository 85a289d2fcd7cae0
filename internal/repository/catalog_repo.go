package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sahayak/internal/domain"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CascadeResult counts the rows removed or detached by DeleteServiceCascade.
type CascadeResult struct {
	Ratings         int64 `json:"ratings"`
	TicketsDetached int64 `json:"tickets_detached"`
	Messages        int64 `json:"messages"`
	Bookings        int64 `json:"bookings"`
	ProviderLinks   int64 `json:"provider_links"`
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	return normalize(r.db.WithContext(ctx).Create(c).Error, "category")
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, normalize(err, "category")
	}
	return &c, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	var out []domain.ServiceCategory
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.ServiceCategory, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.ServiceCategory{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, normalize(res.Error, "category")
		}
	}
	return r.GetCategory(ctx, id)
}

// DeleteCategory refuses while services or providers still point at the category.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var services, providers int64
		if err := tx.Model(&domain.Service{}).Where("category_id = ?", id).Count(&services).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.ServiceProvider{}).Where("category_id = ?", id).Count(&providers).Error; err != nil {
			return err
		}
		if services > 0 || providers > 0 {
			return ErrCategoryInUse
		}

		res := tx.Where("id = ?", id).Delete(&domain.ServiceCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return normalize(gorm.ErrRecordNotFound, "category")
		}
		return nil
	})
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *domain.Service) error {
	if _, err := r.GetCategory(ctx, s.CategoryID); err != nil {
		return err
	}
	return normalize(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error, "service")
}

func (r *CatalogRepository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, normalize(err, "service")
	}
	return &s, nil
}

func (r *CatalogRepository) ListServices(ctx context.Context, categoryID string) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).Preload("Category").Order("name")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	var out []domain.Service
	err := q.Find(&out).Error
	return out, err
}

func (r *CatalogRepository) UpdateService(ctx context.Context, id string, updates map[string]any) (*domain.Service, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Service{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, normalize(res.Error, "service")
		}
	}
	return r.GetService(ctx, id)
}

// DeleteServiceCascade removes a service together with everything that
// references it. Tickets outlive their booking and are detached instead.
func (r *CatalogRepository) DeleteServiceCascade(ctx context.Context, id string) (*CascadeResult, error) {
	out := &CascadeResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.Service{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return normalize(gorm.ErrRecordNotFound, "service")
		}

		bookingIDs := tx.Model(&domain.Booking{}).Select("id").Where("service_id = ?", id)

		res := tx.Where("service_id = ? OR booking_id IN (?)", id, bookingIDs).Delete(&domain.Rating{})
		if res.Error != nil {
			return res.Error
		}
		out.Ratings = res.RowsAffected

		res = tx.Model(&domain.Ticket{}).Where("booking_id IN (?)", bookingIDs).Update("booking_id", nil)
		if res.Error != nil {
			return res.Error
		}
		out.TicketsDetached = res.RowsAffected

		res = tx.Where("booking_id IN (?)", bookingIDs).Delete(&domain.Message{})
		if res.Error != nil {
			return res.Error
		}
		out.Messages = res.RowsAffected

		res = tx.Where("service_id = ?", id).Delete(&domain.Booking{})
		if res.Error != nil {
			return res.Error
		}
		out.Bookings = res.RowsAffected

		res = tx.Where("service_id = ?", id).Delete(&domain.ServiceProviderService{})
		if res.Error != nil {
			return res.Error
		}
		out.ProviderLinks = res.RowsAffected

		return tx.Where("id = ?", id).Delete(&domain.Service{}).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
