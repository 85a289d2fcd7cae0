package repository

import (
	"context"

	"gorm.io/gorm"

	"sahayak/internal/domain"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// CreateOnce inserts the booking's only rating. The existence check and the
// insert share a transaction; a racing insert that slips past the check is
// caught by the unique index on booking_id.
func (r *RatingRepository) CreateOnce(ctx context.Context, rating *domain.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Rating{}).Where("booking_id = ?", rating.BookingID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyRated
		}
		return tx.Create(rating).Error
	})
	if IsUniqueViolation(err) {
		return ErrAlreadyRated
	}
	return err
}

func (r *RatingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Rating, error) {
	var rating domain.Rating
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rating).Error; err != nil {
		return nil, normalize(err, "rating")
	}
	return &rating, nil
}

// Update rewrites stars and review of the rating userID left on bookingID.
func (r *RatingRepository) Update(ctx context.Context, bookingID, userID string, stars int, review string) (*domain.Rating, error) {
	res := r.db.WithContext(ctx).Model(&domain.Rating{}).
		Where("booking_id = ? AND user_id = ?", bookingID, userID).
		Updates(map[string]any{"stars": stars, "review": review})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, normalize(gorm.ErrRecordNotFound, "rating")
	}
	return r.GetByBookingID(ctx, bookingID)
}

func (r *RatingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Rating, error) {
	var out []domain.Rating
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ProviderSummary returns the average stars and rating count of a provider.
func (r *RatingRepository) ProviderSummary(ctx context.Context, providerID string) (float64, int64, error) {
	var row struct {
		Avg float64
		N   int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Rating{}).
		Select("COALESCE(AVG(stars), 0) AS avg, COUNT(*) AS n").
		Where("provider_id = ?", providerID).
		Scan(&row).Error
	return row.Avg, row.N, err
}
