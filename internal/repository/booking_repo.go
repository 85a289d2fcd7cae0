package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sahayak/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return normalize(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error, "booking")
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Rating").
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, normalize(err, "booking")
	}
	return &b, nil
}

func (r *BookingRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&b).Error; err != nil {
		return nil, normalize(err, "booking")
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Provider").
		Preload("Rating").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		Where("provider_id = ?", providerID).
		Order("date").
		Find(&out).Error
	return out, err
}

// ListAvailable returns PENDING bookings a provider of categoryID may accept.
func (r *BookingRepository) ListAvailable(ctx context.Context, categoryID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("service_category_id = ? AND status = ?", categoryID, domain.BookingPending).
		Order("date").
		Find(&out).Error
	return out, err
}

// UpdateGuarded applies updates in a single conditional UPDATE. It reports
// false when no row matched the id plus guard, leaving the caller to work out
// why.
func (r *BookingRepository) UpdateGuarded(ctx context.Context, id string, guard domain.BookingGuard, updates map[string]any) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id)
	if guard.Status != "" {
		q = q.Where("status = ?", guard.Status)
	}
	if guard.UserID != "" {
		q = q.Where("user_id = ?", guard.UserID)
	}
	if guard.ProviderID != "" {
		q = q.Where("provider_id = ?", guard.ProviderID)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetOrderID attaches a gateway order to a completed, unpaid booking owned by userID.
func (r *BookingRepository) SetOrderID(ctx context.Context, id, userID, orderID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND user_id = ? AND status = ? AND is_paid = ?", id, userID, domain.BookingCompleted, false).
		Update("order_id", orderID)
	if res.Error != nil {
		return false, normalize(res.Error, "payment order")
	}
	return res.RowsAffected == 1, nil
}

// MarkPaid stamps the verified payment once. A second call for the same order
// reports false and changes nothing.
func (r *BookingRepository) MarkPaid(ctx context.Context, orderID, paymentID, signature string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("order_id = ? AND is_paid = ? AND status = ?", orderID, false, domain.BookingCompleted).
		Updates(map[string]any{
			"is_paid":             true,
			"payment_id":          paymentID,
			"payment_signature":   signature,
			"payment_verified_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status domain.BookingStatus
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := map[domain.BookingStatus]int64{
		domain.BookingPending:   0,
		domain.BookingAccepted:  0,
		domain.BookingCompleted: 0,
		domain.BookingCancelled: 0,
	}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *BookingRepository) PaidRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("COALESCE(SUM(base_price), 0)").
		Where("is_paid = ?", true).
		Scan(&total).Error
	return total, err
}
