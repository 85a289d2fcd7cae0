package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sahayak/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return normalize(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error, "message")
}

func (r *MessageRepository) ListByBooking(ctx context.Context, bookingID string, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at").
		Limit(limit).
		Find(&out).Error
	return out, err
}
