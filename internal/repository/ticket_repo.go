package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sahayak/internal/domain"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return normalize(r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error, "ticket")
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, normalize(err, "ticket")
	}
	return &t, nil
}

// ListByRaiser lists tickets raised by a user or by a provider, per role.
func (r *TicketRepository) ListByRaiser(ctx context.Context, role domain.Role, id string) ([]domain.Ticket, error) {
	col := "user_id"
	if role == domain.RoleProvider {
		col = "provider_id"
	}
	var out []domain.Ticket
	err := r.db.WithContext(ctx).Where(col+" = ?", id).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *TicketRepository) List(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Ticket
	err := q.Find(&out).Error
	return out, err
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	res := r.db.WithContext(ctx).Model(&domain.Ticket{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, normalize(gorm.ErrRecordNotFound, "ticket")
	}
	return r.GetByID(ctx, id)
}
