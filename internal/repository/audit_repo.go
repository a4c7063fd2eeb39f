package repository

import (
	"context"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, a *domain.RentalAudit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AuditRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.RentalAudit, error) {
	var rows []domain.RentalAudit
	err := r.db.WithContext(ctx).
		Where("rental_id = ?", rentalID).
		Order("changed_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// List returns the most recent audit rows first.
func (r *AuditRepository) List(ctx context.Context, offset, limit int) ([]domain.RentalAudit, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.RentalAudit{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.RentalAudit
	if err := page(q, offset, limit).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
