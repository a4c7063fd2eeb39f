package repository

import (
	"context"
	"time"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type PaymentFilter struct {
	Status   domain.PaymentStatus
	Method   domain.PaymentMethod
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

// Create fails with ErrDuplicate when the rental already has a payment.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PaymentRepository) GetByRentalID(ctx context.Context, rentalID int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("rental_id = ?", rentalID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	return translate(r.db.WithContext(ctx).Save(p).Error)
}

func (r *PaymentRepository) List(ctx context.Context, f PaymentFilter) ([]domain.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	if f.DateFrom != nil {
		q = q.Where("payment_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("payment_date <= ?", *f.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	if err := page(q, f.Offset, f.Limit).Order("payment_date DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// ListRevenueBetween returns Paid and Completed payments dated in [from, to].
func (r *PaymentRepository) ListRevenueBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("status IN ?", domain.RevenueStatuses).
		Where("payment_date >= ? AND payment_date <= ?", from, to).
		Order("id ASC").
		Find(&payments).Error
	return payments, err
}

// ListByRentalIDs returns payments keyed by rental id.
func (r *PaymentRepository) ListByRentalIDs(ctx context.Context, rentalIDs []int64) (map[int64]domain.Payment, error) {
	out := make(map[int64]domain.Payment, len(rentalIDs))
	if len(rentalIDs) == 0 {
		return out, nil
	}
	var rows []domain.Payment
	if err := r.db.WithContext(ctx).Where("rental_id IN ?", rentalIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.RentalID] = p
	}
	return out, nil
}
