package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories over one connection or transaction.
type Store struct {
	db *gorm.DB

	Users     *UserRepository
	Vehicles  *VehicleRepository
	Customers *CustomerRepository
	Rentals   *RentalRepository
	Payments  *PaymentRepository
	Audits    *AuditRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepository(db),
		Vehicles:  NewVehicleRepository(db),
		Customers: NewCustomerRepository(db),
		Rentals:   NewRentalRepository(db),
		Payments:  NewPaymentRepository(db),
		Audits:    NewAuditRepository(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

// InTx runs fn with a Store bound to a single transaction. Any error from fn
// rolls the whole transaction back.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// page applies offset and limit; a non-positive limit means no limit.
func page(q *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
