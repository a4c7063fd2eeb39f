package report

import (
	"context"
	"time"

	"carrental/internal/domain"
)

type PaymentRepository interface {
	ListRevenueBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error)
}

type RentalRepository interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Rental, error)
	CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error)
	CountPickups(ctx context.Context, day time.Time) (int64, error)
	CountReturns(ctx context.Context, day time.Time) (int64, error)
}

type VehicleRepository interface {
	CountByStatus(ctx context.Context) (map[domain.VehicleStatus]int64, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Vehicle, error)
}

type CustomerRepository interface {
	Count(ctx context.Context) (int64, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Customer, error)
}

// UserRepository resolves staff names for the performance table.
type UserRepository interface {
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error)
}
