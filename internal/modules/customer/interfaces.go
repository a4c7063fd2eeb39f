package customer

import (
	"context"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

type CustomerRepository interface {
	List(ctx context.Context, f repository.CustomerFilter) ([]domain.Customer, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
}

// RentalRepository supplies a customer's rental history.
type RentalRepository interface {
	List(ctx context.Context, f repository.RentalFilter) ([]domain.Rental, int64, error)
}
