package customer

import (
	"context"
	"errors"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"
)

type Service struct {
	customers CustomerRepository
	rentals   RentalRepository
}

func NewService(customers CustomerRepository, rentals RentalRepository) *Service {
	return &Service{customers: customers, rentals: rentals}
}

func (s *Service) List(ctx context.Context, req ListRequest) ([]domain.Customer, int64, error) {
	return s.customers.List(ctx, repository.CustomerFilter{
		Query:  req.Q,
		Offset: req.Offset(),
		Limit:  req.Normalize().Limit,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	rentals, _, err := s.rentals.List(ctx, repository.RentalFilter{CustomerID: id})
	if err != nil {
		return nil, err
	}
	return &Detail{Customer: *c, Rentals: rentals}, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Customer, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		c.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LicenseNo != nil {
		c.LicenseNo = *req.LicenseNo
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.customers.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateLicense
		}
		return nil, err
	}
	return c, nil
}
