package rental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

type Service struct {
	store *repository.Store
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store}
}

// Transition moves a rental to status to, locking it for the duration.
func (s *Service) Transition(ctx context.Context, id int64, to domain.RentalStatus, actorID *int64, note string) (*domain.Rental, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	var out *domain.Rental
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		r, err := tx.Rentals.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRentalNotFound
			}
			return err
		}
		if err := Apply(ctx, tx, r, to, actorID, note); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	r, err := s.store.Rentals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}

	views, err := s.expand(ctx, []domain.Rental{*r})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) List(ctx context.Context, req ListRequest) ([]View, int64, error) {
	f := repository.RentalFilter{
		Status:     domain.RentalStatus(req.Status),
		VehicleID:  req.VehicleID,
		CustomerID: req.CustomerID,
		UserID:     req.StaffID,
		Query:      req.Q,
		Offset:     req.Offset(),
		Limit:      req.Normalize().Limit,
	}
	if req.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	var err error
	if f.DateFrom, err = domain.ParseOptionalDate(req.DateFrom); err != nil {
		return nil, 0, ErrInvalidDate
	}
	if f.DateTo, err = domain.ParseOptionalDate(req.DateTo); err != nil {
		return nil, 0, ErrInvalidDate
	}

	rentals, total, err := s.store.Rentals.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.expand(ctx, rentals)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Update applies a back-office patch. Reassignment and notes are saved with the
// status change in one transaction.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest, actorID *int64) (*domain.Rental, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var out *domain.Rental
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		r, err := tx.Rentals.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRentalNotFound
			}
			return err
		}

		if req.UserID != nil {
			if err := checkAssignee(ctx, tx, *req.UserID); err != nil {
				return err
			}
			staffID := *req.UserID
			r.UserID = &staffID
		}
		if req.Notes != nil {
			r.Notes = *req.Notes
		}

		if req.Status != nil {
			if err := Apply(ctx, tx, r, *req.Status, actorID, ""); err != nil {
				return err
			}
		} else if err := tx.Rentals.Update(ctx, r); err != nil {
			return fmt.Errorf("update rental: %w", err)
		}

		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func checkAssignee(ctx context.Context, tx *repository.Store, userID int64) error {
	u, err := tx.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidStaff
	}
	if err != nil {
		return err
	}
	if !u.IsActive || !u.Role.Valid() {
		return ErrInvalidStaff
	}
	return nil
}

func (s *Service) Audit(ctx context.Context, id int64) ([]domain.RentalAudit, error) {
	if _, err := s.store.Rentals.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return s.store.Audits.ListByRental(ctx, id)
}

func (s *Service) AuditFeed(ctx context.Context, p ListRequest) ([]domain.RentalAudit, int64, error) {
	return s.store.Audits.List(ctx, p.Offset(), p.Normalize().Limit)
}

// expand attaches vehicle, customer and payment summaries using one query per table.
func (s *Service) expand(ctx context.Context, rentals []domain.Rental) ([]View, error) {
	vehicleIDs := make([]int64, 0, len(rentals))
	customerIDs := make([]int64, 0, len(rentals))
	rentalIDs := make([]int64, 0, len(rentals))
	for _, r := range rentals {
		vehicleIDs = append(vehicleIDs, r.VehicleID)
		customerIDs = append(customerIDs, r.CustomerID)
		rentalIDs = append(rentalIDs, r.ID)
	}

	vehicles, err := s.store.Vehicles.ListByIDs(ctx, vehicleIDs)
	if err != nil {
		return nil, err
	}
	customers, err := s.store.Customers.ListByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.Payments.ListByRentalIDs(ctx, rentalIDs)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(rentals))
	for _, r := range rentals {
		v := View{Rental: r, Days: domain.RentalDays(r.StartDate, r.EndDate)}
		if veh, ok := vehicles[r.VehicleID]; ok {
			v.Vehicle = briefVehicle(veh)
		}
		if c, ok := customers[r.CustomerID]; ok {
			v.Customer = briefCustomer(c)
		}
		if p, ok := payments[r.ID]; ok {
			v.Payment = briefPayment(p)
		}
		views = append(views, v)
	}
	return views, nil
}

// ExpireStalePending cancels Pending Payment rentals created before cutoff,
// one transaction per rental, and returns the ids it cancelled. A rental that
// changed status meanwhile is skipped.
func (s *Service) ExpireStalePending(ctx context.Context, cutoff time.Time) ([]int64, error) {
	stale, err := s.store.Rentals.ListStalePending(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	expired := make([]int64, 0, len(stale))
	for _, candidate := range stale {
		err := s.store.InTx(ctx, func(tx *repository.Store) error {
			r, err := tx.Rentals.GetByIDForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if r.Status != domain.RentalPendingPayment {
				return nil
			}
			if err := Apply(ctx, tx, r, domain.RentalCancelled, nil, "payment window expired"); err != nil {
				return err
			}
			expired = append(expired, r.ID)
			return nil
		})
		if err != nil {
			return expired, fmt.Errorf("expire rental %d: %w", candidate.ID, err)
		}
	}
	return expired, nil
}
