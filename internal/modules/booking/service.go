package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/internal/domain"
	"carrental/internal/modules/customer"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"
)

type Service struct {
	store          *repository.Store
	defaultStaffID int64
	now            func() time.Time
}

// NewService builds the booking engine. A zero defaultStaffID leaves new
// rentals unassigned.
func NewService(store *repository.Store, defaultStaffID int64) *Service {
	return &Service{
		store:          store,
		defaultStaffID: defaultStaffID,
		now:            time.Now,
	}
}

// SetClock replaces the source of "today" used to reject past start dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreateBooking reserves a vehicle for an inclusive date range. The vehicle row
// is locked while overlapping rentals are checked, the customer is upserted,
// the rental is inserted as Pending Payment and the vehicle becomes Reserved,
// all in one transaction.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Summary, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.Before(domain.Day(s.now())) {
		return nil, ErrStartInPast
	}

	var out *Summary
	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		v, err := tx.Vehicles.GetByIDForUpdate(ctx, req.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}
		if v.Status != domain.VehicleAvailable {
			return ErrVehicleUnavailable
		}

		active, err := tx.Rentals.ListActiveForVehicle(ctx, v.ID)
		if err != nil {
			return err
		}
		if len(overlapping(active, start, end)) > 0 {
			return ErrDatesUnavailable
		}

		total := domain.ComputeTotal(v.DailyRate, start, end)
		if !req.TotalAmount.IsZero() && !req.TotalAmount.Equal(total) {
			return ErrAmountMismatch
		}

		c, err := customer.Upsert(ctx, tx, req.Info)
		if err != nil {
			return fmt.Errorf("upsert customer: %w", err)
		}

		r := &domain.Rental{
			CustomerID:  c.ID,
			VehicleID:   v.ID,
			StartDate:   start,
			EndDate:     end,
			TotalAmount: total,
			Status:      domain.RentalPendingPayment,
		}
		if s.defaultStaffID > 0 {
			staffID := s.defaultStaffID
			r.UserID = &staffID
		}
		if err := tx.Rentals.Create(ctx, r); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				return ErrDatesUnavailable
			}
			return fmt.Errorf("create rental: %w", err)
		}

		if err := tx.Vehicles.UpdateStatus(ctx, v.ID, domain.VehicleReserved); err != nil {
			return fmt.Errorf("reserve vehicle: %w", err)
		}
		v.Status = domain.VehicleReserved

		out = &Summary{
			Rental:   *r,
			Days:     domain.RentalDays(start, end),
			Vehicle:  *v,
			Customer: *c,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckAvailability runs the booking conflict test without writing anything.
func (s *Service) CheckAvailability(ctx context.Context, vehicleID int64, startDate, endDate string) (*Availability, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	v, err := s.store.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	active, err := s.store.Rentals.ListActiveForVehicle(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]DateRange, 0)
	for _, r := range overlapping(active, start, end) {
		conflicts = append(conflicts, DateRange{StartDate: r.StartDate, EndDate: r.EndDate})
	}

	return &Availability{
		VehicleID:      v.ID,
		VehicleStatus:  v.Status,
		Available:      v.Status == domain.VehicleAvailable && len(conflicts) == 0,
		Days:           domain.RentalDays(start, end),
		EstimatedTotal: domain.ComputeTotal(v.DailyRate, start, end),
		Conflicts:      conflicts,
	}, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*Summary, error) {
	r, err := s.store.Rentals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	v, err := s.store.Vehicles.GetByID(ctx, r.VehicleID)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Customers.GetByID(ctx, r.CustomerID)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		Rental:   *r,
		Days:     domain.RentalDays(r.StartDate, r.EndDate),
		Vehicle:  *v,
		Customer: *c,
	}
	p, err := s.store.Payments.GetByRentalID(ctx, r.ID)
	switch {
	case err == nil:
		out.Payment = p
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return out, nil
}

func (s *Service) parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

func overlapping(rentals []domain.Rental, start, end time.Time) []domain.Rental {
	var hits []domain.Rental
	for _, r := range rentals {
		if domain.Overlaps(r.StartDate, r.EndDate, start, end) {
			hits = append(hits, r)
		}
	}
	return hits
}
