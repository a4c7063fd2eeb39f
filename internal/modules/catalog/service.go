package catalog

import (
	"context"
	"errors"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"

	"github.com/shopspring/decimal"
)

type Service struct {
	store *repository.Store
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store}
}

/* ---------- PUBLIC ---------- */

// ListVehicles serves both the public catalog and the admin fleet view.
// Decommissioned vehicles are hidden unless includeRetired is set.
func (s *Service) ListVehicles(ctx context.Context, req ListRequest, includeRetired bool) ([]domain.Vehicle, int64, error) {
	f, err := buildFilter(req)
	if err != nil {
		return nil, 0, err
	}
	if !includeRetired {
		f.ExcludeStatus = []domain.VehicleStatus{domain.VehicleDecommissioned}
	}
	return s.store.Vehicles.List(ctx, f)
}

// GetVehicle returns a vehicle; the public view treats retired vehicles as missing.
func (s *Service) GetVehicle(ctx context.Context, id int64, includeRetired bool) (*domain.Vehicle, error) {
	v, err := s.store.Vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if !includeRetired && v.Status == domain.VehicleDecommissioned {
		return nil, ErrVehicleNotFound
	}
	return v, nil
}

func buildFilter(req ListRequest) (repository.VehicleFilter, error) {
	p := req.Normalize()
	f := repository.VehicleFilter{
		Category: strings.TrimSpace(req.Category),
		Location: strings.TrimSpace(req.Location),
		Brand:    strings.TrimSpace(req.Brand),
		Query:    req.Q,
		MinSeats: req.MinSeats,
		HasAC:    req.AC,
		Status:   domain.VehicleStatus(req.Status),
		Sort:     repository.VehicleSort(req.Sort),
		Offset:   p.Offset(),
		Limit:    p.Limit,
	}

	if f.Sort != "" && !repository.ValidVehicleSort(f.Sort) {
		return f, ErrInvalidSort
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, ErrManualStatus
	}

	var err error
	if f.MinRate, err = parseRate(req.MinRate); err != nil {
		return f, err
	}
	if f.MaxRate, err = parseRate(req.MaxRate); err != nil {
		return f, err
	}

	from, err := domain.ParseOptionalDate(req.AvailableFrom)
	if err != nil {
		return f, ErrInvalidDate
	}
	to, err := domain.ParseOptionalDate(req.AvailableTo)
	if err != nil {
		return f, ErrInvalidDate
	}
	if from != nil && to != nil && from.After(*to) {
		return f, ErrInvalidRange
	}
	f.AvailableFrom, f.AvailableTo = from, to
	return f, nil
}

func parseRate(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil, ErrInvalidRate
	}
	return &d, nil
}

/* ---------- ADMIN ---------- */

func (s *Service) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if !req.DailyRate.IsPositive() {
		return nil, ErrInvalidRate
	}

	v := &domain.Vehicle{
		Brand:        strings.TrimSpace(req.Brand),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		PlateNumber:  normalizePlate(req.PlateNumber),
		Category:     req.Category,
		Seats:        req.Seats,
		HasAC:        req.HasAC,
		Transmission: req.Transmission,
		FuelType:     strings.TrimSpace(req.FuelType),
		Location:     strings.TrimSpace(req.Location),
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		DailyRate:    req.DailyRate.Round(2),
		Status:       domain.VehicleAvailable,
	}
	if err := s.store.Vehicles.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicatePlate
		}
		return nil, err
	}
	return v, nil
}

// UpdateVehicle applies a partial update. A status change is limited to the
// manual statuses and is refused while the vehicle holds an active rental.
func (s *Service) UpdateVehicle(ctx context.Context, id int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if req.DailyRate != nil && !req.DailyRate.IsPositive() {
		return nil, ErrInvalidRate
	}
	if req.Status != nil && !req.Status.Manual() {
		return nil, ErrManualStatus
	}

	var out *domain.Vehicle
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		v, err := tx.Vehicles.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}

		if req.Status != nil && *req.Status != v.Status {
			busy, err := tx.Rentals.HasActiveForVehicle(ctx, v.ID)
			if err != nil {
				return err
			}
			if busy {
				return ErrVehicleInUse
			}
			v.Status = *req.Status
		}
		applyUpdate(v, req)

		if err := tx.Vehicles.Update(ctx, v); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicatePlate
			}
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecommissionVehicle retires a vehicle. Rows are never deleted so rental
// history keeps its references.
func (s *Service) DecommissionVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	status := domain.VehicleDecommissioned
	return s.UpdateVehicle(ctx, id, UpdateVehicleRequest{Status: &status})
}

func applyUpdate(v *domain.Vehicle, req UpdateVehicleRequest) {
	if req.Brand != nil {
		v.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		v.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.PlateNumber != nil {
		v.PlateNumber = normalizePlate(*req.PlateNumber)
	}
	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.Seats != nil {
		v.Seats = *req.Seats
	}
	if req.HasAC != nil {
		v.HasAC = *req.HasAC
	}
	if req.Transmission != nil {
		v.Transmission = *req.Transmission
	}
	if req.FuelType != nil {
		v.FuelType = strings.TrimSpace(*req.FuelType)
	}
	if req.Location != nil {
		v.Location = strings.TrimSpace(*req.Location)
	}
	if req.ImageURL != nil {
		v.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.DailyRate != nil {
		v.DailyRate = req.DailyRate.Round(2)
	}
}

func normalizePlate(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
