package report

import (
	"context"
	"sort"
	"time"

	"carrental/internal/domain"

	"github.com/shopspring/decimal"
)

const topN = 10

type Service struct {
	payments  PaymentRepository
	rentals   RentalRepository
	vehicles  VehicleRepository
	customers CustomerRepository
	users     UserRepository
	now       func() time.Time
}

func NewService(
	payments PaymentRepository,
	rentals RentalRepository,
	vehicles VehicleRepository,
	customers CustomerRepository,
	users UserRepository,
) *Service {
	return &Service{
		payments:  payments,
		rentals:   rentals,
		vehicles:  vehicles,
		customers: customers,
		users:     users,
		now:       time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Generate builds the admin report. Missing bounds default to the current
// calendar month.
func (s *Service) Generate(ctx context.Context, req Request) (*Report, error) {
	from, to, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListRevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.ListStartingBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &Report{
		DateFrom:        from,
		DateTo:          to,
		Revenue:         summarizeRevenue(payments),
		RentalsByStatus: make(map[domain.RentalStatus]int),
		TopVehicles:     []VehicleRank{},
		TopCustomers:    []CustomerRank{},
		Staff:           []StaffPerformance{},
	}

	vehicleCounts := make(map[int64]int)
	customerCounts := make(map[int64]int)
	staffRentals := make(map[int64]int)
	for _, r := range rentals {
		out.RentalsByStatus[r.Status]++
		if r.Status == domain.RentalCancelled {
			continue
		}
		vehicleCounts[r.VehicleID]++
		customerCounts[r.CustomerID]++
		if r.UserID != nil {
			staffRentals[*r.UserID]++
		}
	}

	staffRevenue, err := s.revenueByStaff(ctx, payments)
	if err != nil {
		return nil, err
	}

	if out.TopVehicles, err = s.topVehicles(ctx, vehicleCounts); err != nil {
		return nil, err
	}
	if out.TopCustomers, err = s.topCustomers(ctx, customerCounts); err != nil {
		return nil, err
	}
	if out.Staff, err = s.staffPerformance(ctx, staffRentals, staffRevenue); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard returns live counters for the back-office landing page.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	today := domain.Day(s.now())

	vehicles, err := s.vehicles.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentals.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pickups, err := s.rentals.CountPickups(ctx, today)
	if err != nil {
		return nil, err
	}
	returns, err := s.rentals.CountReturns(ctx, today)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Date:             today,
		VehiclesByStatus: vehicles,
		CustomersTotal:   customers,
		RentalsByStatus:  rentals,
		PickupsToday:     pickups,
		ReturnsToday:     returns,
	}, nil
}

func (s *Service) resolveRange(req Request) (time.Time, time.Time, error) {
	today := domain.Day(s.now())
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if req.DateFrom != "" {
		d, err := domain.ParseDate(req.DateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		from = d
	}
	if req.DateTo != "" {
		d, err := domain.ParseDate(req.DateTo)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		to = d
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to, nil
}

func summarizeRevenue(payments []domain.Payment) Revenue {
	rev := Revenue{Total: decimal.Zero, Average: decimal.Zero, Count: len(payments)}
	for _, p := range payments {
		rev.Total = rev.Total.Add(p.Amount)
	}
	if rev.Count > 0 {
		rev.Average = rev.Total.Div(decimal.NewFromInt(int64(rev.Count))).Round(2)
	}
	return rev
}

func (s *Service) revenueByStaff(ctx context.Context, payments []domain.Payment) (map[int64]decimal.Decimal, error) {
	rentalIDs := make([]int64, 0, len(payments))
	for _, p := range payments {
		rentalIDs = append(rentalIDs, p.RentalID)
	}
	rentals, err := s.rentals.ListByIDs(ctx, rentalIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]decimal.Decimal)
	for _, p := range payments {
		r, ok := rentals[p.RentalID]
		if !ok || r.UserID == nil {
			continue
		}
		out[*r.UserID] = out[*r.UserID].Add(p.Amount)
	}
	return out, nil
}

type tally struct {
	id    int64
	count int
}

// rank orders ids by count descending, ties by id, and keeps the first topN.
func rank(counts map[int64]int) []tally {
	out := make([]tally, 0, len(counts))
	for id, n := range counts {
		out = append(out, tally{id: id, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].id < out[j].id
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func ids(ts []tally) []int64 {
	out := make([]int64, len(ts))
	for i, t := range ts {
		out[i] = t.id
	}
	return out
}

func (s *Service) topVehicles(ctx context.Context, counts map[int64]int) ([]VehicleRank, error) {
	ranked := rank(counts)
	vehicles, err := s.vehicles.ListByIDs(ctx, ids(ranked))
	if err != nil {
		return nil, err
	}

	out := make([]VehicleRank, 0, len(ranked))
	for _, t := range ranked {
		v := vehicles[t.id]
		out = append(out, VehicleRank{
			VehicleID:   t.id,
			Brand:       v.Brand,
			Model:       v.Model,
			PlateNumber: v.PlateNumber,
			Rentals:     t.count,
		})
	}
	return out, nil
}

func (s *Service) topCustomers(ctx context.Context, counts map[int64]int) ([]CustomerRank, error) {
	ranked := rank(counts)
	customers, err := s.customers.ListByIDs(ctx, ids(ranked))
	if err != nil {
		return nil, err
	}

	out := make([]CustomerRank, 0, len(ranked))
	for _, t := range ranked {
		c := customers[t.id]
		out = append(out, CustomerRank{
			CustomerID: t.id,
			FullName:   c.FullName,
			LicenseNo:  c.LicenseNo,
			Rentals:    t.count,
		})
	}
	return out, nil
}

func (s *Service) staffPerformance(ctx context.Context, rentals map[int64]int, revenue map[int64]decimal.Decimal) ([]StaffPerformance, error) {
	all := make(map[int64]bool, len(rentals)+len(revenue))
	for id := range rentals {
		all[id] = true
	}
	for id := range revenue {
		all[id] = true
	}
	staffIDs := make([]int64, 0, len(all))
	for id := range all {
		staffIDs = append(staffIDs, id)
	}
	sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })

	users, err := s.users.ListByIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}

	out := make([]StaffPerformance, 0, len(staffIDs))
	for _, id := range staffIDs {
		u := users[id]
		out = append(out, StaffPerformance{
			UserID:   id,
			Username: u.Username,
			FullName: u.FullName,
			Rentals:  rentals[id],
			Revenue:  revenue[id],
		})
	}
	return out, nil
}
