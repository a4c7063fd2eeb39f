package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoreService(st *repository.Store) *Service {
	return NewService(st.Payments, st.Rentals, st.Vehicles, st.Customers, st.Users)
}

func addPayment(t *testing.T, st *repository.Store, rentalID int64, amount int64, day string, status domain.PaymentStatus) {
	t.Helper()
	require.NoError(t, st.Payments.Create(context.Background(), &domain.Payment{
		RentalID:      rentalID,
		Amount:        decimal.NewFromInt(amount),
		PaymentDate:   testutil.Date(t, day),
		PaymentMethod: domain.MethodCash,
		Status:        status,
	}))
}

func assign(t *testing.T, st *repository.Store, r *domain.Rental, userID int64) {
	t.Helper()
	r.UserID = &userID
	require.NoError(t, st.Rentals.Update(context.Background(), r))
}

func TestGenerate(t *testing.T) {
	st := testutil.NewStore(t)
	svc := newStoreService(st)
	svc.SetClock(testutil.Clock(t, "2025-06-15"))
	ctx := context.Background()

	staff := testutil.CreateUser(t, st, "desk", domain.RoleStaff, "hash")
	v1 := testutil.CreateVehicle(t, st, "RPT-001", 1000)
	v2 := testutil.CreateVehicle(t, st, "RPT-002", 1000)
	c1 := testutil.CreateCustomer(t, st, "RPT-C1")
	c2 := testutil.CreateCustomer(t, st, "RPT-C2")

	r1 := testutil.CreateRental(t, st, v1.ID, c1.ID, "2025-06-01", "2025-06-02", domain.RentalCompleted)
	r2 := testutil.CreateRental(t, st, v1.ID, c2.ID, "2025-06-10", "2025-06-11", domain.RentalOngoing)
	r3 := testutil.CreateRental(t, st, v2.ID, c1.ID, "2025-06-20", "2025-06-21", domain.RentalCancelled)
	testutil.CreateRental(t, st, v2.ID, c2.ID, "2025-07-05", "2025-07-06", domain.RentalPendingPayment)
	assign(t, st, r1, staff.ID)
	assign(t, st, r2, staff.ID)

	addPayment(t, st, r1.ID, 2000, "2025-06-01", domain.PaymentCompleted)
	addPayment(t, st, r2.ID, 1000, "2025-06-10", domain.PaymentPaid)
	addPayment(t, st, r3.ID, 500, "2025-06-19", domain.PaymentRefunded)

	rep, err := svc.Generate(ctx, Request{})
	require.NoError(t, err)

	assert.True(t, rep.DateFrom.Equal(testutil.Date(t, "2025-06-01")))
	assert.True(t, rep.DateTo.Equal(testutil.Date(t, "2025-06-30")))

	assert.Equal(t, 2, rep.Revenue.Count)
	assert.True(t, rep.Revenue.Total.Equal(decimal.NewFromInt(3000)), rep.Revenue.Total.String())
	assert.True(t, rep.Revenue.Average.Equal(decimal.NewFromInt(1500)), rep.Revenue.Average.String())

	assert.Equal(t, map[domain.RentalStatus]int{
		domain.RentalCompleted: 1,
		domain.RentalOngoing:   1,
		domain.RentalCancelled: 1,
	}, rep.RentalsByStatus)

	require.Len(t, rep.TopVehicles, 1)
	assert.Equal(t, v1.ID, rep.TopVehicles[0].VehicleID)
	assert.Equal(t, 2, rep.TopVehicles[0].Rentals)
	assert.Equal(t, "RPT-001", rep.TopVehicles[0].PlateNumber)

	require.Len(t, rep.TopCustomers, 2)
	assert.Equal(t, c1.ID, rep.TopCustomers[0].CustomerID)
	assert.Equal(t, c2.ID, rep.TopCustomers[1].CustomerID)

	require.Len(t, rep.Staff, 1)
	assert.Equal(t, "desk", rep.Staff[0].Username)
	assert.Equal(t, 2, rep.Staff[0].Rentals)
	assert.True(t, rep.Staff[0].Revenue.Equal(decimal.NewFromInt(3000)))
}

func TestGenerate_ExplicitRange(t *testing.T) {
	st := testutil.NewStore(t)
	svc := newStoreService(st)
	ctx := context.Background()

	rep, err := svc.Generate(ctx, Request{DateFrom: "2025-01-01", DateTo: "2025-01-31"})
	require.NoError(t, err)
	assert.Zero(t, rep.Revenue.Count)
	assert.True(t, rep.Revenue.Total.IsZero())
	assert.Empty(t, rep.TopVehicles)

	_, err = svc.Generate(ctx, Request{DateFrom: "2025-02-01", DateTo: "2025-01-01"})
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.Generate(ctx, Request{DateFrom: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRank_TiesBrokenByID(t *testing.T) {
	counts := map[int64]int{}
	for id := int64(1); id <= 12; id++ {
		counts[id] = 1
	}
	counts[12] = 3

	got := rank(counts)
	require.Len(t, got, topN)
	assert.Equal(t, int64(12), got[0].id)
	assert.Equal(t, []int64{12, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(got))
}

func TestDashboard(t *testing.T) {
	st := testutil.NewStore(t)
	svc := newStoreService(st)
	svc.SetClock(func() time.Time { return testutil.Date(t, "2025-06-05").Add(15 * time.Hour) })
	ctx := context.Background()

	v1 := testutil.CreateVehicle(t, st, "DSH-001", 1000)
	v2 := testutil.CreateVehicle(t, st, "DSH-002", 1000)
	require.NoError(t, st.Vehicles.UpdateStatus(ctx, v2.ID, domain.VehicleRented))
	c := testutil.CreateCustomer(t, st, "DSH-C")

	testutil.CreateRental(t, st, v1.ID, c.ID, "2025-06-05", "2025-06-07", domain.RentalPendingPayment)
	testutil.CreateRental(t, st, v2.ID, c.ID, "2025-06-01", "2025-06-05", domain.RentalOngoing)
	testutil.CreateRental(t, st, v1.ID, c.ID, "2025-06-05", "2025-06-05", domain.RentalCancelled)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.VehiclesByStatus[domain.VehicleAvailable])
	assert.Equal(t, int64(1), d.VehiclesByStatus[domain.VehicleRented])
	assert.Equal(t, int64(1), d.CustomersTotal)
	assert.Equal(t, int64(1), d.RentalsByStatus[domain.RentalOngoing])
	assert.Equal(t, int64(1), d.PickupsToday)
	assert.Equal(t, int64(1), d.ReturnsToday)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) ListRevenueBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type mockRentalRepo struct{ mock.Mock }

func (m *mockRentalRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Rental, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.RentalStatus]int64), args.Error(1)
}

func (m *mockRentalRepo) CountPickups(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRentalRepo) CountReturns(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

type mockVehicleRepo struct{ mock.Mock }

func (m *mockVehicleRepo) CountByStatus(ctx context.Context) (map[domain.VehicleStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.VehicleStatus]int64), args.Error(1)
}

func (m *mockVehicleRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Vehicle, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.Vehicle), args.Error(1)
}

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCustomerRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.Customer), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.User), args.Error(1)
}

type mocks struct {
	payments  *mockPaymentRepo
	rentals   *mockRentalRepo
	vehicles  *mockVehicleRepo
	customers *mockCustomerRepo
	users     *mockUserRepo
}

func newMockService(t *testing.T) (*Service, mocks) {
	t.Helper()
	m := mocks{
		payments:  new(mockPaymentRepo),
		rentals:   new(mockRentalRepo),
		vehicles:  new(mockVehicleRepo),
		customers: new(mockCustomerRepo),
		users:     new(mockUserRepo),
	}
	svc := NewService(m.payments, m.rentals, m.vehicles, m.customers, m.users)
	svc.SetClock(testutil.Clock(t, "2025-06-15"))
	return svc, m
}

func TestGenerate_TopVehiclesCappedAndCancelledIgnored(t *testing.T) {
	svc, m := newMockService(t)
	from := testutil.Date(t, "2025-06-01")
	to := testutil.Date(t, "2025-06-30")

	var rentals []domain.Rental
	for id := int64(1); id <= 12; id++ {
		rentals = append(rentals, domain.Rental{ID: id, VehicleID: id, CustomerID: 100, Status: domain.RentalOngoing})
	}
	rentals = append(rentals,
		domain.Rental{ID: 13, VehicleID: 13, CustomerID: 200, Status: domain.RentalCancelled},
		domain.Rental{ID: 14, VehicleID: 13, CustomerID: 200, Status: domain.RentalCancelled},
	)

	wantVehicles := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	fleet := make(map[int64]domain.Vehicle)
	for _, id := range wantVehicles {
		fleet[id] = domain.Vehicle{ID: id, Brand: "Toyota"}
	}

	m.payments.On("ListRevenueBetween", mock.Anything, from, to).Return([]domain.Payment{}, nil)
	m.rentals.On("ListStartingBetween", mock.Anything, from, to).Return(rentals, nil)
	m.rentals.On("ListByIDs", mock.Anything, mock.Anything).Return(map[int64]domain.Rental{}, nil)
	m.vehicles.On("ListByIDs", mock.Anything, wantVehicles).Return(fleet, nil)
	m.customers.On("ListByIDs", mock.Anything, []int64{100}).
		Return(map[int64]domain.Customer{100: {ID: 100, FullName: "Regular"}}, nil)
	m.users.On("ListByIDs", mock.Anything, mock.Anything).Return(map[int64]domain.User{}, nil)

	rep, err := svc.Generate(context.Background(), Request{})
	require.NoError(t, err)

	require.Len(t, rep.TopVehicles, topN)
	for i, v := range rep.TopVehicles {
		assert.Equal(t, wantVehicles[i], v.VehicleID)
		assert.Equal(t, 1, v.Rentals)
	}
	require.Len(t, rep.TopCustomers, 1)
	assert.Equal(t, "Regular", rep.TopCustomers[0].FullName)
	assert.Equal(t, 12, rep.TopCustomers[0].Rentals)
	assert.Equal(t, 2, rep.RentalsByStatus[domain.RentalCancelled])
	assert.Empty(t, rep.Staff)

	m.vehicles.AssertExpectations(t)
	m.customers.AssertExpectations(t)
}

func TestGenerate_StoreErrorStopsReport(t *testing.T) {
	svc, m := newMockService(t)
	boom := errors.New("db down")
	m.payments.On("ListRevenueBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	_, err := svc.Generate(context.Background(), Request{})

	assert.ErrorIs(t, err, boom)
	m.rentals.AssertNotCalled(t, "ListStartingBetween", mock.Anything, mock.Anything, mock.Anything)
}
