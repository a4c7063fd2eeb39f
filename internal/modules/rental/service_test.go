package rental

import (
	"context"
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/apperr"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *repository.Store
	svc     *Service
	vehicle *domain.Vehicle
	rental  *domain.Rental
}

// newFixture books one vehicle the way the booking flow leaves it:
// rental Pending Payment, vehicle Reserved.
func newFixture(t *testing.T) fixture {
	t.Helper()
	st := testutil.NewStore(t)
	v := testutil.CreateVehicle(t, st, "RNT-001", 1000)
	c := testutil.CreateCustomer(t, st, "N01-66-666666")
	r := testutil.CreateRental(t, st, v.ID, c.ID, "2025-06-01", "2025-06-05", domain.RentalPendingPayment)
	require.NoError(t, st.Vehicles.UpdateStatus(context.Background(), v.ID, domain.VehicleReserved))
	return fixture{store: st, svc: NewService(st), vehicle: v, rental: r}
}

func (f fixture) vehicleStatus(t *testing.T) domain.VehicleStatus {
	t.Helper()
	v, err := f.store.Vehicles.GetByID(context.Background(), f.vehicle.ID)
	require.NoError(t, err)
	return v.Status
}

func TestTransition_FullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actor := int64(5)

	r, err := f.svc.Transition(ctx, f.rental.ID, domain.RentalOngoing, &actor, "paid at counter")
	require.NoError(t, err)
	assert.Equal(t, domain.RentalOngoing, r.Status)
	assert.Equal(t, domain.VehicleRented, f.vehicleStatus(t))

	r, err = f.svc.Transition(ctx, f.rental.ID, domain.RentalCompleted, &actor, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RentalCompleted, r.Status)
	assert.Equal(t, domain.VehicleAvailable, f.vehicleStatus(t))

	audit, err := f.svc.Audit(ctx, f.rental.ID)
	require.NoError(t, err)
	require.Len(t, audit, 2)
	assert.Equal(t, domain.RentalPendingPayment, audit[0].OldStatus)
	assert.Equal(t, domain.RentalOngoing, audit[0].NewStatus)
	assert.Equal(t, "paid at counter", audit[0].Note)
	require.NotNil(t, audit[0].ChangedBy)
	assert.Equal(t, actor, *audit[0].ChangedBy)
	assert.Equal(t, domain.RentalCompleted, audit[1].NewStatus)
}

func TestTransition_CompleteNonOngoingIsInvalidState(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), f.rental.ID, domain.RentalCompleted, nil, "")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	assert.Equal(t, domain.VehicleReserved, f.vehicleStatus(t))
	got, err := f.store.Rentals.GetByID(context.Background(), f.rental.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalPendingPayment, got.Status)

	audit, err := f.svc.Audit(context.Background(), f.rental.ID)
	require.NoError(t, err)
	assert.Empty(t, audit)
}

func TestTransition_SameStatusIsInvalidState(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), f.rental.ID, domain.RentalPendingPayment, nil, "")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestTransition_CancelReleasesVehicle(t *testing.T) {
	f := newFixture(t)

	r, err := f.svc.Transition(context.Background(), f.rental.ID, domain.RentalCancelled, nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RentalCancelled, r.Status)
	assert.Equal(t, domain.VehicleAvailable, f.vehicleStatus(t))

	_, err = f.svc.Transition(context.Background(), f.rental.ID, domain.RentalOngoing, nil, "")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestTransition_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), 9999, domain.RentalOngoing, nil, "")
	assert.ErrorIs(t, err, ErrRentalNotFound)

	_, err = f.svc.Transition(context.Background(), f.rental.ID, domain.RentalStatus("Lost"), nil, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_ReassignStaffAndNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	staff := testutil.CreateUser(t, f.store, "ana", domain.RoleStaff, "hash")
	inactive := testutil.CreateUser(t, f.store, "ben", domain.RoleStaff, "hash")
	inactive.IsActive = false
	require.NoError(t, f.store.Users.Update(ctx, inactive))

	_, err := f.svc.Update(ctx, f.rental.ID, UpdateRequest{UserID: &inactive.ID}, nil)
	assert.ErrorIs(t, err, ErrInvalidStaff)

	missing := int64(4040)
	_, err = f.svc.Update(ctx, f.rental.ID, UpdateRequest{UserID: &missing}, nil)
	assert.ErrorIs(t, err, ErrInvalidStaff)

	notes := "customer asked for child seat"
	r, err := f.svc.Update(ctx, f.rental.ID, UpdateRequest{UserID: &staff.ID, Notes: &notes}, nil)
	require.NoError(t, err)
	require.NotNil(t, r.UserID)
	assert.Equal(t, staff.ID, *r.UserID)
	assert.Equal(t, notes, r.Notes)
	assert.Equal(t, domain.RentalPendingPayment, r.Status)

	ongoing := domain.RentalOngoing
	r, err = f.svc.Update(ctx, f.rental.ID, UpdateRequest{Status: &ongoing}, &staff.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalOngoing, r.Status)
	assert.Equal(t, notes, r.Notes)
	assert.Equal(t, domain.VehicleRented, f.vehicleStatus(t))
}

func TestListAndGet_ExpandRelatedRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	views, total, err := f.svc.List(ctx, ListRequest{Status: string(domain.RentalPendingPayment)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Vehicle)
	require.NotNil(t, views[0].Customer)
	assert.Nil(t, views[0].Payment)
	assert.Equal(t, "RNT-001", views[0].Vehicle.PlateNumber)
	assert.Equal(t, 5, views[0].Days)

	_, _, err = f.svc.List(ctx, ListRequest{DateFrom: "June 1"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, _, err = f.svc.List(ctx, ListRequest{Status: "Archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	view, err := f.svc.Get(ctx, f.rental.ID)
	require.NoError(t, err)
	assert.Equal(t, f.rental.ID, view.ID)

	_, err = f.svc.Get(ctx, 12345)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestExpireStalePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := testutil.CreateCustomer(t, f.store, "N01-77-777777")
	ongoing := testutil.CreateRental(t, f.store, f.vehicle.ID, c.ID, "2025-07-01", "2025-07-03", domain.RentalOngoing)

	expired, err := f.svc.ExpireStalePending(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expired)

	expired, err = f.svc.ExpireStalePending(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []int64{f.rental.ID}, expired)

	r, err := f.store.Rentals.GetByID(ctx, f.rental.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalCancelled, r.Status)
	assert.Equal(t, domain.VehicleAvailable, f.vehicleStatus(t))

	other, err := f.store.Rentals.GetByID(ctx, ongoing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalOngoing, other.Status)

	audit, err := f.svc.Audit(ctx, f.rental.ID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Nil(t, audit[0].ChangedBy)
	assert.Equal(t, "payment window expired", audit[0].Note)
}

func TestGet_RepeatedReadsAreIdentical(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Get(ctx, f.rental.ID)
	require.NoError(t, err)
	second, err := f.svc.Get(ctx, f.rental.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list1, total1, err := f.svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	list2, total2, err := f.svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, total1, total2)
	assert.Equal(t, list1, list2)

	assert.Equal(t, domain.VehicleReserved, f.vehicleStatus(t))
}
