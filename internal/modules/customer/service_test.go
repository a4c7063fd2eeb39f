package customer

import (
	"context"
	"testing"

	"carrental/internal/domain"
	"carrental/internal/pkg/apperr"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoreService(st *repository.Store) *Service {
	return NewService(st.Customers, st.Rentals)
}

func TestUpsert_SameLicenseReusesCustomer(t *testing.T) {
	st := testutil.NewStore(t)
	ctx := context.Background()

	info := Info{FullName: "Carlo Santos", Email: "carlo@example.com", Phone: "09170000000", LicenseNo: "D12-34-567890"}

	var first *domain.Customer
	err := st.InTx(ctx, func(tx *repository.Store) error {
		var err error
		first, err = Upsert(ctx, tx, info)
		return err
	})
	require.NoError(t, err)

	info.Phone = "09179999999"
	second, err := Upsert(ctx, st, info)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "09179999999", second.Phone)

	n, err := st.Customers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestService_ListGetUpdate(t *testing.T) {
	st := testutil.NewStore(t)
	svc := newStoreService(st)
	ctx := context.Background()

	a := testutil.CreateCustomer(t, st, "LIC-A")
	b := testutil.CreateCustomer(t, st, "LIC-B")
	v := testutil.CreateVehicle(t, st, "CUS-001", 1000)
	testutil.CreateRental(t, st, v.ID, a.ID, "2025-06-01", "2025-06-02", domain.RentalCompleted)

	list, total, err := svc.List(ctx, ListRequest{Q: "lic-b"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	detail, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Rentals, 1)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	phone := "0922 111 2222"
	updated, err := svc.Update(ctx, a.ID, UpdateRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	dup := "lic-b"
	_, err = svc.Update(ctx, a.ID, UpdateRequest{LicenseNo: &dup})
	assert.ErrorIs(t, err, ErrDuplicateLicense)

	bad := "not-an-email"
	_, err = svc.Update(ctx, a.ID, UpdateRequest{Email: &bad})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_UpdateRejectsBlankFields(t *testing.T) {
	st := testutil.NewStore(t)
	svc := newStoreService(st)
	ctx := context.Background()
	c := testutil.CreateCustomer(t, st, "LIC-BLANK")

	blank := "   "
	empty := ""
	tests := []struct {
		name string
		req  UpdateRequest
	}{
		{"blank name", UpdateRequest{FullName: &blank}},
		{"empty name", UpdateRequest{FullName: &empty}},
		{"blank phone", UpdateRequest{Phone: &blank}},
		{"blank license", UpdateRequest{LicenseNo: &blank}},
		{"tab license", UpdateRequest{LicenseNo: ptr("\t")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, c.ID, tt.req)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "LIC-BLANK", stored.LicenseNo)
	assert.NotEmpty(t, stored.FullName)
}

func ptr[T any](v T) *T { return &v }

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]domain.Customer, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type mockRentalRepo struct {
	mock.Mock
}

func (m *mockRentalRepo) List(ctx context.Context, f repository.RentalFilter) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}

func TestUpdate_TrimsAndMapsDuplicateLicense(t *testing.T) {
	customers := new(mockCustomerRepo)
	svc := NewService(customers, new(mockRentalRepo))
	ctx := context.Background()

	customers.On("GetByID", mock.Anything, int64(4)).
		Return(&domain.Customer{ID: 4, FullName: "Old", LicenseNo: "L-4"}, nil)
	customers.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.FullName == "Nora Aunor"
	})).Return(nil).Once()
	customers.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.LicenseNo == "L-TAKEN"
	})).Return(repository.ErrDuplicate).Once()

	got, err := svc.Update(ctx, 4, UpdateRequest{FullName: ptr("  Nora Aunor ")})
	require.NoError(t, err)
	assert.Equal(t, "Nora Aunor", got.FullName)

	_, err = svc.Update(ctx, 4, UpdateRequest{LicenseNo: ptr("L-TAKEN")})
	assert.ErrorIs(t, err, ErrDuplicateLicense)

	customers.AssertExpectations(t)
}

func TestUpdate_ValidationSkipsStore(t *testing.T) {
	customers := new(mockCustomerRepo)
	svc := NewService(customers, new(mockRentalRepo))

	_, err := svc.Update(context.Background(), 4, UpdateRequest{LicenseNo: ptr("  ")})

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	customers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	customers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGet_NotFoundAndHistory(t *testing.T) {
	customers := new(mockCustomerRepo)
	rentals := new(mockRentalRepo)
	svc := NewService(customers, rentals)
	ctx := context.Background()

	customers.On("GetByID", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)
	customers.On("GetByID", mock.Anything, int64(2)).Return(&domain.Customer{ID: 2}, nil)
	rentals.On("List", mock.Anything, repository.RentalFilter{CustomerID: 2}).
		Return([]domain.Rental{{ID: 10, CustomerID: 2}, {ID: 11, CustomerID: 2}}, int64(2), nil)

	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	detail, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, detail.Rentals, 2)
	rentals.AssertExpectations(t)
}
