package admin

import (
	"context"
	"testing"

	"carrental/internal/domain"
	"carrental/internal/pkg/apperr"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUser(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewService(st.Users)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "Desk1",
		Password: "s3cret-pass",
		FullName: "Front Desk",
		Role:     domain.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "desk1", u.Username)
	assert.True(t, u.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "desk1",
		Password: "another-pass",
		FullName: "Impostor",
		Role:     domain.RoleStaff,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "x", Password: "short", Role: "Owner"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateUser(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewService(st.Users)
	ctx := context.Background()

	admin := testutil.CreateUser(t, st, "root", domain.RoleAdmin, "hash")
	staff := testutil.CreateUser(t, st, "desk", domain.RoleStaff, "hash")

	got, err := svc.UpdateUser(ctx, admin.ID, staff.ID, UpdateUserRequest{
		IsActive: ptr(false),
		Password: ptr("brand-new-pass"),
	})
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	stored, err := st.Users.GetByID(ctx, staff.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-pass")))

	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, UpdateUserRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, ErrSelfLockout)
	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, UpdateUserRequest{Role: ptr(domain.RoleStaff)})
	assert.ErrorIs(t, err, ErrSelfLockout)

	got, err = svc.UpdateUser(ctx, admin.ID, admin.ID, UpdateUserRequest{FullName: ptr("Root Admin")})
	require.NoError(t, err)
	assert.Equal(t, "Root Admin", got.FullName)

	_, err = svc.UpdateUser(ctx, admin.ID, 999, UpdateUserRequest{FullName: ptr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewService(st.Users)
	ctx := context.Background()

	testutil.CreateUser(t, st, "root", domain.RoleAdmin, "hash")
	testutil.CreateUser(t, st, "desk", domain.RoleStaff, "hash")

	users, total, err := svc.ListUsers(ctx, ListUsersRequest{Role: "Staff"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "desk", users[0].Username)

	_, _, err = svc.ListUsers(ctx, ListUsersRequest{Role: "Owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
