// Package testutil opens throwaway SQLite stores and seeds fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carrental/internal/database"
	"carrental/internal/domain"
	"carrental/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:carrental_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func NewStore(t testing.TB) *repository.Store {
	t.Helper()
	return repository.NewStore(NewDB(t))
}

// Date parses YYYY-MM-DD or fails the test.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// Clock returns a fixed "now" for services that reject past dates.
func Clock(t testing.TB, s string) func() time.Time {
	d := Date(t, s)
	return func() time.Time { return d.Add(9 * time.Hour) }
}

func CreateVehicle(t testing.TB, st *repository.Store, plate string, rate int64) *domain.Vehicle {
	t.Helper()
	v := &domain.Vehicle{
		Brand:       "Toyota",
		Model:       "Vios",
		Year:        2022,
		PlateNumber: plate,
		Category:    "Sedan",
		Seats:       5,
		HasAC:       true,
		Location:    "Manila",
		DailyRate:   decimal.NewFromInt(rate),
		Status:      domain.VehicleAvailable,
	}
	if err := st.Vehicles.Create(context.Background(), v); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	return v
}

func CreateCustomer(t testing.TB, st *repository.Store, license string) *domain.Customer {
	t.Helper()
	c := &domain.Customer{
		FullName:  "Juan Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		LicenseNo: license,
	}
	if err := st.Customers.Create(context.Background(), c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func CreateUser(t testing.TB, st *repository.Store, username string, role domain.UserRole, hash string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     username,
		Role:         role,
		IsActive:     true,
	}
	if err := st.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateRental inserts a rental directly, bypassing booking rules.
func CreateRental(t testing.TB, st *repository.Store, vehicleID, customerID int64, from, to string, status domain.RentalStatus) *domain.Rental {
	t.Helper()
	r := &domain.Rental{
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		StartDate:   Date(t, from),
		EndDate:     Date(t, to),
		TotalAmount: decimal.NewFromInt(1000),
		Status:      status,
	}
	if err := st.Rentals.Create(context.Background(), r); err != nil {
		t.Fatalf("create rental: %v", err)
	}
	return r
}
