package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/domain"
	"carrental/internal/modules/auth"
	"carrental/internal/modules/booking"
	"carrental/internal/modules/customer"
	"carrental/internal/modules/payment"
	"carrental/internal/pkg/logger"
	"carrental/internal/repository"

	"github.com/shopspring/decimal"
)

type seedUser struct {
	username, password, fullName string
	role                         domain.UserRole
}

var users = []seedUser{
	{"admin", "admin12345", "System Administrator", domain.RoleAdmin},
	{"frontdesk", "staff12345", "Front Desk", domain.RoleStaff},
}

var customers = []customer.Info{
	{FullName: "Maria Santos", Email: "maria.santos@example.com", Phone: "09171234567", LicenseNo: "N01-22-000111", Address: "Quezon City"},
	{FullName: "Jose Reyes", Email: "jose.reyes@example.com", Phone: "09187654321", LicenseNo: "N02-21-000222", Address: "Makati"},
}

var vehicles = []domain.Vehicle{
	{Brand: "Toyota", Model: "Vios", Year: 2022, PlateNumber: "NAB-1234", Category: "Sedan", Seats: 5, HasAC: true, Transmission: "Automatic", FuelType: "Gasoline", Location: "Manila", DailyRate: decimal.NewFromInt(1500)},
	{Brand: "Honda", Model: "City", Year: 2023, PlateNumber: "NCD-5678", Category: "Sedan", Seats: 5, HasAC: true, Transmission: "Automatic", FuelType: "Gasoline", Location: "Makati", DailyRate: decimal.NewFromInt(1800)},
	{Brand: "Mitsubishi", Model: "Montero Sport", Year: 2021, PlateNumber: "NEF-9012", Category: "SUV", Seats: 7, HasAC: true, Transmission: "Automatic", FuelType: "Diesel", Location: "Quezon City", DailyRate: decimal.NewFromInt(3200)},
	{Brand: "Toyota", Model: "Hiace", Year: 2020, PlateNumber: "NGH-3456", Category: "Van", Seats: 15, HasAC: true, Transmission: "Manual", FuelType: "Diesel", Location: "Pasay", DailyRate: decimal.NewFromInt(4500)},
	{Brand: "Ford", Model: "Ranger", Year: 2022, PlateNumber: "NIJ-7890", Category: "Pickup", Seats: 5, HasAC: true, Transmission: "Manual", FuelType: "Diesel", Location: "Cebu", DailyRate: decimal.NewFromInt(2800)},
	{Brand: "Suzuki", Model: "Swift", Year: 2021, PlateNumber: "NKL-2468", Category: "Hatchback", Seats: 5, HasAC: false, Transmission: "Manual", FuelType: "Gasoline", Location: "Davao", DailyRate: decimal.NewFromInt(1200)},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	ctx := context.Background()
	store := repository.NewStore(db)

	slog.Info("creating users")
	var staffID int64
	for _, u := range users {
		if existing, err := store.Users.GetByUsername(ctx, u.username); err == nil {
			slog.Info("user exists, skipping", "username", u.username)
			if existing.Role == domain.RoleStaff {
				staffID = existing.ID
			}
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			log.Fatalf("lookup user %s: %v", u.username, err)
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user := &domain.User{
			Username:     u.username,
			PasswordHash: hash,
			FullName:     u.fullName,
			Role:         u.role,
			IsActive:     true,
		}
		if err := store.Users.Create(ctx, user); err != nil {
			log.Fatalf("create user %s: %v", u.username, err)
		}
		slog.Info("user created", "username", user.Username, "role", user.Role, "id", user.ID)
		if user.Role == domain.RoleStaff {
			staffID = user.ID
		}
	}

	slog.Info("creating vehicles")
	var created []int64
	for _, v := range vehicles {
		v.Status = domain.VehicleAvailable
		if err := store.Vehicles.Create(ctx, &v); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			log.Fatalf("create vehicle %s: %v", v.PlateNumber, err)
		}
		created = append(created, v.ID)
	}

	// Demo bookings only on a fresh fleet so reruns stay idempotent.
	rentals := 0
	if len(created) >= len(customers) {
		rentals = seedRentals(ctx, store, staffID, created)
	}

	slog.Info("seed complete", "vehicles_created", len(created), "rentals_created", rentals)
}

// seedRentals books one vehicle per demo customer starting next week and
// pays for the first booking, which moves it to Ongoing.
func seedRentals(ctx context.Context, store *repository.Store, staffID int64, vehicleIDs []int64) int {
	bookings := booking.NewService(store, staffID)
	payments := payment.NewService(store)

	start := time.Now().UTC().AddDate(0, 0, 7)
	n := 0
	for i, info := range customers {
		summary, err := bookings.CreateBooking(ctx, booking.CreateBookingRequest{
			Info:      info,
			VehicleID: vehicleIDs[i],
			StartDate: start.Format(time.DateOnly),
			EndDate:   start.AddDate(0, 0, 3+i).Format(time.DateOnly),
		})
		if err != nil {
			log.Fatalf("create booking for %s: %v", info.LicenseNo, err)
		}
		n++

		if i > 0 {
			continue
		}
		var actor *int64
		if staffID > 0 {
			actor = &staffID
		}
		if _, err := payments.RecordPayment(ctx, payment.RecordPaymentRequest{
			RentalID:      summary.Rental.ID,
			Amount:        summary.Rental.TotalAmount,
			PaymentMethod: domain.MethodGCash,
			ReferenceNo:   "SEED-0001",
		}, actor); err != nil {
			log.Fatalf("record payment for rental %d: %v", summary.Rental.ID, err)
		}
	}
	return n
}
