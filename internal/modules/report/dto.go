package report

import (
	"time"

	"carrental/internal/domain"

	"github.com/shopspring/decimal"
)

type Request struct {
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

type Revenue struct {
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

type VehicleRank struct {
	VehicleID   int64  `json:"vehicle_id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	Rentals     int    `json:"rentals"`
}

type CustomerRank struct {
	CustomerID int64  `json:"customer_id"`
	FullName   string `json:"full_name"`
	LicenseNo  string `json:"license_no"`
	Rentals    int    `json:"rentals"`
}

type StaffPerformance struct {
	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Rentals  int             `json:"rentals"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Report covers an inclusive date range. Revenue is keyed on payment date,
// everything else on rental start date.
type Report struct {
	DateFrom        time.Time                   `json:"date_from"`
	DateTo          time.Time                   `json:"date_to"`
	Revenue         Revenue                     `json:"revenue"`
	RentalsByStatus map[domain.RentalStatus]int `json:"rentals_by_status"`
	TopVehicles     []VehicleRank               `json:"top_vehicles"`
	TopCustomers    []CustomerRank              `json:"top_customers"`
	Staff           []StaffPerformance          `json:"staff"`
}

type Dashboard struct {
	Date             time.Time                      `json:"date"`
	VehiclesByStatus map[domain.VehicleStatus]int64 `json:"vehicles_by_status"`
	CustomersTotal   int64                          `json:"customers_total"`
	RentalsByStatus  map[domain.RentalStatus]int64  `json:"rentals_by_status"`
	PickupsToday     int64                          `json:"pickups_today"`
	ReturnsToday     int64                          `json:"returns_today"`
}
