package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleAvailable        VehicleStatus = "Available"
	VehicleReserved         VehicleStatus = "Reserved"
	VehicleRented           VehicleStatus = "Rented"
	VehicleUnderMaintenance VehicleStatus = "Under Maintenance"
	VehicleDecommissioned   VehicleStatus = "Decommissioned"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleReserved, VehicleRented, VehicleUnderMaintenance, VehicleDecommissioned:
		return true
	}
	return false
}

// Manual reports whether back-office users may set the status directly.
// Reserved and Rented belong to the rental lifecycle.
func (s VehicleStatus) Manual() bool {
	return s == VehicleAvailable || s == VehicleUnderMaintenance || s == VehicleDecommissioned
}

var VehicleCategories = []string{"Sedan", "SUV", "Van", "Pickup", "Hatchback"}

type Vehicle struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	Brand        string          `json:"brand" gorm:"size:64;not null;index"`
	Model        string          `json:"model" gorm:"size:64;not null"`
	Year         int             `json:"year"`
	PlateNumber  string          `json:"plate_number" gorm:"size:32;uniqueIndex;not null"`
	Category     string          `json:"category" gorm:"size:32;index"`
	Seats        int             `json:"seats"`
	HasAC        bool            `json:"has_ac" gorm:"column:has_ac"`
	Transmission string          `json:"transmission,omitempty" gorm:"size:32"`
	FuelType     string          `json:"fuel_type,omitempty" gorm:"size:32"`
	Location     string          `json:"location,omitempty" gorm:"size:128;index"`
	ImageURL     string          `json:"image_url,omitempty" gorm:"size:512"`
	Description  string          `json:"description,omitempty" gorm:"type:text"`
	DailyRate    decimal.Decimal `json:"daily_rate" gorm:"type:numeric(12,2);not null"`
	Status       VehicleStatus   `json:"status" gorm:"size:32;not null;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
