package catalog

import (
	"carrental/internal/domain"
	"carrental/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

// ListRequest is bound from the catalog query string. Rates and dates stay
// strings here and are parsed by the service.
type ListRequest struct {
	pagination.Params
	Category      string `form:"category"`
	Location      string `form:"location"`
	Brand         string `form:"brand"`
	Q             string `form:"q"`
	MinSeats      int    `form:"minSeats"`
	AC            *bool  `form:"ac"`
	Status        string `form:"status"`
	MinRate       string `form:"minRate"`
	MaxRate       string `form:"maxRate"`
	AvailableFrom string `form:"availableFrom"`
	AvailableTo   string `form:"availableTo"`
	Sort          string `form:"sort"`
}

type CreateVehicleRequest struct {
	Brand        string          `json:"brand" validate:"required,notblank,max=64"`
	Model        string          `json:"model" validate:"required,notblank,max=64"`
	Year         int             `json:"year" validate:"required,gte=1980,lte=2100"`
	PlateNumber  string          `json:"plate_number" validate:"required,notblank,max=32"`
	Category     string          `json:"category" validate:"required,oneof=Sedan SUV Van Pickup Hatchback"`
	Seats        int             `json:"seats" validate:"required,gte=1,lte=60"`
	HasAC        bool            `json:"has_ac"`
	Transmission string          `json:"transmission" validate:"omitempty,oneof=Manual Automatic"`
	FuelType     string          `json:"fuel_type" validate:"max=32"`
	Location     string          `json:"location" validate:"max=128"`
	ImageURL     string          `json:"image_url" validate:"omitempty,url,max=512"`
	Description  string          `json:"description"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
}

type UpdateVehicleRequest struct {
	Brand        *string               `json:"brand" validate:"omitempty,notblank,max=64"`
	Model        *string               `json:"model" validate:"omitempty,notblank,max=64"`
	Year         *int                  `json:"year" validate:"omitempty,gte=1980,lte=2100"`
	PlateNumber  *string               `json:"plate_number" validate:"omitempty,notblank,max=32"`
	Category     *string               `json:"category" validate:"omitempty,oneof=Sedan SUV Van Pickup Hatchback"`
	Seats        *int                  `json:"seats" validate:"omitempty,gte=1,lte=60"`
	HasAC        *bool                 `json:"has_ac"`
	Transmission *string               `json:"transmission" validate:"omitempty,oneof=Manual Automatic"`
	FuelType     *string               `json:"fuel_type" validate:"omitempty,max=32"`
	Location     *string               `json:"location" validate:"omitempty,max=128"`
	ImageURL     *string               `json:"image_url" validate:"omitempty,url,max=512"`
	Description  *string               `json:"description"`
	DailyRate    *decimal.Decimal      `json:"daily_rate"`
	Status       *domain.VehicleStatus `json:"status"`
}
