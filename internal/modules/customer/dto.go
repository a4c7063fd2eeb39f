package customer

import (
	"carrental/internal/domain"
	"carrental/internal/pkg/pagination"
)

// Info is the customer block submitted with a booking.
type Info struct {
	FullName  string `json:"customerName" validate:"required,notblank,max=128"`
	Email     string `json:"email" validate:"required,notblank,email,max=255"`
	Phone     string `json:"phone" validate:"required,notblank,min=7,max=32"`
	LicenseNo string `json:"licenseNo" validate:"required,notblank,max=64"`
	Address   string `json:"address" validate:"max=255"`
}

type ListRequest struct {
	pagination.Params
	Q string `form:"q"`
}

type UpdateRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,notblank,max=128"`
	Email     *string `json:"email" validate:"omitempty,notblank,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,notblank,min=7,max=32"`
	LicenseNo *string `json:"license_no" validate:"omitempty,notblank,max=64"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
}

// Detail is a customer with their rental history, newest first.
type Detail struct {
	domain.Customer
	Rentals []domain.Rental `json:"rentals"`
}
