package rental

import (
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

type ListRequest struct {
	pagination.Params
	Status     string `form:"status"`
	VehicleID  int64  `form:"vehicleId"`
	CustomerID int64  `form:"customerId"`
	StaffID    int64  `form:"staffId"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	Q          string `form:"q"`
}

// UpdateRequest patches a rental; nil fields are left alone.
type UpdateRequest struct {
	Status *domain.RentalStatus `json:"status"`
	UserID *int64               `json:"User_ID"`
	Notes  *string              `json:"notes"`
}

type TransitionRequest struct {
	Status domain.RentalStatus `json:"status" binding:"required"`
	Note   string              `json:"note"`
}

type VehicleBrief struct {
	ID          int64                `json:"id"`
	Brand       string               `json:"brand"`
	Model       string               `json:"model"`
	PlateNumber string               `json:"plate_number"`
	Status      domain.VehicleStatus `json:"status"`
	DailyRate   decimal.Decimal      `json:"daily_rate"`
}

type CustomerBrief struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LicenseNo string `json:"license_no"`
}

type PaymentBrief struct {
	ID            int64                `json:"id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentDate   time.Time            `json:"payment_date"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Status        domain.PaymentStatus `json:"status"`
}

// View is a rental with the records the back-office shows alongside it.
type View struct {
	domain.Rental
	Days     int            `json:"days"`
	Vehicle  *VehicleBrief  `json:"vehicle,omitempty"`
	Customer *CustomerBrief `json:"customer,omitempty"`
	Payment  *PaymentBrief  `json:"payment,omitempty"`
}

func briefVehicle(v domain.Vehicle) *VehicleBrief {
	return &VehicleBrief{
		ID:          v.ID,
		Brand:       v.Brand,
		Model:       v.Model,
		PlateNumber: v.PlateNumber,
		Status:      v.Status,
		DailyRate:   v.DailyRate,
	}
}

func briefCustomer(c domain.Customer) *CustomerBrief {
	return &CustomerBrief{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		LicenseNo: c.LicenseNo,
	}
}

func briefPayment(p domain.Payment) *PaymentBrief {
	return &PaymentBrief{
		ID:            p.ID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
	}
}
