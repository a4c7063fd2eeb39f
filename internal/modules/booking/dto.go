package booking

import (
	"strings"
	"time"

	"carrental/internal/domain"
	"carrental/internal/modules/customer"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	customer.Info
	VehicleID int64  `json:"vehicleId" validate:"required,gt=0"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	// TotalAmount is optional; when non-zero it must equal the server's figure.
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type AvailabilityRequest struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type Availability struct {
	VehicleID      int64                `json:"vehicle_id"`
	VehicleStatus  domain.VehicleStatus `json:"vehicle_status"`
	Available      bool                 `json:"available"`
	Days           int                  `json:"days"`
	EstimatedTotal decimal.Decimal      `json:"estimated_total"`
	Conflicts      []DateRange          `json:"conflicts"`
}

// Summary is what the payment page shows for a booking.
type Summary struct {
	Rental   domain.Rental   `json:"rental"`
	Days     int             `json:"days"`
	Vehicle  domain.Vehicle  `json:"vehicle"`
	Customer domain.Customer `json:"customer"`
	Payment  *domain.Payment `json:"payment,omitempty"`
}

// PublicSummary is the booking view served to anonymous callers. Contact
// details, staff notes and payment references are withheld.
type PublicSummary struct {
	Rental   domain.Rental  `json:"rental"`
	Days     int            `json:"days"`
	Vehicle  domain.Vehicle `json:"vehicle"`
	Customer PublicCustomer `json:"customer"`
	Payment  *PublicPayment `json:"payment,omitempty"`
}

type PublicCustomer struct {
	FullName  string `json:"full_name"`
	LicenseNo string `json:"license_no"`
}

type PublicPayment struct {
	Amount        decimal.Decimal      `json:"amount"`
	PaymentDate   time.Time            `json:"payment_date"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Status        domain.PaymentStatus `json:"status"`
}

func (s *Summary) Public() PublicSummary {
	r := s.Rental
	r.UserID = nil
	r.Notes = ""

	out := PublicSummary{
		Rental:  r,
		Days:    s.Days,
		Vehicle: s.Vehicle,
		Customer: PublicCustomer{
			FullName:  s.Customer.FullName,
			LicenseNo: maskLicense(s.Customer.LicenseNo),
		},
	}
	if p := s.Payment; p != nil {
		out.Payment = &PublicPayment{
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			Status:        p.Status,
		}
	}
	return out
}

// maskLicense keeps the last three characters.
func maskLicense(license string) string {
	runes := []rune(license)
	keep := 3
	if len(runes) <= keep {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-keep) + string(runes[len(runes)-keep:])
}
