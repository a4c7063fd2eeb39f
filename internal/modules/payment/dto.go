package payment

import (
	"carrental/internal/domain"
	"carrental/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	RentalID      int64                `json:"rentalId" validate:"required,gt=0"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" validate:"required"`
	// PaymentDate defaults to today when empty.
	PaymentDate string `json:"paymentDate"`
	ReferenceNo string `json:"referenceNo" validate:"max=64"`
}

type UpdateStatusRequest struct {
	Status domain.PaymentStatus `json:"status" binding:"required"`
	Note   string               `json:"note"`
}

type ListRequest struct {
	pagination.Params
	Status   string `form:"status"`
	Method   string `form:"method"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// Receipt is returned after a payment is recorded or changed, with the rental
// as it stands afterwards.
type Receipt struct {
	Payment domain.Payment `json:"payment"`
	Rental  domain.Rental  `json:"rental"`
}
