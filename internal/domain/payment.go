package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodDebitCard    PaymentMethod = "Debit Card"
	MethodGCash        PaymentMethod = "GCash"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodGCash, MethodBankTransfer:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid      PaymentStatus = "Paid"
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentRefunded  PaymentStatus = "Refunded"
	PaymentFailed    PaymentStatus = "Failed"
)

// RevenueStatuses count towards reported revenue.
var RevenueStatuses = []PaymentStatus{PaymentPaid, PaymentCompleted}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentCompleted, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

type Payment struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	RentalID      int64           `json:"rental_id" gorm:"uniqueIndex;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"type:date;not null;index"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"size:32;not null"`
	Status        PaymentStatus   `json:"status" gorm:"size:16;not null;index"`
	ReferenceNo   string          `json:"reference_no,omitempty" gorm:"size:64"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
