package payment

import "carrental/internal/pkg/apperr"

var (
	ErrPaymentNotFound  = apperr.NotFound("PAYMENT_NOT_FOUND", "Payment not found")
	ErrRentalNotFound   = apperr.NotFound("RENTAL_NOT_FOUND", "Rental not found")
	ErrAlreadyPaid      = apperr.Conflict("ALREADY_PAID", "A payment has already been recorded for this rental")
	ErrRentalNotPending = apperr.InvalidState("RENTAL_NOT_PENDING", "Only rentals awaiting payment can be paid")
	ErrAmountMismatch   = apperr.Validation("AMOUNT_MISMATCH", "Payment amount must equal the rental total")
	ErrInvalidAmount    = apperr.Validation("INVALID_AMOUNT", "Payment amount must be positive")
	ErrInvalidMethod    = apperr.Validation("INVALID_PAYMENT_METHOD", "Payment method must be Cash, Credit Card, Debit Card, GCash or Bank Transfer")
	ErrInvalidStatus    = apperr.Validation("INVALID_STATUS", "Unknown payment status")
	ErrInvalidDate      = apperr.Validation("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
	ErrPaymentFinal     = apperr.InvalidState("PAYMENT_FINAL", "Refunded or failed payments cannot change status")
	ErrStatusChange     = apperr.InvalidState("INVALID_PAYMENT_TRANSITION", "Payments can only be marked Completed, Refunded or Failed")
	ErrRentalNotDone    = apperr.InvalidState("RENTAL_NOT_COMPLETED", "A payment can be completed only after the rental is completed")
)
