package booking

import "carrental/internal/pkg/apperr"

var (
	ErrVehicleNotFound    = apperr.NotFound("VEHICLE_NOT_FOUND", "Vehicle not found")
	ErrBookingNotFound    = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrVehicleUnavailable = apperr.Conflict("VEHICLE_UNAVAILABLE", "Vehicle is not available for booking")
	ErrDatesUnavailable   = apperr.Conflict("DATES_UNAVAILABLE", "Vehicle is already booked for the selected dates")
	ErrInvalidDate        = apperr.Validation("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
	ErrInvalidRange       = apperr.Validation("INVALID_DATE_RANGE", "Start date must be before end date")
	ErrStartInPast        = apperr.Validation("START_DATE_IN_PAST", "Start date cannot be in the past")
	ErrAmountMismatch     = apperr.Validation("AMOUNT_MISMATCH", "Total amount does not match the vehicle's rate for these dates")
)
