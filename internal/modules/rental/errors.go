package rental

import "carrental/internal/pkg/apperr"

var (
	ErrRentalNotFound  = apperr.NotFound("RENTAL_NOT_FOUND", "Rental not found")
	ErrVehicleNotFound = apperr.NotFound("VEHICLE_NOT_FOUND", "Vehicle not found")
	ErrInvalidStatus   = apperr.Validation("INVALID_STATUS", "Unknown rental status")
	ErrInvalidStaff    = apperr.Validation("INVALID_STAFF", "Assigned user must be an active staff member or admin")
	ErrInvalidDate     = apperr.Validation("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
)
