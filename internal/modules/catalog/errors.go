package catalog

import "carrental/internal/pkg/apperr"

var (
	ErrVehicleNotFound = apperr.NotFound("VEHICLE_NOT_FOUND", "Vehicle not found")
	ErrDuplicatePlate  = apperr.Conflict("DUPLICATE_PLATE", "A vehicle with this plate number already exists")
	ErrInvalidSort     = apperr.Validation("INVALID_SORT", "sort must be one of rate_asc, rate_desc, newest, brand, seats")
	ErrInvalidRate     = apperr.Validation("INVALID_RATE", "Daily rate must be a positive amount")
	ErrInvalidDate     = apperr.Validation("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
	ErrInvalidRange    = apperr.Validation("INVALID_DATE_RANGE", "availableFrom must not be after availableTo")
	ErrManualStatus    = apperr.Validation("INVALID_STATUS", "Status can only be set to Available, Under Maintenance or Decommissioned")
	ErrVehicleInUse    = apperr.InvalidState("VEHICLE_IN_USE", "Vehicle has an active rental")
)
