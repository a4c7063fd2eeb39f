package customer

import "carrental/internal/pkg/apperr"

var (
	ErrCustomerNotFound = apperr.NotFound("CUSTOMER_NOT_FOUND", "Customer not found")
	ErrDuplicateLicense = apperr.Conflict("DUPLICATE_LICENSE", "Another customer already uses this license number")
)
