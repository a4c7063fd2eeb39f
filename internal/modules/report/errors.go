package report

import "carrental/internal/pkg/apperr"

var (
	ErrInvalidDate  = apperr.Validation("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
	ErrInvalidRange = apperr.Validation("INVALID_DATE_RANGE", "dateFrom must not be after dateTo")
)
