package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalPendingPayment RentalStatus = "Pending Payment"
	RentalOngoing        RentalStatus = "Ongoing"
	RentalCompleted      RentalStatus = "Completed"
	RentalCancelled      RentalStatus = "Cancelled"
)

// ActiveRentalStatuses hold the vehicle for their date range.
var ActiveRentalStatuses = []RentalStatus{RentalPendingPayment, RentalOngoing}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalPendingPayment, RentalOngoing, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

func (s RentalStatus) Active() bool {
	return s == RentalPendingPayment || s == RentalOngoing
}

// Rental dates are calendar days in UTC, both ends inclusive.
type Rental struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	VehicleID   int64           `json:"vehicle_id"`
	UserID      *int64          `json:"user_id,omitempty"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      RentalStatus    `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// rentalTransitions maps an allowed (from, to) pair to the status the vehicle takes.
var rentalTransitions = map[RentalStatus]map[RentalStatus]VehicleStatus{
	RentalPendingPayment: {
		RentalOngoing:   VehicleRented,
		RentalCancelled: VehicleAvailable,
	},
	RentalOngoing: {
		RentalCompleted: VehicleAvailable,
		RentalCancelled: VehicleAvailable,
	},
}

// NextVehicleStatus returns the vehicle status implied by moving a rental from one
// status to another, and false when the move is not allowed.
func NextVehicleStatus(from, to RentalStatus) (VehicleStatus, bool) {
	next, ok := rentalTransitions[from][to]
	return next, ok
}

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps is the inclusive range test used for booking conflicts.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// RentalDays counts billable days; both the pickup and return day are charged.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func ComputeTotal(dailyRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(RentalDays(start, end))))
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
