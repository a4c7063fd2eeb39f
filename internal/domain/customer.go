package domain

import "time"

// Customer is identified by driver's license number; repeat bookings reuse the row.
type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"size:128;not null"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:32"`
	LicenseNo string    `json:"license_no" gorm:"size:64;uniqueIndex;not null"`
	Address   string    `json:"address,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
