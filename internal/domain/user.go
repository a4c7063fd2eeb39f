package domain

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleStaff UserRole = "Staff"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name" gorm:"size:128"`
	Email        string    `json:"email,omitempty" gorm:"size:255"`
	Role         UserRole  `json:"role" gorm:"size:16;not null;index"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
