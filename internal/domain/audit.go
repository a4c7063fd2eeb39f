package domain

import "time"

// RentalAudit rows are append-only. ChangedBy is nil for public and system actors.
type RentalAudit struct {
	ID        int64        `json:"id" gorm:"primaryKey"`
	RentalID  int64        `json:"rental_id" gorm:"not null;index"`
	OldStatus RentalStatus `json:"old_status" gorm:"size:32;not null"`
	NewStatus RentalStatus `json:"new_status" gorm:"size:32;not null"`
	ChangedBy *int64       `json:"changed_by,omitempty"`
	ChangedAt time.Time    `json:"changed_at" gorm:"not null;index"`
	Note      string       `json:"note,omitempty" gorm:"size:255"`
}

func (RentalAudit) TableName() string { return "rental_audits" }
