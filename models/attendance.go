// models/attendance.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is a single day's presence event for one customer.
// Immutable once created. The composite unique index enforces at most one
// record per (mess, customer, day) regardless of concurrent marking.
type AttendanceRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	MessID     uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_mess_customer_date,priority:1"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_mess_customer_date,priority:2"`

	// Calendar day as YYYY-MM-DD, not a timestamp, so "today" is a plain
	// equality filter.
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_mess_customer_date,priority:3"`
	Timestamp time.Time `gorm:"not null"` // exact moment of marking
	Method    string    `gorm:"type:varchar(20);default:'manual'"` // manual, qr

	CreatedAt time.Time
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
