package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer lifecycle statuses
const (
	StatusActive   = "active"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

type Customer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	MessID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_mess_customer_number,priority:1"`

	// Human-readable sequential number, unique per mess. Allocated inside a
	// transaction; the composite unique index is the backstop against
	// concurrent sessions racing for the same number.
	CustomerNumber int `gorm:"not null;uniqueIndex:idx_mess_customer_number,priority:2"`

	Name        string `gorm:"not null"` // canonical / English
	NameMarathi string // display variant; falls back to Name when empty
	Mobile      string `gorm:"index;not null"`

	// Snapshot of the plan at assignment time. Later plan edits or deletion
	// never change these.
	PlanID     *uuid.UUID `gorm:"type:uuid;index"`
	PlanName   string
	PlanPrice  float64 `gorm:"type:decimal(10,2);default:0.0"`
	TotalMeals int     `gorm:"default:0"` // 0 means unlimited

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	AmountPaid      float64 `gorm:"type:decimal(10,2);default:0.0"`
	RemainingAmount float64 `gorm:"type:decimal(10,2);default:0.0"` // PlanPrice - AmountPaid, recomputed on every save
	MealsConsumed   int     `gorm:"default:0"`

	Status string `gorm:"type:varchar(20);default:'active'"` // active, expiring, expired

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// DisplayName returns the Marathi variant when present, the canonical name
// otherwise.
func (c *Customer) DisplayName() string {
	if c.NameMarathi != "" {
		return c.NameMarathi
	}
	return c.Name
}

// MealsRemaining returns the meal balance, or -1 for unlimited plans.
func (c *Customer) MealsRemaining() int {
	if c.TotalMeals <= 0 {
		return -1
	}
	return c.TotalMeals - c.MealsConsumed
}
