package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a reusable subscription template. Customers copy its fields as a
// snapshot at assignment time, so deleting a plan never touches enrolled
// customers.
type Plan struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	MessID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null"`
	Description  string
	Price        float64 `gorm:"type:decimal(10,2);not null"`
	TotalMeals   int     `gorm:"default:0"`  // 0 means unlimited
	ValidityDays int     `gorm:"default:30"` // in days

	gorm.Model
}

func (p *Plan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
