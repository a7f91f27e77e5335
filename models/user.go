package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the mess owner. Its ID doubles as the mess (tenant) id: every
// plan, customer and attendance row carries it as MessID.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	MessName        string `gorm:"not null"` // business display name, shown by the public lookup
	MessNameMarathi string
	MessAddress     string
	Settings        JSONB `gorm:"type:jsonb;default:'{}'"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Custom JSONB type for mess settings (notification toggles, serving hours)
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &j)
	case string:
		return json.Unmarshal([]byte(v), &j)
	default:
		return errors.New("unsupported type for JSONB scan")
	}
}

// SMSNotificationsEnabled reports the owner's reminder toggle; defaults off.
func (u *User) SMSNotificationsEnabled() bool {
	v, ok := u.Settings["smsNotifications"].(bool)
	return ok && v
}

// WhatsAppNotificationsEnabled reports the owner's WhatsApp toggle; defaults off.
func (u *User) WhatsAppNotificationsEnabled() bool {
	v, ok := u.Settings["whatsAppNotifications"].(bool)
	return ok && v
}
