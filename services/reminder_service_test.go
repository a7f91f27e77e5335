package services

import (
	"testing"
	"time"

	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeExpiryMessage(t *testing.T) {
	owner := &models.User{MessName: "Annapurna Mess"}
	customer := &models.Customer{
		Name:       "Rahul",
		TotalMeals: 60,
		EndDate:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	// Low meal balance takes precedence over the end date
	customer.MealsConsumed = 57
	msg := composeExpiryMessage(owner, customer)
	assert.Contains(t, msg, "Annapurna Mess")
	assert.Contains(t, msg, "Rahul")
	assert.Contains(t, msg, "3 jevan")

	// Healthy meal balance falls through to the end-date variant
	customer.MealsConsumed = 10
	msg = composeExpiryMessage(owner, customer)
	assert.Contains(t, msg, "2024-07-01")

	// Marathi mess name and customer name preferred when present
	owner.MessNameMarathi = "अन्नपूर्णा मेस"
	customer.NameMarathi = "राहुल"
	msg = composeExpiryMessage(owner, customer)
	assert.Contains(t, msg, "अन्नपूर्णा मेस")
	assert.Contains(t, msg, "राहुल")
}

func TestRemindedToday(t *testing.T) {
	db := newTestDB(t)
	service := &ReminderService{db: db}

	messID := uuid.New()
	customerID := uuid.New()
	today := utils.FormatDay(time.Now())

	assert.False(t, service.remindedToday(messID, customerID, today))

	require.NoError(t, db.Create(&models.ReminderLog{
		MessID:     messID,
		CustomerID: customerID,
		Type:       "expiry",
		Message:    "test",
		Status:     "sent",
		Channel:    "sms",
		SentAt:     time.Now(),
	}).Error)

	assert.True(t, service.remindedToday(messID, customerID, today))

	// Another customer's reminder does not count
	assert.False(t, service.remindedToday(messID, uuid.New(), today))
}
