// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends expiry reminders to customers whose subscription is
// running out (few days or few meals left), once per customer per day.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily expiry reminder processing...")

	var owners []models.User
	if err := s.db.Find(&owners, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch mess owners: %v", err)
		return
	}

	for _, owner := range owners {
		if !owner.SMSNotificationsEnabled() && !owner.WhatsAppNotificationsEnabled() {
			continue
		}
		s.ProcessMessReminders(&owner)
	}

	log.Println("Daily expiry reminder processing completed")
}

func (s *ReminderService) ProcessMessReminders(owner *models.User) {
	var customers []models.Customer
	if err := s.db.Where("mess_id = ? AND status = ?", owner.ID, models.StatusExpiring).
		Find(&customers).Error; err != nil {
		log.Printf("Mess %s: Failed to get expiring customers: %v", owner.ID, err)
		return
	}

	today := utils.FormatDay(time.Now())
	for i := range customers {
		customer := &customers[i]
		if s.remindedToday(owner.ID, customer.ID, today) {
			continue
		}
		s.sendReminder(owner, customer)
	}
}

// remindedToday checks whether an expiry reminder already went out for this
// customer today.
func (s *ReminderService) remindedToday(messID, customerID uuid.UUID, day string) bool {
	var count int64
	s.db.Model(&models.ReminderLog{}).
		Where("mess_id = ? AND customer_id = ? AND type = ? AND sent_at >= ?",
			messID, customerID, "expiry", day).
		Count(&count)
	return count > 0
}

func (s *ReminderService) sendReminder(owner *models.User, customer *models.Customer) {
	message := composeExpiryMessage(owner, customer)

	// Determine channel (WhatsApp if enabled and the number is E.164, else SMS)
	channel := "sms"
	to := customer.Mobile
	if owner.WhatsAppNotificationsEnabled() && strings.HasPrefix(customer.Mobile, "+") {
		to = "whatsapp:" + customer.Mobile
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Mobile, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Mobile, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Mobile)
	}

	reminderLog := models.ReminderLog{
		MessID:       owner.ID,
		CustomerID:   customer.ID,
		Type:         "expiry",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}
}

func composeExpiryMessage(owner *models.User, customer *models.Customer) string {
	messName := owner.MessName
	if owner.MessNameMarathi != "" {
		messName = owner.MessNameMarathi
	}
	if meals := customer.MealsRemaining(); meals >= 0 && meals <= LowBalanceMeals {
		return fmt.Sprintf("%s: %s, tumche fakt %d jevan shillak aahet. Krupaya plan renew kara. (Only %d meals left on your plan.)",
			messName, customer.DisplayName(), meals, meals)
	}
	return fmt.Sprintf("%s: %s, tumcha mess plan %s la sampat aahe. Krupaya renew kara. (Your mess plan ends on %s.)",
		messName, customer.DisplayName(), utils.FormatDay(customer.EndDate), utils.FormatDay(customer.EndDate))
}
