// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler wires the daily maintenance jobs: the status sweep that
// moves customers across active/expiring/expired as dates pass, the meal
// counter reconciliation, and the expiry reminder run.
func StartScheduler(db *gorm.DB, translator Translator) *cron.Cron {
	ledger := NewLedgerService(db, translator)
	attendance := NewAttendanceService(db, translator)
	reminders := NewReminderService(db)

	c := cron.New()

	// Just after midnight: refresh persisted statuses for the new day.
	c.AddFunc("15 0 * * *", func() {
		changed, err := ledger.RefreshStatuses(time.Now())
		if err != nil {
			log.Printf("Status sweep failed: %v", err)
			return
		}
		log.Printf("Status sweep completed, %d customers updated", changed)
	})

	// Repair meal counters that lag their attendance records.
	c.AddFunc("30 0 * * *", func() {
		fixed, err := attendance.ReconcileMealCounters()
		if err != nil {
			log.Printf("Meal counter reconciliation failed: %v", err)
			return
		}
		log.Printf("Meal counter reconciliation completed, %d customers fixed", fixed)
	})

	// Run daily at 9 AM
	c.AddFunc("0 9 * * *", reminders.SendDailyReminders)

	c.Start()
	log.Println("Daily scheduler started")
	return c
}
