// services/attendance_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceService gates and records one attendance event per customer per
// day and applies its effect on the meal counter and status.
type AttendanceService struct {
	db         *gorm.DB
	translator Translator
}

func NewAttendanceService(db *gorm.DB, translator Translator) *AttendanceService {
	return &AttendanceService{db: db, translator: translator}
}

// Mark records attendance for a customer on the given day (YYYY-MM-DD, empty
// means today) and increments the meal counter in the same transaction.
// Returns the customer with the incremented counter so callers can refresh
// their view without a reload.
//
// Rejections, in order: already marked (409), plan expired (422), meals
// exhausted (422). The duplicate check runs before the balance checks so a
// second tap on the same day reads as "already marked" even when the first
// one consumed the last meal.
func (s *AttendanceService) Mark(messID, customerID uuid.UUID, day string) (*models.Customer, error) {
	if day == "" {
		day = utils.FormatDay(time.Now())
	}
	dayTime, err := utils.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	var customer models.Customer
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mess_id = ? AND id = ?", messID, customerID).
			First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		var existing models.AttendanceRecord
		err := tx.Where("mess_id = ? AND customer_id = ? AND date = ?", messID, customerID, day).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyMarked
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if utils.DaysBetween(dayTime, customer.EndDate) < 0 {
			return ErrPlanExpired
		}
		if customer.TotalMeals > 0 && customer.MealsConsumed >= customer.TotalMeals {
			return ErrMealsExhausted
		}

		record := models.AttendanceRecord{
			MessID:     messID,
			CustomerID: customerID,
			Date:       day,
			Timestamp:  time.Now(),
			Method:     "manual",
		}
		if err := tx.Create(&record).Error; err != nil {
			// Two near-simultaneous marks can both pass the check above;
			// the unique index turns the loser into an explicit conflict.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMarked
			}
			return err
		}

		// Incremented even for unlimited plans; the counter feeds reporting
		// either way. The allowance check above reads a snapshot that a
		// concurrent mark on another day can invalidate, so the increment
		// re-checks it: the guarded update rolls the whole mark back instead
		// of overdrawing the counter.
		result := tx.Model(&models.Customer{}).
			Where("id = ? AND (total_meals = 0 OR meals_consumed < total_meals)", customerID).
			UpdateColumn("meals_consumed", gorm.Expr("meals_consumed + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMealsExhausted
		}
		customer.MealsConsumed++

		status := DeriveStatus(&customer, dayTime)
		if status != customer.Status {
			if err := tx.Model(&customer).Update("status", status).Error; err != nil {
				return err
			}
			customer.Status = status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// TodayRoster returns the mess's active customers together with the set of
// customer ids already marked today.
func (s *AttendanceService) TodayRoster(messID uuid.UUID) ([]models.Customer, map[uuid.UUID]bool, error) {
	var customers []models.Customer
	if err := s.db.Where("mess_id = ? AND status IN ?", messID,
		[]string{models.StatusActive, models.StatusExpiring}).
		Order("customer_number").
		Find(&customers).Error; err != nil {
		return nil, nil, err
	}

	today := utils.FormatDay(time.Now())
	var records []models.AttendanceRecord
	if err := s.db.Where("mess_id = ? AND date = ?", messID, today).
		Find(&records).Error; err != nil {
		return nil, nil, err
	}

	marked := make(map[uuid.UUID]bool, len(records))
	for _, r := range records {
		marked[r.CustomerID] = true
	}
	return customers, marked, nil
}

// Search resolves a query for the marking screen: exact customer number
// first, then case-insensitive substring on names and mobile, and as a last
// resort a Devanagari query is translated to the Latin channel and retried
// against the English names.
func (s *AttendanceService) Search(messID uuid.UUID, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Customer{}, nil
	}

	var customers []models.Customer
	if err := s.db.Where("mess_id = ?", messID).
		Order("customer_number").
		Find(&customers).Error; err != nil {
		return nil, err
	}

	if number, err := strconv.Atoi(query); err == nil {
		for i := range customers {
			if customers[i].CustomerNumber == number {
				return customers[i:i+1 : i+1], nil
			}
		}
	}

	matches := substringMatches(customers, query)
	if len(matches) == 0 && utils.ContainsDevanagari(query) {
		translated := translateBestEffort(s.translator, query, "mr", "en")
		if translated != query {
			matches = substringMatches(customers, translated)
		}
	}
	return matches, nil
}

func substringMatches(customers []models.Customer, query string) []models.Customer {
	needle := strings.ToLower(query)
	matches := []models.Customer{}
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(c.NameMarathi, query) ||
			strings.Contains(c.Mobile, query) {
			matches = append(matches, c)
		}
	}
	return matches
}

// ReconcileMealCounters raises each customer's meal counter to the number of
// attendance records on file. The attendance insert and the counter bump are
// two writes; if the second one was lost the counter lags the record count,
// and this repairs it. Counters above the record count are left alone, those
// come from manually seeded balances at migration time.
func (s *AttendanceService) ReconcileMealCounters() (int, error) {
	type countRow struct {
		CustomerID uuid.UUID
		Total      int64
	}
	var counts []countRow
	if err := s.db.Model(&models.AttendanceRecord{}).
		Select("customer_id, COUNT(*) AS total").
		Group("customer_id").
		Scan(&counts).Error; err != nil {
		return 0, err
	}

	fixed := 0
	for _, row := range counts {
		var customer models.Customer
		if err := s.db.First(&customer, "id = ?", row.CustomerID).Error; err != nil {
			continue // customer deleted, orphaned records remain
		}
		if int(row.Total) <= customer.MealsConsumed {
			continue
		}
		updates := map[string]interface{}{"meals_consumed": int(row.Total)}
		customer.MealsConsumed = int(row.Total)
		updates["status"] = DeriveStatus(&customer, time.Now())
		if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
			log.Printf("Failed to reconcile meals for customer %s: %v", customer.ID, err)
			continue
		}
		fixed++
	}
	return fixed, nil
}
