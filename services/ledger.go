// services/ledger.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultValidityDays applies when a customer has no plan or the plan
	// carries no validity window.
	DefaultValidityDays = 30

	// A customer counts as "expiring" when either balance drops to these
	// thresholds. The same values drive the analytics low-balance bucket.
	LowBalanceDays  = 5
	LowBalanceMeals = 5
)

// How many times customer-number allocation retries when two sessions race
// for the same number and the unique index rejects the insert.
const numberAllocRetries = 3

// LedgerService owns the customer lifecycle: creation, full-overwrite
// updates, deletion, and the derivation rules that keep status, end date and
// remaining amount consistent with every write.
type LedgerService struct {
	db         *gorm.DB
	translator Translator
}

func NewLedgerService(db *gorm.DB, translator Translator) *LedgerService {
	return &LedgerService{db: db, translator: translator}
}

// CustomerInput is the caller-supplied mutable state of a customer. Updates
// are full overwrites: fields absent here are not preserved, callers must
// resupply values such as MealsConsumed when implementing partial edits.
type CustomerInput struct {
	Name           string
	Mobile         string
	StartDate      string // YYYY-MM-DD
	PlanID         *uuid.UUID
	AmountPaid     float64
	MealsConsumed  int
	CustomerNumber int // 0 on create means allocate next free number
}

// DeriveStatus computes the lifecycle stage of a customer as of a given day.
// Pure: the single source of the active/expiring/expired thresholds.
func DeriveStatus(c *models.Customer, asOf time.Time) string {
	daysLeft := utils.DaysBetween(asOf, c.EndDate)
	if daysLeft < 0 {
		return models.StatusExpired
	}
	if daysLeft <= LowBalanceDays {
		return models.StatusExpiring
	}
	if c.TotalMeals > 0 && c.TotalMeals-c.MealsConsumed <= LowBalanceMeals {
		return models.StatusExpiring
	}
	return models.StatusActive
}

// CreateCustomer validates the input, snapshots the plan, derives end date,
// remaining amount and status, and allocates the next customer number inside
// a transaction.
func (s *LedgerService) CreateCustomer(messID uuid.UUID, in CustomerInput) (*models.Customer, error) {
	start, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	plan, err := s.loadPlan(messID, in.PlanID)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{MessID: messID}
	s.applyInput(customer, in, plan, start)
	if err := s.checkMealCeiling(customer); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if in.CustomerNumber > 0 {
				customer.CustomerNumber = in.CustomerNumber
			} else {
				next, err := nextCustomerNumber(tx, messID)
				if err != nil {
					return err
				}
				customer.CustomerNumber = next
			}
			return tx.Create(customer).Error
		})
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if in.CustomerNumber > 0 {
			return nil, fmt.Errorf("%w: customer number %d already in use", ErrValidation, in.CustomerNumber)
		}
		if attempt >= numberAllocRetries {
			return nil, err
		}
	}
}

// UpdateCustomer applies the same derivation as create as a full overwrite of
// the mutable fields. A zero CustomerNumber keeps the existing one.
func (s *LedgerService) UpdateCustomer(messID, customerID uuid.UUID, in CustomerInput) (*models.Customer, error) {
	start, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := s.db.Where("mess_id = ? AND id = ?", messID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	plan, err := s.loadPlan(messID, in.PlanID)
	if err != nil {
		return nil, err
	}

	if in.CustomerNumber > 0 {
		customer.CustomerNumber = in.CustomerNumber
	}
	s.applyInput(&customer, in, plan, start)
	if err := s.checkMealCeiling(&customer); err != nil {
		return nil, err
	}

	if err := s.db.Save(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: customer number %d already in use", ErrValidation, customer.CustomerNumber)
		}
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes the customer permanently. Attendance records are
// kept: they are historical facts, not owned children.
func (s *LedgerService) DeleteCustomer(messID, customerID uuid.UUID) error {
	result := s.db.Unscoped().Where("mess_id = ? AND id = ?", messID, customerID).
		Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// RefreshStatuses recomputes the persisted status of every customer. Status
// is a cached projection: set on every write, corrected here daily so plain
// date passage moves customers to expiring/expired without a write.
func (s *LedgerService) RefreshStatuses(asOf time.Time) (int, error) {
	var customers []models.Customer
	if err := s.db.Find(&customers).Error; err != nil {
		return 0, err
	}

	changed := 0
	for i := range customers {
		status := DeriveStatus(&customers[i], asOf)
		if status == customers[i].Status {
			continue
		}
		if err := s.db.Model(&customers[i]).Update("status", status).Error; err != nil {
			log.Printf("Failed to refresh status for customer %s: %v", customers[i].ID, err)
			continue
		}
		changed++
	}
	return changed, nil
}

func (s *LedgerService) validate(in CustomerInput) (time.Time, error) {
	if in.Name == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Mobile == "" {
		return time.Time{}, fmt.Errorf("%w: mobile is required", ErrValidation)
	}
	if !utils.ValidateMobile(in.Mobile) {
		return time.Time{}, fmt.Errorf("%w: invalid mobile number format", ErrValidation)
	}
	if in.StartDate == "" {
		return time.Time{}, fmt.Errorf("%w: startDate is required", ErrValidation)
	}
	start, err := utils.ParseDay(in.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrValidation)
	}
	if in.AmountPaid < 0 {
		return time.Time{}, fmt.Errorf("%w: amountPaid cannot be negative", ErrValidation)
	}
	if in.MealsConsumed < 0 {
		return time.Time{}, fmt.Errorf("%w: mealsConsumed cannot be negative", ErrValidation)
	}
	return start, nil
}

func (s *LedgerService) loadPlan(messID uuid.UUID, planID *uuid.UUID) (*models.Plan, error) {
	if planID == nil {
		return nil, nil
	}
	var plan models.Plan
	if err := s.db.Where("mess_id = ? AND id = ?", messID, *planID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// applyInput writes the derived state onto the customer: bilingual names,
// plan snapshot, end date, remaining amount and status.
func (s *LedgerService) applyInput(c *models.Customer, in CustomerInput, plan *models.Plan, start time.Time) {
	c.Name, c.NameMarathi = s.resolveNames(in.Name)
	c.Mobile = in.Mobile
	c.StartDate = start
	c.AmountPaid = in.AmountPaid
	c.MealsConsumed = in.MealsConsumed

	// Plan fields are a snapshot: copied here, never refreshed from the plan
	// afterwards.
	validityDays := DefaultValidityDays
	if plan != nil {
		c.PlanID = &plan.ID
		c.PlanName = plan.Name
		c.PlanPrice = plan.Price
		c.TotalMeals = plan.TotalMeals
		if plan.ValidityDays > 0 {
			validityDays = plan.ValidityDays
		}
	} else {
		c.PlanID = nil
		c.PlanName = ""
		c.PlanPrice = 0
		c.TotalMeals = 0
	}

	c.EndDate = start.AddDate(0, 0, validityDays)
	c.RemainingAmount = c.PlanPrice - c.AmountPaid
	c.Status = DeriveStatus(c, time.Now())
}

func (s *LedgerService) checkMealCeiling(c *models.Customer) error {
	if c.TotalMeals > 0 && c.MealsConsumed > c.TotalMeals {
		return fmt.Errorf("%w: mealsConsumed (%d) exceeds plan allowance (%d)",
			ErrValidation, c.MealsConsumed, c.TotalMeals)
	}
	return nil
}

// resolveNames fills both name channels from a single submitted name. A
// Devanagari name is the Marathi one and the English counterpart comes from
// the translator; a Latin name works the other way. Translation is best
// effort, the original text stands in on failure.
func (s *LedgerService) resolveNames(name string) (english, marathi string) {
	if utils.ContainsDevanagari(name) {
		return translateBestEffort(s.translator, name, "mr", "en"), name
	}
	return name, translateBestEffort(s.translator, name, "en", "mr")
}

// nextCustomerNumber allocates max+1 per mess inside the caller's
// transaction. The composite unique index on (mess_id, customer_number)
// backstops concurrent sessions allocating the same number.
func nextCustomerNumber(tx *gorm.DB, messID uuid.UUID) (int, error) {
	var max int
	err := tx.Model(&models.Customer{}).
		Where("mess_id = ?", messID).
		Select("COALESCE(MAX(customer_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
