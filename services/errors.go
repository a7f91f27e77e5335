// services/errors.go
package services

import "errors"

// Business-rule and lookup failures surfaced by the ledger and attendance
// services. Controllers map these onto HTTP statuses; nothing here is
// retryable.
var (
	ErrValidation       = errors.New("validation failed")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrAlreadyMarked    = errors.New("attendance already marked for this date")
	ErrPlanExpired      = errors.New("plan has expired")
	ErrMealsExhausted   = errors.New("meal allowance exhausted")
)
