package controllers

import (
	"errors"
	"net/http"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/services"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerInput defines the expected JSON structure for creating or updating
// a customer. Updates are full overwrites, so the same shape serves both.
type CustomerInput struct {
	Name           string     `json:"name" binding:"required"`
	Mobile         string     `json:"mobile" binding:"required"`
	StartDate      string     `json:"startDate" binding:"required"` // YYYY-MM-DD
	PlanID         *uuid.UUID `json:"planId"`
	AmountPaid     float64    `json:"amountPaid" binding:"min=0"`
	MealsConsumed  int        `json:"mealsConsumed" binding:"min=0"`
	CustomerNumber int        `json:"customerNumber" binding:"min=0"` // 0 = assign next free number
}

func (in CustomerInput) toService() services.CustomerInput {
	return services.CustomerInput{
		Name:           in.Name,
		Mobile:         in.Mobile,
		StartDate:      in.StartDate,
		PlanID:         in.PlanID,
		AmountPaid:     in.AmountPaid,
		MealsConsumed:  in.MealsConsumed,
		CustomerNumber: in.CustomerNumber,
	}
}

// CreateCustomer enrolls a new customer for the mess
func CreateCustomer(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ledger := services.NewLedgerService(config.DB, services.NewHTTPTranslator())
	customer, err := ledger.CreateCustomer(messID, input.toService())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the mess, optionally filtered by
// status (?status=active)
func GetCustomers(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	query := config.DB.Where("mess_id = ?", messID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var customers []models.Customer
	if err := query.Order("customer_number").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("mess_id = ? AND id = ?", messID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer overwrites the mutable fields of an existing customer and
// re-derives end date, remaining amount and status
func UpdateCustomer(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ledger := services.NewLedgerService(config.DB, services.NewHTTPTranslator())
	customer, err := ledger.UpdateCustomer(messID, customerUUID, input.toService())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer permanently deletes a customer. Attendance history is kept.
func DeleteCustomer(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	ledger := services.NewLedgerService(config.DB, nil)
	if err := ledger.DeleteCustomer(messID, customerUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
