// controllers/public.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PublicLookup lets an end customer self-check their subscription by mobile
// number, unauthenticated. Exact match, first found; a missing customer is a
// rendered empty result, not an error.
func PublicLookup(c *gin.Context) {
	mobile := c.Query("mobile")
	if mobile == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "mobile query parameter is required")
		return
	}

	var customer models.Customer
	err := config.DB.Where("mobile = ?", mobile).Order("created_at").
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"found": false})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Resolve the owning mess's display name
	messName := ""
	var owner models.User
	if err := config.DB.First(&owner, "id = ?", customer.MessID).Error; err == nil {
		messName = owner.MessName
		if owner.MessNameMarathi != "" {
			messName = owner.MessNameMarathi
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"found":    true,
		"messName": messName,
		"customer": gin.H{
			"name":           customer.Name,
			"nameMarathi":    customer.DisplayName(),
			"customerNumber": customer.CustomerNumber,
			"planName":       customer.PlanName,
			"startDate":      utils.FormatDay(customer.StartDate),
			"endDate":        utils.FormatDay(customer.EndDate),
			"status":         customer.Status,
			"mealsRemaining": customer.MealsRemaining(),
		},
	})
}
