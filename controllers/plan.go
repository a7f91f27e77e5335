// controllers/plan.go
package controllers

import (
	"net/http"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatePlanInput defines the expected JSON structure for creating a plan
type CreatePlanInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"min=0"`
	TotalMeals   int     `json:"totalMeals" binding:"min=0"` // 0 means unlimited
	ValidityDays int     `json:"validityDays" binding:"min=0"`
}

// CreatePlan creates a new subscription plan for the mess
func CreatePlan(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Omitted or zero validity falls back to a month
	if input.ValidityDays <= 0 {
		input.ValidityDays = 30
	}

	plan := models.Plan{
		MessID:       messID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		TotalMeals:   input.TotalMeals,
		ValidityDays: input.ValidityDays,
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlans retrieves all plans for the mess
func GetPlans(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	var plans []models.Plan
	if err := config.DB.Where("mess_id = ?", messID).Order("created_at").
		Find(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// DeletePlan deletes a plan. Unconditional: customers keep their snapshot of
// the plan fields, so enrolled customers are unaffected.
func DeletePlan(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	planID := c.Param("id")
	planUUID, err := uuid.Parse(planID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	result := config.DB.Where("mess_id = ? AND id = ?", messID, planUUID).
		Delete(&models.Plan{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}
