// controllers/attendance.go
package controllers

import (
	"net/http"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/services"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MarkAttendanceInput defines the expected JSON structure for marking
// attendance. Date is optional and defaults to today.
type MarkAttendanceInput struct {
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	Date       string    `json:"date"` // YYYY-MM-DD
}

// MarkAttendance records one attendance event for a customer. 201 on
// success, 409 when already marked for the day, 422 when the plan has
// expired or the meal allowance is used up.
func MarkAttendance(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	var input MarkAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	attendance := services.NewAttendanceService(config.DB, services.NewHTTPTranslator())
	customer, err := attendance.Mark(messID, input.CustomerID, input.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// The returned customer carries the incremented meal counter so the
	// marking screen can refresh its badge without a reload.
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Attendance marked",
		"customer": customer,
	})
}

// GetTodayAttendance returns the active roster together with who is already
// marked today
func GetTodayAttendance(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	attendance := services.NewAttendanceService(config.DB, nil)
	customers, marked, err := attendance.TodayRoster(messID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve attendance")
		return
	}

	markedIDs := make(map[string]bool, len(marked))
	for id := range marked {
		markedIDs[id.String()] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"marked":    markedIDs,
	})
}

// SearchCustomers resolves the marking screen's search box: customer number
// first, then name/mobile substrings, then a translated retry for Marathi
// queries
func SearchCustomers(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	attendance := services.NewAttendanceService(config.DB, services.NewHTTPTranslator())
	customers, err := attendance.Search(messID, c.Query("q"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	c.JSON(http.StatusOK, customers)
}
