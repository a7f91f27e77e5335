package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/atharvabaodhankar/MessFlow/services"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// messUUID pulls the tenant id the auth middleware stored on the context.
// Responds and returns false when it is missing or malformed.
func messUUID(c *gin.Context) (uuid.UUID, bool) {
	messID, exists := c.Get("messId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Mess ID not found in context")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(messID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid mess ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps ledger/attendance errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCustomerNotFound), errors.Is(err, services.ErrPlanNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyMarked):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPlanExpired), errors.Is(err, services.ErrMealsExhausted):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("Unexpected service error: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
