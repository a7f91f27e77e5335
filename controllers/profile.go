package controllers

import (
	"net/http"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	MessName        string `json:"messName"`
	MessNameMarathi string `json:"messNameMarathi"`
	MessAddress     string `json:"messAddress"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

type UpdateNotificationsInput struct {
	SMSNotifications      *bool `json:"smsNotifications"`
	WhatsAppNotifications *bool `json:"whatsAppNotifications"`
}

func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messName":        user.MessName,
		"messNameMarathi": user.MessNameMarathi,
		"messAddress":     user.MessAddress,
		"phone":           user.Phone,
		"email":           user.Email,
		"settings":        user.Settings,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	// Update fields
	user.MessName = input.MessName
	user.MessNameMarathi = input.MessNameMarathi
	user.MessAddress = input.MessAddress
	user.Phone = input.Phone
	user.Email = input.Email

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateNotifications toggles the reminder channels consumed by the daily
// expiry reminder job
func UpdateNotifications(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input UpdateNotificationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if user.Settings == nil {
		user.Settings = models.JSONB{}
	}
	if input.SMSNotifications != nil {
		user.Settings["smsNotifications"] = *input.SMSNotifications
	}
	if input.WhatsAppNotifications != nil {
		user.Settings["whatsAppNotifications"] = *input.WhatsAppNotifications
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated", "settings": user.Settings})
}
