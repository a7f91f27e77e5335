package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
)

type ExpiringCustomer struct {
	Name           string `json:"name"`
	CustomerNumber int    `json:"customerNumber"`
	EndDate        string `json:"endDate"`
	DaysLeft       string `json:"daysLeft"` // e.g. "Today", "Tomorrow", "3 days"
}

// GetDashboardOverview returns the quick stats for the landing screen
func GetDashboardOverview(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	// Total customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("mess_id = ?", messID).Count(&totalCustomers)

	// Active customers (expiring still eats here)
	var activeCustomers int64
	config.DB.Model(&models.Customer{}).
		Where("mess_id = ? AND status IN ?", messID,
			[]string{models.StatusActive, models.StatusExpiring}).
		Count(&activeCustomers)

	// Today's attendance
	today := utils.FormatDay(time.Now())
	var todayAttendance int64
	config.DB.Model(&models.AttendanceRecord{}).
		Where("mess_id = ? AND date = ?", messID, today).
		Count(&todayAttendance)

	// Collected from this month's enrollments. Keyed on created_at: the
	// nightly sweeps and attendance marks touch updated_at, which would pull
	// old customers' payments into the window.
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Customer{}).
		Where("mess_id = ? AND created_at >= ?", messID, firstOfMonth).
		Select("COALESCE(SUM(amount_paid), 0)").Scan(&monthlyRevenue)

	// Customers expiring in the next few days
	var expiring []models.Customer
	config.DB.Where("mess_id = ? AND status = ?", messID, models.StatusExpiring).
		Order("end_date").Limit(7).Find(&expiring)

	expiringList := []ExpiringCustomer{}
	for i := range expiring {
		daysLeft := utils.DaysBetween(now, expiring[i].EndDate)
		var label string
		switch daysLeft {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", daysLeft)
		}
		expiringList = append(expiringList, ExpiringCustomer{
			Name:           expiring[i].DisplayName(),
			CustomerNumber: expiring[i].CustomerNumber,
			EndDate:        utils.FormatDay(expiring[i].EndDate),
			DaysLeft:       label,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":  totalCustomers,
		"activeCustomers": activeCustomers,
		"todayAttendance": todayAttendance,
		"monthlyRevenue":  monthlyRevenue,
		"expiringSoon":    expiringList,
	})
}
