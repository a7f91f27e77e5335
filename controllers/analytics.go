// controllers/analytics.go
package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/services"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
)

// AnalyticsSummary represents the full read-side rollup for one mess
type AnalyticsSummary struct {
	TotalRevenue        float64          `json:"totalRevenue"`
	TotalOutstanding    float64          `json:"totalOutstanding"`
	ActiveCustomers     int              `json:"activeCustomers"`
	ExpiringSoon        int              `json:"expiringSoon"`
	LowBalanceCustomers int              `json:"lowBalanceCustomers"`
	TodayAttendance     int              `json:"todayAttendance"`
	AverageAttendance   int              `json:"averageAttendance"` // percent, trailing 30 days
	RevenueByPlan       []NameValue      `json:"revenueByPlan"`
	StatusDistribution  []NameCount      `json:"statusDistribution"`
	PlanDistribution    []NameCount      `json:"planDistribution"`
	AttendanceTrend     []DayCount       `json:"attendanceTrend"` // 30 daily buckets
	CustomerGrowth      []MonthCount     `json:"customerGrowth"`  // 6 monthly buckets
}

type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// GetAnalytics computes the rollups over bulk snapshots of the mess's
// customers and attendance records. Read-only, no new invariants.
func GetAnalytics(c *gin.Context) {
	messID, ok := messUUID(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("mess_id = ?", messID).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	var attendance []models.AttendanceRecord
	if err := config.DB.Where("mess_id = ?", messID).Find(&attendance).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve attendance")
		return
	}

	c.JSON(http.StatusOK, buildAnalytics(customers, attendance, time.Now()))
}

func buildAnalytics(customers []models.Customer, attendance []models.AttendanceRecord, now time.Time) AnalyticsSummary {
	summary := AnalyticsSummary{
		RevenueByPlan:      []NameValue{},
		StatusDistribution: []NameCount{},
		PlanDistribution:   []NameCount{},
	}

	today := utils.FormatDay(now)
	statusCounts := map[string]int{}
	revenueByPlan := map[string]float64{}
	activeByPlan := map[string]int{}

	for i := range customers {
		cust := &customers[i]
		summary.TotalRevenue += cust.AmountPaid
		summary.TotalOutstanding += cust.RemainingAmount
		statusCounts[cust.Status]++

		if cust.PlanName != "" {
			revenueByPlan[cust.PlanName] += cust.AmountPaid
		}

		if cust.Status == models.StatusActive || cust.Status == models.StatusExpiring {
			if cust.PlanName != "" {
				activeByPlan[cust.PlanName]++
			}
			daysLeft := utils.DaysBetween(now, cust.EndDate)
			if daysLeft >= 0 && daysLeft <= 7 {
				summary.ExpiringSoon++
			}
			meals := cust.MealsRemaining()
			if daysLeft <= services.LowBalanceDays || (meals >= 0 && meals <= services.LowBalanceMeals) {
				summary.LowBalanceCustomers++
			}
		}
	}
	summary.ActiveCustomers = statusCounts[models.StatusActive] + statusCounts[models.StatusExpiring]

	// Attendance buckets: today plus the trailing 30-day window
	countsByDay := map[string]int{}
	for _, record := range attendance {
		countsByDay[record.Date]++
	}
	summary.TodayAttendance = countsByDay[today]

	total30 := 0
	for i := 29; i >= 0; i-- {
		day := utils.FormatDay(now.AddDate(0, 0, -i))
		count := countsByDay[day]
		total30 += count
		summary.AttendanceTrend = append(summary.AttendanceTrend, DayCount{Date: day, Count: count})
	}
	if summary.ActiveCustomers > 0 {
		summary.AverageAttendance = int(math.Round(float64(total30) / 30 / float64(summary.ActiveCustomers) * 100))
	}

	// Customer growth: creation counts per month, trailing 6 months
	for i := 5; i >= 0; i-- {
		month := now.AddDate(0, -i, 0).Format("2006-01")
		count := 0
		for j := range customers {
			if customers[j].CreatedAt.Format("2006-01") == month {
				count++
			}
		}
		summary.CustomerGrowth = append(summary.CustomerGrowth, MonthCount{Month: month, Count: count})
	}

	for _, status := range []string{models.StatusActive, models.StatusExpiring, models.StatusExpired} {
		if statusCounts[status] > 0 {
			summary.StatusDistribution = append(summary.StatusDistribution,
				NameCount{Name: status, Count: statusCounts[status]})
		}
	}
	for name, revenue := range revenueByPlan {
		if revenue > 0 {
			summary.RevenueByPlan = append(summary.RevenueByPlan, NameValue{Name: name, Value: revenue})
		}
	}
	for name, count := range activeByPlan {
		summary.PlanDistribution = append(summary.PlanDistribution, NameCount{Name: name, Count: count})
	}

	return summary
}
