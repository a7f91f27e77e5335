package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atharvabaodhankar/MessFlow/config"
	"github.com/atharvabaodhankar/MessFlow/models"
	"github.com/atharvabaodhankar/MessFlow/services"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestEnv points the global config.DB at a per-test in-memory database
// and seeds one mess owner. Tests share the global handle, so no t.Parallel.
func setupTestEnv(t *testing.T) (*gorm.DB, *models.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Customer{},
		&models.AttendanceRecord{},
		&models.ReminderLog{},
	))
	config.DB = db

	owner := &models.User{
		Email:           fmt.Sprintf("%s@example.com", t.Name()),
		Password:        "secret-pass",
		Name:            "Owner",
		MessName:        "Annapurna Mess",
		MessNameMarathi: "अन्नपूर्णा मेस",
		Settings:        models.JSONB{},
	}
	require.NoError(t, db.Create(owner).Error)
	return db, owner
}

// testRouter mirrors the real route table with the auth middleware replaced
// by a shim that injects the given owner's identity.
func testRouter(messID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.GET("/public/customers", PublicLookup)

	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("userId", messID.String())
		c.Set("messId", messID.String())
		c.Next()
	})
	{
		api.POST("/customers", CreateCustomer)
		api.GET("/customers", GetCustomers)
		api.GET("/customers/:id", GetCustomer)
		api.PUT("/customers/:id", UpdateCustomer)
		api.DELETE("/customers/:id", DeleteCustomer)

		api.POST("/plans", CreatePlan)
		api.GET("/plans", GetPlans)
		api.DELETE("/plans/:id", DeletePlan)

		api.POST("/attendance", MarkAttendance)
		api.GET("/attendance/today", GetTodayAttendance)
		api.GET("/attendance/search", SearchCustomers)

		api.GET("/analytics", GetAnalytics)
		api.GET("/dashboard", GetDashboardOverview)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createTestCustomer(t *testing.T, db *gorm.DB, messID uuid.UUID, in services.CustomerInput) *models.Customer {
	t.Helper()
	if in.StartDate == "" {
		in.StartDate = utils.FormatDay(time.Now())
	}
	customer, err := services.NewLedgerService(db, nil).CreateCustomer(messID, in)
	require.NoError(t, err)
	return customer
}
