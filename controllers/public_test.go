package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/atharvabaodhankar/MessFlow/services"
	"github.com/atharvabaodhankar/MessFlow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicLookupFound(t *testing.T) {
	db, owner := setupTestEnv(t)
	r := testRouter(owner.ID)

	createTestCustomer(t, db, owner.ID, services.CustomerInput{
		Name:      "Rahul",
		Mobile:    "9876543210",
		StartDate: utils.FormatDay(time.Now()),
	})

	rec := doJSON(t, r, http.MethodGet, "/public/customers?mobile=9876543210", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Found    bool   `json:"found"`
		MessName string `json:"messName"`
		Customer struct {
			Name           string `json:"name"`
			CustomerNumber int    `json:"customerNumber"`
			Status         string `json:"status"`
			MealsRemaining int    `json:"mealsRemaining"`
			EndDate        string `json:"endDate"`
		} `json:"customer"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Found)
	// Marathi mess name preferred when set
	assert.Equal(t, "अन्नपूर्णा मेस", body.MessName)
	assert.Equal(t, "Rahul", body.Customer.Name)
	assert.Equal(t, 1, body.Customer.CustomerNumber)
	assert.Equal(t, "active", body.Customer.Status)
	// No plan means no meal ceiling
	assert.Equal(t, -1, body.Customer.MealsRemaining)
	assert.Equal(t, utils.FormatDay(time.Now().AddDate(0, 0, 30)), body.Customer.EndDate)
}

func TestPublicLookupNotFound(t *testing.T) {
	_, owner := setupTestEnv(t)
	r := testRouter(owner.ID)

	rec := doJSON(t, r, http.MethodGet, "/public/customers?mobile=0000000000", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, false, body["found"])
	assert.NotContains(t, body, "customer")
}

func TestPublicLookupMissingMobile(t *testing.T) {
	_, owner := setupTestEnv(t)
	r := testRouter(owner.ID)

	rec := doJSON(t, r, http.MethodGet, "/public/customers", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
