package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/router"
	"github.com/fieldserve/fieldserve-app/utils"
)

func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	autoMigrate(db)
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

// TestWeeklySubmissionAndApprovalFlow drives the full path an admin takes:
// set up customer, rates, gang and work log; an engineer submits a week;
// a manager reviews the entries and checks the totals.
func TestWeeklySubmissionAndApprovalFlow(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	w0 := doJSON(t, r, "GET", "/ping", nil)
	assert.Equal(t, http.StatusOK, w0.Code, "health check sees the database")

	// Master data.
	w := doJSON(t, r, "POST", "/customers", gin.H{"name": "Acme Utilities"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/products", gin.H{"name": "Trench Metre", "code": "TM-01", "unit_of_measure": "m"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/rate-cards", gin.H{"name": "Acme 2025", "customer_id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/rate-cards/1/products", gin.H{
		"name": "Trench Metre", "product_id": 1,
		"cass_rate": 6.00, "engineer_rate": 4.50,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Billed at 6.00, paid out at 4.50: a 25% margin.
	w = doJSON(t, r, "GET", "/rate-cards/1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var productsResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &productsResp))
	priced := productsResp["data"].([]interface{})
	assert.Len(t, priced, 1)
	assert.InDelta(t, 25, priced[0].(map[string]interface{})["margin"].(float64), 1e-9)

	// The gang: two engineers splitting work 50/50.
	w = doJSON(t, r, "POST", "/engineers", gin.H{"name": "Alice"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/engineers", gin.H{"name": "Bob"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/gangs", gin.H{"name": "North Gang"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/gangs/1/engineers", gin.H{"name": "Lead", "engineer_id": 1, "engineer_share": 50})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/gangs/1/engineers", gin.H{"name": "Mate", "engineer_id": 2, "engineer_share": 50})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Work log with one product, tracked by a project.
	w = doJSON(t, r, "POST", "/worklogs", gin.H{"name": "Acme North", "customer_rate_card_id": 1, "gang_id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/worklogs/1/products", gin.H{"name": "Trenching", "customer_rate_card_product_id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/projects", gin.H{"name": "Acme Phase 1", "status": "started", "work_log_id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Engineer submits a week: 10 units on Monday.
	w = doJSON(t, r, "POST", "/worklogs/1/entries/submit", gin.H{
		"week_start": "2025-06-09",
		"rows": []gin.H{
			{"date": "2025-06-09", "work_log_product_id": 1, "customer_rate_card_product_id": 1, "quantity": 10},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(2), dataOf(t, w)["count"])

	// The manager's weekly view: 10 units at 4.50, split 22.50 each.
	w = doJSON(t, r, "GET", "/worklogs/1/summary?week_start=2025-06-09", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	summary := dataOf(t, w)
	assert.InDelta(t, 45.00, summary["week_total"].(float64), 1e-9)
	engineers := summary["engineers"].([]interface{})
	assert.Len(t, engineers, 2)
	for _, e := range engineers {
		assert.InDelta(t, 22.50, e.(map[string]interface{})["total"].(float64), 1e-9)
	}

	// Approve both entries, one bogus id mixed in.
	w = doJSON(t, r, "POST", "/worklogs/1/entries/approve", gin.H{"entry_ids": []uint{1, 2, 99}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), dataOf(t, w)["count"])

	var approved int64
	db.Model(&models.WorkLogEntry{}).Where("is_approved = ?", true).Count(&approved)
	assert.Equal(t, int64(2), approved)

	// Nothing left pending.
	w = doJSON(t, r, "GET", "/worklogs/1/entries?approved=false", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Nil(t, listResp["data"], "no pending entries remain")
}
