package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.CustomerRateCard{},
		&models.CustomerRateCardProduct{},
		&models.Engineer{},
		&models.Gang{},
		&models.GangEngineer{},
		&models.WorkLog{},
		&models.WorkLogProduct{},
		&models.WorkLogEntry{},
	)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

// seedWorkLog creates a customer, rate card with one priced product, a gang
// of two engineers on a 50/50 split, and a work log with one product.
func seedWorkLog(t *testing.T, db *gorm.DB) (models.WorkLog, models.WorkLogProduct, models.CustomerRateCardProduct) {
	customer := models.Customer{Name: "Acme Utilities"}
	db.Create(&customer)

	product := models.Product{Name: "Trench Metre", Code: "TM-01", UnitOfMeasure: "m"}
	db.Create(&product)

	rateCard := models.CustomerRateCard{Name: "Acme 2025", CustomerID: customer.ID}
	db.Create(&rateCard)

	rateCardProduct := models.CustomerRateCardProduct{
		Name:               "Trench Metre",
		CustomerRateCardID: rateCard.ID,
		ProductID:          product.ID,
		CassRate:           6.00,
		EngineerRate:       4.50,
	}
	db.Create(&rateCardProduct)

	e1 := models.Engineer{Name: "Alice"}
	e2 := models.Engineer{Name: "Bob"}
	db.Create(&e1)
	db.Create(&e2)

	gang := models.Gang{Name: "North Gang"}
	db.Create(&gang)
	db.Create(&models.GangEngineer{Name: "Lead", GangID: gang.ID, EngineerID: e1.ID, EngineerShare: 50})
	db.Create(&models.GangEngineer{Name: "Mate", GangID: gang.ID, EngineerID: e2.ID, EngineerShare: 50})

	workLog := models.WorkLog{Name: "Acme North", CustomerRateCardID: rateCard.ID, GangID: gang.ID}
	db.Create(&workLog)

	workLogProduct := models.WorkLogProduct{
		Name:                      "Trenching",
		WorkLogID:                 workLog.ID,
		CustomerRateCardProductID: rateCardProduct.ID,
	}
	db.Create(&workLogProduct)

	return workLog, workLogProduct, rateCardProduct
}

func TestMaterializeSplitsAcrossPositiveShares(t *testing.T) {
	workLog := models.WorkLog{ID: 1, GangID: 4}
	product := models.WorkLogProduct{ID: 2, Name: "Trenching"}
	gangEngineers := []models.GangEngineer{
		{ID: 10, GangID: 4, EngineerID: 1, EngineerShare: 50},
		{ID: 11, GangID: 4, EngineerID: 2, EngineerShare: 50},
		{ID: 12, GangID: 4, EngineerID: 3, EngineerShare: 0},
	}
	engineers := map[uint]models.Engineer{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
		3: {ID: 3, Name: "Carol"},
	}

	entries := Materialize("2025-06-09", workLog, product, 7, 10, gangEngineers, engineers)

	assert.Len(t, entries, 2, "one entry per positive-share engineer")
	assert.Equal(t, "Alice - Trenching", entries[0].Name)
	assert.Equal(t, "Bob - Trenching", entries[1].Name)
	for _, e := range entries {
		assert.Equal(t, 5.00, e.UnitSale)
		assert.Equal(t, e.UnitSale, e.UnitWage, "sale and wage quantities are set identically")
		assert.False(t, e.IsApproved)
		assert.False(t, e.IsDeleted)
		assert.Equal(t, "2025-06-09", e.Date)
		assert.Equal(t, uint(4), e.GangID)
		assert.Equal(t, uint(7), e.CustomerRateCardProductID)
	}
	assert.Equal(t, uint(10), entries[0].GangEngineerID)
	assert.Equal(t, uint(11), entries[1].GangEngineerID)
}

func TestMaterializeUsesApportionedQuantities(t *testing.T) {
	workLog := models.WorkLog{ID: 1, GangID: 4}
	product := models.WorkLogProduct{ID: 2, Name: "Trenching"}
	gangEngineers := []models.GangEngineer{
		{ID: 10, GangID: 4, EngineerID: 1, EngineerShare: 33.33},
		{ID: 11, GangID: 4, EngineerID: 2, EngineerShare: 66.67},
	}
	engineers := map[uint]models.Engineer{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
	}

	entries := Materialize("2025-06-09", workLog, product, 7, 7, gangEngineers, engineers)

	assert.Len(t, entries, 2)
	assert.Equal(t, 2.33, entries[0].UnitWage)
	assert.Equal(t, 4.67, entries[1].UnitWage)
}

func TestMaterializeGuards(t *testing.T) {
	workLog := models.WorkLog{ID: 1, GangID: 4}
	product := models.WorkLogProduct{ID: 2, Name: "Trenching"}
	gangEngineers := []models.GangEngineer{{ID: 10, GangID: 4, EngineerID: 1, EngineerShare: 100}}
	engineers := map[uint]models.Engineer{1: {ID: 1, Name: "Alice"}}

	assert.Empty(t, Materialize("2025-06-09", workLog, product, 7, 0, gangEngineers, engineers),
		"zero quantity produces no entries")
	assert.Empty(t, Materialize("2025-06-09", workLog, product, 0, 10, gangEngineers, engineers),
		"unset rate card product produces no entries")
}

func TestMaterializeExcludesMissingEngineers(t *testing.T) {
	workLog := models.WorkLog{ID: 1, GangID: 4}
	product := models.WorkLogProduct{ID: 2, Name: "Trenching"}
	gangEngineers := []models.GangEngineer{
		{ID: 10, GangID: 4, EngineerID: 1, EngineerShare: 50},
		{ID: 11, GangID: 4, EngineerID: 99, EngineerShare: 50},
	}
	engineers := map[uint]models.Engineer{1: {ID: 1, Name: "Alice"}}

	entries := Materialize("2025-06-09", workLog, product, 7, 10, gangEngineers, engineers)
	assert.Len(t, entries, 1, "missing engineer records are excluded, not an error")
	assert.Equal(t, uint(1), entries[0].EngineerID)
}

func TestSubmitPersistsEntries(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "submit_persists")
	workLog, workLogProduct, rateCardProduct := seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	draft, err := NewWeekDraft(workLog.ID, "2025-06-09")
	assert.NoError(t, err)
	draft.SetQuantity("2025-06-09", workLogProduct.ID, 10)
	draft.SetRateCardProduct("2025-06-09", workLogProduct.ID, rateCardProduct.ID)

	entries, err := ts.Submit(draft)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	var stored []models.WorkLogEntry
	db.Where("worklog_id = ?", workLog.ID).Find(&stored)
	assert.Len(t, stored, 2)
	for _, e := range stored {
		assert.Equal(t, 5.00, e.UnitSale)
		assert.False(t, e.IsApproved)
	}
}

func TestSubmitIsNotIdempotent(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "submit_not_idempotent")
	workLog, workLogProduct, rateCardProduct := seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	makeDraft := func() *WeekDraft {
		draft, err := NewWeekDraft(workLog.ID, "2025-06-09")
		assert.NoError(t, err)
		draft.SetQuantity("2025-06-10", workLogProduct.ID, 8)
		draft.SetRateCardProduct("2025-06-10", workLogProduct.ID, rateCardProduct.ID)
		return draft
	}

	first, err := ts.Submit(makeDraft())
	assert.NoError(t, err)
	second, err := ts.Submit(makeDraft())
	assert.NoError(t, err)
	assert.Equal(t, len(first), len(second))

	var total int64
	db.Model(&models.WorkLogEntry{}).Where("worklog_id = ?", workLog.ID).Count(&total)
	assert.Equal(t, int64(len(first)+len(second)), total, "duplicate submission creates duplicate entries")
}

func TestSubmitRejectsEmptyDraft(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "submit_empty")
	workLog, workLogProduct, _ := seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	draft, err := NewWeekDraft(workLog.ID, "2025-06-09")
	assert.NoError(t, err)
	// Quantity without a selected rate card product contributes nothing.
	draft.SetQuantity("2025-06-09", workLogProduct.ID, 5)

	_, err = ts.Submit(draft)
	assert.Error(t, err)
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestSubmitRejectsDatesOutsideWeek(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "submit_date_outside_week")
	workLog, workLogProduct, rateCardProduct := seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	for _, date := range []string{"2025-06-16", "2025-99-99"} {
		draft, err := NewWeekDraft(workLog.ID, "2025-06-09")
		assert.NoError(t, err)
		draft.SetQuantity(date, workLogProduct.ID, 5)
		draft.SetRateCardProduct(date, workLogProduct.ID, rateCardProduct.ID)

		_, err = ts.Submit(draft)
		var vErr *utils.ValidationError
		assert.ErrorAs(t, err, &vErr, "row dated %s lies outside the week beginning 2025-06-09", date)
	}

	var total int64
	db.Model(&models.WorkLogEntry{}).Count(&total)
	assert.Equal(t, int64(0), total, "nothing persists when a row date is out of range")
}

func TestSubmitUnknownWorkLog(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "submit_unknown_worklog")
	seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	draft, err := NewWeekDraft(999, "2025-06-09")
	assert.NoError(t, err)
	draft.SetQuantity("2025-06-09", 1, 5)
	draft.SetRateCardProduct("2025-06-09", 1, 1)

	_, err = ts.Submit(draft)
	var nfErr *utils.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestWeekSummary(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "week_summary")
	workLog, workLogProduct, rateCardProduct := seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	draft, err := NewWeekDraft(workLog.ID, "2025-06-09")
	assert.NoError(t, err)
	draft.SetQuantity("2025-06-09", workLogProduct.ID, 10)
	draft.SetRateCardProduct("2025-06-09", workLogProduct.ID, rateCardProduct.ID)
	_, err = ts.Submit(draft)
	assert.NoError(t, err)

	summary, err := ts.WeekSummary(workLog.ID, "2025-06-11")
	assert.NoError(t, err)
	assert.Equal(t, "2025-06-09", summary.WeekStart, "week start normalizes to Monday")
	assert.Len(t, summary.Days, 7)

	// 10 units split 5/5, each at the 4.50 engineer rate.
	assert.InDelta(t, 45.00, summary.Days[0].Total, 1e-9)
	assert.InDelta(t, 45.00, summary.WeekTotal, 1e-9)
	assert.Equal(t, "£45.00", summary.WeekTotalDisplay)

	assert.Len(t, summary.Engineers, 2)
	for _, eng := range summary.Engineers {
		assert.InDelta(t, 22.50, eng.Total, 1e-9, "each half share of the 45.00 week total")
	}
}

func TestWeekSummaryExcludesRejectedEntries(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "week_summary_rejected")
	workLog, workLogProduct, rateCardProduct := seedWorkLog(t, db)
	ts := NewTimesheetService(db)

	draft, err := NewWeekDraft(workLog.ID, "2025-06-09")
	assert.NoError(t, err)
	draft.SetQuantity("2025-06-09", workLogProduct.ID, 10)
	draft.SetRateCardProduct("2025-06-09", workLogProduct.ID, rateCardProduct.ID)
	entries, err := ts.Submit(draft)
	assert.NoError(t, err)

	_, err = NewApprovalService(db).Reject(workLog.ID, []uint{entries[0].ID})
	assert.NoError(t, err)

	summary, err := ts.WeekSummary(workLog.ID, "2025-06-09")
	assert.NoError(t, err)
	assert.InDelta(t, 22.50, summary.WeekTotal, 1e-9, "only the surviving 5-unit entry counts")
}
