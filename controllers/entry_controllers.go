package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/services"
	"github.com/fieldserve/fieldserve-app/utils"
)

type EntryController struct {
	DB        *gorm.DB
	Timesheet *services.TimesheetService
	Approval  *services.ApprovalService
}

func NewEntryController(db *gorm.DB) *EntryController {
	return &EntryController{
		DB:        db,
		Timesheet: services.NewTimesheetService(db),
		Approval:  services.NewApprovalService(db),
	}
}

// GetWorkLogEntries lists a work log's entries, newest first. Approval state
// can be filtered with ?approved=true|false; rejected (soft-deleted) entries
// never appear.
func (ec *EntryController) GetWorkLogEntries(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	query := ec.DB.Where("worklog_id = ? AND is_deleted = ?", id, false)
	if approved := c.Query("approved"); approved != "" {
		val, err := strconv.ParseBool(approved)
		if err != nil {
			utils.RespondTypedError(c, utils.NewValidationError("approved", "must be true or false"))
			return
		}
		query = query.Where("is_approved = ?", val)
	}

	var entries []models.WorkLogEntry
	if err := query.Preload("Engineer").Order("date, id").Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Work log entries", entries)
}

// CreateWorkLogEntry creates a single entry directly, bypassing the weekly
// apportionment. Used by managers backfilling one engineer's work.
func (ec *EntryController) CreateWorkLogEntry(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name                      string  `json:"name"`
		Date                      string  `json:"date" binding:"required"`
		EngineerID                uint    `json:"engineer_id"`
		GangEngineerID            uint    `json:"gang_engineer_id"`
		CustomerRateCardProductID uint    `json:"customer_rate_card_product_id"`
		UnitSale                  float64 `json:"unit_sale"`
		UnitWage                  float64 `json:"unit_wage"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		utils.RespondTypedError(c, utils.NewValidationError("date", "must be a YYYY-MM-DD date"))
		return
	}
	if body.EngineerID == 0 {
		utils.RespondTypedError(c, utils.NewValidationError("engineer_id", "engineer is required"))
		return
	}
	if body.CustomerRateCardProductID == 0 {
		utils.RespondTypedError(c, utils.NewValidationError("customer_rate_card_product_id", "rate card product is required"))
		return
	}
	if body.UnitSale < 0 || body.UnitWage < 0 {
		utils.RespondTypedError(c, utils.NewValidationError("quantity", "quantities must not be negative"))
		return
	}

	var workLog models.WorkLog
	if err := ec.DB.Where("is_deleted = ?", false).First(&workLog, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log", uint(id)))
		return
	}

	var engineer models.Engineer
	if err := ec.DB.Where("is_deleted = ?", false).First(&engineer, body.EngineerID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("engineer", body.EngineerID))
		return
	}

	gangEngineerID := body.GangEngineerID
	if gangEngineerID == 0 {
		// Resolve the membership from the work log's gang when not given.
		var gangEngineer models.GangEngineer
		if err := ec.DB.Where("gang_id = ? AND engineer_id = ? AND is_deleted = ?",
			workLog.GangID, engineer.ID, false).First(&gangEngineer).Error; err != nil {
			utils.RespondTypedError(c, utils.NewValidationError("gang_engineer_id",
				"engineer is not a member of this work log's gang"))
			return
		}
		gangEngineerID = gangEngineer.ID
	}

	name := body.Name
	if name == "" {
		name = engineer.Name
	}

	entry := models.WorkLogEntry{
		Name:                      name,
		Date:                      body.Date,
		EngineerID:                engineer.ID,
		GangID:                    workLog.GangID,
		GangEngineerID:            gangEngineerID,
		WorkLogID:                 workLog.ID,
		CustomerRateCardProductID: body.CustomerRateCardProductID,
		UnitSale:                  body.UnitSale,
		UnitWage:                  body.UnitWage,
	}
	if err := ec.DB.Create(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Work log entry created", entry)
}

// SubmitWeek accepts a week of (date, product, quantity) rows, apportions
// each across the gang and persists the resulting entries in one batch.
// Submitting the same payload twice creates a second entry set.
func (ec *EntryController) SubmitWeek(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	type draftRow struct {
		Date                      string  `json:"date" binding:"required"`
		WorkLogProductID          uint    `json:"work_log_product_id" binding:"required"`
		CustomerRateCardProductID uint    `json:"customer_rate_card_product_id"`
		Quantity                  float64 `json:"quantity"`
	}
	type reqBody struct {
		WeekStart string     `json:"week_start" binding:"required"`
		Rows      []draftRow `json:"rows" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	for _, row := range body.Rows {
		if row.Quantity < 0 {
			utils.RespondTypedError(c, utils.NewValidationError("quantity", "quantities must not be negative"))
			return
		}
	}

	draft, err := services.NewWeekDraft(uint(id), body.WeekStart)
	if err != nil {
		utils.RespondTypedError(c, err)
		return
	}
	for _, row := range body.Rows {
		draft.SetQuantity(row.Date, row.WorkLogProductID, row.Quantity)
		draft.SetRateCardProduct(row.Date, row.WorkLogProductID, row.CustomerRateCardProductID)
	}

	entries, err := ec.Timesheet.Submit(draft)
	if err != nil {
		utils.RespondTypedError(c, err)
		return
	}

	utils.InfoLogger.Printf("work log %d: %d entries submitted for week %s", id, len(entries), draft.WeekStart)
	utils.RespondJSON(c, http.StatusCreated, "Work logged", gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// ApproveEntries bulk-approves the selected entries of one work log. Ids
// from other work logs, unknown ids and already rejected ids are skipped,
// never failing the batch.
func (ec *EntryController) ApproveEntries(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		EntryIDs []uint `json:"entry_ids" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	count, err := ec.Approval.Approve(uint(id), body.EntryIDs)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Entries approved", gin.H{"count": count})
}

// RejectEntries bulk-rejects (soft-deletes) the selected entries of one
// work log.
func (ec *EntryController) RejectEntries(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		EntryIDs []uint `json:"entry_ids" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	count, err := ec.Approval.Reject(uint(id), body.EntryIDs)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Entries rejected", gin.H{"count": count})
}

// GetWeekSummary returns day totals, the week total and per-engineer payouts
// for the week containing ?week_start.
func (ec *EntryController) GetWeekSummary(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondTypedError(c, utils.NewValidationError("week_start", "week_start query parameter is required"))
		return
	}

	summary, err := ec.Timesheet.WeekSummary(uint(id), weekStart)
	if err != nil {
		utils.RespondTypedError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Week summary", summary)
}
