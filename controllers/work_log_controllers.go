package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

type WorkLogController struct {
	DB *gorm.DB
}

func NewWorkLogController(db *gorm.DB) *WorkLogController {
	return &WorkLogController{DB: db}
}

// GetAllWorkLogs
func (wc *WorkLogController) GetAllWorkLogs(c *gin.Context) {
	var workLogs []models.WorkLog
	if err := wc.DB.Where("is_deleted = ?", false).
		Preload("Gang").Preload("CustomerRateCard").
		Find(&workLogs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All work logs", workLogs)
}

// GetWorkLogByID
func (wc *WorkLogController) GetWorkLogByID(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	var workLog models.WorkLog
	if err := wc.DB.Where("is_deleted = ?", false).
		Preload("Gang").Preload("CustomerRateCard").
		First(&workLog, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Work log detail", workLog)
}

// CreateWorkLog ties one gang to one customer rate card.
func (wc *WorkLogController) CreateWorkLog(c *gin.Context) {
	type reqBody struct {
		Name               string `json:"name" binding:"required"`
		CustomerRateCardID uint   `json:"customer_rate_card_id" binding:"required"`
		GangID             uint   `json:"gang_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var rateCard models.CustomerRateCard
	if err := wc.DB.Where("is_deleted = ?", false).First(&rateCard, body.CustomerRateCardID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card", body.CustomerRateCardID))
		return
	}

	var gang models.Gang
	if err := wc.DB.Where("is_deleted = ?", false).First(&gang, body.GangID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang", body.GangID))
		return
	}

	workLog := models.WorkLog{
		Name:               body.Name,
		CustomerRateCardID: rateCard.ID,
		GangID:             gang.ID,
	}
	if err := wc.DB.Create(&workLog).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Work log created", workLog)
}

// UpdateWorkLog
func (wc *WorkLogController) UpdateWorkLog(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name string `json:"name"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var workLog models.WorkLog
	if err := wc.DB.Where("is_deleted = ?", false).First(&workLog, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log", uint(id)))
		return
	}

	if body.Name != "" {
		workLog.Name = body.Name
	}

	if err := wc.DB.Save(&workLog).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Work log updated", workLog)
}

// DeleteWorkLog
func (wc *WorkLogController) DeleteWorkLog(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	res := wc.DB.Model(&models.WorkLog{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Work log deleted", gin.H{"worklog_id": id})
}

// GetWorkLogProducts lists the products assigned to a work log.
func (wc *WorkLogController) GetWorkLogProducts(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	var products []models.WorkLogProduct
	if err := wc.DB.Where("worklog_id = ? AND is_deleted = ?", id, false).
		Preload("CustomerRateCardProduct").
		Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Work log products", products)
}

// AddWorkLogProduct assigns a rate-card product to a work log. The product
// must belong to the work log's own rate card.
func (wc *WorkLogController) AddWorkLogProduct(c *gin.Context) {
	idStr := c.Param("worklog_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name                      string `json:"name" binding:"required"`
		CustomerRateCardProductID uint   `json:"customer_rate_card_product_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var workLog models.WorkLog
	if err := wc.DB.Where("is_deleted = ?", false).First(&workLog, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log", uint(id)))
		return
	}

	var rateCardProduct models.CustomerRateCardProduct
	if err := wc.DB.Where("is_deleted = ?", false).
		First(&rateCardProduct, body.CustomerRateCardProductID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card product", body.CustomerRateCardProductID))
		return
	}
	if rateCardProduct.CustomerRateCardID != workLog.CustomerRateCardID {
		utils.RespondTypedError(c, utils.NewValidationError("customer_rate_card_product_id",
			"product does not belong to this work log's rate card"))
		return
	}

	product := models.WorkLogProduct{
		Name:                      body.Name,
		WorkLogID:                 workLog.ID,
		CustomerRateCardProductID: rateCardProduct.ID,
	}
	if err := wc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Work log product created", product)
}

// RemoveWorkLogProduct
func (wc *WorkLogController) RemoveWorkLogProduct(c *gin.Context) {
	workLogIDStr := c.Param("worklog_id")
	workLogID, _ := strconv.Atoi(workLogIDStr)
	productIDStr := c.Param("work_log_product_id")
	productID, _ := strconv.Atoi(productIDStr)

	res := wc.DB.Model(&models.WorkLogProduct{}).
		Where("id = ? AND worklog_id = ? AND is_deleted = ?", productID, workLogID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log product", uint(productID)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Work log product removed", gin.H{"work_log_product_id": productID})
}
