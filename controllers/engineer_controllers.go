package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

type EngineerController struct {
	DB *gorm.DB
}

func NewEngineerController(db *gorm.DB) *EngineerController {
	return &EngineerController{DB: db}
}

// GetAllEngineers
func (ec *EngineerController) GetAllEngineers(c *gin.Context) {
	var engineers []models.Engineer
	if err := ec.DB.Where("is_deleted = ?", false).Find(&engineers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All engineers", engineers)
}

// GetEngineerByID
func (ec *EngineerController) GetEngineerByID(c *gin.Context) {
	idStr := c.Param("engineer_id")
	id, _ := strconv.Atoi(idStr)

	var engineer models.Engineer
	if err := ec.DB.Where("is_deleted = ?", false).First(&engineer, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("engineer", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Engineer detail", engineer)
}

// CreateEngineer
func (ec *EngineerController) CreateEngineer(c *gin.Context) {
	type reqBody struct {
		Name string `json:"name" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondTypedError(c, utils.NewValidationError("name", "engineer name is required"))
		return
	}

	engineer := models.Engineer{Name: body.Name}
	if err := ec.DB.Create(&engineer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Engineer created", engineer)
}

// UpdateEngineer
func (ec *EngineerController) UpdateEngineer(c *gin.Context) {
	idStr := c.Param("engineer_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name string `json:"name"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var engineer models.Engineer
	if err := ec.DB.Where("is_deleted = ?", false).First(&engineer, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("engineer", uint(id)))
		return
	}

	if body.Name != "" {
		engineer.Name = body.Name
	}

	if err := ec.DB.Save(&engineer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Engineer updated", engineer)
}

// DeleteEngineer
func (ec *EngineerController) DeleteEngineer(c *gin.Context) {
	idStr := c.Param("engineer_id")
	id, _ := strconv.Atoi(idStr)

	res := ec.DB.Model(&models.Engineer{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("engineer", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Engineer deleted", gin.H{"engineer_id": id})
}
