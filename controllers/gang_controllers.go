package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

type GangController struct {
	DB *gorm.DB
}

func NewGangController(db *gorm.DB) *GangController {
	return &GangController{DB: db}
}

// GetAllGangs
func (gc *GangController) GetAllGangs(c *gin.Context) {
	var gangs []models.Gang
	if err := gc.DB.Where("is_deleted = ?", false).Find(&gangs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All gangs", gangs)
}

// GetGangByID returns the gang with its member list preloaded.
func (gc *GangController) GetGangByID(c *gin.Context) {
	idStr := c.Param("gang_id")
	id, _ := strconv.Atoi(idStr)

	var gang models.Gang
	if err := gc.DB.Where("is_deleted = ?", false).
		Preload("GangEngineers", "is_deleted = ?", false).
		Preload("GangEngineers.Engineer").
		First(&gang, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Gang detail", gang)
}

// CreateGang
func (gc *GangController) CreateGang(c *gin.Context) {
	type reqBody struct {
		Name string `json:"name" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	gang := models.Gang{Name: body.Name}
	if err := gc.DB.Create(&gang).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Gang created", gang)
}

// UpdateGang
func (gc *GangController) UpdateGang(c *gin.Context) {
	idStr := c.Param("gang_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name string `json:"name"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var gang models.Gang
	if err := gc.DB.Where("is_deleted = ?", false).First(&gang, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang", uint(id)))
		return
	}

	if body.Name != "" {
		gang.Name = body.Name
	}

	if err := gc.DB.Save(&gang).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Gang updated", gang)
}

// DeleteGang
func (gc *GangController) DeleteGang(c *gin.Context) {
	idStr := c.Param("gang_id")
	id, _ := strconv.Atoi(idStr)

	res := gc.DB.Model(&models.Gang{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Gang deleted", gin.H{"gang_id": id})
}

// GetGangEngineers lists a gang's members with engineer records preloaded.
func (gc *GangController) GetGangEngineers(c *gin.Context) {
	idStr := c.Param("gang_id")
	id, _ := strconv.Atoi(idStr)

	var gangEngineers []models.GangEngineer
	if err := gc.DB.Where("gang_id = ? AND is_deleted = ?", id, false).
		Preload("Engineer").Order("id").
		Find(&gangEngineers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Gang engineers", gangEngineers)
}

// AddGangEngineer assigns an engineer to a gang with a share percentage.
// An engineer can only appear once per gang, and the share must be positive.
func (gc *GangController) AddGangEngineer(c *gin.Context) {
	idStr := c.Param("gang_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name          string  `json:"name"`
		EngineerID    uint    `json:"engineer_id" binding:"required"`
		EngineerShare float64 `json:"engineer_share" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.EngineerShare <= 0 {
		utils.RespondTypedError(c, utils.NewValidationError("engineer_share", "share must be greater than zero"))
		return
	}

	var gang models.Gang
	if err := gc.DB.Where("is_deleted = ?", false).First(&gang, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang", uint(id)))
		return
	}

	var engineer models.Engineer
	if err := gc.DB.Where("is_deleted = ?", false).First(&engineer, body.EngineerID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("engineer", body.EngineerID))
		return
	}

	var existing int64
	gc.DB.Model(&models.GangEngineer{}).
		Where("gang_id = ? AND engineer_id = ? AND is_deleted = ?", gang.ID, engineer.ID, false).
		Count(&existing)
	if existing > 0 {
		utils.RespondTypedError(c, utils.NewValidationError("engineer_id", "engineer is already a member of this gang"))
		return
	}

	gangEngineer := models.GangEngineer{
		Name:          body.Name,
		GangID:        gang.ID,
		EngineerID:    engineer.ID,
		EngineerShare: body.EngineerShare,
	}
	if err := gc.DB.Create(&gangEngineer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	gangEngineer.Engineer = &engineer

	utils.RespondJSON(c, http.StatusCreated, "Engineer added to gang", gangEngineer)
}

// UpdateGangEngineer changes a member's role name or share.
func (gc *GangController) UpdateGangEngineer(c *gin.Context) {
	gangIDStr := c.Param("gang_id")
	gangID, _ := strconv.Atoi(gangIDStr)
	geIDStr := c.Param("gang_engineer_id")
	geID, _ := strconv.Atoi(geIDStr)

	type reqBody struct {
		Name          string   `json:"name"`
		EngineerShare *float64 `json:"engineer_share"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var gangEngineer models.GangEngineer
	if err := gc.DB.Where("gang_id = ? AND is_deleted = ?", gangID, false).
		First(&gangEngineer, geID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang engineer", uint(geID)))
		return
	}

	if body.Name != "" {
		gangEngineer.Name = body.Name
	}
	if body.EngineerShare != nil {
		if *body.EngineerShare <= 0 {
			utils.RespondTypedError(c, utils.NewValidationError("engineer_share", "share must be greater than zero"))
			return
		}
		gangEngineer.EngineerShare = *body.EngineerShare
	}

	if err := gc.DB.Save(&gangEngineer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Gang engineer updated", gangEngineer)
}

// RemoveGangEngineer
func (gc *GangController) RemoveGangEngineer(c *gin.Context) {
	gangIDStr := c.Param("gang_id")
	gangID, _ := strconv.Atoi(gangIDStr)
	geIDStr := c.Param("gang_engineer_id")
	geID, _ := strconv.Atoi(geIDStr)

	res := gc.DB.Model(&models.GangEngineer{}).
		Where("id = ? AND gang_id = ? AND is_deleted = ?", geID, gangID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("gang engineer", uint(geID)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Engineer removed from gang", gin.H{"gang_engineer_id": geID})
}
