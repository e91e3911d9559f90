package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

// GetAllProjects supports filtering by status: /projects?status=started
func (pc *ProjectController) GetAllProjects(c *gin.Context) {
	query := pc.DB.Where("is_deleted = ?", false)
	if status := c.Query("status"); status != "" {
		if !models.ValidProjectStatus(status) {
			utils.RespondTypedError(c, utils.NewValidationError("status", "must be planned, started or completed"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All projects", projects)
}

// GetProjectByID
func (pc *ProjectController) GetProjectByID(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	var project models.Project
	if err := pc.DB.Where("is_deleted = ?", false).
		Preload("WorkLog").First(&project, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("project", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Project detail", project)
}

// CreateProject
func (pc *ProjectController) CreateProject(c *gin.Context) {
	type reqBody struct {
		Name      string `json:"name" binding:"required"`
		Status    string `json:"status"`
		WorkLogID uint   `json:"work_log_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := models.ProjectStatusPlanned
	if body.Status != "" {
		if !models.ValidProjectStatus(body.Status) {
			utils.RespondTypedError(c, utils.NewValidationError("status", "must be planned, started or completed"))
			return
		}
		status = body.Status
	}

	var workLog models.WorkLog
	if err := pc.DB.Where("is_deleted = ?", false).First(&workLog, body.WorkLogID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("work log", body.WorkLogID))
		return
	}

	project := models.Project{
		Name:      body.Name,
		Status:    status,
		WorkLogID: workLog.ID,
	}
	if err := pc.DB.Create(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Project created", project)
}

// UpdateProject
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var project models.Project
	if err := pc.DB.Where("is_deleted = ?", false).First(&project, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("project", uint(id)))
		return
	}

	if body.Name != "" {
		project.Name = body.Name
	}
	if body.Status != "" {
		if !models.ValidProjectStatus(body.Status) {
			utils.RespondTypedError(c, utils.NewValidationError("status", "must be planned, started or completed"))
			return
		}
		project.Status = body.Status
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Project updated", project)
}

// DeleteProject
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	res := pc.DB.Model(&models.Project{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("project", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Project deleted", gin.H{"project_id": id})
}
