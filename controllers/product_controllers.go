package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Where("is_deleted = ?", false).Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All products", products)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	var product models.Product
	if err := pc.DB.Where("is_deleted = ?", false).First(&product, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("product", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	type reqBody struct {
		Name          string `json:"name" binding:"required"`
		Code          string `json:"code"`
		Description   string `json:"description"`
		UnitOfMeasure string `json:"unit_of_measure"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Name:          body.Name,
		Code:          body.Code,
		Description:   body.Description,
		UnitOfMeasure: body.UnitOfMeasure,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name          string  `json:"name"`
		Code          *string `json:"code"`
		Description   *string `json:"description"`
		UnitOfMeasure *string `json:"unit_of_measure"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := pc.DB.Where("is_deleted = ?", false).First(&product, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("product", uint(id)))
		return
	}

	if body.Name != "" {
		product.Name = body.Name
	}
	if body.Code != nil {
		product.Code = *body.Code
	}
	if body.Description != nil {
		product.Description = *body.Description
	}
	if body.UnitOfMeasure != nil {
		product.UnitOfMeasure = *body.UnitOfMeasure
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	res := pc.DB.Model(&models.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("product", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
