package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/services"
	"github.com/fieldserve/fieldserve-app/utils"
)

type RateCardController struct {
	DB *gorm.DB
}

func NewRateCardController(db *gorm.DB) *RateCardController {
	return &RateCardController{DB: db}
}

// GetAllRateCards lists rate cards with their customer preloaded so clients
// can show the customer name without a second request.
func (rc *RateCardController) GetAllRateCards(c *gin.Context) {
	var rateCards []models.CustomerRateCard
	if err := rc.DB.Where("is_deleted = ?", false).
		Preload("Customer").Find(&rateCards).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All rate cards", rateCards)
}

// GetRateCardByID
func (rc *RateCardController) GetRateCardByID(c *gin.Context) {
	idStr := c.Param("rate_card_id")
	id, _ := strconv.Atoi(idStr)

	var rateCard models.CustomerRateCard
	if err := rc.DB.Where("is_deleted = ?", false).
		Preload("Customer").First(&rateCard, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rate card detail", rateCard)
}

// CreateRateCard
func (rc *RateCardController) CreateRateCard(c *gin.Context) {
	type reqBody struct {
		Name       string `json:"name" binding:"required"`
		CustomerID uint   `json:"customer_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := rc.DB.Where("is_deleted = ?", false).First(&customer, body.CustomerID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("customer", body.CustomerID))
		return
	}

	rateCard := models.CustomerRateCard{
		Name:       body.Name,
		CustomerID: customer.ID,
	}
	if err := rc.DB.Create(&rateCard).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Rate card created", rateCard)
}

// UpdateRateCard
func (rc *RateCardController) UpdateRateCard(c *gin.Context) {
	idStr := c.Param("rate_card_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name string `json:"name"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var rateCard models.CustomerRateCard
	if err := rc.DB.Where("is_deleted = ?", false).First(&rateCard, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card", uint(id)))
		return
	}

	if body.Name != "" {
		rateCard.Name = body.Name
	}

	if err := rc.DB.Save(&rateCard).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rate card updated", rateCard)
}

// DeleteRateCard
func (rc *RateCardController) DeleteRateCard(c *gin.Context) {
	idStr := c.Param("rate_card_id")
	id, _ := strconv.Atoi(idStr)

	res := rc.DB.Model(&models.CustomerRateCard{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card", uint(id)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rate card deleted", gin.H{"rate_card_id": id})
}

// GetRateCardProducts lists the priced products on one rate card, each with
// the margin retained between the cass and engineer rates.
func (rc *RateCardController) GetRateCardProducts(c *gin.Context) {
	idStr := c.Param("rate_card_id")
	id, _ := strconv.Atoi(idStr)

	var products []models.CustomerRateCardProduct
	if err := rc.DB.Where("customer_rate_card_id = ? AND is_deleted = ?", id, false).
		Preload("Product").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for i := range products {
		products[i].Margin = services.MarginPercent(products[i].CassRate, products[i].EngineerRate)
	}

	utils.RespondJSON(c, http.StatusOK, "Rate card products", products)
}

// AddRateCardProduct prices a product on a rate card. Both rates must be
// non-negative.
func (rc *RateCardController) AddRateCardProduct(c *gin.Context) {
	idStr := c.Param("rate_card_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name         string  `json:"name" binding:"required"`
		ProductID    uint    `json:"product_id" binding:"required"`
		CassRate     float64 `json:"cass_rate"`
		EngineerRate float64 `json:"engineer_rate"`
		Reference1   string  `json:"reference_1"`
		Reference2   string  `json:"reference_2"`
		Reference3   string  `json:"reference_3"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.CassRate < 0 || body.EngineerRate < 0 {
		utils.RespondTypedError(c, utils.NewValidationError("rates", "rates must not be negative"))
		return
	}

	var rateCard models.CustomerRateCard
	if err := rc.DB.Where("is_deleted = ?", false).First(&rateCard, id).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card", uint(id)))
		return
	}

	var product models.Product
	if err := rc.DB.Where("is_deleted = ?", false).First(&product, body.ProductID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("product", body.ProductID))
		return
	}

	rateCardProduct := models.CustomerRateCardProduct{
		Name:               body.Name,
		CustomerRateCardID: rateCard.ID,
		ProductID:          product.ID,
		CassRate:           body.CassRate,
		EngineerRate:       body.EngineerRate,
		Reference1:         body.Reference1,
		Reference2:         body.Reference2,
		Reference3:         body.Reference3,
	}
	if err := rc.DB.Create(&rateCardProduct).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Rate card product created", rateCardProduct)
}

// UpdateRateCardProduct
func (rc *RateCardController) UpdateRateCardProduct(c *gin.Context) {
	rateCardIDStr := c.Param("rate_card_id")
	rateCardID, _ := strconv.Atoi(rateCardIDStr)
	productIDStr := c.Param("rate_card_product_id")
	productID, _ := strconv.Atoi(productIDStr)

	type reqBody struct {
		Name         string   `json:"name"`
		CassRate     *float64 `json:"cass_rate"`
		EngineerRate *float64 `json:"engineer_rate"`
		Reference1   *string  `json:"reference_1"`
		Reference2   *string  `json:"reference_2"`
		Reference3   *string  `json:"reference_3"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var rateCardProduct models.CustomerRateCardProduct
	if err := rc.DB.Where("customer_rate_card_id = ? AND is_deleted = ?", rateCardID, false).
		First(&rateCardProduct, productID).Error; err != nil {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card product", uint(productID)))
		return
	}

	if body.Name != "" {
		rateCardProduct.Name = body.Name
	}
	if body.CassRate != nil {
		if *body.CassRate < 0 {
			utils.RespondTypedError(c, utils.NewValidationError("cass_rate", "rate must not be negative"))
			return
		}
		rateCardProduct.CassRate = *body.CassRate
	}
	if body.EngineerRate != nil {
		if *body.EngineerRate < 0 {
			utils.RespondTypedError(c, utils.NewValidationError("engineer_rate", "rate must not be negative"))
			return
		}
		rateCardProduct.EngineerRate = *body.EngineerRate
	}
	if body.Reference1 != nil {
		rateCardProduct.Reference1 = *body.Reference1
	}
	if body.Reference2 != nil {
		rateCardProduct.Reference2 = *body.Reference2
	}
	if body.Reference3 != nil {
		rateCardProduct.Reference3 = *body.Reference3
	}

	if err := rc.DB.Save(&rateCardProduct).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rate card product updated", rateCardProduct)
}

// DeleteRateCardProduct
func (rc *RateCardController) DeleteRateCardProduct(c *gin.Context) {
	rateCardIDStr := c.Param("rate_card_id")
	rateCardID, _ := strconv.Atoi(rateCardIDStr)
	productIDStr := c.Param("rate_card_product_id")
	productID, _ := strconv.Atoi(productIDStr)

	res := rc.DB.Model(&models.CustomerRateCardProduct{}).
		Where("id = ? AND customer_rate_card_id = ? AND is_deleted = ?", productID, rateCardID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondTypedError(c, utils.NewNotFoundError("rate card product", uint(productID)))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rate card product deleted", gin.H{"rate_card_product_id": productID})
}
