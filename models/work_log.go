package models

import "time"

// WorkLog is the ledger of billable activity for one gang working one
// customer rate card.
type WorkLog struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	Name               string            `gorm:"type:varchar(255);not null" json:"name"`
	CustomerRateCardID uint              `gorm:"not null;index" json:"customer_rate_card_id"`
	CustomerRateCard   *CustomerRateCard `gorm:"foreignKey:CustomerRateCardID" json:"customer_rate_card,omitempty"`
	GangID             uint              `gorm:"not null;index" json:"gang_id"`
	Gang               *Gang             `gorm:"foreignKey:GangID" json:"gang,omitempty"`
	IsDeleted          bool              `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt         time.Time         `gorm:"autoUpdateTime" json:"modified_at"`
}

// WorkLogProduct assigns one rate-card product to a work log so quantities
// can be logged against it.
type WorkLogProduct struct {
	ID                        uint                     `gorm:"primaryKey" json:"id"`
	Name                      string                   `gorm:"type:varchar(255);not null" json:"name"`
	WorkLogID                 uint                     `gorm:"column:worklog_id;not null;index" json:"worklog_id"`
	CustomerRateCardProductID uint                     `gorm:"not null;index" json:"customer_rate_card_product_id"`
	CustomerRateCardProduct   *CustomerRateCardProduct `gorm:"foreignKey:CustomerRateCardProductID" json:"customer_rate_card_product,omitempty"`
	IsDeleted                 bool                     `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt                 time.Time                `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt                time.Time                `gorm:"autoUpdateTime" json:"modified_at"`
}
