package models

import "time"

// WorkLogEntry is one engineer's apportioned slice of a quantity logged for
// a product on a given day. Entries are written once by the timesheet
// submission and only ever touched again by the approval workflow.
type WorkLogEntry struct {
	ID                        uint      `gorm:"primaryKey" json:"id"`
	Name                      string    `gorm:"type:varchar(255);not null" json:"name"`
	Date                      string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	EngineerID                uint      `gorm:"not null;index" json:"engineer_id"`
	Engineer                  *Engineer `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
	GangID                    uint      `gorm:"not null;index" json:"gang_id"`
	GangEngineerID            uint      `gorm:"not null" json:"gang_engineer_id"`
	WorkLogID                 uint      `gorm:"column:worklog_id;not null;index" json:"worklog_id"`
	CustomerRateCardProductID uint      `gorm:"not null" json:"customer_rate_card_product_id"`
	UnitSale                  float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"unit_sale"`
	UnitWage                  float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"unit_wage"`
	IsApproved                bool      `gorm:"not null;default:false" json:"is_approved"`
	IsDeleted                 bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt                 time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt                time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}
