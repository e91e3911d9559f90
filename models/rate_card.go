package models

import "time"

type CustomerRateCard struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}

// CustomerRateCardProduct prices one product on one customer's rate card.
// CassRate is what the customer is billed per unit, EngineerRate is the
// internal cost per unit paid out to the gang.
type CustomerRateCardProduct struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	CustomerRateCardID uint      `gorm:"not null;index" json:"customer_rate_card_id"`
	ProductID          uint      `gorm:"not null;index" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CassRate           float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"cass_rate"`
	EngineerRate       float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"engineer_rate"`
	Margin             float64   `gorm:"-" json:"margin"`
	Reference1         string    `gorm:"type:varchar(100)" json:"reference_1,omitempty"`
	Reference2         string    `gorm:"type:varchar(100)" json:"reference_2,omitempty"`
	Reference3         string    `gorm:"type:varchar(100)" json:"reference_3,omitempty"`
	IsDeleted          bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt         time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}
