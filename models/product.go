package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Code          string    `gorm:"type:varchar(50)" json:"code"`
	Description   string    `gorm:"type:varchar(500)" json:"description"`
	UnitOfMeasure string    `gorm:"type:varchar(50)" json:"unit_of_measure"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt    time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}
