package models

import "time"

type Gang struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	IsDeleted     bool           `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt    time.Time      `gorm:"autoUpdateTime" json:"modified_at"`
	GangEngineers []GangEngineer `gorm:"foreignKey:GangID" json:"gang_engineers,omitempty"`
}

// GangEngineer links an engineer into a gang with the share percentage used
// to split logged work. Name holds the role within the gang.
type GangEngineer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255)" json:"name"`
	GangID        uint      `gorm:"not null;index" json:"gang_id"`
	EngineerID    uint      `gorm:"not null;index" json:"engineer_id"`
	Engineer      *Engineer `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
	EngineerShare float64   `gorm:"not null" json:"engineer_share"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt    time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}
