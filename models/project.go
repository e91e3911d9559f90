package models

import "time"

const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusStarted   = "started"
	ProjectStatusCompleted = "completed"
)

type Project struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Status     string    `gorm:"type:varchar(20);not null;default:'planned'" json:"status"`
	WorkLogID  uint      `gorm:"not null;index" json:"work_log_id"`
	WorkLog    *WorkLog  `gorm:"foreignKey:WorkLogID" json:"work_log,omitempty"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}

// ValidProjectStatus reports whether s is one of the known project states.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusStarted, ProjectStatusCompleted:
		return true
	}
	return false
}
