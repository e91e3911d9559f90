package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
)

// ApprovalService moves work-log entries through the two-state review
// workflow: pending -> approved, or pending -> rejected (soft delete).
// Neither state is ever left again.
type ApprovalService struct {
	DB *gorm.DB
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{DB: db}
}

// Approve marks every entry in entryIDs as approved and returns how many
// rows changed. Only entries belonging to workLogID are touched; ids outside
// that work log, ids that do not exist, or ids that are already deleted are
// skipped without failing the batch.
func (as *ApprovalService) Approve(workLogID uint, entryIDs []uint) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	res := as.DB.Model(&models.WorkLogEntry{}).
		Where("id IN ? AND worklog_id = ? AND is_deleted = ?", entryIDs, workLogID, false).
		Updates(map[string]interface{}{
			"is_approved": true,
			"modified_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

// Reject soft-deletes every entry in entryIDs and returns how many rows
// changed. The same work-log scoping as Approve applies; missing ids are
// skipped without failing the batch.
func (as *ApprovalService) Reject(workLogID uint, entryIDs []uint) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	res := as.DB.Model(&models.WorkLogEntry{}).
		Where("id IN ? AND worklog_id = ? AND is_deleted = ?", entryIDs, workLogID, false).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"modified_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
