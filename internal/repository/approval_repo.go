package repository

import (
	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
)

// ApprovalRepository approval history data access (append-only)
type ApprovalRepository interface {
	AppendWithStatus(approval *domain.Approval, newStatus string, lockVersion uint) error
	ListByItem(itemID uint64) ([]*domain.Approval, error)
	LatestByItemAndLevel(itemID uint64, level string) (*domain.Approval, error)
}

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository creates a new ApprovalRepository
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

// AppendWithStatus inserts the approval row and moves the item status in a
// single transaction, guarded by the item's lock version. A concurrent
// reviewer bumps lock_version first, the status update matches zero rows and
// the whole write rolls back, so the history never records a decision the
// item did not take.
func (r *approvalRepository) AppendWithStatus(approval *domain.Approval, newStatus string, lockVersion uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.ContentItem{}).
			Where("id = ? AND lock_version = ?", approval.ItemID, lockVersion).
			Updates(map[string]interface{}{
				"status":       newStatus,
				"lock_version": gorm.Expr("lock_version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrVersionConflict
		}
		return tx.Create(approval).Error
	})
}

func (r *approvalRepository) ListByItem(itemID uint64) ([]*domain.Approval, error) {
	var approvals []*domain.Approval
	err := r.db.Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&approvals).Error
	return approvals, err
}

// LatestByItemAndLevel returns the authoritative record for a level.
// History stays in the table; the newest row per level is the current state.
func (r *approvalRepository) LatestByItemAndLevel(itemID uint64, level string) (*domain.Approval, error) {
	var approval domain.Approval
	err := r.db.Where("item_id = ? AND level = ?", itemID, level).
		Order("created_at DESC, id DESC").
		First(&approval).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}
