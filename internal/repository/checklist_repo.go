package repository

import (
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChecklistRepository quality checklist data access
type ChecklistRepository interface {
	Upsert(checklist *domain.Checklist) error
	FindByItem(itemID uint64) (*domain.Checklist, error)
}

type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepository{db: db}
}

// Upsert writes the full checklist row for an item (one row per item)
func (r *checklistRepository) Upsert(checklist *domain.Checklist) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"logo_usage", "brand_colors", "captions",
			"sound_levels", "resolution", "cta_present",
			"updated_by_id",
		}),
	}).Create(checklist).Error
}

func (r *checklistRepository) FindByItem(itemID uint64) (*domain.Checklist, error) {
	var checklist domain.Checklist
	err := r.db.Where("item_id = ?", itemID).First(&checklist).Error
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}
