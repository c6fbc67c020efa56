package repository

import (
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
)

// ModuleRepository content module data access
type ModuleRepository interface {
	Create(module *domain.ContentModule) error
	FindByID(id uint64) (*domain.ContentModule, error)
	List(includeArchived bool) ([]*domain.ContentModule, error)
	SetArchived(id uint64, archived bool) error
	DeleteCascade(id uint64) error
}

type moduleRepository struct {
	db *gorm.DB
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) Create(module *domain.ContentModule) error {
	return r.db.Create(module).Error
}

func (r *moduleRepository) FindByID(id uint64) (*domain.ContentModule, error) {
	var module domain.ContentModule
	err := r.db.First(&module, id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepository) List(includeArchived bool) ([]*domain.ContentModule, error) {
	var modules []*domain.ContentModule
	q := r.db.Order("created_at DESC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	err := q.Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) SetArchived(id uint64, archived bool) error {
	result := r.db.Model(&domain.ContentModule{}).
		Where("id = ?", id).
		Update("archived", archived)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade permanently removes a module and everything under it.
// Item sub-records go first so a mid-way failure rolls the whole thing back.
func (r *moduleRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&domain.ContentItem{}).
			Select("id").Where("module_id = ?", id)

		if err := tx.Where("item_id IN (?)", itemIDs).
			Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", itemIDs).
			Delete(&domain.ContentVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", itemIDs).
			Delete(&domain.Approval{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", itemIDs).
			Delete(&domain.Checklist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", id).
			Delete(&domain.ContentItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.ContentModule{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
