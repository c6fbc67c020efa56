package repository

import (
	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
)

// ContentFilter list filters for content items
type ContentFilter struct {
	Status          string
	Vertical        string
	ModuleID        *uint64
	EditorID        *uint64
	IncludeArchived bool
	Page            int
	PerPage         int
}

// ContentRepository content item data access
type ContentRepository interface {
	Create(item *domain.ContentItem) error
	FindByID(id uint64) (*domain.ContentItem, error)
	FindByUUID(uuid string) (*domain.ContentItem, error)
	List(filter ContentFilter) ([]*domain.ContentItem, int64, error)
	UpdateDetails(id uint64, updates map[string]interface{}) error
	UpdateStatusWithLock(id uint64, newStatus string, lockVersion uint) error
	SetArchived(id uint64, archived bool) error
	DeleteCascade(id uint64) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(item *domain.ContentItem) error {
	return r.db.Create(item).Error
}

func (r *contentRepository) FindByID(id uint64) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) FindByUUID(uuid string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.Where("uuid = ?", uuid).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) List(filter ContentFilter) ([]*domain.ContentItem, int64, error) {
	var items []*domain.ContentItem
	var total int64

	q := r.db.Model(&domain.ContentItem{})
	if filter.Status != "" {
		q = q.Where("status = ?", domain.NormalizeStatus(filter.Status))
	}
	if filter.Vertical != "" {
		q = q.Where("vertical = ?", filter.Vertical)
	}
	if filter.ModuleID != nil {
		q = q.Where("module_id = ?", *filter.ModuleID)
	}
	if filter.EditorID != nil {
		q = q.Where("assigned_editor_id = ?", *filter.EditorID)
	}
	if !filter.IncludeArchived {
		q = q.Where("archived = ?", false)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	err := q.Order("updated_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error
	return items, total, err
}

func (r *contentRepository) UpdateDetails(id uint64, updates map[string]interface{}) error {
	result := r.db.Model(&domain.ContentItem{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatusWithLock moves the item status with optimistic locking.
// Two reviewers acting on the same item at once: the second write sees a
// bumped lock_version, matches zero rows and gets ErrVersionConflict instead
// of silently overwriting the first decision.
func (r *contentRepository) UpdateStatusWithLock(id uint64, newStatus string, lockVersion uint) error {
	result := r.db.Model(&domain.ContentItem{}).
		Where("id = ? AND lock_version = ?", id, lockVersion).
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
	return nil
}

func (r *contentRepository) SetArchived(id uint64, archived bool) error {
	result := r.db.Model(&domain.ContentItem{}).
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

// DeleteCascade permanently removes an item and its sub-records in one
// transaction. Comments, versions and approvals go with it; archival is the
// reversible path, this one is not.
func (r *contentRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.ContentVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.Approval{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.Checklist{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.ContentItem{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
