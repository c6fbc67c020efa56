package repository

import (
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VersionRepository content version data access
type VersionRepository interface {
	CreateNext(version *domain.ContentVersion) error
	FindByID(id uint64) (*domain.ContentVersion, error)
	ListByItem(itemID uint64) ([]*domain.ContentVersion, error)
	SubmitFeedback(id uint64, status string, feedback *string) error
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

// CreateNext assigns the next version number and inserts, holding a row lock
// on the parent item so concurrent uploads to the same item cannot draw the
// same number. Numbers are 1-based and never reused.
func (r *versionRepository) CreateNext(version *domain.ContentVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item domain.ContentItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, version.ItemID).Error; err != nil {
			return err
		}

		var maxVersion *uint
		if err := tx.Model(&domain.ContentVersion{}).
			Where("item_id = ?", version.ItemID).
			Select("MAX(version_number)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}

		version.VersionNumber = 1
		if maxVersion != nil {
			version.VersionNumber = *maxVersion + 1
		}
		version.Status = domain.VersionPending

		return tx.Create(version).Error
	})
}

func (r *versionRepository) FindByID(id uint64) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.First(&version, id).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) ListByItem(itemID uint64) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("item_id = ?", itemID).
		Order("version_number DESC").
		Find(&versions).Error
	return versions, err
}

// SubmitFeedback decides a pending version. The status guard lives in the
// WHERE clause so a concurrent double-review loses cleanly: zero rows
// affected means the version was no longer pending.
func (r *versionRepository) SubmitFeedback(id uint64, status string, feedback *string) error {
	result := r.db.Model(&domain.ContentVersion{}).
		Where("id = ? AND status = ?", id, domain.VersionPending).
		Updates(map[string]interface{}{
			"status":   status,
			"feedback": feedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
