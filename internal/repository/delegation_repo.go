package repository

import (
	"time"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
)

// DelegationRepository approval delegation data access.
// The table is an effective-dated log: setting a new delegation revokes the
// previous one in the same transaction, so the history of who held the
// authority, and when, is always reconstructible.
type DelegationRepository interface {
	Set(delegation *domain.Delegation) error
	Revoke(vertical string) error
	FindActiveByVertical(vertical string) (*domain.Delegation, error)
	ListActive() ([]*domain.Delegation, error)
	ListHistory(vertical string) ([]*domain.Delegation, error)
}

type delegationRepository struct {
	db *gorm.DB
}

// NewDelegationRepository creates a new DelegationRepository
func NewDelegationRepository(db *gorm.DB) DelegationRepository {
	return &delegationRepository{db: db}
}

func (r *delegationRepository) Set(delegation *domain.Delegation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&domain.Delegation{}).
			Where("vertical = ? AND revoked_at IS NULL", delegation.Vertical).
			Update("revoked_at", now).Error; err != nil {
			return err
		}
		return tx.Create(delegation).Error
	})
}

func (r *delegationRepository) Revoke(vertical string) error {
	result := r.db.Model(&domain.Delegation{}).
		Where("vertical = ? AND revoked_at IS NULL", vertical).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *delegationRepository) FindActiveByVertical(vertical string) (*domain.Delegation, error) {
	var delegation domain.Delegation
	err := r.db.Where("vertical = ? AND revoked_at IS NULL", vertical).
		Order("created_at DESC").
		First(&delegation).Error
	if err != nil {
		return nil, err
	}
	return &delegation, nil
}

func (r *delegationRepository) ListActive() ([]*domain.Delegation, error) {
	var delegations []*domain.Delegation
	err := r.db.Where("revoked_at IS NULL").
		Order("vertical ASC").
		Find(&delegations).Error
	return delegations, err
}

func (r *delegationRepository) ListHistory(vertical string) ([]*domain.Delegation, error) {
	var delegations []*domain.Delegation
	err := r.db.Where("vertical = ?", vertical).
		Order("created_at DESC").
		Find(&delegations).Error
	return delegations, err
}
