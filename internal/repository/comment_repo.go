package repository

import (
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository comment stream data access (append-only)
type CommentRepository interface {
	Create(comment *domain.Comment) error
	ListByItem(itemID uint64) ([]*domain.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) ListByItem(itemID uint64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
