package service

import (
	"errors"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"gorm.io/gorm"
)

var ErrCommentTextRequired = errors.New("comment text is required")

// CommentService handles the append-only discussion stream
type CommentService struct {
	commentRepo repository.CommentRepository
	contentRepo repository.ContentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, contentRepo repository.ContentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		contentRepo: contentRepo,
	}
}

// Add appends a comment. Unknown types collapse to general; there is no
// edit or delete, corrections are new comments.
func (s *CommentService) Add(actor workflow.Actor, itemID uint64, text, commentType string) (*domain.Comment, error) {
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	if _, err := s.contentRepo.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ItemID:   itemID,
		AuthorID: actor.UserID,
		Text:     text,
		Type:     domain.NormalizeCommentType(commentType),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByItem returns the discussion thread, oldest first
func (s *CommentService) ListByItem(itemID uint64) ([]*domain.Comment, error) {
	return s.commentRepo.ListByItem(itemID)
}
