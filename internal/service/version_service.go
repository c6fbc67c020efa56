package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/craftlab-hq/ops-backend/pkg/cache"
	"gorm.io/gorm"
)

var (
	ErrAssetURLRequired     = errors.New("asset URL is required")
	ErrVersionNotFound      = errors.New("version not found")
	ErrNotAssignedEditor    = errors.New("only the assigned editor can upload versions")
	ErrVersionNotPending    = errors.New("version has already been decided")
	ErrFeedbackRequired     = errors.New("rejecting a version requires feedback text")
	ErrVersionWrongItem     = errors.New("version does not belong to this item")
	ErrInvalidVersionStatus = errors.New("decision must be approved or rejected")
)

// VersionService handles the append-only asset revision history
type VersionService struct {
	versionRepo    repository.VersionRepository
	contentRepo    repository.ContentRepository
	delegationRepo repository.DelegationRepository
	cache          cache.Service
}

// NewVersionService creates a new VersionService
func NewVersionService(
	versionRepo repository.VersionRepository,
	contentRepo repository.ContentRepository,
	delegationRepo repository.DelegationRepository,
	cacheSvc cache.Service,
) *VersionService {
	return &VersionService{
		versionRepo:    versionRepo,
		contentRepo:    contentRepo,
		delegationRepo: delegationRepo,
		cache:          cacheSvc,
	}
}

// AddVersion appends a new pending revision. Uploading while the item sits
// in editing or revision pushes it into level-1 review; in any other status
// the upload lands without touching the item's status.
func (s *VersionService) AddVersion(actor workflow.Actor, itemID uint64, assetURL string) (*domain.ContentVersion, error) {
	if assetURL == "" {
		return nil, ErrAssetURLRequired
	}

	item, err := s.contentRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	isEditor := item.AssignedEditorID != nil && *item.AssignedEditorID == actor.UserID
	if !isEditor && actor.Role != domain.RoleAdmin {
		return nil, ErrNotAssignedEditor
	}

	version := &domain.ContentVersion{
		ItemID:      itemID,
		AssetURL:    assetURL,
		SubmitterID: actor.UserID,
	}
	if err := s.versionRepo.CreateNext(version); err != nil {
		return nil, fmt.Errorf("failed to append version: %w", err)
	}

	// Implicit transition: upload during editing/revision means "ready to look at"
	current := domain.NormalizeStatus(item.Status)
	if current == domain.StatusEditing || current == domain.StatusRevision {
		req := workflow.Request{
			Item:  item,
			Event: workflow.EventUploadVersion,
			Actor: actor,
		}
		next, err := workflow.Next(req)
		if err != nil {
			log.Printf("[WARN] version upload transition refused for item %d: %v", itemID, err)
		} else if err := s.contentRepo.UpdateStatusWithLock(itemID, next, item.LockVersion); err != nil {
			log.Printf("[WARN] status bump after version upload failed for item %d: %v", itemID, err)
		}
	}

	s.invalidateItemCache(itemID)
	return version, nil
}

// SubmitFeedback decides a pending version. Approve may omit feedback,
// reject may not. Versions that have already been decided are closed; a new
// version has to be submitted instead.
func (s *VersionService) SubmitFeedback(actor workflow.Actor, itemID, versionID uint64, decision, feedback string) (*domain.ContentVersion, error) {
	switch actor.Role {
	case domain.RoleStrategist, domain.RoleCEO, domain.RoleAdmin:
	default:
		return nil, ErrRoleNotAllowed
	}

	if decision != domain.VersionApproved && decision != domain.VersionRejected {
		return nil, ErrInvalidVersionStatus
	}
	if decision == domain.VersionRejected && feedback == "" {
		return nil, ErrFeedbackRequired
	}

	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	if version.ItemID != itemID {
		return nil, ErrVersionWrongItem
	}
	if version.Status != domain.VersionPending {
		return nil, ErrVersionNotPending
	}

	var feedbackPtr *string
	if feedback != "" {
		feedbackPtr = &feedback
	}
	if err := s.versionRepo.SubmitFeedback(versionID, decision, feedbackPtr); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// lost the race with another reviewer
			return nil, ErrVersionNotPending
		}
		return nil, err
	}

	s.invalidateItemCache(itemID)
	return s.versionRepo.FindByID(versionID)
}

// ListByItem returns the revision history, newest first
func (s *VersionService) ListByItem(itemID uint64) ([]*domain.ContentVersion, error) {
	return s.versionRepo.ListByItem(itemID)
}

func (s *VersionService) invalidateItemCache(id uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateContent(context.Background(), fmt.Sprintf("%d", id)); err != nil {
		log.Printf("[WARN] content cache invalidation failed: %v", err)
	}
}
