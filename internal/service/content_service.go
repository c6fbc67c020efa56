package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/craftlab-hq/ops-backend/pkg/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound        = errors.New("content item not found")
	ErrInvalidVertical     = errors.New("invalid vertical")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrTitleRequired       = errors.New("title is required")
	ErrChecklistIncomplete = errors.New("complete all quality checks before submitting")
	ErrEditorNotAssignable = errors.New("assigned user must be an active editor")
	ErrNotChecklistEditor  = errors.New("only the assigned editor can fill the checklist")
	ErrDeleteCEOOnly       = errors.New("permanent delete requires CEO role")
	ErrRoleNotAllowed      = errors.New("role is not allowed to perform this operation")
)

// CreateContentInput fields for creating a content item
type CreateContentInput struct {
	Title          string
	Vertical       string
	Priority       string
	Platforms      []string
	Script         string
	Brief          domain.Brief
	ReferenceLinks []string
	ModuleID       *uint64
}

// UpdateDetailsInput mutable idea fields; nil pointers are left untouched
type UpdateDetailsInput struct {
	Script           *string
	Priority         *string
	Platforms        []string
	Brief            *domain.Brief
	ReferenceLinks   []string
	AssignedEditorID *uint64
}

// ContentService handles content item business logic
type ContentService struct {
	contentRepo    repository.ContentRepository
	checklistRepo  repository.ChecklistRepository
	delegationRepo repository.DelegationRepository
	userRepo       repository.UserRepository
	cache          cache.Service
}

// NewContentService creates a new ContentService
func NewContentService(
	contentRepo repository.ContentRepository,
	checklistRepo repository.ChecklistRepository,
	delegationRepo repository.DelegationRepository,
	userRepo repository.UserRepository,
	cacheSvc cache.Service,
) *ContentService {
	return &ContentService{
		contentRepo:    contentRepo,
		checklistRepo:  checklistRepo,
		delegationRepo: delegationRepo,
		userRepo:       userRepo,
		cache:          cacheSvc,
	}
}

// Create creates a new draft item. Strategists, CEO and admins only.
func (s *ContentService) Create(actor workflow.Actor, input CreateContentInput) (*domain.ContentItem, error) {
	switch actor.Role {
	case domain.RoleStrategist, domain.RoleCEO, domain.RoleAdmin:
	default:
		return nil, ErrRoleNotAllowed
	}
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if !domain.ValidVertical(input.Vertical) {
		return nil, ErrInvalidVertical
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	item := &domain.ContentItem{
		UUID:           uuid.NewString(),
		Title:          input.Title,
		Vertical:       input.Vertical,
		Status:         domain.StatusDraft,
		Priority:       priority,
		Platforms:      input.Platforms,
		Script:         input.Script,
		Brief:          input.Brief,
		ReferenceLinks: input.ReferenceLinks,
		ModuleID:       input.ModuleID,
		CreatedByID:    actor.UserID,
	}
	if err := s.contentRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}

	s.invalidateListCache()
	return item, nil
}

// cachedContentList is the cache payload for a filtered list page
type cachedContentList struct {
	Items []*domain.ContentItem `json:"items"`
	Total int64                 `json:"total"`
}

// listCacheKey builds a stable cache key from the filter signature
func listCacheKey(f repository.ContentFilter) string {
	var moduleID, editorID uint64
	if f.ModuleID != nil {
		moduleID = *f.ModuleID
	}
	if f.EditorID != nil {
		editorID = *f.EditorID
	}
	return fmt.Sprintf("%s:%s:%d:%d:%t:%d:%d",
		f.Status, f.Vertical, moduleID, editorID, f.IncludeArchived, f.Page, f.PerPage)
}

// List returns filtered items, served from cache when the filter matches
func (s *ContentService) List(filter repository.ContentFilter) ([]*domain.ContentItem, int64, error) {
	key := listCacheKey(filter)
	if s.cache != nil {
		if data, err := s.cache.GetContents(context.Background(), key); err == nil {
			var cached cachedContentList
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Items, cached.Total, nil
			}
		}
	}

	items, total, err := s.contentRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		payload := cachedContentList{Items: items, Total: total}
		if err := s.cache.SetContents(context.Background(), key, payload); err != nil {
			log.Printf("[WARN] content list cache set failed: %v", err)
		}
	}
	return items, total, nil
}

// Get returns a single item by ID, cache first
func (s *ContentService) Get(id uint64) (*domain.ContentItem, error) {
	if s.cache != nil {
		if data, err := s.cache.GetContent(context.Background(), fmt.Sprintf("%d", id)); err == nil {
			var cached domain.ContentItem
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	item, err := s.contentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetContent(context.Background(), fmt.Sprintf("%d", id), item); err != nil {
			log.Printf("[WARN] content cache set failed: %v", err)
		}
	}
	return item, nil
}

// UpdateDetails updates the mutable idea fields. Editor assignment is
// validated against the user table: only active editors are assignable.
func (s *ContentService) UpdateDetails(actor workflow.Actor, id uint64, input UpdateDetailsInput) (*domain.ContentItem, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Script != nil {
		updates["script"] = *input.Script
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *input.Priority
	}
	if input.Platforms != nil {
		updates["platforms"] = input.Platforms
	}
	if input.ReferenceLinks != nil {
		updates["reference_links"] = input.ReferenceLinks
	}
	if input.Brief != nil {
		updates["brief_objective"] = input.Brief.Objective
		updates["brief_duration"] = input.Brief.Duration
		updates["brief_tone"] = input.Brief.Tone
		updates["brief_must_haves"] = input.Brief.MustHaves
		updates["brief_cta"] = input.Brief.CTA
	}
	if input.AssignedEditorID != nil {
		editor, err := s.userRepo.FindByID(*input.AssignedEditorID)
		if err != nil {
			return nil, ErrEditorNotAssignable
		}
		if editor.Role != domain.RoleEditor || !editor.Active {
			return nil, ErrEditorNotAssignable
		}
		updates["assigned_editor_id"] = *input.AssignedEditorID
	}

	if len(updates) > 0 {
		if err := s.contentRepo.UpdateDetails(id, updates); err != nil {
			return nil, err
		}
		s.invalidateItemCache(id)
	}

	return s.Get(id)
}

// UpdateStatus moves the item toward a target status. The transition table
// decides which event that is for this actor and whether it is legal.
func (s *ContentService) UpdateStatus(actor workflow.Actor, id uint64, targetStatus string) (*domain.ContentItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req := workflow.Request{
		Item:       item,
		Actor:      actor,
		DelegateID: s.activeDelegateID(item.Vertical),
	}

	event, next, err := workflow.Resolve(req, targetStatus)
	if err != nil {
		return nil, err
	}

	// The submit path has a persisted quality gate on top of the table
	if event == workflow.EventSubmitForReview {
		if err := s.requireChecklistComplete(id); err != nil {
			return nil, err
		}
	}

	if err := s.contentRepo.UpdateStatusWithLock(id, next, item.LockVersion); err != nil {
		return nil, err
	}
	s.invalidateItemCache(id)

	return s.Get(id)
}

// SubmitForReview is the editor's submit action, gated by the persisted
// checklist. Reopening a panel does not reset the gate: it lives in the DB.
func (s *ContentService) SubmitForReview(actor workflow.Actor, id uint64) (*domain.ContentItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.requireChecklistComplete(id); err != nil {
		return nil, err
	}

	req := workflow.Request{
		Item:  item,
		Event: workflow.EventSubmitForReview,
		Actor: actor,
	}
	next, err := workflow.Next(req)
	if err != nil {
		return nil, err
	}

	if err := s.contentRepo.UpdateStatusWithLock(id, next, item.LockVersion); err != nil {
		return nil, err
	}
	s.invalidateItemCache(id)

	return s.Get(id)
}

// GetChecklist returns the persisted checklist, an all-false one if none yet
func (s *ContentService) GetChecklist(id uint64) (*domain.Checklist, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	checklist, err := s.checklistRepo.FindByItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.Checklist{ItemID: id}, nil
		}
		return nil, err
	}
	return checklist, nil
}

// UpdateChecklist persists the quality checklist state for an item.
// Only the assigned editor (or an admin) ticks boxes.
func (s *ContentService) UpdateChecklist(actor workflow.Actor, id uint64, checklist *domain.Checklist) (*domain.Checklist, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	isEditor := item.AssignedEditorID != nil && *item.AssignedEditorID == actor.UserID
	if !isEditor && actor.Role != domain.RoleAdmin {
		return nil, ErrNotChecklistEditor
	}

	checklist.ItemID = id
	checklist.UpdatedByID = actor.UserID
	if err := s.checklistRepo.Upsert(checklist); err != nil {
		return nil, err
	}
	return s.checklistRepo.FindByItem(id)
}

// Archive soft-archives an item; sub-records are untouched
func (s *ContentService) Archive(actor workflow.Actor, id uint64) error {
	return s.setArchived(actor, id, true)
}

// Unarchive clears the archive flag
func (s *ContentService) Unarchive(actor workflow.Actor, id uint64) error {
	return s.setArchived(actor, id, false)
}

func (s *ContentService) setArchived(actor workflow.Actor, id uint64, archived bool) error {
	switch actor.Role {
	case domain.RoleStrategist, domain.RoleCEO, domain.RoleAdmin:
	default:
		return ErrRoleNotAllowed
	}
	if err := s.contentRepo.SetArchived(id, archived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	s.invalidateItemCache(id)
	return nil
}

// Delete permanently removes the item and its history. CEO only.
func (s *ContentService) Delete(actor workflow.Actor, id uint64) error {
	if actor.Role != domain.RoleCEO {
		return ErrDeleteCEOOnly
	}
	if err := s.contentRepo.DeleteCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	s.invalidateItemCache(id)
	return nil
}

func (s *ContentService) requireChecklistComplete(id uint64) error {
	checklist, err := s.checklistRepo.FindByItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChecklistIncomplete
		}
		return err
	}
	if !checklist.Complete() {
		return ErrChecklistIncomplete
	}
	return nil
}

func (s *ContentService) activeDelegateID(vertical string) uint64 {
	if s.delegationRepo == nil {
		return 0
	}
	delegation, err := s.delegationRepo.FindActiveByVertical(vertical)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] delegation lookup failed for %s: %v", vertical, err)
		}
		return 0
	}
	return delegation.DelegateID
}

func (s *ContentService) invalidateItemCache(id uint64) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	if err := s.cache.InvalidateContent(ctx, fmt.Sprintf("%d", id)); err != nil {
		log.Printf("[WARN] content cache invalidation failed: %v", err)
	}
	s.invalidateListCache()
}

func (s *ContentService) invalidateListCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateContents(context.Background()); err != nil {
		log.Printf("[WARN] content list cache invalidation failed: %v", err)
	}
}
