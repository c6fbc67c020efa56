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
	"gorm.io/gorm"
)

var (
	ErrInvalidLevel        = errors.New("invalid approval level")
	ErrInvalidDecision     = errors.New("invalid approval decision")
	ErrDelegateNotEligible = errors.New("delegate must be an active strategist")
	ErrNoActiveDelegation  = errors.New("no active delegation for vertical")
)

// Approver resolved effective approver for an item's level-2 gate
type Approver struct {
	Role       string `json:"role"`
	DelegateID uint64 `json:"delegate_id,omitempty"`
}

// ApprovalService handles the approval ledger and delegation routing
type ApprovalService struct {
	approvalRepo   repository.ApprovalRepository
	delegationRepo repository.DelegationRepository
	contentRepo    repository.ContentRepository
	userRepo       repository.UserRepository
	cache          cache.Service
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	approvalRepo repository.ApprovalRepository,
	delegationRepo repository.DelegationRepository,
	contentRepo repository.ContentRepository,
	userRepo repository.UserRepository,
	cacheSvc cache.Service,
) *ApprovalService {
	return &ApprovalService{
		approvalRepo:   approvalRepo,
		delegationRepo: delegationRepo,
		contentRepo:    contentRepo,
		userRepo:       userRepo,
		cache:          cacheSvc,
	}
}

// RecordApproval appends an approval record and advances the item through
// the state machine. Recording a level the item is not sitting at fails
// before anything is written.
func (s *ApprovalService) RecordApproval(actor workflow.Actor, itemID uint64, level, decision, comment string) (*domain.ContentItem, error) {
	if level != domain.ApprovalLevel1 && level != domain.ApprovalLevel2 {
		return nil, ErrInvalidLevel
	}
	if decision != domain.DecisionApproved && decision != domain.DecisionChanges {
		return nil, ErrInvalidDecision
	}

	item, err := s.contentRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	event, err := workflow.EventForLevel(level, decision)
	if err != nil {
		return nil, err
	}

	req := workflow.Request{
		Item:       item,
		Event:      event,
		Actor:      actor,
		DelegateID: s.activeDelegateID(item.Vertical),
	}
	next, err := workflow.Next(req)
	if err != nil {
		return nil, err
	}

	approval := &domain.Approval{
		ItemID:   itemID,
		Level:    level,
		Decision: decision,
		ActorID:  actor.UserID,
		Comment:  comment,
	}
	if err := s.approvalRepo.AppendWithStatus(approval, next, item.LockVersion); err != nil {
		return nil, err
	}

	s.invalidateItemCache(itemID)

	return s.contentRepo.FindByID(itemID)
}

// ListByItem returns the full approval history for an item, oldest first
func (s *ApprovalService) ListByItem(itemID uint64) ([]*domain.Approval, error) {
	return s.approvalRepo.ListByItem(itemID)
}

// ApprovalState returns the current decision per level: the newest record for
// each level the item has been through. Levels with no record yet are absent.
func (s *ApprovalService) ApprovalState(itemID uint64) (map[string]*domain.Approval, error) {
	if _, err := s.contentRepo.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	state := make(map[string]*domain.Approval)
	for _, level := range []string{domain.ApprovalLevel1, domain.ApprovalLevel2} {
		approval, err := s.approvalRepo.LatestByItemAndLevel(itemID, level)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		state[level] = approval
	}
	return state, nil
}

// Delegate routes a vertical's level-2 approvals to a strategist.
// CEO or admin only; the previous delegation for the vertical is revoked in
// the same write so the log stays effective-dated.
func (s *ApprovalService) Delegate(actor workflow.Actor, vertical string, delegateUserID uint64) (*domain.Delegation, error) {
	if actor.Role != domain.RoleCEO && actor.Role != domain.RoleAdmin {
		return nil, ErrRoleNotAllowed
	}
	if !domain.ValidVertical(vertical) {
		return nil, ErrInvalidVertical
	}

	delegate, err := s.userRepo.FindByID(delegateUserID)
	if err != nil {
		return nil, ErrDelegateNotEligible
	}
	if delegate.Role != domain.RoleStrategist || !delegate.Active {
		return nil, ErrDelegateNotEligible
	}

	delegation := &domain.Delegation{
		Vertical:   vertical,
		DelegateID: delegateUserID,
		SetByID:    actor.UserID,
	}
	if err := s.delegationRepo.Set(delegation); err != nil {
		return nil, err
	}

	s.invalidateDelegationCache()
	return delegation, nil
}

// ClearDelegation revokes the active delegation for a vertical, restoring
// default CEO routing
func (s *ApprovalService) ClearDelegation(actor workflow.Actor, vertical string) error {
	if actor.Role != domain.RoleCEO && actor.Role != domain.RoleAdmin {
		return ErrRoleNotAllowed
	}
	if !domain.ValidVertical(vertical) {
		return ErrInvalidVertical
	}
	if err := s.delegationRepo.Revoke(vertical); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveDelegation
		}
		return err
	}
	s.invalidateDelegationCache()
	return nil
}

// ResolveApprover returns who holds the item's level-2 gate: the vertical's
// active delegate if one is set, otherwise the CEO role. Pure lookup, used
// by clients to decide whose UI shows the approval controls.
func (s *ApprovalService) ResolveApprover(item *domain.ContentItem) Approver {
	if id := s.activeDelegateID(item.Vertical); id != 0 {
		return Approver{Role: domain.RoleStrategist, DelegateID: id}
	}
	return Approver{Role: domain.RoleCEO}
}

// ListDelegations returns all active delegations, served from cache
func (s *ApprovalService) ListDelegations() ([]*domain.Delegation, error) {
	if s.cache != nil {
		if data, err := s.cache.GetDelegations(context.Background()); err == nil {
			var cached []*domain.Delegation
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	delegations, err := s.delegationRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDelegations(context.Background(), delegations); err != nil {
			log.Printf("[WARN] delegation cache set failed: %v", err)
		}
	}
	return delegations, nil
}

// DelegationHistory returns the effective-dated log for a vertical
func (s *ApprovalService) DelegationHistory(vertical string) ([]*domain.Delegation, error) {
	if !domain.ValidVertical(vertical) {
		return nil, ErrInvalidVertical
	}
	return s.delegationRepo.ListHistory(vertical)
}

func (s *ApprovalService) activeDelegateID(vertical string) uint64 {
	delegation, err := s.delegationRepo.FindActiveByVertical(vertical)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] delegation lookup failed for %s: %v", vertical, err)
		}
		return 0
	}
	return delegation.DelegateID
}

func (s *ApprovalService) invalidateItemCache(id uint64) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	if err := s.cache.InvalidateContent(ctx, fmt.Sprintf("%d", id)); err != nil {
		log.Printf("[WARN] content cache invalidation failed: %v", err)
	}
	if err := s.cache.InvalidateContents(ctx); err != nil {
		log.Printf("[WARN] content list cache invalidation failed: %v", err)
	}
}

func (s *ApprovalService) invalidateDelegationCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDelegations(context.Background()); err != nil {
		log.Printf("[WARN] delegation cache invalidation failed: %v", err)
	}
}
