package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/craftlab-hq/ops-backend/pkg/cache"
	"gorm.io/gorm"
)

var (
	ErrModuleNotFound  = errors.New("content module not found")
	ErrModuleName      = errors.New("module name is required")
	ErrInvalidCategory = errors.New("invalid module category")
)

// CreateModuleInput fields for creating a campaign module
type CreateModuleInput struct {
	Name      string
	Category  string
	Priority  string
	Goal      string
	Audience  string
	StartDate *string
	EndDate   *string
}

// ModuleService handles campaign module business logic
type ModuleService struct {
	moduleRepo repository.ModuleRepository
	cache      cache.Service
}

// NewModuleService creates a new ModuleService
func NewModuleService(moduleRepo repository.ModuleRepository, cacheSvc cache.Service) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo, cache: cacheSvc}
}

// Create creates a campaign module. Strategists, CEO and admins only.
func (s *ModuleService) Create(actor workflow.Actor, module *domain.ContentModule) (*domain.ContentModule, error) {
	switch actor.Role {
	case domain.RoleStrategist, domain.RoleCEO, domain.RoleAdmin:
	default:
		return nil, ErrRoleNotAllowed
	}
	if module.Name == "" {
		return nil, ErrModuleName
	}
	if !domain.ValidCategory(module.Category) {
		return nil, ErrInvalidCategory
	}
	if module.Priority == "" {
		module.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(module.Priority) {
		return nil, ErrInvalidPriority
	}

	if err := s.moduleRepo.Create(module); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return module, nil
}

// List returns modules, optionally including archived ones. The default
// (active-only) listing is served from cache.
func (s *ModuleService) List(includeArchived bool) ([]*domain.ContentModule, error) {
	if !includeArchived && s.cache != nil {
		if data, err := s.cache.GetModules(context.Background()); err == nil {
			var cached []*domain.ContentModule
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	modules, err := s.moduleRepo.List(includeArchived)
	if err != nil {
		return nil, err
	}

	if !includeArchived && s.cache != nil {
		if err := s.cache.SetModules(context.Background(), modules); err != nil {
			log.Printf("[WARN] module cache set failed: %v", err)
		}
	}
	return modules, nil
}

// Get returns a single module
func (s *ModuleService) Get(id uint64) (*domain.ContentModule, error) {
	module, err := s.moduleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

// Archive soft-archives a module; its items stay queryable
func (s *ModuleService) Archive(actor workflow.Actor, id uint64) error {
	switch actor.Role {
	case domain.RoleStrategist, domain.RoleCEO, domain.RoleAdmin:
	default:
		return ErrRoleNotAllowed
	}
	if err := s.moduleRepo.SetArchived(id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModuleNotFound
		}
		return err
	}
	s.invalidateCache()
	return nil
}

// Delete permanently removes the module and cascades to its items. CEO only.
func (s *ModuleService) Delete(actor workflow.Actor, id uint64) error {
	if actor.Role != domain.RoleCEO {
		return ErrDeleteCEOOnly
	}
	if err := s.moduleRepo.DeleteCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModuleNotFound
		}
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *ModuleService) invalidateCache() {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	if err := s.cache.InvalidateModules(ctx); err != nil {
		log.Printf("[WARN] module cache invalidation failed: %v", err)
	}
	if err := s.cache.InvalidateContents(ctx); err != nil {
		log.Printf("[WARN] content list cache invalidation failed: %v", err)
	}
}
