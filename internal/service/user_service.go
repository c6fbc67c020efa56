package service

import (
	"context"
	"log"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/pkg/cache"
)

// UserService read-side user lookups for assignment dropdowns
type UserService struct {
	userRepo repository.UserRepository
	cache    cache.Service
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, cacheSvc cache.Service) *UserService {
	return &UserService{userRepo: userRepo, cache: cacheSvc}
}

// ListProductionUsers returns the active editors available for assignment
func (s *UserService) ListProductionUsers() ([]*domain.User, error) {
	if s.cache != nil {
		var cached []*domain.User
		if err := s.cache.Get(context.Background(), cache.PrefixUsers+"production", &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.userRepo.ListActiveByRole(domain.RoleEditor)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(context.Background(), cache.PrefixUsers+"production", users, cache.TTLUsers); err != nil {
			log.Printf("[WARN] production users cache set failed: %v", err)
		}
	}
	return users, nil
}
