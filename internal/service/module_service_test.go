package service

import (
	"testing"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestModuleService_Create(t *testing.T) {
	t.Run("editor cannot create modules", func(t *testing.T) {
		svc := NewModuleService(new(mockModuleRepo), nil)

		_, err := svc.Create(workflow.Actor{UserID: 7, Role: domain.RoleEditor}, &domain.ContentModule{
			Name:     "Q4 sponsor push",
			Category: domain.CategorySales,
		})

		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("name required", func(t *testing.T) {
		svc := NewModuleService(new(mockModuleRepo), nil)

		_, err := svc.Create(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, &domain.ContentModule{
			Category: domain.CategorySales,
		})

		assert.ErrorIs(t, err, ErrModuleName)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc := NewModuleService(new(mockModuleRepo), nil)

		_, err := svc.Create(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, &domain.ContentModule{
			Name:     "Q4 sponsor push",
			Category: "swag",
		})

		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("priority defaults to medium", func(t *testing.T) {
		moduleRepo := new(mockModuleRepo)
		moduleRepo.On("Create", mock.MatchedBy(func(m *domain.ContentModule) bool {
			return m.Priority == domain.PriorityMedium
		})).Return(nil)
		svc := NewModuleService(moduleRepo, nil)

		_, err := svc.Create(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, &domain.ContentModule{
			Name:     "Q4 sponsor push",
			Category: domain.CategorySales,
		})

		assert.NoError(t, err)
		moduleRepo.AssertExpectations(t)
	})
}

func TestModuleService_List(t *testing.T) {
	t.Run("active listing is served from cache on repeat", func(t *testing.T) {
		moduleRepo := new(mockModuleRepo)
		moduleRepo.On("List", false).
			Return([]*domain.ContentModule{{ID: 5, Name: "Q4 sponsor push", Category: domain.CategorySales}}, nil).
			Once()
		svc := NewModuleService(moduleRepo, newFakeCache())

		_, err := svc.List(false)
		assert.NoError(t, err)

		again, err := svc.List(false)
		assert.NoError(t, err)
		assert.Len(t, again, 1)
		assert.Equal(t, "Q4 sponsor push", again[0].Name)
		moduleRepo.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("archived listing always hits the repository", func(t *testing.T) {
		moduleRepo := new(mockModuleRepo)
		moduleRepo.On("List", true).Return([]*domain.ContentModule{}, nil)
		svc := NewModuleService(moduleRepo, newFakeCache())

		_, err := svc.List(true)
		assert.NoError(t, err)
		_, err = svc.List(true)
		assert.NoError(t, err)
		moduleRepo.AssertNumberOfCalls(t, "List", 2)
	})
}

func TestModuleService_Delete(t *testing.T) {
	t.Run("admin cannot hard delete", func(t *testing.T) {
		svc := NewModuleService(new(mockModuleRepo), nil)

		err := svc.Delete(workflow.Actor{UserID: 1, Role: domain.RoleAdmin}, 5)

		assert.ErrorIs(t, err, ErrDeleteCEOOnly)
	})

	t.Run("ceo cascades", func(t *testing.T) {
		moduleRepo := new(mockModuleRepo)
		moduleRepo.On("DeleteCascade", uint64(5)).Return(nil)
		svc := NewModuleService(moduleRepo, nil)

		err := svc.Delete(workflow.Actor{UserID: 1, Role: domain.RoleCEO}, 5)

		assert.NoError(t, err)
		moduleRepo.AssertExpectations(t)
	})

	t.Run("missing module", func(t *testing.T) {
		moduleRepo := new(mockModuleRepo)
		moduleRepo.On("DeleteCascade", uint64(9)).Return(gorm.ErrRecordNotFound)
		svc := NewModuleService(moduleRepo, nil)

		err := svc.Delete(workflow.Actor{UserID: 1, Role: domain.RoleCEO}, 9)

		assert.ErrorIs(t, err, ErrModuleNotFound)
	})
}

func TestModuleService_Archive(t *testing.T) {
	moduleRepo := new(mockModuleRepo)
	moduleRepo.On("SetArchived", uint64(5), true).Return(nil)
	svc := NewModuleService(moduleRepo, nil)

	err := svc.Archive(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, 5)

	assert.NoError(t, err)
	moduleRepo.AssertExpectations(t)
}
