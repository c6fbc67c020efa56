package service

import (
	"testing"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newVersionService(versionRepo *mockVersionRepo, contentRepo *mockContentRepo, delegationRepo *mockDelegationRepo) *VersionService {
	return NewVersionService(versionRepo, contentRepo, delegationRepo, nil)
}

func TestVersionService_AddVersion(t *testing.T) {
	t.Run("asset url required", func(t *testing.T) {
		svc := newVersionService(new(mockVersionRepo), new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.AddVersion(workflow.Actor{UserID: 7, Role: domain.RoleEditor}, 10, "")

		assert.ErrorIs(t, err, ErrAssetURLRequired)
	})

	t.Run("only the assigned editor uploads", func(t *testing.T) {
		item := &domain.ContentItem{ID: 10, Status: domain.StatusEditing, AssignedEditorID: editorPtr(7)}
		contentRepo := new(mockContentRepo)
		contentRepo.On("FindByID", uint64(10)).Return(item, nil)
		svc := newVersionService(new(mockVersionRepo), contentRepo, new(mockDelegationRepo))

		_, err := svc.AddVersion(workflow.Actor{UserID: 99, Role: domain.RoleEditor}, 10, "https://cdn.example.com/v1.mp4")

		assert.ErrorIs(t, err, ErrNotAssignedEditor)
	})

	t.Run("upload during editing bumps the item into review", func(t *testing.T) {
		item := &domain.ContentItem{ID: 10, Status: domain.StatusEditing, AssignedEditorID: editorPtr(7), LockVersion: 2}
		contentRepo := new(mockContentRepo)
		contentRepo.On("FindByID", uint64(10)).Return(item, nil)
		contentRepo.On("UpdateStatusWithLock", uint64(10), domain.StatusInReviewL1, uint(2)).Return(nil)
		versionRepo := new(mockVersionRepo)
		versionRepo.On("CreateNext", mock.MatchedBy(func(v *domain.ContentVersion) bool {
			return v.ItemID == 10 && v.SubmitterID == 7
		})).Return(nil)
		svc := newVersionService(versionRepo, contentRepo, new(mockDelegationRepo))

		_, err := svc.AddVersion(workflow.Actor{UserID: 7, Role: domain.RoleEditor}, 10, "https://cdn.example.com/v1.mp4")

		assert.NoError(t, err)
		contentRepo.AssertExpectations(t)
		versionRepo.AssertExpectations(t)
	})

	t.Run("admin upload during editing bumps the item into review", func(t *testing.T) {
		item := &domain.ContentItem{ID: 10, Status: domain.StatusEditing, AssignedEditorID: editorPtr(7), LockVersion: 1}
		contentRepo := new(mockContentRepo)
		contentRepo.On("FindByID", uint64(10)).Return(item, nil)
		contentRepo.On("UpdateStatusWithLock", uint64(10), domain.StatusInReviewL1, uint(1)).Return(nil)
		versionRepo := new(mockVersionRepo)
		versionRepo.On("CreateNext", mock.MatchedBy(func(v *domain.ContentVersion) bool {
			return v.ItemID == 10 && v.SubmitterID == 3
		})).Return(nil)
		svc := newVersionService(versionRepo, contentRepo, new(mockDelegationRepo))

		_, err := svc.AddVersion(workflow.Actor{UserID: 3, Role: domain.RoleAdmin}, 10, "https://cdn.example.com/fix.mp4")

		assert.NoError(t, err)
		contentRepo.AssertExpectations(t)
	})

	t.Run("upload during review leaves the status alone", func(t *testing.T) {
		item := &domain.ContentItem{ID: 10, Status: domain.StatusInReviewL1, AssignedEditorID: editorPtr(7)}
		contentRepo := new(mockContentRepo)
		contentRepo.On("FindByID", uint64(10)).Return(item, nil)
		versionRepo := new(mockVersionRepo)
		versionRepo.On("CreateNext", mock.AnythingOfType("*domain.ContentVersion")).Return(nil)
		svc := newVersionService(versionRepo, contentRepo, new(mockDelegationRepo))

		_, err := svc.AddVersion(workflow.Actor{UserID: 7, Role: domain.RoleEditor}, 10, "https://cdn.example.com/v2.mp4")

		assert.NoError(t, err)
		contentRepo.AssertNotCalled(t, "UpdateStatusWithLock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVersionService_SubmitFeedback(t *testing.T) {
	t.Run("editors do not review their own uploads", func(t *testing.T) {
		svc := newVersionService(new(mockVersionRepo), new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.SubmitFeedback(workflow.Actor{UserID: 7, Role: domain.RoleEditor}, 10, 1, domain.VersionApproved, "")

		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("reject requires feedback", func(t *testing.T) {
		svc := newVersionService(new(mockVersionRepo), new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.SubmitFeedback(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, 10, 1, domain.VersionRejected, "")

		assert.ErrorIs(t, err, ErrFeedbackRequired)
	})

	t.Run("decided versions are closed", func(t *testing.T) {
		versionRepo := new(mockVersionRepo)
		versionRepo.On("FindByID", uint64(1)).
			Return(&domain.ContentVersion{ID: 1, ItemID: 10, Status: domain.VersionApproved}, nil)
		svc := newVersionService(versionRepo, new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.SubmitFeedback(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, 10, 1, domain.VersionApproved, "")

		assert.ErrorIs(t, err, ErrVersionNotPending)
	})

	t.Run("version must belong to the item", func(t *testing.T) {
		versionRepo := new(mockVersionRepo)
		versionRepo.On("FindByID", uint64(1)).
			Return(&domain.ContentVersion{ID: 1, ItemID: 77, Status: domain.VersionPending}, nil)
		svc := newVersionService(versionRepo, new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.SubmitFeedback(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, 10, 1, domain.VersionApproved, "")

		assert.ErrorIs(t, err, ErrVersionWrongItem)
	})

	t.Run("approve without feedback passes", func(t *testing.T) {
		versionRepo := new(mockVersionRepo)
		versionRepo.On("FindByID", uint64(1)).
			Return(&domain.ContentVersion{ID: 1, ItemID: 10, Status: domain.VersionPending}, nil)
		versionRepo.On("SubmitFeedback", uint64(1), domain.VersionApproved, (*string)(nil)).Return(nil)
		svc := newVersionService(versionRepo, new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.SubmitFeedback(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, 10, 1, domain.VersionApproved, "")

		assert.NoError(t, err)
		versionRepo.AssertExpectations(t)
	})

	t.Run("losing the race with another reviewer", func(t *testing.T) {
		versionRepo := new(mockVersionRepo)
		versionRepo.On("FindByID", uint64(1)).
			Return(&domain.ContentVersion{ID: 1, ItemID: 10, Status: domain.VersionPending}, nil)
		feedback := "too dark"
		versionRepo.On("SubmitFeedback", uint64(1), domain.VersionRejected, &feedback).
			Return(gorm.ErrRecordNotFound)
		svc := newVersionService(versionRepo, new(mockContentRepo), new(mockDelegationRepo))

		_, err := svc.SubmitFeedback(workflow.Actor{UserID: 1, Role: domain.RoleStrategist}, 10, 1, domain.VersionRejected, feedback)

		assert.ErrorIs(t, err, ErrVersionNotPending)
	})
}
