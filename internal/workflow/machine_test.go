package workflow

import (
	"testing"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func item(status, vertical string, editorID uint64) *domain.ContentItem {
	it := &domain.ContentItem{Status: status, Vertical: vertical}
	if editorID != 0 {
		it.AssignedEditorID = &editorID
	}
	return it
}

func TestNext_TransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		item       *domain.ContentItem
		event      string
		actor      Actor
		delegateID uint64
		want       string
		wantErr    error
	}{
		{
			name:  "strategist requests review from draft",
			item:  item(domain.StatusDraft, domain.VerticalSocial, 0),
			event: EventRequestReview,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusInReviewL1,
		},
		{
			name:  "strategist requests review from revision",
			item:  item(domain.StatusRevision, domain.VerticalSocial, 0),
			event: EventRequestReview,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusInReviewL1,
		},
		{
			name:  "legacy changes_requested spelling is normalized",
			item:  item("changes_requested", domain.VerticalSocial, 0),
			event: EventRequestReview,
			actor: Actor{UserID: 1, Role: domain.RoleAdmin},
			want:  domain.StatusInReviewL1,
		},
		{
			name:  "legacy review spelling is normalized for l1 approval",
			item:  item("review", domain.VerticalSocial, 0),
			event: EventApproveL1,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusApprovedL1,
		},
		{
			name:  "assigned editor picks up draft",
			item:  item(domain.StatusDraft, domain.VerticalSocial, 7),
			event: EventStartEditing,
			actor: Actor{UserID: 7, Role: domain.RoleEditor},
			want:  domain.StatusEditing,
		},
		{
			name:  "assigned editor submits for review",
			item:  item(domain.StatusEditing, domain.VerticalSocial, 7),
			event: EventSubmitForReview,
			actor: Actor{UserID: 7, Role: domain.RoleEditor},
			want:  domain.StatusInReviewL1,
		},
		{
			name:    "unassigned editor cannot submit",
			item:    item(domain.StatusEditing, domain.VerticalSocial, 7),
			event:   EventSubmitForReview,
			actor:   Actor{UserID: 8, Role: domain.RoleEditor},
			wantErr: ErrActorNotAllowed,
		},
		{
			name:  "upload during revision goes back to l1 review",
			item:  item(domain.StatusRevision, domain.VerticalEvents, 7),
			event: EventUploadVersion,
			actor: Actor{UserID: 7, Role: domain.RoleEditor},
			want:  domain.StatusInReviewL1,
		},
		{
			name:  "admin upload during editing goes to l1 review",
			item:  item(domain.StatusEditing, domain.VerticalSocial, 7),
			event: EventUploadVersion,
			actor: Actor{UserID: 3, Role: domain.RoleAdmin},
			want:  domain.StatusInReviewL1,
		},
		{
			name:    "non-assigned editor cannot upload",
			item:    item(domain.StatusEditing, domain.VerticalSocial, 7),
			event:   EventUploadVersion,
			actor:   Actor{UserID: 8, Role: domain.RoleEditor},
			wantErr: ErrActorNotAllowed,
		},
		{
			name:  "l1 approval routes social straight to approved_l1",
			item:  item(domain.StatusInReviewL1, domain.VerticalSocial, 0),
			event: EventApproveL1,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusApprovedL1,
		},
		{
			name:  "l1 approval routes sponsor work to l2 review",
			item:  item(domain.StatusInReviewL1, domain.VerticalSponsor, 0),
			event: EventApproveL1,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusInReviewL2,
		},
		{
			name:  "l1 approval routes title sponsor work to l2 review",
			item:  item(domain.StatusInReviewL1, domain.VerticalTitleSponsor, 0),
			event: EventApproveL1,
			actor: Actor{UserID: 1, Role: domain.RoleAdmin},
			want:  domain.StatusInReviewL2,
		},
		{
			name:  "strategist requests changes at l1",
			item:  item(domain.StatusInReviewL1, domain.VerticalFounder, 0),
			event: EventRequestChanges,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusRevision,
		},
		{
			name:  "ceo approves at l2",
			item:  item(domain.StatusInReviewL2, domain.VerticalFounder, 0),
			event: EventApproveL2,
			actor: Actor{UserID: 2, Role: domain.RoleCEO},
			want:  domain.StatusApprovedL2,
		},
		{
			name:       "delegate approves at l2 when delegation active",
			item:       item(domain.StatusInReviewL2, domain.VerticalSponsor, 0),
			event:      EventApproveL2,
			actor:      Actor{UserID: 5, Role: domain.RoleStrategist},
			delegateID: 5,
			want:       domain.StatusApprovedL2,
		},
		{
			name:    "strategist cannot approve at l2 without delegation",
			item:    item(domain.StatusInReviewL2, domain.VerticalSponsor, 0),
			event:   EventApproveL2,
			actor:   Actor{UserID: 5, Role: domain.RoleStrategist},
			wantErr: ErrActorNotAllowed,
		},
		{
			name:       "delegation for another user does not open the gate",
			item:       item(domain.StatusInReviewL2, domain.VerticalSponsor, 0),
			event:      EventApproveL2,
			actor:      Actor{UserID: 6, Role: domain.RoleStrategist},
			delegateID: 5,
			wantErr:    ErrActorNotAllowed,
		},
		{
			name:  "ceo rejects at l2",
			item:  item(domain.StatusInReviewL2, domain.VerticalFounder, 0),
			event: EventRejectL2,
			actor: Actor{UserID: 2, Role: domain.RoleCEO},
			want:  domain.StatusRevision,
		},
		{
			name:  "schedule from approved_l1",
			item:  item(domain.StatusApprovedL1, domain.VerticalSocial, 0),
			event: EventSchedule,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusScheduled,
		},
		{
			name:  "schedule from approved_l2 by ceo",
			item:  item(domain.StatusApprovedL2, domain.VerticalSponsor, 0),
			event: EventSchedule,
			actor: Actor{UserID: 2, Role: domain.RoleCEO},
			want:  domain.StatusScheduled,
		},
		{
			name:  "publish from scheduled",
			item:  item(domain.StatusScheduled, domain.VerticalSocial, 0),
			event: EventPublish,
			actor: Actor{UserID: 1, Role: domain.RoleStrategist},
			want:  domain.StatusPublished,
		},
		{
			name:    "second l2 approval on an approved item fails",
			item:    item(domain.StatusApprovedL2, domain.VerticalSponsor, 0),
			event:   EventApproveL2,
			actor:   Actor{UserID: 2, Role: domain.RoleCEO},
			wantErr: ErrIllegalTransition,
		},
		{
			name:    "l2 approval on a draft fails",
			item:    item(domain.StatusDraft, domain.VerticalSponsor, 0),
			event:   EventApproveL2,
			actor:   Actor{UserID: 2, Role: domain.RoleCEO},
			wantErr: ErrIllegalTransition,
		},
		{
			name:    "publish from draft fails",
			item:    item(domain.StatusDraft, domain.VerticalSocial, 0),
			event:   EventPublish,
			actor:   Actor{UserID: 1, Role: domain.RoleAdmin},
			wantErr: ErrIllegalTransition,
		},
		{
			name:    "editor cannot request review",
			item:    item(domain.StatusDraft, domain.VerticalSocial, 7),
			event:   EventRequestReview,
			actor:   Actor{UserID: 7, Role: domain.RoleEditor},
			wantErr: ErrActorNotAllowed,
		},
		{
			name:    "unknown event rejected",
			item:    item(domain.StatusDraft, domain.VerticalSocial, 0),
			event:   "teleport",
			actor:   Actor{UserID: 1, Role: domain.RoleAdmin},
			wantErr: ErrUnknownEvent,
		},
		{
			name:    "unknown status rejected",
			item:    item("limbo", domain.VerticalSocial, 0),
			event:   EventRequestReview,
			actor:   Actor{UserID: 1, Role: domain.RoleAdmin},
			wantErr: ErrUnknownStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(Request{
				Item:       tt.item,
				Event:      tt.event,
				Actor:      tt.actor,
				DelegateID: tt.delegateID,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, domain.ValidStatus(got), "machine must never produce an out-of-set status")
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("target status picks the submit event for the editor", func(t *testing.T) {
		event, next, err := Resolve(Request{
			Item:  item(domain.StatusEditing, domain.VerticalSocial, 7),
			Actor: Actor{UserID: 7, Role: domain.RoleEditor},
		}, domain.StatusInReviewL1)

		assert.NoError(t, err)
		assert.Equal(t, EventSubmitForReview, event)
		assert.Equal(t, domain.StatusInReviewL1, next)
	})

	t.Run("legacy target spelling resolves", func(t *testing.T) {
		event, next, err := Resolve(Request{
			Item:  item(domain.StatusInReviewL1, domain.VerticalSocial, 0),
			Actor: Actor{UserID: 1, Role: domain.RoleStrategist},
		}, "changes_requested")

		assert.NoError(t, err)
		assert.Equal(t, EventRequestChanges, event)
		assert.Equal(t, domain.StatusRevision, next)
	})

	t.Run("reachable target with the wrong actor", func(t *testing.T) {
		_, _, err := Resolve(Request{
			Item:  item(domain.StatusEditing, domain.VerticalSocial, 7),
			Actor: Actor{UserID: 9, Role: domain.RoleFinance},
		}, domain.StatusInReviewL1)

		assert.ErrorIs(t, err, ErrActorNotAllowed)
	})

	t.Run("unreachable target", func(t *testing.T) {
		_, _, err := Resolve(Request{
			Item:  item(domain.StatusDraft, domain.VerticalSocial, 0),
			Actor: Actor{UserID: 1, Role: domain.RoleAdmin},
		}, domain.StatusPublished)

		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestEventForLevel(t *testing.T) {
	tests := []struct {
		level    string
		decision string
		want     string
		wantErr  bool
	}{
		{domain.ApprovalLevel1, domain.DecisionApproved, EventApproveL1, false},
		{domain.ApprovalLevel1, domain.DecisionChanges, EventRequestChanges, false},
		{domain.ApprovalLevel2, domain.DecisionApproved, EventApproveL2, false},
		{domain.ApprovalLevel2, domain.DecisionChanges, EventRejectL2, false},
		{"level_3", domain.DecisionApproved, "", true},
		{domain.ApprovalLevel1, "maybe", "", true},
	}

	for _, tt := range tests {
		got, err := EventForLevel(tt.level, tt.decision)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownEvent)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
