package workflow

import (
	"errors"

	"github.com/craftlab-hq/ops-backend/internal/domain"
)

// Workflow events
const (
	EventStartEditing    = "start_editing"
	EventRequestReview   = "request_review"
	EventSubmitForReview = "submit_for_review"
	EventUploadVersion   = "upload_version"
	EventApproveL1       = "approve_l1"
	EventRequestChanges  = "request_changes"
	EventApproveL2       = "approve_l2"
	EventRejectL2        = "reject_l2"
	EventSchedule        = "schedule"
	EventPublish         = "publish"
)

var (
	ErrUnknownStatus     = errors.New("unknown content status")
	ErrUnknownEvent      = errors.New("unknown workflow event")
	ErrIllegalTransition = errors.New("transition not allowed from current status")
	ErrActorNotAllowed   = errors.New("actor is not allowed to trigger this transition")
)

// Actor identifies who triggers a transition
type Actor struct {
	UserID uint64
	Role   string
}

// Request carries everything a transition decision needs.
// DelegateID is the active level-2 delegate for the item's vertical
// (0 when none), resolved by the caller before invoking the machine.
type Request struct {
	Item       *domain.ContentItem
	Event      string
	Actor      Actor
	DelegateID uint64
}

type transition struct {
	event string
	from  []string
	to    func(item *domain.ContentItem) string
	allow func(req Request) bool
}

func toStatus(status string) func(*domain.ContentItem) string {
	return func(*domain.ContentItem) string { return status }
}

func roleIn(roles ...string) func(Request) bool {
	return func(req Request) bool {
		for _, r := range roles {
			if req.Actor.Role == r {
				return true
			}
		}
		return false
	}
}

func assignedEditor(req Request) bool {
	return req.Item.AssignedEditorID != nil && *req.Item.AssignedEditorID == req.Actor.UserID
}

// admins can upload on any item, matching the version upload gate
func editorOrAdmin(req Request) bool {
	return assignedEditor(req) || req.Actor.Role == domain.RoleAdmin
}

// level-2 sign-off: CEO or admin by default, or the vertical's active delegate
func levelTwoApprover(req Request) bool {
	if req.Actor.Role == domain.RoleCEO || req.Actor.Role == domain.RoleAdmin {
		return true
	}
	return req.DelegateID != 0 && req.Actor.UserID == req.DelegateID
}

// afterLevelOne routes to level 2 only when the vertical requires it
func afterLevelOne(item *domain.ContentItem) string {
	if domain.RequiresLevel2(item.Vertical) {
		return domain.StatusInReviewL2
	}
	return domain.StatusApprovedL1
}

// The canonical transition table. Every surface that moves an item goes
// through Next; nothing else may write a status.
var transitions = []transition{
	{
		event: EventStartEditing,
		from:  []string{domain.StatusDraft},
		to:    toStatus(domain.StatusEditing),
		allow: assignedEditor,
	},
	{
		event: EventRequestReview,
		from:  []string{domain.StatusDraft, domain.StatusRevision},
		to:    toStatus(domain.StatusInReviewL1),
		allow: roleIn(domain.RoleStrategist, domain.RoleAdmin),
	},
	{
		event: EventSubmitForReview,
		from:  []string{domain.StatusEditing, domain.StatusRevision},
		to:    toStatus(domain.StatusInReviewL1),
		allow: assignedEditor,
	},
	{
		event: EventUploadVersion,
		from:  []string{domain.StatusEditing, domain.StatusRevision},
		to:    toStatus(domain.StatusInReviewL1),
		allow: editorOrAdmin,
	},
	{
		event: EventApproveL1,
		from:  []string{domain.StatusInReviewL1},
		to:    afterLevelOne,
		allow: roleIn(domain.RoleStrategist, domain.RoleAdmin),
	},
	{
		event: EventRequestChanges,
		from:  []string{domain.StatusInReviewL1},
		to:    toStatus(domain.StatusRevision),
		allow: roleIn(domain.RoleStrategist, domain.RoleAdmin),
	},
	{
		event: EventApproveL2,
		from:  []string{domain.StatusInReviewL2},
		to:    toStatus(domain.StatusApprovedL2),
		allow: levelTwoApprover,
	},
	{
		event: EventRejectL2,
		from:  []string{domain.StatusInReviewL2},
		to:    toStatus(domain.StatusRevision),
		allow: levelTwoApprover,
	},
	{
		event: EventSchedule,
		from:  []string{domain.StatusApprovedL1, domain.StatusApprovedL2},
		to:    toStatus(domain.StatusScheduled),
		allow: roleIn(domain.RoleStrategist, domain.RoleCEO, domain.RoleAdmin),
	},
	{
		event: EventPublish,
		from:  []string{domain.StatusScheduled},
		to:    toStatus(domain.StatusPublished),
		allow: roleIn(domain.RoleStrategist, domain.RoleAdmin),
	},
}

// Next computes the status the item moves to when event fires.
// It is pure: no I/O, no mutation of the item. Callers persist the result.
func Next(req Request) (string, error) {
	current := domain.NormalizeStatus(req.Item.Status)
	if !domain.ValidStatus(current) {
		return "", ErrUnknownStatus
	}

	eventKnown := false
	for _, t := range transitions {
		if t.event != req.Event {
			continue
		}
		eventKnown = true
		for _, from := range t.from {
			if from != current {
				continue
			}
			if !t.allow(req) {
				return "", ErrActorNotAllowed
			}
			next := t.to(req.Item)
			if !domain.ValidStatus(next) {
				// table bug, not caller error
				return "", ErrUnknownStatus
			}
			return next, nil
		}
	}

	if !eventKnown {
		return "", ErrUnknownEvent
	}
	return "", ErrIllegalTransition
}

// Resolve finds the event that moves the item to target for this actor.
// Callers that speak in target statuses (the status-update endpoint) go
// through here so the transition table stays the single source of truth.
// When a (from, target) pair is served by several events with different
// actor gates, the first event whose gate admits the actor wins.
func Resolve(req Request, target string) (string, string, error) {
	current := domain.NormalizeStatus(req.Item.Status)
	if !domain.ValidStatus(current) {
		return "", "", ErrUnknownStatus
	}
	target = domain.NormalizeStatus(target)
	if !domain.ValidStatus(target) {
		return "", "", ErrUnknownStatus
	}

	matched := false
	for _, t := range transitions {
		fromOK := false
		for _, from := range t.from {
			if from == current {
				fromOK = true
				break
			}
		}
		if !fromOK || t.to(req.Item) != target {
			continue
		}
		matched = true
		if t.allow(req) {
			return t.event, target, nil
		}
	}

	if matched {
		return "", "", ErrActorNotAllowed
	}
	return "", "", ErrIllegalTransition
}

// EventForLevel maps an approval level/decision pair onto its workflow event
func EventForLevel(level, decision string) (string, error) {
	switch {
	case level == domain.ApprovalLevel1 && decision == domain.DecisionApproved:
		return EventApproveL1, nil
	case level == domain.ApprovalLevel1 && decision == domain.DecisionChanges:
		return EventRequestChanges, nil
	case level == domain.ApprovalLevel2 && decision == domain.DecisionApproved:
		return EventApproveL2, nil
	case level == domain.ApprovalLevel2 && decision == domain.DecisionChanges:
		return EventRejectL2, nil
	}
	return "", ErrUnknownEvent
}
