package domain

import "time"

// Content item statuses (canonical set).
// The historical spellings "review" and "changes_requested" are accepted on
// input and normalized via NormalizeStatus.
const (
	StatusDraft      = "draft"
	StatusEditing    = "editing"
	StatusRevision   = "revision"
	StatusInReviewL1 = "in_review_l1"
	StatusInReviewL2 = "in_review_l2"
	StatusApprovedL1 = "approved_l1"
	StatusApprovedL2 = "approved_l2"
	StatusScheduled  = "scheduled"
	StatusPublished  = "published"
)

// Content verticals
const (
	VerticalSocial       = "social"
	VerticalEvents       = "events"
	VerticalAcademy      = "academy"
	VerticalFounder      = "founder"
	VerticalSponsor      = "sponsor"
	VerticalTitleSponsor = "title_sponsor"
)

// NormalizeStatus maps legacy spellings onto the canonical status set.
// Unknown values are returned unchanged so validation can reject them.
func NormalizeStatus(status string) string {
	switch status {
	case "review":
		return StatusInReviewL1
	case "changes_requested":
		return StatusRevision
	}
	return status
}

// ValidStatus reports whether status is a member of the canonical set
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusEditing, StatusRevision,
		StatusInReviewL1, StatusInReviewL2,
		StatusApprovedL1, StatusApprovedL2,
		StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// ValidVertical reports whether vertical is a known vertical
func ValidVertical(vertical string) bool {
	switch vertical {
	case VerticalSocial, VerticalEvents, VerticalAcademy,
		VerticalFounder, VerticalSponsor, VerticalTitleSponsor:
		return true
	}
	return false
}

// RequiresLevel2 reports whether the vertical needs a second approval gate.
// Founder and sponsor work carries reputational/contractual weight and always
// goes through the CEO (or delegate); the rest stop at level 1.
func RequiresLevel2(vertical string) bool {
	switch vertical {
	case VerticalFounder, VerticalSponsor, VerticalTitleSponsor:
		return true
	}
	return false
}

// Brief structured creative brief embedded in a content item
type Brief struct {
	Objective string `gorm:"column:brief_objective;type:text" json:"objective"`
	Duration  string `gorm:"column:brief_duration;type:varchar(100)" json:"duration"`
	Tone      string `gorm:"column:brief_tone;type:varchar(255)" json:"tone"`
	MustHaves string `gorm:"column:brief_must_haves;type:text" json:"must_haves"`
	CTA       string `gorm:"column:brief_cta;type:varchar(255)" json:"cta"`
}

// ContentItem a unit of creative work moving through the approval lifecycle
type ContentItem struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UUID             string    `gorm:"column:uuid;type:char(36);uniqueIndex" json:"uuid"`
	Title            string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Vertical         string    `gorm:"column:vertical;type:varchar(20);index" json:"vertical"`
	Status           string    `gorm:"column:status;type:varchar(20);index" json:"status"`
	Priority         string    `gorm:"column:priority;type:varchar(10)" json:"priority"`
	Platforms        []string  `gorm:"column:platforms;serializer:json" json:"platforms"`
	Script           string    `gorm:"column:script;type:mediumtext" json:"script"`
	Brief            Brief     `gorm:"embedded" json:"brief"`
	ReferenceLinks   []string  `gorm:"column:reference_links;serializer:json" json:"reference_links"`
	AssignedEditorID *uint64   `gorm:"column:assigned_editor_id;index" json:"assigned_editor_id"`
	ModuleID         *uint64   `gorm:"column:module_id;index" json:"module_id"`
	Archived         bool      `gorm:"column:archived;default:false;index" json:"archived"`
	LockVersion      uint      `gorm:"column:lock_version;default:0" json:"lock_version"`
	CreatedByID      uint64    `gorm:"column:created_by_id" json:"created_by_id"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentItem) TableName() string { return "content_items" }
