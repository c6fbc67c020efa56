package domain

import "time"

// Approval levels
const (
	ApprovalLevel1 = "level_1"
	ApprovalLevel2 = "level_2"
)

// Approval decisions
const (
	DecisionApproved = "approved"
	DecisionChanges  = "changes"
)

// Approval append-only sign-off record for a content item.
// The item's displayed approval state is the latest record per level;
// earlier records are history and never deleted.
type Approval struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID    uint64    `gorm:"column:item_id;not null;index" json:"item_id"`
	Level     string    `gorm:"column:level;type:varchar(10);not null" json:"level"`
	Decision  string    `gorm:"column:decision;type:varchar(10);not null" json:"decision"`
	ActorID   uint64    `gorm:"column:actor_id;not null;index" json:"actor_id"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Approval) TableName() string { return "content_approvals" }
