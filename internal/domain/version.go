package domain

import "time"

// Version statuses
const (
	VersionPending  = "pending"
	VersionApproved = "approved"
	VersionRejected = "rejected"
)

// ContentVersion append-only submitted asset revision.
// VersionNumber is 1-based and strictly increasing per item; numbers are
// never reused even when a version is superseded.
type ContentVersion struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID        uint64    `gorm:"column:item_id;not null;index:idx_item_version,priority:1" json:"item_id"`
	VersionNumber uint      `gorm:"column:version_number;not null;index:idx_item_version,priority:2,unique" json:"version_number"`
	AssetURL      string    `gorm:"column:asset_url;type:varchar(1024)" json:"asset_url"`
	SubmitterID   uint64    `gorm:"column:submitter_id;not null" json:"submitter_id"`
	Status        string    `gorm:"column:status;type:varchar(10);not null;default:'pending'" json:"status"`
	Feedback      *string   `gorm:"column:feedback;type:text" json:"feedback"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentVersion) TableName() string { return "content_versions" }
