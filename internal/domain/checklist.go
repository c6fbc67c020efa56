package domain

import "time"

// Checklist per-item quality gate, persisted server-side so reopening a
// panel cannot reset it. All six checks must pass before an editor can
// submit the item for review.
type Checklist struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID      uint64    `gorm:"column:item_id;not null;uniqueIndex" json:"item_id"`
	LogoUsage   bool      `gorm:"column:logo_usage;default:false" json:"logo_usage"`
	BrandColors bool      `gorm:"column:brand_colors;default:false" json:"brand_colors"`
	Captions    bool      `gorm:"column:captions;default:false" json:"captions"`
	SoundLevels bool      `gorm:"column:sound_levels;default:false" json:"sound_levels"`
	Resolution  bool      `gorm:"column:resolution;default:false" json:"resolution"`
	CTAPresent  bool      `gorm:"column:cta_present;default:false" json:"cta_present"`
	UpdatedByID uint64    `gorm:"column:updated_by_id" json:"updated_by_id"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Checklist) TableName() string { return "content_checklists" }

// Complete reports whether every check has passed
func (c *Checklist) Complete() bool {
	return c.LogoUsage && c.BrandColors && c.Captions &&
		c.SoundLevels && c.Resolution && c.CTAPresent
}
