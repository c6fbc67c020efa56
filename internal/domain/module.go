package domain

import "time"

// Module categories
const (
	CategoryEvent    = "event"
	CategoryAcademy  = "academy"
	CategoryBranding = "branding"
	CategorySales    = "sales"
	CategoryOther    = "other"
)

// Priorities (shared by modules and content items)
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidCategory reports whether category is a known module category
func ValidCategory(category string) bool {
	switch category {
	case CategoryEvent, CategoryAcademy, CategoryBranding, CategorySales, CategoryOther:
		return true
	}
	return false
}

// ValidPriority reports whether priority is a known priority
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ContentModule campaign container grouping related content items
type ContentModule struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;type:varchar(255)" json:"name"`
	Category  string     `gorm:"column:category;type:varchar(20);index" json:"category"`
	Priority  string     `gorm:"column:priority;type:varchar(10)" json:"priority"`
	Goal      string     `gorm:"column:goal;type:text" json:"goal"`
	Audience  string     `gorm:"column:audience;type:text" json:"audience"`
	StartDate *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date"`
	Archived  bool       `gorm:"column:archived;default:false;index" json:"archived"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentModule) TableName() string { return "content_modules" }
