package domain

import "time"

// Comment types
const (
	CommentGeneral       = "general"
	CommentFeedback      = "feedback"
	CommentClarification = "clarification"
	CommentNote          = "note"
)

// NormalizeCommentType maps unknown types to general.
// The source of truth is lenient here on purpose: older clients send free-form
// types and the thread still has to render them.
func NormalizeCommentType(t string) string {
	switch t {
	case CommentGeneral, CommentFeedback, CommentClarification, CommentNote:
		return t
	}
	return CommentGeneral
}

// Comment append-only typed discussion entry on a content item.
// There is no edit or delete path; corrections are posted as new comments.
type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID    uint64    `gorm:"column:item_id;not null;index" json:"item_id"`
	AuthorID  uint64    `gorm:"column:author_id;not null" json:"author_id"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	Type      string    `gorm:"column:type;type:varchar(20);not null;default:'general'" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Comment) TableName() string { return "content_comments" }
