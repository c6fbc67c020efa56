package domain

import "time"

// Delegation effective-dated record routing a vertical's level-2 approval to
// a delegate instead of the CEO. The active delegation for a vertical is the
// latest record with a NULL RevokedAt; older records stay as audit history.
type Delegation struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Vertical   string     `gorm:"column:vertical;type:varchar(20);not null;index" json:"vertical"`
	DelegateID uint64     `gorm:"column:delegate_id;not null" json:"delegate_id"`
	SetByID    uint64     `gorm:"column:set_by_id;not null" json:"set_by_id"`
	RevokedAt  *time.Time `gorm:"column:revoked_at;index" json:"revoked_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Delegation) TableName() string { return "approval_delegations" }

// Active reports whether this delegation is currently in effect
func (d *Delegation) Active() bool {
	return d.RevokedAt == nil
}
