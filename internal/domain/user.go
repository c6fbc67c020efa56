package domain

import "time"

// User roles
const (
	RoleStrategist = "strategist"
	RoleEditor     = "editor"
	RoleCEO        = "ceo"
	RoleAdmin      = "admin"
	RoleFinance    = "finance"
)

// ValidRole reports whether role is a known role
func ValidRole(role string) bool {
	switch role {
	case RoleStrategist, RoleEditor, RoleCEO, RoleAdmin, RoleFinance:
		return true
	}
	return false
}

// User platform account
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UUID         string    `gorm:"column:uuid;type:char(36);uniqueIndex" json:"uuid"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Name         string    `gorm:"column:name;type:varchar(100)" json:"name"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);index" json:"role"`
	Active       bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
