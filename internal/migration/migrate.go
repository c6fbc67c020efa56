package migration

import (
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies the schema for all domain models
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.ContentModule{},
		&domain.ContentItem{},
		&domain.Approval{},
		&domain.ContentVersion{},
		&domain.Comment{},
		&domain.Delegation{},
		&domain.Checklist{},
		&domain.LedgerTransaction{},
	)
}
