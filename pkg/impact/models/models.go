package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: parents are listed before the tables that reference them
func AllModels() []interface{} {
	return []interface{}{
		&Contract{},
		&Department{},
		&User{},
		&UserSettings{},
		&LawFirm{},
		&VisaType{},
		&Beneficiary{},
		&Dependent{},
		&CaseGroup{},
		&Petition{},
		&Milestone{},
		&RFE{},
		&Todo{},
		&Notification{},
		&AuditLog{},
		&EmailLog{},
		&APIKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
