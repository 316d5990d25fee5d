package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role is a user's application-wide role. It decides which rows a request
// may see (see package access).
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleHR          Role = "HR"
	RolePM          Role = "PM"
	RoleManager     Role = "MANAGER"
	RoleBeneficiary Role = "BENEFICIARY"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RolePM, RoleManager, RoleBeneficiary:
		return true
	}
	return false
}

// User represents a person who can log in
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FullName     string         `gorm:"not null" json:"full_name"`
	Phone        string         `json:"phone"`
	Role         Role           `gorm:"type:varchar(20);not null;index" json:"role"`
	ContractID   *uint          `gorm:"index" json:"contract_id"`
	DepartmentID *uint          `gorm:"index" json:"department_id"`
	ReportsToID  *uint          `gorm:"index" json:"reports_to_id"` // Direct manager
	IsActive     bool           `json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at"`

	// Relationships
	Contract    *Contract    `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	Department  *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	ReportsTo   *User        `gorm:"foreignKey:ReportsToID" json:"-"`
	Beneficiary *Beneficiary `gorm:"foreignKey:UserID" json:"beneficiary,omitempty"`
}

// UserSettings holds per-user preferences. Rows are created lazily.
type UserSettings struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	UserID                uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailNotifications    bool      `json:"email_notifications"`
	NotifyDeadlines       bool      `json:"notify_deadlines"`
	NotifyStatusChanges   bool      `json:"notify_status_changes"`
	NotifyTodoAssignments bool      `json:"notify_todo_assignments"`
	Timezone              string    `gorm:"type:varchar(64)" json:"timezone"`
	Theme                 string    `gorm:"type:varchar(20)" json:"theme"`
	ItemsPerPage          int       `json:"items_per_page"`
}

// DefaultUserSettings returns the settings a user has before saving any.
func DefaultUserSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:                userID,
		EmailNotifications:    true,
		NotifyDeadlines:       true,
		NotifyStatusChanges:   true,
		NotifyTodoAssignments: true,
		Timezone:              "America/New_York",
		Theme:                 "light",
		ItemsPerPage:          20,
	}
}

// LoadUserSettings returns the stored settings for userID, creating the row
// with defaults on first access.
func LoadUserSettings(db *gorm.DB, userID uint) (UserSettings, error) {
	var s UserSettings
	err := db.Where("user_id = ?", userID).First(&s).Error
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return s, err
	}
	s = DefaultUserSettings(userID)
	if err := db.Create(&s).Error; err != nil {
		return s, err
	}
	return s, nil
}
