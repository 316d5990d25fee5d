package models

import (
	"time"

	"gorm.io/gorm"
)

// ContractStatus is the lifecycle state of a contract
type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "ACTIVE"
	ContractStatusInactive ContractStatus = "INACTIVE"
	ContractStatusArchived ContractStatus = "ARCHIVED"
)

// Contract is the top-level organizational unit. Departments, users and
// beneficiaries all hang off a contract.
type Contract struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Name          string         `gorm:"not null" json:"name"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	ClientName    string         `json:"client_name"`
	Description   string         `gorm:"type:text" json:"description"`
	StartDate     *time.Time     `json:"start_date"`
	EndDate       *time.Time     `json:"end_date"`
	Status        ContractStatus `gorm:"type:varchar(20);not null" json:"status"`
	ManagerUserID *uint          `json:"manager_user_id"`

	// Relationships
	Departments []Department `gorm:"foreignKey:ContractID" json:"departments,omitempty"`
}
