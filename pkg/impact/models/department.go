package models

import (
	"time"

	"gorm.io/gorm"
)

// Department is a node of the per-contract organizational tree.
type Department struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	ContractID  uint           `gorm:"not null;index" json:"contract_id"`
	ParentID    *uint          `gorm:"index" json:"parent_id"`
	Name        string         `gorm:"not null" json:"name"`
	Code        string         `gorm:"index" json:"code"`
	Description string         `gorm:"type:text" json:"description"`
	ManagerID   *uint          `json:"manager_id"`

	// Relationships
	Contract *Contract    `gorm:"foreignKey:ContractID" json:"-"`
	Parent   *Department  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Department `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
