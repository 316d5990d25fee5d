package models

import (
	"time"

	"gorm.io/gorm"
)

// LawFirm is an outside counsel that handles filings
type LawFirm struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Name              string         `gorm:"uniqueIndex;not null" json:"name"`
	ContactPerson     string         `json:"contact_person"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Address           string         `json:"address"`
	Website           string         `json:"website"`
	IsPreferred       bool           `json:"is_preferred"`
	PerformanceRating *float64       `json:"performance_rating"` // 0-5
	Notes             string         `gorm:"type:text" json:"notes"`
}

// VisaCategory separates temporary from permanent classifications
type VisaCategory string

const (
	VisaCategoryNonimmigrant VisaCategory = "NONIMMIGRANT"
	VisaCategoryImmigrant    VisaCategory = "IMMIGRANT"
)

// VisaType is a reference row for a visa classification (H-1B, L-1, EB-2, ...)
type VisaType struct {
	ID                    uint         `gorm:"primarykey" json:"id"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
	Code                  string       `gorm:"uniqueIndex;not null" json:"code"`
	Name                  string       `gorm:"not null" json:"name"`
	Category              VisaCategory `gorm:"type:varchar(20);not null" json:"category"`
	Description           string       `gorm:"type:text" json:"description"`
	IsActive              bool         `json:"is_active"`
	DefaultValidityMonths int          `json:"default_validity_months"`
}
