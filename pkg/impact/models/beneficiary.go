package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Beneficiary is a foreign national who is the subject of visa cases.
// UserID is nil for future hires who do not have an account yet.
type Beneficiary struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
	UserID                *uint          `gorm:"uniqueIndex" json:"user_id"`
	ContractID            *uint          `gorm:"index" json:"contract_id"`
	DepartmentID          *uint          `gorm:"index" json:"department_id"`
	FirstName             string         `gorm:"not null" json:"first_name"`
	LastName              string         `gorm:"not null" json:"last_name"`
	Email                 string         `gorm:"index" json:"email"`
	CountryOfCitizenship  string         `json:"country_of_citizenship"`
	CountryOfBirth        string         `json:"country_of_birth"`
	PassportNumber        string         `json:"passport_number"`
	PassportExpiration    *time.Time     `json:"passport_expiration"`
	CurrentVisaType       string         `json:"current_visa_type"`
	CurrentVisaExpiration *time.Time     `json:"current_visa_expiration"`
	I94Expiration         *time.Time     `gorm:"column:i94_expiration" json:"i94_expiration"`
	JobTitle              string         `json:"job_title"`
	EmploymentStartDate   *time.Time     `json:"employment_start_date"`
	IsActive              bool           `json:"is_active"`
	Notes                 string         `gorm:"type:text" json:"notes"`

	// Relationships
	User       *User       `gorm:"foreignKey:UserID" json:"-"`
	Dependents []Dependent `gorm:"foreignKey:BeneficiaryID" json:"dependents,omitempty"`
}

// FullName returns "First Last".
func (b Beneficiary) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// DependentRelationship describes how a dependent relates to the beneficiary
type DependentRelationship string

const (
	RelationshipSpouse DependentRelationship = "SPOUSE"
	RelationshipChild  DependentRelationship = "CHILD"
	RelationshipOther  DependentRelationship = "OTHER"
)

// Dependent is a family member included in a beneficiary's filings
type Dependent struct {
	ID                   uint                  `gorm:"primarykey" json:"id"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
	BeneficiaryID        uint                  `gorm:"not null;index" json:"beneficiary_id"`
	FirstName            string                `gorm:"not null" json:"first_name"`
	LastName             string                `gorm:"not null" json:"last_name"`
	Relationship         DependentRelationship `gorm:"type:varchar(20);not null" json:"relationship"`
	DateOfBirth          *time.Time            `json:"date_of_birth"`
	CountryOfCitizenship string                `json:"country_of_citizenship"`
	VisaType             string                `json:"visa_type"`
	VisaExpiration       *time.Time            `json:"visa_expiration"`
}
