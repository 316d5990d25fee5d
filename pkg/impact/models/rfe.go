package models

import "time"

// RFEType is the USCIS category of a Request for Evidence
type RFEType string

const (
	RFETypeInitialEvidence      RFEType = "INITIAL_EVIDENCE"
	RFETypeSpecialtyOccupation  RFEType = "SPECIALTY_OCCUPATION"
	RFETypeEmployerEmployee     RFEType = "EMPLOYER_EMPLOYEE"
	RFETypeMaintenanceOfStatus  RFEType = "MAINTENANCE_OF_STATUS"
	RFETypeAbilityToPay         RFEType = "ABILITY_TO_PAY"
	RFETypeExtraordinaryAbility RFEType = "EXTRAORDINARY_ABILITY"
	RFETypeOther                RFEType = "OTHER"
)

// RFEStatus is the state of an RFE response
type RFEStatus string

const (
	RFEStatusReceived   RFEStatus = "RECEIVED"
	RFEStatusInProgress RFEStatus = "IN_PROGRESS"
	RFEStatusResponded  RFEStatus = "RESPONDED"
	RFEStatusResolved   RFEStatus = "RESOLVED"
)

// IsOpen reports whether a response is still owed.
func (s RFEStatus) IsOpen() bool {
	return s == RFEStatusReceived || s == RFEStatusInProgress
}

// RFE is a Request for Evidence issued against a petition
type RFE struct {
	ID                    uint       `gorm:"primarykey" json:"id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	PetitionID            uint       `gorm:"not null;index" json:"petition_id"`
	RFEType               RFEType    `gorm:"column:rfe_type;type:varchar(40);not null" json:"rfe_type"`
	Status                RFEStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	ReceivedDate          time.Time  `gorm:"not null" json:"received_date"`
	ResponseDueDate       *time.Time `gorm:"index" json:"response_due_date"`
	ResponseSubmittedDate *time.Time `json:"response_submitted_date"`
	Description           string     `gorm:"type:text" json:"description"`
	Notes                 string     `gorm:"type:text" json:"notes"`
}

// TableName overrides the inflected default ("rves").
func (RFE) TableName() string {
	return "rfes"
}
