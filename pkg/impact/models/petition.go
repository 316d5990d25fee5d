package models

import (
	"time"

	"gorm.io/gorm"
)

// PetitionType is the form being filed
type PetitionType string

const (
	PetitionI129  PetitionType = "I129"
	PetitionI140  PetitionType = "I140"
	PetitionI485  PetitionType = "I485"
	PetitionI765  PetitionType = "I765"
	PetitionI131  PetitionType = "I131"
	PetitionI539  PetitionType = "I539"
	PetitionPERM  PetitionType = "PERM"
	PetitionLCA   PetitionType = "LCA"
	PetitionI907  PetitionType = "I907"
	PetitionOther PetitionType = "OTHER"
)

// PetitionStatus is the filing state of a petition
type PetitionStatus string

const (
	PetitionStatusDraft         PetitionStatus = "DRAFT"
	PetitionStatusInPreparation PetitionStatus = "IN_PREPARATION"
	PetitionStatusFiled         PetitionStatus = "FILED"
	PetitionStatusPending       PetitionStatus = "PENDING"
	PetitionStatusRFEReceived   PetitionStatus = "RFE_RECEIVED"
	PetitionStatusRFEResponded  PetitionStatus = "RFE_RESPONDED"
	PetitionStatusApproved      PetitionStatus = "APPROVED"
	PetitionStatusDenied        PetitionStatus = "DENIED"
	PetitionStatusWithdrawn     PetitionStatus = "WITHDRAWN"
	PetitionStatusExpired       PetitionStatus = "EXPIRED"
)

// ClosedPetitionStatuses are the final petition states.
var ClosedPetitionStatuses = []PetitionStatus{
	PetitionStatusApproved,
	PetitionStatusDenied,
	PetitionStatusWithdrawn,
	PetitionStatusExpired,
}

// IsClosed reports whether the petition has reached a final state.
func (s PetitionStatus) IsClosed() bool {
	switch s {
	case PetitionStatusApproved, PetitionStatusDenied, PetitionStatusWithdrawn, PetitionStatusExpired:
		return true
	}
	return false
}

// Petition is a single immigration filing for a beneficiary. The table was
// called visa_applications in earlier schema versions.
type Petition struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	BeneficiaryID      uint           `gorm:"not null;index" json:"beneficiary_id"`
	CaseGroupID        *uint          `gorm:"index" json:"case_group_id"`
	VisaTypeID         *uint          `json:"visa_type_id"`
	PetitionType       PetitionType   `gorm:"type:varchar(20);not null;index" json:"petition_type"`
	Status             PetitionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority           Priority       `gorm:"type:varchar(20);not null" json:"priority"`
	FilingDate         *time.Time     `json:"filing_date"`
	ApprovalDate       *time.Time     `json:"approval_date"`
	DenialDate         *time.Time     `json:"denial_date"`
	ExpirationDate     *time.Time     `gorm:"index" json:"expiration_date"`
	PriorityDate       *time.Time     `json:"priority_date"`
	ReceiptNumber      *string        `gorm:"uniqueIndex" json:"receipt_number"` // USCIS receipt, nil until filed
	PremiumProcessing  bool           `json:"premium_processing"`
	LawFirmID          *uint          `json:"law_firm_id"`
	LawFirmName        string         `json:"law_firm_name"`
	AttorneyName       string         `json:"attorney_name"`
	AttorneyEmail      string         `json:"attorney_email"`
	ResponsiblePartyID *uint          `json:"responsible_party_id"`
	Notes              string         `gorm:"type:text" json:"notes"`

	// Relationships
	Beneficiary *Beneficiary `gorm:"foreignKey:BeneficiaryID" json:"-"`
	CaseGroup   *CaseGroup   `gorm:"foreignKey:CaseGroupID" json:"-"`
	VisaType    *VisaType    `gorm:"foreignKey:VisaTypeID" json:"-"`
	Milestones  []Milestone  `gorm:"foreignKey:PetitionID" json:"-"`
	RFEs        []RFE        `gorm:"foreignKey:PetitionID" json:"-"`
}
