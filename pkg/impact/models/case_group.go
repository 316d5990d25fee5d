package models

import (
	"time"

	"gorm.io/gorm"
)

// Priority is shared by case groups, petitions and todos
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// PathwayType names the immigration pathway a case group pursues
type PathwayType string

const (
	PathwayH1BInitial      PathwayType = "H1B_INITIAL"
	PathwayH1BExtension    PathwayType = "H1B_EXTENSION"
	PathwayH1BTransfer     PathwayType = "H1B_TRANSFER"
	PathwayL1              PathwayType = "L1"
	PathwayO1              PathwayType = "O1"
	PathwayTN              PathwayType = "TN"
	PathwayEB1             PathwayType = "EB1"
	PathwayEB2PERM         PathwayType = "EB2_PERM"
	PathwayEB2NIW          PathwayType = "EB2_NIW"
	PathwayEB3PERM         PathwayType = "EB3_PERM"
	PathwayGreenCardFamily PathwayType = "GREEN_CARD_FAMILY"
	PathwayOther           PathwayType = "OTHER"
)

// CaseStatus is the working state of a case group
type CaseStatus string

const (
	CaseStatusPlanning   CaseStatus = "PLANNING"
	CaseStatusInProgress CaseStatus = "IN_PROGRESS"
	CaseStatusOnHold     CaseStatus = "ON_HOLD"
	CaseStatusCompleted  CaseStatus = "COMPLETED"
	CaseStatusCancelled  CaseStatus = "CANCELLED"
)

// ApprovalStatus tracks the PM approval workflow of a case group
type ApprovalStatus string

const (
	ApprovalDraft    ApprovalStatus = "DRAFT"
	ApprovalPending  ApprovalStatus = "PENDING_PM_APPROVAL"
	ApprovalApproved ApprovalStatus = "PM_APPROVED"
	ApprovalRejected ApprovalStatus = "PM_REJECTED"
)

// CaseGroup groups related petitions into one immigration pathway
type CaseGroup struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
	BeneficiaryID        uint           `gorm:"not null;index" json:"beneficiary_id"`
	PathwayType          PathwayType    `gorm:"type:varchar(30);not null" json:"pathway_type"`
	Status               CaseStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority             Priority       `gorm:"type:varchar(20);not null" json:"priority"`
	ApprovalStatus       ApprovalStatus `gorm:"type:varchar(30);not null;index" json:"approval_status"`
	ResponsiblePartyID   *uint          `json:"responsible_party_id"`
	LawFirmID            *uint          `json:"law_firm_id"`
	AttorneyName         string         `json:"attorney_name"`
	CaseNumber           string         `gorm:"index" json:"case_number"`
	Notes                string         `gorm:"type:text" json:"notes"`
	TargetCompletionDate *time.Time     `json:"target_completion_date"`
	CreatedByID          uint           `gorm:"not null" json:"created_by_id"`
	ApprovedByID         *uint          `json:"approved_by_id"`
	ApprovedAt           *time.Time     `json:"approved_at"`
	RejectionReason      string         `gorm:"type:text" json:"rejection_reason"`

	// Relationships
	Beneficiary *Beneficiary `gorm:"foreignKey:BeneficiaryID" json:"-"`
	LawFirm     *LawFirm     `gorm:"foreignKey:LawFirmID" json:"-"`
	Petitions   []Petition   `gorm:"foreignKey:CaseGroupID" json:"-"`
}
