package models

import "time"

// MilestoneType identifies a timestamped event in a case. Pipelines (see
// package pipeline) are ordered lists of these.
type MilestoneType string

const (
	MilestoneDocumentsRequested    MilestoneType = "DOCUMENTS_REQUESTED"
	MilestoneDocumentsSubmitted    MilestoneType = "DOCUMENTS_SUBMITTED"
	MilestonePWDFiled              MilestoneType = "PWD_FILED"
	MilestonePWDIssued             MilestoneType = "PWD_ISSUED"
	MilestoneRecruitmentStarted    MilestoneType = "RECRUITMENT_STARTED"
	MilestoneRecruitmentCompleted  MilestoneType = "RECRUITMENT_COMPLETED"
	MilestonePERMFiled             MilestoneType = "PERM_FILED"
	MilestonePERMApproved          MilestoneType = "PERM_APPROVED"
	MilestoneLCAFiled              MilestoneType = "LCA_FILED"
	MilestoneLCACertified          MilestoneType = "LCA_CERTIFIED"
	MilestonePetitionFiled         MilestoneType = "PETITION_FILED"
	MilestonePetitionApproved      MilestoneType = "PETITION_APPROVED"
	MilestoneI140Filed             MilestoneType = "I140_FILED"
	MilestoneI140Approved          MilestoneType = "I140_APPROVED"
	MilestoneI485Filed             MilestoneType = "I485_FILED"
	MilestoneBiometricsCompleted   MilestoneType = "BIOMETRICS_COMPLETED"
	MilestoneInterviewScheduled    MilestoneType = "INTERVIEW_SCHEDULED"
	MilestoneInterviewCompleted    MilestoneType = "INTERVIEW_COMPLETED"
	MilestoneI485Approved          MilestoneType = "I485_APPROVED"
	MilestoneEADReceived           MilestoneType = "EAD_RECEIVED"
	MilestoneAdvanceParoleReceived MilestoneType = "ADVANCE_PAROLE_RECEIVED"
	MilestoneRFEReceived           MilestoneType = "RFE_RECEIVED"
	MilestoneRFEResponded          MilestoneType = "RFE_RESPONDED"
	MilestoneDenied                MilestoneType = "DENIED"
	MilestoneGreenCardReceived     MilestoneType = "GREEN_CARD_RECEIVED"
	MilestoneOther                 MilestoneType = "OTHER"
)

// MilestoneStatus is the state of a milestone
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "PENDING"
	MilestoneStatusInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneStatusCompleted  MilestoneStatus = "COMPLETED"
	MilestoneStatusCancelled  MilestoneStatus = "CANCELLED"
)

// Milestone is a timestamped event on a petition or case group
type Milestone struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	PetitionID    *uint           `gorm:"index" json:"petition_id"`
	CaseGroupID   *uint           `gorm:"index" json:"case_group_id"`
	MilestoneType MilestoneType   `gorm:"type:varchar(40);not null" json:"milestone_type"`
	Title         string          `json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	DueDate       *time.Time      `json:"due_date"`
	CompletedDate *time.Time      `json:"completed_date"`
	Status        MilestoneStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedByID   *uint           `json:"created_by_id"`
}

// IsCompleted reports whether the milestone has a completed date.
func (m Milestone) IsCompleted() bool {
	return m.CompletedDate != nil
}
