// Package importexport loads and dumps fixture bundles: the organization,
// reference data and case records keyed by natural keys instead of ids, so
// a bundle can be replayed against any database.
package importexport

// ContractRow is keyed by code.
type ContractRow struct {
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	ClientName   string `json:"client_name,omitempty"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	ManagerEmail string `json:"manager_email,omitempty"`
}

// DepartmentRow is keyed by contract code and department code.
type DepartmentRow struct {
	ContractCode string `json:"contract_code" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	ParentCode   string `json:"parent_code,omitempty"`
	Description  string `json:"description,omitempty"`
	ManagerEmail string `json:"manager_email,omitempty"`
}

// UserRow is keyed by email. Password is only required for new users.
type UserRow struct {
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"full_name" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=ADMIN HR PM MANAGER BENEFICIARY"`
	Password       string `json:"password,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ContractCode   string `json:"contract_code,omitempty"`
	DepartmentCode string `json:"department_code,omitempty"`
	ReportsToEmail string `json:"reports_to_email,omitempty"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// LawFirmRow is keyed by name.
type LawFirmRow struct {
	Name              string   `json:"name" validate:"required"`
	ContactPerson     string   `json:"contact_person,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Address           string   `json:"address,omitempty"`
	Website           string   `json:"website,omitempty"`
	IsPreferred       bool     `json:"is_preferred,omitempty"`
	PerformanceRating *float64 `json:"performance_rating,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// VisaTypeRow is keyed by code.
type VisaTypeRow struct {
	Code                  string `json:"code" validate:"required"`
	Name                  string `json:"name" validate:"required"`
	Category              string `json:"category" validate:"required,oneof=NONIMMIGRANT IMMIGRANT"`
	Description           string `json:"description,omitempty"`
	IsActive              *bool  `json:"is_active,omitempty"`
	DefaultValidityMonths int    `json:"default_validity_months,omitempty"`
}

// BeneficiaryRow is keyed by email.
type BeneficiaryRow struct {
	Email                 string `json:"email" validate:"required,email"`
	FirstName             string `json:"first_name" validate:"required"`
	LastName              string `json:"last_name" validate:"required"`
	UserEmail             string `json:"user_email,omitempty"`
	ContractCode          string `json:"contract_code,omitempty"`
	DepartmentCode        string `json:"department_code,omitempty"`
	CountryOfCitizenship  string `json:"country_of_citizenship,omitempty"`
	CountryOfBirth        string `json:"country_of_birth,omitempty"`
	PassportNumber        string `json:"passport_number,omitempty"`
	PassportExpiration    string `json:"passport_expiration,omitempty"`
	CurrentVisaType       string `json:"current_visa_type,omitempty"`
	CurrentVisaExpiration string `json:"current_visa_expiration,omitempty"`
	I94Expiration         string `json:"i94_expiration,omitempty"`
	JobTitle              string `json:"job_title,omitempty"`
	EmploymentStartDate   string `json:"employment_start_date,omitempty"`
	IsActive              *bool  `json:"is_active,omitempty"`
	Notes                 string `json:"notes,omitempty"`
}

// CaseGroupRow is keyed by beneficiary email and pathway type.
type CaseGroupRow struct {
	BeneficiaryEmail     string `json:"beneficiary_email" validate:"required"`
	PathwayType          string `json:"pathway_type" validate:"required"`
	Status               string `json:"status,omitempty" validate:"omitempty,oneof=PLANNING IN_PROGRESS ON_HOLD COMPLETED CANCELLED"`
	Priority             string `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	ApprovalStatus       string `json:"approval_status,omitempty" validate:"omitempty,oneof=DRAFT PENDING_PM_APPROVAL PM_APPROVED PM_REJECTED"`
	ResponsibleEmail     string `json:"responsible_email,omitempty"`
	CreatedByEmail       string `json:"created_by_email,omitempty"`
	LawFirmName          string `json:"law_firm_name,omitempty"`
	AttorneyName         string `json:"attorney_name,omitempty"`
	CaseNumber           string `json:"case_number,omitempty"`
	TargetCompletionDate string `json:"target_completion_date,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

// PetitionRef identifies a petition by receipt number or, before filing,
// by beneficiary email and petition type.
type PetitionRef struct {
	ReceiptNumber    string `json:"receipt_number,omitempty"`
	BeneficiaryEmail string `json:"beneficiary_email,omitempty"`
	PetitionType     string `json:"petition_type,omitempty"`
}

// PetitionRow is keyed by its PetitionRef.
type PetitionRow struct {
	PetitionRef
	CaseGroupPathway  string `json:"case_group_pathway,omitempty"`
	VisaTypeCode      string `json:"visa_type_code,omitempty"`
	Status            string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT IN_PREPARATION FILED PENDING RFE_RECEIVED RFE_RESPONDED APPROVED DENIED WITHDRAWN EXPIRED"`
	Priority          string `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	FilingDate        string `json:"filing_date,omitempty"`
	ApprovalDate      string `json:"approval_date,omitempty"`
	DenialDate        string `json:"denial_date,omitempty"`
	ExpirationDate    string `json:"expiration_date,omitempty"`
	PriorityDate      string `json:"priority_date,omitempty"`
	PremiumProcessing bool   `json:"premium_processing,omitempty"`
	LawFirmName       string `json:"law_firm_name,omitempty"`
	AttorneyName      string `json:"attorney_name,omitempty"`
	AttorneyEmail     string `json:"attorney_email,omitempty"`
	ResponsibleEmail  string `json:"responsible_email,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// CaseGroupRef identifies a case group by beneficiary email and pathway.
type CaseGroupRef struct {
	BeneficiaryEmail string `json:"beneficiary_email"`
	PathwayType      string `json:"pathway_type"`
}

// MilestoneRow is keyed by its owner and milestone type. The owner is the
// petition when one is given, otherwise the case group.
type MilestoneRow struct {
	Petition      *PetitionRef  `json:"petition,omitempty"`
	CaseGroup     *CaseGroupRef `json:"case_group,omitempty"`
	MilestoneType string        `json:"milestone_type" validate:"required"`
	Title         string        `json:"title,omitempty"`
	Description   string        `json:"description,omitempty"`
	Status        string        `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	DueDate       string        `json:"due_date,omitempty"`
	CompletedDate string        `json:"completed_date,omitempty"`
}

// TodoRow is keyed by title and creator email.
type TodoRow struct {
	Title            string       `json:"title" validate:"required"`
	CreatedByEmail   string       `json:"created_by_email" validate:"required"`
	Description      string       `json:"description,omitempty"`
	Status           string       `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS BLOCKED COMPLETED CANCELLED"`
	Priority         string       `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate          string       `json:"due_date,omitempty"`
	AssignedToEmail  string       `json:"assigned_to_email,omitempty"`
	BeneficiaryEmail string       `json:"beneficiary_email,omitempty"`
	Petition         *PetitionRef `json:"petition,omitempty"`
}

// Bundle is the import and export document
type Bundle struct {
	Contracts     []ContractRow    `json:"contracts,omitempty"`
	Departments   []DepartmentRow  `json:"departments,omitempty"`
	Users         []UserRow        `json:"users,omitempty"`
	LawFirms      []LawFirmRow     `json:"law_firms,omitempty"`
	VisaTypes     []VisaTypeRow    `json:"visa_types,omitempty"`
	Beneficiaries []BeneficiaryRow `json:"beneficiaries,omitempty"`
	CaseGroups    []CaseGroupRow   `json:"case_groups,omitempty"`
	Petitions     []PetitionRow    `json:"petitions,omitempty"`
	Milestones    []MilestoneRow   `json:"milestones,omitempty"`
	Todos         []TodoRow        `json:"todos,omitempty"`
}

// RowError reports one row that could not be imported
type RowError struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Error   string `json:"error"`
}

// Result summarizes an import
type Result struct {
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
	Errors  []RowError     `json:"errors"`
}
