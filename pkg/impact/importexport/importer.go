package importexport

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Section names as they appear in a Result.
const (
	SectionContracts     = "contracts"
	SectionDepartments   = "departments"
	SectionUsers         = "users"
	SectionLawFirms      = "law_firms"
	SectionVisaTypes     = "visa_types"
	SectionBeneficiaries = "beneficiaries"
	SectionCaseGroups    = "case_groups"
	SectionPetitions     = "petitions"
	SectionMilestones    = "milestones"
	SectionTodos         = "todos"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

type importer struct {
	db      *gorm.DB
	actorID uint
	now     time.Time
	res     *Result
	failed  map[string]bool
}

// Import applies b to db and reports what it did. Sections are applied in
// dependency order and every row runs in its own transaction, so a bad row
// is reported in Result.Errors without undoing the rest. Rows are matched
// on natural keys; a matched row is overwritten, and restored if it was
// soft-deleted. References between users (managers, reporting lines) are
// resolved in a second pass so their order in the bundle does not matter.
//
// actorID is recorded as creator where a row does not name one.
func Import(db *gorm.DB, b *Bundle, actorID uint) *Result {
	im := &importer{
		db:      db,
		actorID: actorID,
		now:     time.Now().UTC(),
		res:     &Result{Created: map[string]int{}, Updated: map[string]int{}, Errors: []RowError{}},
		failed:  map[string]bool{},
	}

	for i, r := range b.Contracts {
		im.row(SectionContracts, i, r.Code, r, func(tx *gorm.DB) (bool, error) { return importContract(tx, r) })
	}
	for i, r := range b.Departments {
		im.row(SectionDepartments, i, r.ContractCode+"/"+r.Code, r, func(tx *gorm.DB) (bool, error) { return importDepartment(tx, r) })
	}
	for i, r := range b.Users {
		im.row(SectionUsers, i, normEmail(r.Email), r, func(tx *gorm.DB) (bool, error) { return importUser(tx, r) })
	}

	for i, r := range b.Contracts {
		if r.ManagerEmail != "" {
			im.link(SectionContracts, i, r.Code, func(tx *gorm.DB) error {
				res := &resolver{tx: tx}
				id := res.user(r.ManagerEmail)
				if res.err != nil {
					return res.err
				}
				return tx.Model(&models.Contract{}).Where("code = ?", r.Code).Update("manager_user_id", *id).Error
			})
		}
	}
	for i, r := range b.Departments {
		if r.ManagerEmail != "" {
			im.link(SectionDepartments, i, r.ContractCode+"/"+r.Code, func(tx *gorm.DB) error {
				res := &resolver{tx: tx}
				id := res.user(r.ManagerEmail)
				cid := res.contract(r.ContractCode)
				if res.err != nil {
					return res.err
				}
				return tx.Model(&models.Department{}).Where("contract_id = ? AND code = ?", *cid, r.Code).
					Update("manager_id", *id).Error
			})
		}
	}
	for i, r := range b.Users {
		if r.ReportsToEmail != "" {
			im.link(SectionUsers, i, normEmail(r.Email), func(tx *gorm.DB) error { return linkReportsTo(tx, r) })
		}
	}

	for i, r := range b.LawFirms {
		im.row(SectionLawFirms, i, r.Name, r, func(tx *gorm.DB) (bool, error) { return importLawFirm(tx, r) })
	}
	for i, r := range b.VisaTypes {
		im.row(SectionVisaTypes, i, r.Code, r, func(tx *gorm.DB) (bool, error) { return importVisaType(tx, r) })
	}
	for i, r := range b.Beneficiaries {
		im.row(SectionBeneficiaries, i, normEmail(r.Email), r, func(tx *gorm.DB) (bool, error) { return importBeneficiary(tx, r) })
	}
	for i, r := range b.CaseGroups {
		key := CaseGroupRef{BeneficiaryEmail: r.BeneficiaryEmail, PathwayType: r.PathwayType}.String()
		im.row(SectionCaseGroups, i, key, r, func(tx *gorm.DB) (bool, error) { return im.importCaseGroup(tx, r) })
	}
	for i, r := range b.Petitions {
		im.row(SectionPetitions, i, r.PetitionRef.String(), r, func(tx *gorm.DB) (bool, error) { return importPetition(tx, r) })
	}
	for i, r := range b.Milestones {
		im.row(SectionMilestones, i, milestoneKey(r), r, func(tx *gorm.DB) (bool, error) { return im.importMilestone(tx, r) })
	}
	for i, r := range b.Todos {
		im.row(SectionTodos, i, r.CreatedByEmail+"/"+r.Title, r, func(tx *gorm.DB) (bool, error) { return im.importTodo(tx, r) })
	}
	return im.res
}

func (im *importer) fail(section string, index int, key string, err error) {
	im.failed[fmt.Sprintf("%s/%d", section, index)] = true
	im.res.Errors = append(im.res.Errors, RowError{Section: section, Index: index, Key: key, Error: err.Error()})
}

func (im *importer) row(section string, index int, key string, row interface{}, apply func(tx *gorm.DB) (bool, error)) {
	if err := validate.Struct(row); err != nil {
		im.fail(section, index, key, validationError(err))
		return
	}
	var created bool
	err := im.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = apply(tx)
		return err
	})
	if err != nil {
		im.fail(section, index, key, err)
		return
	}
	if created {
		im.res.Created[section]++
	} else {
		im.res.Updated[section]++
	}
}

// link runs a second-pass update for a row that imported cleanly.
func (im *importer) link(section string, index int, key string, apply func(tx *gorm.DB) error) {
	if im.failed[fmt.Sprintf("%s/%d", section, index)] {
		return
	}
	if err := im.db.Transaction(apply); err != nil {
		im.fail(section, index, key, err)
	}
}

func importContract(tx *gorm.DB, r ContractRow) (bool, error) {
	res := &resolver{tx: tx}
	c := models.Contract{
		Code:        r.Code,
		Name:        r.Name,
		ClientName:  r.ClientName,
		Description: r.Description,
		Status:      models.ContractStatus(orDefault(r.Status, string(models.ContractStatusActive))),
		StartDate:   res.date("start_date", r.StartDate),
		EndDate:     res.date("end_date", r.EndDate),
	}
	if res.err != nil {
		return false, res.err
	}
	return upsert(tx, &c, &c.ID, []string{"manager_user_id"}, "code = ?", c.Code)
}

func importDepartment(tx *gorm.DB, r DepartmentRow) (bool, error) {
	if r.ParentCode == r.Code {
		return false, errors.New("a department cannot be its own parent")
	}
	res := &resolver{tx: tx}
	cid := res.contract(r.ContractCode)
	parent := res.department(r.ContractCode, r.ParentCode)
	if res.err != nil {
		return false, res.err
	}
	d := models.Department{
		ContractID:  *cid,
		ParentID:    parent,
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
	}
	return upsert(tx, &d, &d.ID, []string{"manager_id"}, "contract_id = ? AND code = ?", *cid, r.Code)
}

func importUser(tx *gorm.DB, r UserRow) (bool, error) {
	res := &resolver{tx: tx}
	email := normEmail(r.Email)
	u := models.User{
		Email:        email,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Role:         models.Role(r.Role),
		ContractID:   res.contract(r.ContractCode),
		DepartmentID: res.department(r.ContractCode, r.DepartmentCode),
		IsActive:     boolOr(r.IsActive, true),
	}
	if res.err != nil {
		return false, res.err
	}

	omit := []string{"reports_to_id", "last_login_at"}
	if r.Password != "" {
		hash, err := auth.HashPassword(r.Password)
		if err != nil {
			return false, err
		}
		u.PasswordHash = hash
	} else {
		found, err := exists(tx, &models.User{}, "email = ?", email)
		if err != nil {
			return false, err
		}
		if !found {
			return false, errors.New("password is required for new users")
		}
		omit = append(omit, "password_hash")
	}
	return upsert(tx, &u, &u.ID, omit, "email = ?", email)
}

func linkReportsTo(tx *gorm.DB, r UserRow) error {
	res := &resolver{tx: tx}
	userID := res.user(r.Email)
	managerID := res.user(r.ReportsToEmail)
	if res.err != nil {
		return res.err
	}
	if *userID == *managerID {
		return errors.New("a user cannot report to themselves")
	}
	return tx.Model(&models.User{}).Where("id = ?", *userID).Update("reports_to_id", *managerID).Error
}

func importLawFirm(tx *gorm.DB, r LawFirmRow) (bool, error) {
	f := models.LawFirm{
		Name:              r.Name,
		ContactPerson:     r.ContactPerson,
		Email:             r.Email,
		Phone:             r.Phone,
		Address:           r.Address,
		Website:           r.Website,
		IsPreferred:       r.IsPreferred,
		PerformanceRating: r.PerformanceRating,
		Notes:             r.Notes,
	}
	return upsert(tx, &f, &f.ID, nil, "name = ?", f.Name)
}

func importVisaType(tx *gorm.DB, r VisaTypeRow) (bool, error) {
	v := models.VisaType{
		Code:                  r.Code,
		Name:                  r.Name,
		Category:              models.VisaCategory(r.Category),
		Description:           r.Description,
		IsActive:              boolOr(r.IsActive, true),
		DefaultValidityMonths: r.DefaultValidityMonths,
	}
	return upsert(tx, &v, &v.ID, nil, "code = ?", v.Code)
}

func importBeneficiary(tx *gorm.DB, r BeneficiaryRow) (bool, error) {
	res := &resolver{tx: tx}
	email := normEmail(r.Email)
	b := models.Beneficiary{
		UserID:                res.user(r.UserEmail),
		ContractID:            res.contract(r.ContractCode),
		DepartmentID:          res.department(r.ContractCode, r.DepartmentCode),
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 email,
		CountryOfCitizenship:  r.CountryOfCitizenship,
		CountryOfBirth:        r.CountryOfBirth,
		PassportNumber:        r.PassportNumber,
		PassportExpiration:    res.date("passport_expiration", r.PassportExpiration),
		CurrentVisaType:       r.CurrentVisaType,
		CurrentVisaExpiration: res.date("current_visa_expiration", r.CurrentVisaExpiration),
		I94Expiration:         res.date("i94_expiration", r.I94Expiration),
		JobTitle:              r.JobTitle,
		EmploymentStartDate:   res.date("employment_start_date", r.EmploymentStartDate),
		IsActive:              boolOr(r.IsActive, true),
		Notes:                 r.Notes,
	}
	if res.err != nil {
		return false, res.err
	}
	return upsert(tx, &b, &b.ID, nil, "email = ?", email)
}

func (im *importer) importCaseGroup(tx *gorm.DB, r CaseGroupRow) (bool, error) {
	res := &resolver{tx: tx}
	benID := res.requiredBeneficiary(r.BeneficiaryEmail, "case group")
	cg := models.CaseGroup{
		PathwayType:          models.PathwayType(r.PathwayType),
		Status:               models.CaseStatus(orDefault(r.Status, string(models.CaseStatusPlanning))),
		Priority:             models.Priority(orDefault(r.Priority, string(models.PriorityMedium))),
		ApprovalStatus:       models.ApprovalStatus(orDefault(r.ApprovalStatus, string(models.ApprovalDraft))),
		ResponsiblePartyID:   res.user(r.ResponsibleEmail),
		LawFirmID:            res.lawFirm(r.LawFirmName),
		AttorneyName:         r.AttorneyName,
		CaseNumber:           r.CaseNumber,
		Notes:                r.Notes,
		TargetCompletionDate: res.date("target_completion_date", r.TargetCompletionDate),
		CreatedByID:          im.actorID,
	}
	if createdBy := res.user(r.CreatedByEmail); createdBy != nil {
		cg.CreatedByID = *createdBy
	}
	if res.err != nil {
		return false, res.err
	}
	cg.BeneficiaryID = *benID
	omit := []string{"approved_by_id", "approved_at", "rejection_reason"}
	return upsert(tx, &cg, &cg.ID, omit, "beneficiary_id = ? AND pathway_type = ?", *benID, r.PathwayType)
}

func importPetition(tx *gorm.DB, r PetitionRow) (bool, error) {
	if r.PetitionType == "" {
		return false, errors.New("petition_type is required")
	}
	res := &resolver{tx: tx}
	benID := res.requiredBeneficiary(r.BeneficiaryEmail, "petition")
	p := models.Petition{
		CaseGroupID:        res.caseGroup(CaseGroupRef{BeneficiaryEmail: r.BeneficiaryEmail, PathwayType: r.CaseGroupPathway}),
		VisaTypeID:         res.visaType(r.VisaTypeCode),
		PetitionType:       models.PetitionType(r.PetitionType),
		Status:             models.PetitionStatus(orDefault(r.Status, string(models.PetitionStatusDraft))),
		Priority:           models.Priority(orDefault(r.Priority, string(models.PriorityMedium))),
		FilingDate:         res.date("filing_date", r.FilingDate),
		ApprovalDate:       res.date("approval_date", r.ApprovalDate),
		DenialDate:         res.date("denial_date", r.DenialDate),
		ExpirationDate:     res.date("expiration_date", r.ExpirationDate),
		PriorityDate:       res.date("priority_date", r.PriorityDate),
		PremiumProcessing:  r.PremiumProcessing,
		LawFirmID:          res.lawFirm(r.LawFirmName),
		LawFirmName:        r.LawFirmName,
		AttorneyName:       r.AttorneyName,
		AttorneyEmail:      r.AttorneyEmail,
		ResponsiblePartyID: res.user(r.ResponsibleEmail),
		Notes:              r.Notes,
	}
	where, args := res.petitionKey(r.PetitionRef)
	if res.err != nil {
		return false, res.err
	}
	p.BeneficiaryID = *benID
	if r.ReceiptNumber != "" {
		receipt := strings.ToUpper(r.ReceiptNumber)
		p.ReceiptNumber = &receipt
	}
	return upsert(tx, &p, &p.ID, nil, where, args...)
}

func milestoneKey(r MilestoneRow) string {
	switch {
	case r.Petition != nil:
		return r.Petition.String() + "/" + r.MilestoneType
	case r.CaseGroup != nil:
		return r.CaseGroup.String() + "/" + r.MilestoneType
	}
	return r.MilestoneType
}

func (im *importer) importMilestone(tx *gorm.DB, r MilestoneRow) (bool, error) {
	res := &resolver{tx: tx}
	m := models.Milestone{
		MilestoneType: models.MilestoneType(r.MilestoneType),
		Title:         r.Title,
		Description:   r.Description,
		Status:        models.MilestoneStatus(orDefault(r.Status, string(models.MilestoneStatusPending))),
		DueDate:       res.date("due_date", r.DueDate),
		CompletedDate: res.date("completed_date", r.CompletedDate),
	}
	if im.actorID != 0 {
		m.CreatedByID = &im.actorID
	}

	var where string
	var args []interface{}
	switch {
	case r.Petition != nil:
		m.PetitionID = res.petition(*r.Petition)
		if res.err != nil {
			return false, res.err
		}
		var p models.Petition
		if err := tx.Select("id", "case_group_id").First(&p, *m.PetitionID).Error; err != nil {
			return false, err
		}
		m.CaseGroupID = p.CaseGroupID
		where, args = "petition_id = ? AND milestone_type = ?", []interface{}{*m.PetitionID, r.MilestoneType}
	case r.CaseGroup != nil:
		m.CaseGroupID = res.caseGroup(*r.CaseGroup)
		if res.err == nil && m.CaseGroupID == nil {
			res.fail(errors.New("case group reference needs a pathway type"))
		}
		if res.err != nil {
			return false, res.err
		}
		where, args = "case_group_id = ? AND petition_id IS NULL AND milestone_type = ?", []interface{}{*m.CaseGroupID, r.MilestoneType}
	default:
		return false, errors.New("milestone needs a petition or a case group")
	}
	switch {
	case m.CompletedDate != nil:
		m.Status = models.MilestoneStatusCompleted
	case m.Status == models.MilestoneStatusCompleted:
		today := time.Date(im.now.Year(), im.now.Month(), im.now.Day(), 0, 0, 0, 0, time.UTC)
		m.CompletedDate = &today
	}
	return upsert(tx, &m, &m.ID, []string{"created_by_id"}, where, args...)
}

func (im *importer) importTodo(tx *gorm.DB, r TodoRow) (bool, error) {
	res := &resolver{tx: tx}
	createdBy := res.user(r.CreatedByEmail)
	t := models.Todo{
		Title:         r.Title,
		Description:   r.Description,
		Status:        models.TodoStatus(orDefault(r.Status, string(models.TodoStatusTodo))),
		Priority:      models.Priority(orDefault(r.Priority, string(models.PriorityMedium))),
		DueDate:       res.date("due_date", r.DueDate),
		AssignedToID:  res.user(r.AssignedToEmail),
		BeneficiaryID: res.beneficiary(r.BeneficiaryEmail),
	}
	if r.Petition != nil {
		t.PetitionID = res.petition(*r.Petition)
	}
	if res.err != nil {
		return false, res.err
	}
	t.CreatedByID = *createdBy
	if t.Status == models.TodoStatusCompleted {
		now := im.now
		t.CompletedAt = &now
	}
	return upsert(tx, &t, &t.ID, []string{"completed_at"}, "title = ? AND created_by_id = ?", t.Title, t.CreatedByID)
}
