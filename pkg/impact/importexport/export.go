package importexport

import (
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"gorm.io/gorm"
)

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func boolPtr(b bool) *bool { return &b }

// exporter holds the id to natural key maps built while dumping.
type exporter struct {
	contracts     map[uint]string
	departments   map[uint]string
	users         map[uint]string
	lawFirms      map[uint]string
	visaTypes     map[uint]string
	beneficiaries map[uint]string
	caseGroups    map[uint]string
	petitions     map[uint]PetitionRef
}

func lookupKey(m map[uint]string, id *uint) string {
	if id == nil {
		return ""
	}
	return m[*id]
}

// Export dumps db in the format Import reads. Soft-deleted rows and
// password hashes are left out, so users in an exported bundle need a
// password before it can seed an empty database.
func Export(db *gorm.DB) (*Bundle, error) {
	ex := &exporter{
		contracts:     map[uint]string{},
		departments:   map[uint]string{},
		users:         map[uint]string{},
		lawFirms:      map[uint]string{},
		visaTypes:     map[uint]string{},
		beneficiaries: map[uint]string{},
		caseGroups:    map[uint]string{},
		petitions:     map[uint]PetitionRef{},
	}
	b := &Bundle{}

	var contracts []models.Contract
	var departments []models.Department
	var users []models.User
	var lawFirms []models.LawFirm
	var visaTypes []models.VisaType
	var beneficiaries []models.Beneficiary
	var caseGroups []models.CaseGroup
	var petitions []models.Petition
	var milestones []models.Milestone
	var todos []models.Todo

	for _, dest := range []interface{}{&contracts, &departments, &users, &lawFirms, &visaTypes,
		&beneficiaries, &caseGroups, &petitions, &milestones, &todos} {
		if err := db.Order("id").Find(dest).Error; err != nil {
			return nil, err
		}
	}

	for _, c := range contracts {
		ex.contracts[c.ID] = c.Code
	}
	for _, d := range departments {
		ex.departments[d.ID] = d.Code
	}
	for _, u := range users {
		ex.users[u.ID] = u.Email
	}
	for _, f := range lawFirms {
		ex.lawFirms[f.ID] = f.Name
	}
	for _, v := range visaTypes {
		ex.visaTypes[v.ID] = v.Code
	}
	for _, ben := range beneficiaries {
		ex.beneficiaries[ben.ID] = ben.Email
	}
	for _, cg := range caseGroups {
		ex.caseGroups[cg.ID] = string(cg.PathwayType)
	}
	for _, p := range petitions {
		ex.petitions[p.ID] = ex.petitionRef(p)
	}

	for _, c := range contracts {
		b.Contracts = append(b.Contracts, ContractRow{
			Code:         c.Code,
			Name:         c.Name,
			ClientName:   c.ClientName,
			Description:  c.Description,
			Status:       string(c.Status),
			StartDate:    fmtDate(c.StartDate),
			EndDate:      fmtDate(c.EndDate),
			ManagerEmail: lookupKey(ex.users, c.ManagerUserID),
		})
	}
	for _, d := range parentsFirst(departments) {
		b.Departments = append(b.Departments, DepartmentRow{
			ContractCode: ex.contracts[d.ContractID],
			Code:         d.Code,
			Name:         d.Name,
			ParentCode:   lookupKey(ex.departments, d.ParentID),
			Description:  d.Description,
			ManagerEmail: lookupKey(ex.users, d.ManagerID),
		})
	}
	for _, u := range users {
		b.Users = append(b.Users, UserRow{
			Email:          u.Email,
			FullName:       u.FullName,
			Role:           string(u.Role),
			Phone:          u.Phone,
			ContractCode:   lookupKey(ex.contracts, u.ContractID),
			DepartmentCode: lookupKey(ex.departments, u.DepartmentID),
			ReportsToEmail: lookupKey(ex.users, u.ReportsToID),
			IsActive:       boolPtr(u.IsActive),
		})
	}
	for _, f := range lawFirms {
		b.LawFirms = append(b.LawFirms, LawFirmRow{
			Name:              f.Name,
			ContactPerson:     f.ContactPerson,
			Email:             f.Email,
			Phone:             f.Phone,
			Address:           f.Address,
			Website:           f.Website,
			IsPreferred:       f.IsPreferred,
			PerformanceRating: f.PerformanceRating,
			Notes:             f.Notes,
		})
	}
	for _, v := range visaTypes {
		b.VisaTypes = append(b.VisaTypes, VisaTypeRow{
			Code:                  v.Code,
			Name:                  v.Name,
			Category:              string(v.Category),
			Description:           v.Description,
			IsActive:              boolPtr(v.IsActive),
			DefaultValidityMonths: v.DefaultValidityMonths,
		})
	}
	for _, ben := range beneficiaries {
		b.Beneficiaries = append(b.Beneficiaries, BeneficiaryRow{
			Email:                 ben.Email,
			FirstName:             ben.FirstName,
			LastName:              ben.LastName,
			UserEmail:             lookupKey(ex.users, ben.UserID),
			ContractCode:          lookupKey(ex.contracts, ben.ContractID),
			DepartmentCode:        lookupKey(ex.departments, ben.DepartmentID),
			CountryOfCitizenship:  ben.CountryOfCitizenship,
			CountryOfBirth:        ben.CountryOfBirth,
			PassportNumber:        ben.PassportNumber,
			PassportExpiration:    fmtDate(ben.PassportExpiration),
			CurrentVisaType:       ben.CurrentVisaType,
			CurrentVisaExpiration: fmtDate(ben.CurrentVisaExpiration),
			I94Expiration:         fmtDate(ben.I94Expiration),
			JobTitle:              ben.JobTitle,
			EmploymentStartDate:   fmtDate(ben.EmploymentStartDate),
			IsActive:              boolPtr(ben.IsActive),
			Notes:                 ben.Notes,
		})
	}
	for _, cg := range caseGroups {
		benEmail, ok := ex.beneficiaries[cg.BeneficiaryID]
		if !ok {
			continue
		}
		b.CaseGroups = append(b.CaseGroups, CaseGroupRow{
			BeneficiaryEmail:     benEmail,
			PathwayType:          string(cg.PathwayType),
			Status:               string(cg.Status),
			Priority:             string(cg.Priority),
			ApprovalStatus:       string(cg.ApprovalStatus),
			ResponsibleEmail:     lookupKey(ex.users, cg.ResponsiblePartyID),
			CreatedByEmail:       ex.users[cg.CreatedByID],
			LawFirmName:          lookupKey(ex.lawFirms, cg.LawFirmID),
			AttorneyName:         cg.AttorneyName,
			CaseNumber:           cg.CaseNumber,
			TargetCompletionDate: fmtDate(cg.TargetCompletionDate),
			Notes:                cg.Notes,
		})
	}
	for _, p := range petitions {
		if _, ok := ex.beneficiaries[p.BeneficiaryID]; !ok {
			continue
		}
		b.Petitions = append(b.Petitions, PetitionRow{
			PetitionRef:       ex.petitions[p.ID],
			CaseGroupPathway:  lookupKey(ex.caseGroups, p.CaseGroupID),
			VisaTypeCode:      lookupKey(ex.visaTypes, p.VisaTypeID),
			Status:            string(p.Status),
			Priority:          string(p.Priority),
			FilingDate:        fmtDate(p.FilingDate),
			ApprovalDate:      fmtDate(p.ApprovalDate),
			DenialDate:        fmtDate(p.DenialDate),
			ExpirationDate:    fmtDate(p.ExpirationDate),
			PriorityDate:      fmtDate(p.PriorityDate),
			PremiumProcessing: p.PremiumProcessing,
			LawFirmName:       p.LawFirmName,
			AttorneyName:      p.AttorneyName,
			AttorneyEmail:     p.AttorneyEmail,
			ResponsibleEmail:  lookupKey(ex.users, p.ResponsiblePartyID),
			Notes:             p.Notes,
		})
	}

	groupOwner := map[uint]uint{}
	for _, cg := range caseGroups {
		groupOwner[cg.ID] = cg.BeneficiaryID
	}
	for _, m := range milestones {
		row := MilestoneRow{
			MilestoneType: string(m.MilestoneType),
			Title:         m.Title,
			Description:   m.Description,
			Status:        string(m.Status),
			DueDate:       fmtDate(m.DueDate),
			CompletedDate: fmtDate(m.CompletedDate),
		}
		switch {
		case m.PetitionID != nil:
			ref, ok := ex.petitions[*m.PetitionID]
			if !ok {
				continue
			}
			row.Petition = &ref
		case m.CaseGroupID != nil:
			benEmail, ok := ex.beneficiaries[groupOwner[*m.CaseGroupID]]
			if !ok {
				continue
			}
			row.CaseGroup = &CaseGroupRef{BeneficiaryEmail: benEmail, PathwayType: ex.caseGroups[*m.CaseGroupID]}
		default:
			continue
		}
		b.Milestones = append(b.Milestones, row)
	}

	for _, t := range todos {
		row := TodoRow{
			Title:            t.Title,
			CreatedByEmail:   ex.users[t.CreatedByID],
			Description:      t.Description,
			Status:           string(t.Status),
			Priority:         string(t.Priority),
			DueDate:          fmtDate(t.DueDate),
			AssignedToEmail:  lookupKey(ex.users, t.AssignedToID),
			BeneficiaryEmail: lookupKey(ex.beneficiaries, t.BeneficiaryID),
		}
		if t.PetitionID != nil {
			if ref, ok := ex.petitions[*t.PetitionID]; ok {
				row.Petition = &ref
			}
		}
		b.Todos = append(b.Todos, row)
	}
	return b, nil
}

func (ex *exporter) petitionRef(p models.Petition) PetitionRef {
	ref := PetitionRef{BeneficiaryEmail: ex.beneficiaries[p.BeneficiaryID], PetitionType: string(p.PetitionType)}
	if p.ReceiptNumber != nil {
		ref.ReceiptNumber = *p.ReceiptNumber
	}
	return ref
}

// parentsFirst orders departments so every parent precedes its children.
// Departments whose parent is missing are emitted as roots.
func parentsFirst(depts []models.Department) []models.Department {
	present := make(map[uint]bool, len(depts))
	for _, d := range depts {
		present[d.ID] = true
	}
	out := make([]models.Department, 0, len(depts))
	done := make(map[uint]bool, len(depts))
	for len(out) < len(depts) {
		progressed := false
		for _, d := range depts {
			if done[d.ID] {
				continue
			}
			if d.ParentID == nil || !present[*d.ParentID] || done[*d.ParentID] {
				out = append(out, d)
				done[d.ID] = true
				progressed = true
			}
		}
		if !progressed {
			// a parent cycle; emit the rest as they are
			for _, d := range depts {
				if !done[d.ID] {
					out = append(out, d)
					done[d.ID] = true
				}
			}
		}
	}
	return out
}
