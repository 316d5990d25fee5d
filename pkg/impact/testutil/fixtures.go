package testutil

import (
	"testing"

	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"gorm.io/gorm"
)

// Password is the plain password of every fixture user.
const Password = "password123"

var passwordHash string

func hashed(t testing.TB) string {
	if passwordHash == "" {
		h, err := auth.HashPassword(Password)
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		passwordHash = h
	}
	return passwordHash
}

// Org is a small organization used by most handler tests:
//
//	contract ASSESS
//	  Engineering
//	    Platform
//	  Finance
//	contract OTHER
//	  Ops
//
// with one user per role and beneficiaries in each department.
type Org struct {
	Contract      models.Contract
	OtherContract models.Contract

	Engineering models.Department
	Platform    models.Department
	Finance     models.Department
	Ops         models.Department

	Admin    models.User
	HR       models.User
	PM       models.User
	Manager  models.User // manages Engineering
	Reportee models.User // reports to Manager, sits in Finance
	BenUser  models.User // BENEFICIARY login of Alice
	OtherHR  models.User

	Alice models.Beneficiary // Platform, linked to BenUser
	Bob   models.Beneficiary // Finance, linked to Reportee
	Carol models.Beneficiary // Finance, no account
	Dave  models.Beneficiary // other contract
}

func ptr(v uint) *uint { return &v }

// User creates an active user.
func User(t testing.TB, db *gorm.DB, email string, role models.Role, contractID, departmentID *uint) models.User {
	return *Create(t, db, &models.User{
		Email:        email,
		PasswordHash: hashed(t),
		FullName:     email,
		Role:         role,
		ContractID:   contractID,
		DepartmentID: departmentID,
		IsActive:     true,
	})
}

// SeedOrg creates the Org fixture.
func SeedOrg(t testing.TB, db *gorm.DB) *Org {
	t.Helper()
	o := &Org{}

	o.Contract = *Create(t, db, &models.Contract{Name: "ASSESS", Code: "ASSESS", Status: models.ContractStatusActive})
	o.OtherContract = *Create(t, db, &models.Contract{Name: "Other", Code: "OTHER", Status: models.ContractStatusActive})

	o.Engineering = *Create(t, db, &models.Department{ContractID: o.Contract.ID, Name: "Engineering", Code: "ENG"})
	o.Platform = *Create(t, db, &models.Department{ContractID: o.Contract.ID, ParentID: ptr(o.Engineering.ID), Name: "Platform", Code: "PLAT"})
	o.Finance = *Create(t, db, &models.Department{ContractID: o.Contract.ID, Name: "Finance", Code: "FIN"})
	o.Ops = *Create(t, db, &models.Department{ContractID: o.OtherContract.ID, Name: "Ops", Code: "OPS"})

	cid := ptr(o.Contract.ID)
	o.Admin = User(t, db, "admin@example.com", models.RoleAdmin, nil, nil)
	o.HR = User(t, db, "hr@example.com", models.RoleHR, cid, nil)
	o.PM = User(t, db, "pm@example.com", models.RolePM, cid, nil)
	o.Manager = User(t, db, "manager@example.com", models.RoleManager, cid, ptr(o.Engineering.ID))
	o.Reportee = User(t, db, "reportee@example.com", models.RoleBeneficiary, cid, ptr(o.Finance.ID))
	db.Model(&o.Reportee).Update("reports_to_id", o.Manager.ID)
	o.Reportee.ReportsToID = ptr(o.Manager.ID)
	o.BenUser = User(t, db, "alice@example.com", models.RoleBeneficiary, cid, ptr(o.Platform.ID))
	o.OtherHR = User(t, db, "otherhr@example.com", models.RoleHR, ptr(o.OtherContract.ID), nil)

	o.Alice = *Create(t, db, &models.Beneficiary{
		UserID: ptr(o.BenUser.ID), ContractID: cid, DepartmentID: ptr(o.Platform.ID),
		FirstName: "Alice", LastName: "Anders", Email: "alice@example.com", IsActive: true,
	})
	o.Bob = *Create(t, db, &models.Beneficiary{
		UserID: ptr(o.Reportee.ID), ContractID: cid, DepartmentID: ptr(o.Finance.ID),
		FirstName: "Bob", LastName: "Brown", Email: "reportee@example.com", IsActive: true,
	})
	o.Carol = *Create(t, db, &models.Beneficiary{
		ContractID: cid, DepartmentID: ptr(o.Finance.ID),
		FirstName: "Carol", LastName: "Chen", Email: "carol@example.com", IsActive: true,
	})
	o.Dave = *Create(t, db, &models.Beneficiary{
		ContractID: ptr(o.OtherContract.ID), DepartmentID: ptr(o.Ops.ID),
		FirstName: "Dave", LastName: "Diaz", Email: "dave@example.com", IsActive: true,
	})
	return o
}

// CaseGroup creates a draft case group for beneficiaryID.
func CaseGroup(t testing.TB, db *gorm.DB, beneficiaryID, createdByID uint) models.CaseGroup {
	return *Create(t, db, &models.CaseGroup{
		BeneficiaryID:  beneficiaryID,
		PathwayType:    models.PathwayEB2PERM,
		Status:         models.CaseStatusPlanning,
		Priority:       models.PriorityMedium,
		ApprovalStatus: models.ApprovalDraft,
		CreatedByID:    createdByID,
	})
}

// Petition creates a draft petition.
func Petition(t testing.TB, db *gorm.DB, beneficiaryID uint, caseGroupID *uint, typ models.PetitionType) models.Petition {
	return *Create(t, db, &models.Petition{
		BeneficiaryID: beneficiaryID,
		CaseGroupID:   caseGroupID,
		PetitionType:  typ,
		Status:        models.PetitionStatusDraft,
		Priority:      models.PriorityMedium,
	})
}
