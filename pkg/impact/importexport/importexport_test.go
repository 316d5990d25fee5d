package importexport

import (
	"net/http"
	"testing"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	r := testutil.NewRouter()
	api := r.Group("/api/v1", auth.AuthMiddleware(), access.Middleware(db))
	NewHandler(db).RegisterRoutes(api.Group("/admin", access.RequireRoles(models.RoleAdmin)))
	return r
}

func sampleBundle() *Bundle {
	return &Bundle{
		Contracts: []ContractRow{
			{Code: "ASSESS", Name: "Assessment", ClientName: "NASA", StartDate: "2024-01-01", ManagerEmail: "pm@example.com"},
		},
		Departments: []DepartmentRow{
			{ContractCode: "ASSESS", Code: "ENG", Name: "Engineering", ManagerEmail: "manager@example.com"},
			{ContractCode: "ASSESS", Code: "PLAT", Name: "Platform", ParentCode: "ENG"},
		},
		Users: []UserRow{
			// reports to a user listed after it
			{Email: "Dev@Example.com", FullName: "Dev", Role: "BENEFICIARY", Password: "secret123",
				ContractCode: "ASSESS", DepartmentCode: "PLAT", ReportsToEmail: "manager@example.com"},
			{Email: "manager@example.com", FullName: "Manager", Role: "MANAGER", Password: "secret123",
				ContractCode: "ASSESS", DepartmentCode: "ENG"},
			{Email: "pm@example.com", FullName: "PM", Role: "PM", Password: "secret123", ContractCode: "ASSESS"},
		},
		LawFirms:  []LawFirmRow{{Name: "Fragomen", IsPreferred: true}},
		VisaTypes: []VisaTypeRow{{Code: "H-1B", Name: "Specialty occupation", Category: "NONIMMIGRANT"}},
		Beneficiaries: []BeneficiaryRow{
			{Email: "dev@example.com", FirstName: "Dev", LastName: "Eloper", UserEmail: "dev@example.com",
				ContractCode: "ASSESS", DepartmentCode: "PLAT", CurrentVisaType: "H-1B", CurrentVisaExpiration: "2027-03-01"},
		},
		CaseGroups: []CaseGroupRow{
			{BeneficiaryEmail: "dev@example.com", PathwayType: "EB2_PERM", CreatedByEmail: "pm@example.com", LawFirmName: "Fragomen"},
		},
		Petitions: []PetitionRow{
			{PetitionRef: PetitionRef{ReceiptNumber: "ioe0912345678", BeneficiaryEmail: "dev@example.com", PetitionType: "I140"},
				CaseGroupPathway: "EB2_PERM", VisaTypeCode: "H-1B", Status: "FILED", FilingDate: "2025-06-01"},
			{PetitionRef: PetitionRef{BeneficiaryEmail: "dev@example.com", PetitionType: "PERM"}, CaseGroupPathway: "EB2_PERM"},
		},
		Milestones: []MilestoneRow{
			{Petition: &PetitionRef{ReceiptNumber: "IOE0912345678"}, MilestoneType: "I140_FILED", Status: "COMPLETED", CompletedDate: "2025-06-01"},
			{CaseGroup: &CaseGroupRef{BeneficiaryEmail: "dev@example.com", PathwayType: "EB2_PERM"}, MilestoneType: "OTHER", Title: "Kickoff"},
		},
		Todos: []TodoRow{
			{Title: "Collect diplomas", CreatedByEmail: "pm@example.com", AssignedToEmail: "dev@example.com",
				Petition: &PetitionRef{BeneficiaryEmail: "dev@example.com", PetitionType: "PERM"}, DueDate: "2025-07-01"},
		},
	}
}

func TestImportCreatesEverything(t *testing.T) {
	db := testutil.NewDB(t)

	res := Import(db, sampleBundle(), 0)
	require.Empty(t, res.Errors)
	assert.Equal(t, 1, res.Created[SectionContracts])
	assert.Equal(t, 2, res.Created[SectionDepartments])
	assert.Equal(t, 3, res.Created[SectionUsers])
	assert.Equal(t, 2, res.Created[SectionPetitions])
	assert.Equal(t, 2, res.Created[SectionMilestones])
	assert.Equal(t, 1, res.Created[SectionTodos])

	var dev, manager, pm models.User
	require.NoError(t, db.Where("email = ?", "dev@example.com").First(&dev).Error)
	require.NoError(t, db.Where("email = ?", "manager@example.com").First(&manager).Error)
	require.NoError(t, db.Where("email = ?", "pm@example.com").First(&pm).Error)
	require.NotNil(t, dev.ReportsToID)
	assert.Equal(t, manager.ID, *dev.ReportsToID)
	assert.True(t, auth.CheckPassword("secret123", dev.PasswordHash))

	var contract models.Contract
	require.NoError(t, db.Where("code = ?", "ASSESS").First(&contract).Error)
	require.NotNil(t, contract.ManagerUserID)
	assert.Equal(t, pm.ID, *contract.ManagerUserID)

	var plat models.Department
	require.NoError(t, db.Where("code = ?", "PLAT").First(&plat).Error)
	require.NotNil(t, plat.ParentID)

	var filed models.Petition
	require.NoError(t, db.Where("receipt_number = ?", "IOE0912345678").First(&filed).Error)
	require.NotNil(t, filed.CaseGroupID)
	assert.Equal(t, models.PetitionStatusFiled, filed.Status)

	var todo models.Todo
	require.NoError(t, db.First(&todo).Error)
	require.NotNil(t, todo.BeneficiaryID)
	require.NotNil(t, todo.CaseGroupID)
	assert.Equal(t, *filed.CaseGroupID, *todo.CaseGroupID)
	assert.Equal(t, pm.ID, todo.CreatedByID)

	var cg models.CaseGroup
	require.NoError(t, db.First(&cg).Error)
	assert.Equal(t, models.ApprovalDraft, cg.ApprovalStatus)
	assert.Equal(t, pm.ID, cg.CreatedByID)
}

func TestImportIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	require.Empty(t, Import(db, sampleBundle(), 0).Errors)

	b := sampleBundle()
	b.Users[0].Password = "" // keeps the stored hash
	b.Petitions[0].Status = "APPROVED"
	res := Import(db, b, 0)
	require.Empty(t, res.Errors)
	assert.Empty(t, res.Created)
	assert.Equal(t, 3, res.Updated[SectionUsers])
	assert.Equal(t, 2, res.Updated[SectionPetitions])

	var count int64
	db.Model(&models.Petition{}).Count(&count)
	assert.Equal(t, int64(2), count)
	db.Model(&models.Milestone{}).Count(&count)
	assert.Equal(t, int64(2), count)

	var dev models.User
	require.NoError(t, db.Where("email = ?", "dev@example.com").First(&dev).Error)
	assert.True(t, auth.CheckPassword("secret123", dev.PasswordHash))

	var p models.Petition
	require.NoError(t, db.Where("receipt_number = ?", "IOE0912345678").First(&p).Error)
	assert.Equal(t, models.PetitionStatusApproved, p.Status)
}

func TestImportRestoresSoftDeleted(t *testing.T) {
	db := testutil.NewDB(t)
	require.Empty(t, Import(db, sampleBundle(), 0).Errors)

	require.NoError(t, db.Where("name = ?", "Fragomen").Delete(&models.LawFirm{}).Error)

	res := Import(db, &Bundle{LawFirms: []LawFirmRow{{Name: "Fragomen", Notes: "back"}}}, 0)
	require.Empty(t, res.Errors)
	assert.Equal(t, 1, res.Updated[SectionLawFirms])

	var f models.LawFirm
	require.NoError(t, db.Where("name = ?", "Fragomen").First(&f).Error)
	assert.Equal(t, "back", f.Notes)
}

func TestImportReportsRowErrors(t *testing.T) {
	db := testutil.NewDB(t)

	b := &Bundle{
		Contracts: []ContractRow{{Code: "ASSESS", Name: "Assessment"}},
		Users: []UserRow{
			{Email: "new@example.com", FullName: "No password", Role: "HR"},
			{Email: "bad-email", FullName: "Bad", Role: "HR", Password: "x"},
			{Email: "ok@example.com", FullName: "Fine", Role: "HR", Password: "secret123", ContractCode: "ASSESS"},
			{Email: "lost@example.com", FullName: "Lost", Role: "HR", Password: "secret123", ContractCode: "NOPE"},
		},
		Beneficiaries: []BeneficiaryRow{
			{Email: "late@example.com", FirstName: "Late", LastName: "Date", PassportExpiration: "01/02/2030"},
		},
		Petitions: []PetitionRow{{PetitionRef: PetitionRef{BeneficiaryEmail: "ghost@example.com", PetitionType: "I129"}}},
	}
	res := Import(db, b, 0)

	assert.Equal(t, 1, res.Created[SectionContracts])
	assert.Equal(t, 1, res.Created[SectionUsers])
	require.Len(t, res.Errors, 5)

	byKey := map[string]RowError{}
	for _, e := range res.Errors {
		byKey[e.Key] = e
	}
	assert.Contains(t, byKey["new@example.com"].Error, "password is required")
	assert.Contains(t, byKey["bad-email"].Error, "email failed email")
	assert.Contains(t, byKey["lost@example.com"].Error, `unknown contract "NOPE"`)
	assert.Contains(t, byKey["late@example.com"].Error, "passport_expiration")
	assert.Equal(t, SectionPetitions, byKey["ghost@example.com/I129"].Section)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestExportRoundTrip(t *testing.T) {
	src := testutil.NewDB(t)
	require.Empty(t, Import(src, sampleBundle(), 0).Errors)

	exported, err := Export(src)
	require.NoError(t, err)
	assert.Len(t, exported.Users, 3)
	assert.Len(t, exported.Milestones, 2)
	for _, u := range exported.Users {
		assert.Empty(t, u.Password)
	}
	assert.Equal(t, "ENG", exported.Departments[0].Code)
	assert.Equal(t, "2027-03-01", exported.Beneficiaries[0].CurrentVisaExpiration)

	for i := range exported.Users {
		exported.Users[i].Password = "changeme1"
	}
	dst := testutil.NewDB(t)
	res := Import(dst, exported, 0)
	require.Empty(t, res.Errors)

	again, err := Export(dst)
	require.NoError(t, err)
	assert.Equal(t, len(exported.Petitions), len(again.Petitions))
	assert.Equal(t, exported.Todos, again.Todos)
	assert.Equal(t, exported.CaseGroups, again.CaseGroups)
}

func TestImportExportHandlers(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	admin := testutil.AuthHeader(org.Admin)

	resp := testutil.Do(router, "POST", "/api/v1/admin/import", admin, &Bundle{
		LawFirms: []LawFirmRow{{Name: "Berardi"}},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var res Result
	testutil.Decode(t, resp, &res)
	assert.Equal(t, 1, res.Created[SectionLawFirms])

	var logged int64
	db.Model(&models.AuditLog{}).Where("action = ?", models.AuditImport).Count(&logged)
	assert.Equal(t, int64(1), logged)

	resp = testutil.Do(router, "GET", "/api/v1/admin/export?download=true", admin, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "ama-impact-export-")
	var b Bundle
	testutil.Decode(t, resp, &b)
	assert.Len(t, b.Beneficiaries, 4)
	assert.Len(t, b.Contracts, 2)

	resp = testutil.Do(router, "GET", "/api/v1/admin/export", testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
