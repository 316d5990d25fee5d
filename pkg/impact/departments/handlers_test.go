package departments

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/orgtree"
	"github.com/ama-impact/ama-impact/pkg/impact/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	r := testutil.NewRouter()
	api := r.Group("/api/v1", auth.AuthMiddleware(), access.Middleware(db))
	NewHandler(db).RegisterRoutes(api)
	return r
}

func uintPtr(v uint) *uint { return &v }

func TestListDepartmentsScoped(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", "/api/v1/departments", testutil.AuthHeader(org.HR), nil)
	var page testutil.Page[DepartmentResponse]
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 3 {
		t.Errorf("Expected 3 departments for HR, got %d", page.Pagination.Total)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/departments?contract_id=%d", org.OtherContract.ID), testutil.AuthHeader(org.Admin), nil)
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 1 || page.Items[0].Name != "Ops" {
		t.Errorf("Expected only Ops, got %+v", page.Items)
	}
}

func TestDepartmentTree(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", "/api/v1/departments/tree", testutil.AuthHeader(org.PM), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var roots []orgtree.Node
	testutil.Decode(t, resp, &roots)
	if len(roots) != 2 {
		t.Fatalf("Expected 2 roots, got %d", len(roots))
	}
	if roots[0].Name != "Engineering" || len(roots[0].Children) != 1 || roots[0].Children[0].Name != "Platform" {
		t.Errorf("Unexpected tree: %+v", roots)
	}
}

func TestCreateDepartment(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	req := CreateDepartmentRequest{ContractID: org.Contract.ID, ParentID: uintPtr(org.Platform.ID), Name: "SRE"}
	resp := testutil.Do(router, "POST", "/api/v1/departments", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	req = CreateDepartmentRequest{ContractID: org.OtherContract.ID, Name: "Sneaky"}
	resp = testutil.Do(router, "POST", "/api/v1/departments", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for another contract, got %d", resp.Code)
	}

	req = CreateDepartmentRequest{ContractID: org.Contract.ID, ParentID: uintPtr(org.Ops.ID), Name: "Cross"}
	resp = testutil.Do(router, "POST", "/api/v1/departments", testutil.AuthHeader(org.Admin), req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for cross-contract parent, got %d", resp.Code)
	}

	req = CreateDepartmentRequest{ContractID: org.Contract.ID, Name: "Nope"}
	resp = testutil.Do(router, "POST", "/api/v1/departments", testutil.AuthHeader(org.Manager), req)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for manager, got %d", resp.Code)
	}
}

func TestUpdateDepartmentRejectsCycle(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	path := fmt.Sprintf("/api/v1/departments/%d", org.Engineering.ID)
	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.Admin), UpdateDepartmentRequest{ParentID: uintPtr(org.Platform.ID)})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for cycle, got %d", resp.Code)
	}

	path = fmt.Sprintf("/api/v1/departments/%d", org.Platform.ID)
	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.Admin), UpdateDepartmentRequest{ParentID: uintPtr(0)})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var d DepartmentResponse
	testutil.Decode(t, resp, &d)
	if d.ParentID != nil {
		t.Errorf("Expected Platform to become top-level, got parent %d", *d.ParentID)
	}
}

func TestDeleteDepartment(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "DELETE", fmt.Sprintf("/api/v1/departments/%d", org.Engineering.ID), testutil.AuthHeader(org.Admin), nil)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for department with children, got %d", resp.Code)
	}

	empty := testutil.Create(t, db, &models.Department{ContractID: org.Contract.ID, Name: "Empty"})
	resp = testutil.Do(router, "DELETE", fmt.Sprintf("/api/v1/departments/%d", empty.ID), testutil.AuthHeader(org.Admin), nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
}

func TestDepartmentStats(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	cg := testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	p := testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionI140)
	db.Model(&p).Update("status", models.PetitionStatusFiled)
	testutil.Petition(t, db, org.Alice.ID, nil, models.PetitionI485)
	testutil.Petition(t, db, org.Bob.ID, nil, models.PetitionI129)
	past := time.Now().AddDate(0, 0, -3)
	testutil.Create(t, db, &models.Todo{Title: "Overdue", Status: models.TodoStatusTodo, Priority: models.PriorityHigh, CreatedByID: org.HR.ID, BeneficiaryID: &org.Alice.ID, DueDate: &past})
	testutil.Create(t, db, &models.Todo{Title: "Done", Status: models.TodoStatusCompleted, Priority: models.PriorityLow, CreatedByID: org.HR.ID, BeneficiaryID: &org.Alice.ID})

	resp := testutil.Do(router, "GET", fmt.Sprintf("/api/v1/departments/%d/stats", org.Engineering.ID), testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var stats Stats
	testutil.Decode(t, resp, &stats)

	if stats.DepartmentCount != 2 {
		t.Errorf("Expected 2 departments in subtree, got %d", stats.DepartmentCount)
	}
	// manager sits in Engineering, Alice's user in Platform
	if stats.UserCount != 2 {
		t.Errorf("Expected 2 users, got %d", stats.UserCount)
	}
	if stats.BeneficiaryCount != 1 {
		t.Errorf("Expected 1 beneficiary, got %d", stats.BeneficiaryCount)
	}
	if stats.TotalPetitions != 2 || stats.PetitionsByStatus["FILED"] != 1 || stats.PetitionsByStatus["DRAFT"] != 1 {
		t.Errorf("Unexpected petition counts: %d %v", stats.TotalPetitions, stats.PetitionsByStatus)
	}
	if stats.ActiveCaseGroups != 1 {
		t.Errorf("Expected 1 active case group, got %d", stats.ActiveCaseGroups)
	}
	if stats.OpenTodos != 1 || stats.OverdueTodos != 1 {
		t.Errorf("Expected 1 open and 1 overdue todo, got %d/%d", stats.OpenTodos, stats.OverdueTodos)
	}
	if len(stats.Children) != 1 || stats.Children[0].Name != "Platform" || stats.Children[0].BeneficiaryCount != 1 {
		t.Errorf("Unexpected children breakdown: %+v", stats.Children)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/departments/%d/stats?include_subdepartments=false", org.Engineering.ID), testutil.AuthHeader(org.HR), nil)
	var alone Stats
	testutil.Decode(t, resp, &alone)
	if alone.BeneficiaryCount != 0 || alone.Children != nil {
		t.Errorf("Expected Engineering alone to have no beneficiaries and no breakdown, got %+v", alone)
	}
}

func TestDepartmentStatsManagerScope(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", fmt.Sprintf("/api/v1/departments/%d/stats", org.Platform.ID), testutil.AuthHeader(org.Manager), nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 inside subtree, got %d", resp.Code)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/departments/%d/stats", org.Finance.ID), testutil.AuthHeader(org.Manager), nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 outside subtree, got %d", resp.Code)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/departments/%d/stats", org.Finance.ID), testutil.AuthHeader(org.BenUser), nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for beneficiary, got %d", resp.Code)
	}
}
