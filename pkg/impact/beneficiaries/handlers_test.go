package beneficiaries

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
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

func strPtr(s string) *string { return &s }

func TestListBeneficiariesScoped(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	tests := []struct {
		name  string
		actor models.User
		want  int64
	}{
		{"admin", org.Admin, 4},
		{"hr", org.HR, 3},
		{"pm", org.PM, 3},
		{"manager", org.Manager, 2},
		{"beneficiary", org.BenUser, 1},
		{"other contract hr", org.OtherHR, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(router, "GET", "/api/v1/beneficiaries", testutil.AuthHeader(tt.actor), nil)
			if resp.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
			}
			var page testutil.Page[BeneficiaryResponse]
			testutil.Decode(t, resp, &page)
			if page.Pagination.Total != tt.want {
				t.Errorf("Expected %d beneficiaries, got %d", tt.want, page.Pagination.Total)
			}
		})
	}
}

func TestListBeneficiariesFilters(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	soon := time.Now().UTC().AddDate(0, 0, 10)
	later := time.Now().UTC().AddDate(1, 0, 0)
	db.Model(&org.Carol).Update("current_visa_expiration", soon)
	db.Model(&org.Bob).Update("current_visa_expiration", later)

	resp := testutil.Do(router, "GET", "/api/v1/beneficiaries?expiring_within_days=30", testutil.AuthHeader(org.HR), nil)
	var page testutil.Page[BeneficiaryResponse]
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 1 || page.Items[0].ID != org.Carol.ID {
		t.Errorf("Expected only Carol expiring, got %+v", page.Items)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/beneficiaries?department_id=%d", org.Finance.ID), testutil.AuthHeader(org.HR), nil)
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 2 {
		t.Errorf("Expected 2 beneficiaries in Finance, got %d", page.Pagination.Total)
	}

	resp = testutil.Do(router, "GET", "/api/v1/beneficiaries?q=chen", testutil.AuthHeader(org.HR), nil)
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 1 || page.Items[0].FullName != "Carol Chen" {
		t.Errorf("Expected Carol Chen, got %+v", page.Items)
	}

	resp = testutil.Do(router, "GET", "/api/v1/beneficiaries?expiring_within_days=-1", testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative days, got %d", resp.Code)
	}
}

func TestCreateBeneficiary(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	newUser := testutil.User(t, db, "newhire@example.com", models.RoleBeneficiary, &org.Contract.ID, &org.Engineering.ID)

	req := CreateBeneficiaryRequest{
		UserID:                &newUser.ID,
		FirstName:             "Nina",
		LastName:              "Novak",
		CurrentVisaType:       "H-1B",
		CurrentVisaExpiration: strPtr("2027-06-30"),
	}
	resp := testutil.Do(router, "POST", "/api/v1/beneficiaries", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created BeneficiaryResponse
	testutil.Decode(t, resp, &created)
	if created.ContractID == nil || *created.ContractID != org.Contract.ID {
		t.Errorf("Expected contract copied from user, got %v", created.ContractID)
	}
	if created.DepartmentID == nil || *created.DepartmentID != org.Engineering.ID {
		t.Errorf("Expected department copied from user, got %v", created.DepartmentID)
	}
	if !created.IsActive {
		t.Error("Expected new beneficiary to be active")
	}
	if created.CurrentVisaExpiration == nil || created.CurrentVisaExpiration.Format("2006-01-02") != "2027-06-30" {
		t.Errorf("Unexpected visa expiration %v", created.CurrentVisaExpiration)
	}

	resp = testutil.Do(router, "POST", "/api/v1/beneficiaries", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for already linked user, got %d", resp.Code)
	}

	future := CreateBeneficiaryRequest{FirstName: "Future", LastName: "Hire", ContractID: &org.OtherContract.ID}
	resp = testutil.Do(router, "POST", "/api/v1/beneficiaries", testutil.AuthHeader(org.HR), future)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for another contract, got %d", resp.Code)
	}

	resp = testutil.Do(router, "POST", "/api/v1/beneficiaries", testutil.AuthHeader(org.Manager), future)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for manager, got %d", resp.Code)
	}

	future.ContractID = nil
	future.EmploymentStartDate = strPtr("soon")
	resp = testutil.Do(router, "POST", "/api/v1/beneficiaries", testutil.AuthHeader(org.PM), future)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad date, got %d", resp.Code)
	}
}

func TestGetBeneficiaryOutOfScope(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", fmt.Sprintf("/api/v1/beneficiaries/%d", org.Dave.ID), testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/beneficiaries/%d", org.Bob.ID), testutil.AuthHeader(org.BenUser), nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another beneficiary, got %d", resp.Code)
	}
	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/beneficiaries/%d", org.Alice.ID), testutil.AuthHeader(org.BenUser), nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 for own record, got %d", resp.Code)
	}
}

func TestUpdateOwnBeneficiary(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	path := fmt.Sprintf("/api/v1/beneficiaries/%d", org.Alice.ID)

	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.BenUser), UpdateBeneficiaryRequest{PassportNumber: strPtr("X1234567")})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var b BeneficiaryResponse
	testutil.Decode(t, resp, &b)
	if b.PassportNumber != "X1234567" {
		t.Errorf("Expected passport to be updated, got %q", b.PassportNumber)
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.BenUser), UpdateBeneficiaryRequest{Notes: strPtr("promote me")})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for restricted field, got %d", resp.Code)
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.Manager), UpdateBeneficiaryRequest{FirstName: strPtr("Al")})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for manager, got %d", resp.Code)
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateBeneficiaryRequest{DepartmentID: &org.Ops.ID})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for department of another contract, got %d", resp.Code)
	}
}

func TestDeleteBeneficiary(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	path := fmt.Sprintf("/api/v1/beneficiaries/%d", org.Carol.ID)
	resp := testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.PM), nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for PM, got %d", resp.Code)
	}
	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	resp = testutil.Do(router, "GET", path, testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", resp.Code)
	}
}

func TestDependents(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	path := fmt.Sprintf("/api/v1/beneficiaries/%d/dependents", org.Alice.ID)
	req := DependentRequest{FirstName: "Sam", LastName: "Anders", Relationship: "CHILD", DateOfBirth: strPtr("2018-04-02")}

	resp := testutil.Do(router, "POST", path, testutil.AuthHeader(org.BenUser), req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var dep models.Dependent
	testutil.Decode(t, resp, &dep)

	req.Relationship = "COUSIN"
	resp = testutil.Do(router, "POST", path, testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown relationship, got %d", resp.Code)
	}

	resp = testutil.Do(router, "GET", path, testutil.AuthHeader(org.Manager), nil)
	var deps []models.Dependent
	testutil.Decode(t, resp, &deps)
	if len(deps) != 1 {
		t.Errorf("Expected 1 dependent, got %d", len(deps))
	}

	depPath := fmt.Sprintf("/api/v1/dependents/%d", dep.ID)
	resp = testutil.Do(router, "PUT", depPath, testutil.AuthHeader(org.OtherHR), UpdateDependentRequest{VisaType: strPtr("H-4")})
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 out of scope, got %d", resp.Code)
	}
	resp = testutil.Do(router, "PUT", depPath, testutil.AuthHeader(org.Manager), UpdateDependentRequest{VisaType: strPtr("H-4")})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for manager, got %d", resp.Code)
	}
	resp = testutil.Do(router, "PUT", depPath, testutil.AuthHeader(org.HR), UpdateDependentRequest{VisaType: strPtr("H-4")})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	testutil.Decode(t, resp, &dep)
	if dep.VisaType != "H-4" {
		t.Errorf("Expected visa type H-4, got %q", dep.VisaType)
	}

	resp = testutil.Do(router, "DELETE", depPath, testutil.AuthHeader(org.BenUser), nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	var count int64
	db.Model(&models.Dependent{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no dependents left, got %d", count)
	}
}
