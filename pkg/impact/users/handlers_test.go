package users

import (
	"fmt"
	"net/http"
	"testing"

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
func boolPtr(b bool) *bool    { return &b }

func TestListUsersScoped(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	tests := []struct {
		name  string
		actor models.User
		want  int64
	}{
		{"admin sees everyone", org.Admin, 7},
		{"hr sees own contract", org.HR, 5},
		{"pm sees self", org.PM, 1},
		{"beneficiary sees self", org.BenUser, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(router, "GET", "/api/v1/users", testutil.AuthHeader(tt.actor), nil)
			if resp.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", resp.Code)
			}
			var page testutil.Page[auth.UserResponse]
			testutil.Decode(t, resp, &page)
			if page.Pagination.Total != tt.want {
				t.Errorf("Expected %d users, got %d", tt.want, page.Pagination.Total)
			}
		})
	}
}

func TestListUsersFilters(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", "/api/v1/users?role=hr", testutil.AuthHeader(org.Admin), nil)
	var page testutil.Page[auth.UserResponse]
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 2 {
		t.Errorf("Expected 2 HR users, got %d", page.Pagination.Total)
	}

	resp = testutil.Do(router, "GET", "/api/v1/users?q=ALICE", testutil.AuthHeader(org.Admin), nil)
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 1 || page.Items[0].ID != org.BenUser.ID {
		t.Errorf("Expected alice only, got %+v", page.Items)
	}
	if page.Items[0].BeneficiaryID == nil || *page.Items[0].BeneficiaryID != org.Alice.ID {
		t.Errorf("Expected linked beneficiary %d, got %v", org.Alice.ID, page.Items[0].BeneficiaryID)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/users?department_id=%d", org.Finance.ID), testutil.AuthHeader(org.Admin), nil)
	testutil.Decode(t, resp, &page)
	if page.Pagination.Total != 1 {
		t.Errorf("Expected 1 user in Finance, got %d", page.Pagination.Total)
	}

	resp = testutil.Do(router, "GET", "/api/v1/users?is_active=maybe", testutil.AuthHeader(org.Admin), nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad is_active, got %d", resp.Code)
	}
}

func TestCreateUser(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	req := CreateUserRequest{
		Email:        "New.Hire@Example.com",
		Password:     "password123",
		FullName:     "New Hire",
		Role:         "BENEFICIARY",
		ContractID:   &org.OtherContract.ID,
		DepartmentID: &org.Finance.ID,
	}
	// HR is pinned to its own contract, so Finance is a valid department.
	resp := testutil.Do(router, "POST", "/api/v1/users", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created auth.UserResponse
	testutil.Decode(t, resp, &created)
	if created.Email != "new.hire@example.com" {
		t.Errorf("Expected normalized email, got %s", created.Email)
	}
	if created.ContractID == nil || *created.ContractID != org.Contract.ID {
		t.Errorf("Expected contract %d, got %v", org.Contract.ID, created.ContractID)
	}

	var logs int64
	db.Model(&models.AuditLog{}).Where("entity_type = ? AND entity_id = ?", "user", created.ID).Count(&logs)
	if logs != 1 {
		t.Errorf("Expected 1 audit entry, got %d", logs)
	}

	resp = testutil.Do(router, "POST", "/api/v1/users", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate email, got %d", resp.Code)
	}

	req.Email = "boss@example.com"
	req.Role = "ADMIN"
	resp = testutil.Do(router, "POST", "/api/v1/users", testutil.AuthHeader(org.HR), req)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 when HR creates an admin, got %d", resp.Code)
	}

	resp = testutil.Do(router, "POST", "/api/v1/users", testutil.AuthHeader(org.PM), req)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for PM, got %d", resp.Code)
	}

	req.Role = "OWNER"
	resp = testutil.Do(router, "POST", "/api/v1/users", testutil.AuthHeader(org.Admin), req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown role, got %d", resp.Code)
	}
}

func TestGetUserOutOfScope(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", fmt.Sprintf("/api/v1/users/%d", org.OtherHR.ID), testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for user in another contract, got %d", resp.Code)
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/users/%d", org.PM.ID), testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
}

func TestUpdateUser(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	path := fmt.Sprintf("/api/v1/users/%d", org.BenUser.ID)

	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.BenUser), UpdateUserRequest{Phone: strPtr("555-0100")})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for self update, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.BenUser), UpdateUserRequest{Role: strPtr("ADMIN")})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for self promotion, got %d", resp.Code)
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateUserRequest{ReportsToID: &org.Manager.ID})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var updated auth.UserResponse
	testutil.Decode(t, resp, &updated)
	if updated.Phone != "555-0100" {
		t.Errorf("Expected phone to survive, got %q", updated.Phone)
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateUserRequest{Role: strPtr("ADMIN")})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 when HR promotes to admin, got %d", resp.Code)
	}

	resp = testutil.Do(router, "PUT", fmt.Sprintf("/api/v1/users/%d", org.Manager.ID), testutil.AuthHeader(org.Admin),
		UpdateUserRequest{ReportsToID: &org.Reportee.ID})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for reporting cycle, got %d", resp.Code)
	}

	resp = testutil.Do(router, "PUT", fmt.Sprintf("/api/v1/users/%d", org.Admin.ID), testutil.AuthHeader(org.Admin),
		UpdateUserRequest{IsActive: boolPtr(false)})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 when deactivating self, got %d", resp.Code)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "PUT", fmt.Sprintf("/api/v1/users/%d", org.PM.ID), testutil.AuthHeader(org.Admin),
		UpdateUserRequest{Password: strPtr("a-new-password")})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var u models.User
	db.First(&u, org.PM.ID)
	if !auth.CheckPassword("a-new-password", u.PasswordHash) {
		t.Error("Expected the new password to be stored")
	}
}

func TestDeleteUser(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "DELETE", fmt.Sprintf("/api/v1/users/%d", org.HR.ID), testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 when deleting self, got %d", resp.Code)
	}

	resp = testutil.Do(router, "DELETE", fmt.Sprintf("/api/v1/users/%d", org.PM.ID), testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.User{}).Where("id = ?", org.PM.ID).Count(&count)
	if count != 0 {
		t.Error("Expected user to be soft deleted")
	}
	db.Unscoped().Model(&models.User{}).Where("id = ?", org.PM.ID).Count(&count)
	if count != 1 {
		t.Error("Expected soft-deleted row to remain")
	}

	resp = testutil.Do(router, "DELETE", fmt.Sprintf("/api/v1/users/%d", org.Manager.ID), testutil.AuthHeader(org.BenUser), nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for beneficiary, got %d", resp.Code)
	}
}

func TestUserReports(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	db.Model(&models.User{}).Where("id = ?", org.BenUser.ID).Update("reports_to_id", org.Reportee.ID)

	resp := testutil.Do(router, "GET", fmt.Sprintf("/api/v1/users/%d/reports", org.Manager.ID), testutil.AuthHeader(org.Manager), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var reports ReportsResponse
	testutil.Decode(t, resp, &reports)
	if len(reports.DirectReports) != 1 || reports.DirectReports[0].ID != org.Reportee.ID {
		t.Errorf("Expected reportee as only direct report, got %+v", reports.DirectReports)
	}
	if len(reports.AllReports) != 2 {
		t.Errorf("Expected 2 reports in total, got %d", len(reports.AllReports))
	}
}

func TestSettings(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	resp := testutil.Do(router, "GET", "/api/v1/users/me/settings", testutil.AuthHeader(org.PM), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	var s models.UserSettings
	testutil.Decode(t, resp, &s)
	if !s.EmailNotifications || s.Theme != "light" || s.ItemsPerPage != 20 {
		t.Errorf("Expected default settings, got %+v", s)
	}

	body := map[string]interface{}{"theme": "dark", "email_notifications": false}
	resp = testutil.Do(router, "PUT", "/api/v1/users/me/settings", testutil.AuthHeader(org.PM), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	testutil.Decode(t, resp, &s)
	if s.Theme != "dark" || s.EmailNotifications || !s.NotifyDeadlines {
		t.Errorf("Unexpected settings after update: %+v", s)
	}

	resp = testutil.Do(router, "PUT", "/api/v1/users/me/settings", testutil.AuthHeader(org.PM), map[string]string{"timezone": "Mars/Olympus"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown timezone, got %d", resp.Code)
	}

	var rows int64
	db.Model(&models.UserSettings{}).Where("user_id = ?", org.PM.ID).Count(&rows)
	if rows != 1 {
		t.Errorf("Expected exactly one settings row, got %d", rows)
	}
}
