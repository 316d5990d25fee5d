package milestones

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

func strp(s string) *string { return &s }

func TestSyncCompletion(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

	m := models.Milestone{Status: models.MilestoneStatusPending, CompletedDate: &date}
	syncCompletion(&m, false, now)
	if m.Status != models.MilestoneStatusCompleted {
		t.Errorf("Expected a completed date to mark COMPLETED, got %s", m.Status)
	}

	m = models.Milestone{Status: models.MilestoneStatusCompleted}
	syncCompletion(&m, true, now)
	if m.CompletedDate == nil || !m.CompletedDate.Equal(now) {
		t.Errorf("Expected COMPLETED without a date to stamp now, got %v", m.CompletedDate)
	}

	m = models.Milestone{Status: models.MilestoneStatusInProgress, CompletedDate: &date}
	syncCompletion(&m, true, now)
	if m.CompletedDate != nil {
		t.Errorf("Expected leaving COMPLETED to clear the date")
	}
}

func TestCreateMilestoneInheritsCaseGroup(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	cg := testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	p := testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionI140)
	path := fmt.Sprintf("/api/v1/petitions/%d/milestones", p.ID)

	req := MilestoneRequest{MilestoneType: "I140_FILED", Title: "I-140 filed", CompletedDate: strp("2026-02-01")}
	resp := testutil.Do(router, "POST", path, testutil.AuthHeader(org.PM), req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var m models.Milestone
	testutil.Decode(t, resp, &m)
	if m.CaseGroupID == nil || *m.CaseGroupID != cg.ID {
		t.Errorf("Expected milestone to inherit case group %d, got %v", cg.ID, m.CaseGroupID)
	}
	if m.Status != models.MilestoneStatusCompleted {
		t.Errorf("Expected status COMPLETED, got %s", m.Status)
	}

	resp = testutil.Do(router, "POST", path, testutil.AuthHeader(org.BenUser), req)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for beneficiary, got %d", resp.Code)
	}
	resp = testutil.Do(router, "POST", path, testutil.AuthHeader(org.OtherHR), req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 outside scope, got %d", resp.Code)
	}

	resp = testutil.Do(router, "GET", path, testutil.AuthHeader(org.BenUser), nil)
	var list []models.Milestone
	testutil.Decode(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("Expected 1 milestone, got %d", len(list))
	}

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/case-groups/%d/milestones", cg.ID), testutil.AuthHeader(org.Manager), nil)
	list = nil
	testutil.Decode(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("Expected case group to list the petition milestone, got %d", len(list))
	}
}

func TestUpdateAndCompleteMilestone(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	p := testutil.Petition(t, db, org.Carol.ID, nil, models.PetitionI485)
	m := testutil.Create(t, db, &models.Milestone{PetitionID: &p.ID, MilestoneType: models.MilestoneBiometricsCompleted, Status: models.MilestoneStatusPending})
	path := fmt.Sprintf("/api/v1/milestones/%d", m.ID)

	resp := testutil.Do(router, "POST", path+"/complete", testutil.AuthHeader(org.HR), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got models.Milestone
	testutil.Decode(t, resp, &got)
	if got.Status != models.MilestoneStatusCompleted || got.CompletedDate == nil {
		t.Errorf("Expected completed milestone with date, got %s %v", got.Status, got.CompletedDate)
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateMilestoneRequest{CompletedDate: strp("")})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	got = models.Milestone{}
	testutil.Decode(t, resp, &got)
	if got.Status != models.MilestoneStatusPending || got.CompletedDate != nil {
		t.Errorf("Expected clearing the date to reopen the milestone, got %s %v", got.Status, got.CompletedDate)
	}
	db.First(m, m.ID)
	if m.CompletedDate != nil {
		t.Errorf("Expected completed_date cleared in the database")
	}

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.Manager), UpdateMilestoneRequest{Title: strp("x")})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for manager, got %d", resp.Code)
	}

	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.PM), nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	var count int64
	db.Model(&models.Milestone{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected milestone deleted, %d left", count)
	}
}
