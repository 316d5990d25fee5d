package casegroups

import (
	"fmt"
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
	NewHandler(db).RegisterRoutes(api)
	return r
}

func TestCreateCaseGroup(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	req := CreateCaseGroupRequest{BeneficiaryID: org.Alice.ID, PathwayType: "EB2_PERM", TargetCompletionDate: strp("2027-06-30")}
	resp := testutil.Do(router, "POST", "/api/v1/case-groups", testutil.AuthHeader(org.Manager), req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var got CaseGroupResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.ApprovalDraft, got.ApprovalStatus)
	assert.Equal(t, models.CaseStatusPlanning, got.Status)
	assert.Equal(t, org.Manager.ID, got.CreatedByID)
	assert.Equal(t, "Alice Anders", got.BeneficiaryName)
	assert.Nil(t, got.ProgressPercentage)
	assert.Empty(t, got.Petitions)

	// Carol is outside the manager's subtree.
	req.BeneficiaryID = org.Carol.ID
	resp = testutil.Do(router, "POST", "/api/v1/case-groups", testutil.AuthHeader(org.Manager), req)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = testutil.Do(router, "POST", "/api/v1/case-groups", testutil.AuthHeader(org.BenUser), req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	req = CreateCaseGroupRequest{BeneficiaryID: org.Alice.ID, PathwayType: "H4"}
	resp = testutil.Do(router, "POST", "/api/v1/case-groups", testutil.AuthHeader(org.HR), req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func strp(s string) *string { return &s }

func TestGetCaseGroupProgress(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	cg := testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	i140 := testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionI140)
	testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionLCA)
	testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionOther)
	done := testutil.Create(t, db, &models.Milestone{PetitionID: &i140.ID, MilestoneType: models.MilestoneI140Filed, Status: models.MilestoneStatusCompleted})
	db.Model(done).Update("completed_date", done.CreatedAt)

	resp := testutil.Do(router, "GET", fmt.Sprintf("/api/v1/case-groups/%d", cg.ID), testutil.AuthHeader(org.BenUser), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got CaseGroupResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, 3, got.PetitionCount)
	require.Len(t, got.Petitions, 3)
	require.NotNil(t, got.ProgressPercentage)
	// I140 at 50%, LCA at 0%, OTHER has no pipeline.
	assert.InDelta(t, 25.0, *got.ProgressPercentage, 0.001)

	resp = testutil.Do(router, "GET", fmt.Sprintf("/api/v1/case-groups/%d", cg.ID), testutil.AuthHeader(org.OtherHR), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListCaseGroups(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	pending := testutil.CaseGroup(t, db, org.Carol.ID, org.HR.ID)
	db.Model(&pending).Update("approval_status", models.ApprovalPending)
	testutil.CaseGroup(t, db, org.Dave.ID, org.OtherHR.ID)

	tests := []struct {
		user  models.User
		query string
		want  int64
	}{
		{org.Admin, "", 3},
		{org.HR, "", 2},
		{org.Manager, "", 1},
		{org.BenUser, "", 1},
		{org.HR, "?approval_status=pending_pm_approval", 1},
		{org.HR, "?beneficiary_id=" + fmt.Sprint(org.Carol.ID), 1},
		{org.Admin, "?pathway_type=EB2_PERM", 3},
	}
	for _, tt := range tests {
		resp := testutil.Do(router, "GET", "/api/v1/case-groups"+tt.query, testutil.AuthHeader(tt.user), nil)
		require.Equal(t, http.StatusOK, resp.Code)
		var page testutil.Page[CaseGroupResponse]
		testutil.Decode(t, resp, &page)
		assert.Equal(t, tt.want, page.Pagination.Total, "%s %s", tt.user.Email, tt.query)
	}
}

func TestUpdateAndDeleteCaseGroup(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	cg := testutil.CaseGroup(t, db, org.Carol.ID, org.HR.ID)
	path := fmt.Sprintf("/api/v1/case-groups/%d", cg.ID)

	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.PM), map[string]interface{}{
		"priority":        "HIGH",
		"approval_status": "PM_APPROVED",
		"beneficiary_id":  org.Alice.ID,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got CaseGroupResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, models.ApprovalDraft, got.ApprovalStatus, "approval status only moves through the workflow")
	assert.Equal(t, org.Carol.ID, got.BeneficiaryID)

	p := testutil.Petition(t, db, org.Carol.ID, &cg.ID, models.PetitionI129)
	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusConflict, resp.Code)

	db.Delete(&p)
	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestApprovalWorkflow(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	cg := testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	base := fmt.Sprintf("/api/v1/case-groups/%d", cg.ID)

	// Approving a draft is not a valid transition.
	resp := testutil.Do(router, "POST", base+"/approve", testutil.AuthHeader(org.PM), nil)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = testutil.Do(router, "POST", base+"/submit", testutil.AuthHeader(org.HR), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got CaseGroupResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.ApprovalPending, got.ApprovalStatus)

	var notified []uint
	db.Model(&models.Notification{}).Where("type = ?", models.NotificationCaseApprovalRequested).Pluck("user_id", &notified)
	assert.Equal(t, []uint{org.PM.ID}, notified)

	resp = testutil.Do(router, "POST", base+"/submit", testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusConflict, resp.Code, "already pending")

	resp = testutil.Do(router, "POST", base+"/approve", testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = testutil.Do(router, "POST", base+"/reject", testutil.AuthHeader(org.PM), RejectRequest{Reason: "Missing degree evaluation"})
	require.Equal(t, http.StatusOK, resp.Code)
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.ApprovalRejected, got.ApprovalStatus)
	assert.Equal(t, "Missing degree evaluation", got.RejectionReason)

	resp = testutil.Do(router, "POST", base+"/submit", testutil.AuthHeader(org.HR), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = testutil.Do(router, "POST", base+"/approve", testutil.AuthHeader(org.PM), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	got = CaseGroupResponse{}
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)
	assert.Equal(t, models.CaseStatusInProgress, got.Status)
	require.NotNil(t, got.ApprovedByID)
	assert.Equal(t, org.PM.ID, *got.ApprovedByID)
	assert.NotNil(t, got.ApprovedAt)
	assert.Empty(t, got.RejectionReason)

	var actions []string
	db.Model(&models.AuditLog{}).Where("entity_type = ? AND action IN ?", "case_group", []models.AuditAction{models.AuditApprove, models.AuditReject}).
		Order("id").Pluck("action", &actions)
	assert.Equal(t, []string{"REJECT", "APPROVE"}, actions)

	var approved int64
	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", org.HR.ID, models.NotificationCaseApproved).Count(&approved)
	assert.Equal(t, int64(1), approved)

	resp = testutil.Do(router, "POST", base+"/reject", testutil.AuthHeader(org.PM), RejectRequest{Reason: "late"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestOtherContractPMCannotApprove(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	cg := testutil.CaseGroup(t, db, org.Dave.ID, org.OtherHR.ID)
	db.Model(&cg).Update("approval_status", models.ApprovalPending)

	resp := testutil.Do(router, "POST", fmt.Sprintf("/api/v1/case-groups/%d/approve", cg.ID), testutil.AuthHeader(org.PM), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = testutil.Do(router, "POST", fmt.Sprintf("/api/v1/case-groups/%d/approve", cg.ID), testutil.AuthHeader(org.Admin), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}
