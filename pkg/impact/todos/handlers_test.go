package todos

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

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

var today = time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

func fixClock(t *testing.T) {
	nowFunc = func() time.Time { return today.Add(14 * time.Hour) }
	t.Cleanup(func() { nowFunc = time.Now })
}

func day(offset int) *time.Time {
	d := today.AddDate(0, 0, offset)
	return &d
}

func uptr(v uint) *uint { return &v }

func strp(s string) *string { return &s }

func TestCreateTodoResolvesAncestry(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	cg := testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	p := testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionI140)

	req := CreateTodoRequest{Title: "Collect pay stubs", VisaApplicationID: &p.ID, AssignedToID: &org.PM.ID, DueDate: strp("2026-07-20")}
	resp := testutil.Do(router, "POST", "/api/v1/todos", testutil.AuthHeader(org.HR), req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var got TodoResponse
	testutil.Decode(t, resp, &got)
	require.NotNil(t, got.PetitionID)
	assert.Equal(t, p.ID, *got.PetitionID)
	require.NotNil(t, got.CaseGroupID)
	assert.Equal(t, cg.ID, *got.CaseGroupID)
	require.NotNil(t, got.BeneficiaryID)
	assert.Equal(t, org.Alice.ID, *got.BeneficiaryID)
	assert.Equal(t, models.TodoStatusTodo, got.Status)
	assert.False(t, got.IsOverdue)

	var n models.Notification
	require.NoError(t, db.Where("type = ?", models.NotificationTodoAssigned).First(&n).Error)
	assert.Equal(t, org.PM.ID, n.UserID)

	resp = testutil.Do(router, "POST", "/api/v1/todos", testutil.AuthHeader(org.HR), CreateTodoRequest{Title: "Ghost", PetitionID: uptr(999)})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = testutil.Do(router, "POST", "/api/v1/todos", testutil.AuthHeader(org.HR), CreateTodoRequest{Title: "Elsewhere", BeneficiaryID: &org.Dave.ID})
	assert.Equal(t, http.StatusBadRequest, resp.Code, "beneficiary outside scope")
}

func TestListTodosScopeAndFilters(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	mk := func(todo models.Todo) *models.Todo {
		if todo.Status == "" {
			todo.Status = models.TodoStatusTodo
		}
		if todo.Priority == "" {
			todo.Priority = models.PriorityMedium
		}
		return testutil.Create(t, db, &todo)
	}
	mk(models.Todo{Title: "alice overdue", CreatedByID: org.HR.ID, BeneficiaryID: &org.Alice.ID, DueDate: day(-3)})
	mk(models.Todo{Title: "alice done late", CreatedByID: org.HR.ID, BeneficiaryID: &org.Alice.ID, DueDate: day(-3), Status: models.TodoStatusCompleted, CompletedAt: day(-1)})
	mk(models.Todo{Title: "hr personal", CreatedByID: org.HR.ID, DueDate: day(5)})
	mk(models.Todo{Title: "assigned to manager", CreatedByID: org.Admin.ID, AssignedToID: &org.Manager.ID, Priority: models.PriorityHigh})
	mk(models.Todo{Title: "dave", CreatedByID: org.OtherHR.ID, BeneficiaryID: &org.Dave.ID, DueDate: day(-1)})

	tests := []struct {
		user  models.User
		query string
		want  int64
	}{
		{org.Admin, "", 5},
		{org.HR, "", 3},
		{org.BenUser, "", 2},
		{org.Manager, "", 3},
		{org.OtherHR, "", 1},
		{org.Admin, "?overdue=true", 2},
		{org.HR, "?overdue=true", 1},
		{org.Admin, "?priority=high", 1},
		{org.Admin, "?status=COMPLETED", 1},
		{org.Admin, "?assigned_to_id=" + fmt.Sprint(org.Manager.ID), 1},
		{org.Admin, "?due_before=2026-07-14", 3},
		{org.Admin, "?due_after=2026-07-15", 1},
		{org.Admin, "?beneficiary_id=" + fmt.Sprint(org.Alice.ID), 2},
	}
	for _, tt := range tests {
		resp := testutil.Do(router, "GET", "/api/v1/todos"+tt.query, testutil.AuthHeader(tt.user), nil)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		var page testutil.Page[TodoResponse]
		testutil.Decode(t, resp, &page)
		assert.Equal(t, tt.want, page.Pagination.Total, "%s %s", tt.user.Email, tt.query)
	}

	resp := testutil.Do(router, "GET", "/api/v1/todos?overdue=true", testutil.AuthHeader(org.HR), nil)
	var page testutil.Page[TodoResponse]
	testutil.Decode(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsOverdue)
	assert.Equal(t, 3, page.Items[0].DaysOverdue)
}

func TestUpdateTodo(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	todo := testutil.Create(t, db, &models.Todo{Title: "Book biometrics", Status: models.TodoStatusTodo, Priority: models.PriorityLow, CreatedByID: org.BenUser.ID, BeneficiaryID: &org.Alice.ID})
	path := fmt.Sprintf("/api/v1/todos/%d", todo.ID)

	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.BenUser), UpdateTodoRequest{AssignedToID: &org.HR.ID, Status: strp("IN_PROGRESS")})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var assigned int64
	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", org.HR.ID, models.NotificationTodoAssigned).Count(&assigned)
	assert.Equal(t, int64(1), assigned)

	// Same assignee again: no second notification.
	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.BenUser), UpdateTodoRequest{AssignedToID: &org.HR.ID})
	require.Equal(t, http.StatusOK, resp.Code)
	db.Model(&models.Notification{}).Where("type = ?", models.NotificationTodoAssigned).Count(&assigned)
	assert.Equal(t, int64(1), assigned)

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateTodoRequest{Status: strp("COMPLETED")})
	require.Equal(t, http.StatusOK, resp.Code)
	var got TodoResponse
	testutil.Decode(t, resp, &got)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.DaysToComplete)

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateTodoRequest{Status: strp("TODO")})
	require.Equal(t, http.StatusOK, resp.Code)
	got = TodoResponse{}
	testutil.Decode(t, resp, &got)
	assert.Nil(t, got.CompletedAt)

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.OtherHR), UpdateTodoRequest{Title: strp("x")})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateTodoClearsDueDate(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	todo := testutil.Create(t, db, &models.Todo{Title: "Renew passport", Status: models.TodoStatusTodo, Priority: models.PriorityMedium, CreatedByID: org.HR.ID, DueDate: day(-2)})
	path := fmt.Sprintf("/api/v1/todos/%d", todo.ID)

	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateTodoRequest{DueDate: strp("")})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got TodoResponse
	testutil.Decode(t, resp, &got)
	assert.Nil(t, got.DueDate)
	assert.False(t, got.IsOverdue)

	var stored models.Todo
	require.NoError(t, db.First(&stored, todo.ID).Error)
	assert.Nil(t, stored.DueDate)

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateTodoRequest{DueDate: strp("next week")})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateTodoUnlinksPetition(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	cg := testutil.CaseGroup(t, db, org.Alice.ID, org.HR.ID)
	p := testutil.Petition(t, db, org.Alice.ID, &cg.ID, models.PetitionI140)
	todo := testutil.Create(t, db, &models.Todo{Title: "Gather evidence", Status: models.TodoStatusTodo, Priority: models.PriorityMedium, CreatedByID: org.HR.ID, PetitionID: &p.ID})
	require.NotNil(t, todo.CaseGroupID)
	path := fmt.Sprintf("/api/v1/todos/%d", todo.ID)

	resp := testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateTodoRequest{PetitionID: uptr(0)})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got TodoResponse
	testutil.Decode(t, resp, &got)
	assert.Nil(t, got.PetitionID)
	assert.Nil(t, got.CaseGroupID)
	require.NotNil(t, got.BeneficiaryID)
	assert.Equal(t, org.Alice.ID, *got.BeneficiaryID)

	var stored models.Todo
	require.NoError(t, db.First(&stored, todo.ID).Error)
	assert.Nil(t, stored.CaseGroupID)

	// An explicit case group alongside the unlink is kept.
	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.HR), UpdateTodoRequest{PetitionID: uptr(0), CaseGroupID: &cg.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	got = TodoResponse{}
	testutil.Decode(t, resp, &got)
	require.NotNil(t, got.CaseGroupID)
	assert.Equal(t, cg.ID, *got.CaseGroupID)
}

func TestUpdateTodoAssigneeLookupError(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	todo := testutil.Create(t, db, &models.Todo{Title: "File I-9", Status: models.TodoStatusTodo, Priority: models.PriorityMedium, CreatedByID: org.HR.ID})
	testutil.FailCounts(t, db, "users", errors.New("connection reset"))

	resp := testutil.Do(router, "PUT", fmt.Sprintf("/api/v1/todos/%d", todo.ID), testutil.AuthHeader(org.HR), UpdateTodoRequest{AssignedToID: &org.PM.ID})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	var stored models.Todo
	require.NoError(t, db.First(&stored, todo.ID).Error)
	assert.Nil(t, stored.AssignedToID)
}

func TestCompleteAndDeleteTodo(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	todo := testutil.Create(t, db, &models.Todo{Title: "Sign G-28", Status: models.TodoStatusTodo, Priority: models.PriorityMedium, CreatedByID: org.HR.ID, AssignedToID: &org.BenUser.ID, DueDate: day(2)})
	path := fmt.Sprintf("/api/v1/todos/%d", todo.ID)

	resp := testutil.Do(router, "POST", path+"/complete", testutil.AuthHeader(org.BenUser), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got TodoResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.TodoStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedOnTime)
	assert.True(t, *got.CompletedOnTime)

	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.BenUser), nil)
	assert.Equal(t, http.StatusForbidden, resp.Code, "assignee cannot delete")

	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = testutil.Do(router, "GET", path, testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTodoStats(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t)

	mk := func(status models.TodoStatus, due, completed *time.Time) {
		todo := testutil.Create(t, db, &models.Todo{Title: "t", Status: status, Priority: models.PriorityLow, CreatedByID: org.PM.ID, DueDate: due, CompletedAt: completed})
		db.Model(todo).UpdateColumn("created_at", today.AddDate(0, 0, -10))
	}
	mk(models.TodoStatusTodo, day(-2), nil)
	mk(models.TodoStatusBlocked, day(3), nil)
	mk(models.TodoStatusCompleted, day(-5), day(-4))
	mk(models.TodoStatusCompleted, day(-5), day(-6))
	mk(models.TodoStatusCancelled, day(-9), nil)

	resp := testutil.Do(router, "GET", "/api/v1/todos/stats", testutil.AuthHeader(org.PM), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var s StatsResponse
	testutil.Decode(t, resp, &s)
	assert.Equal(t, int64(5), s.Total)
	assert.Equal(t, int64(2), s.ByStatus[models.TodoStatusCompleted])
	assert.Equal(t, int64(0), s.ByStatus[models.TodoStatusInProgress])
	assert.Equal(t, int64(1), s.Overdue)
	assert.Equal(t, int64(1), s.CompletedOnTime)
	assert.Equal(t, int64(1), s.CompletedLate)
	require.NotNil(t, s.AverageDaysToComplete)
	// Created ten days ago, completed four and six days ago.
	assert.InDelta(t, 5.0, *s.AverageDaysToComplete, 0.001)
}
