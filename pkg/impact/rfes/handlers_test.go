package rfes

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

func strp(s string) *string { return &s }

func fixClock(t *testing.T, now time.Time) {
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = time.Now })
}

func TestCreateRFE(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))

	p := testutil.Petition(t, db, org.Alice.ID, nil, models.PetitionI129)
	db.Model(&p).Updates(map[string]interface{}{"status": models.PetitionStatusPending, "responsible_party_id": org.PM.ID})

	req := CreateRFERequest{RFEType: "SPECIALTY_OCCUPATION", ResponseDueDate: strp("2026-04-20")}
	resp := testutil.Do(router, "POST", fmt.Sprintf("/api/v1/petitions/%d/rfes", p.ID), testutil.AuthHeader(org.HR), req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var got RFEResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.RFEStatusReceived, got.Status)
	assert.Equal(t, "2026-04-01", got.ReceivedDate.UTC().Format("2006-01-02"))
	require.NotNil(t, got.DaysUntilDue)
	assert.Equal(t, 19, *got.DaysUntilDue)
	assert.False(t, got.IsOverdue)

	db.First(&p, p.ID)
	assert.Equal(t, models.PetitionStatusRFEReceived, p.Status)

	var m models.Milestone
	require.NoError(t, db.Where("petition_id = ?", p.ID).First(&m).Error)
	assert.Equal(t, models.MilestoneRFEReceived, m.MilestoneType)
	assert.True(t, m.IsCompleted())

	var n models.Notification
	require.NoError(t, db.Where("type = ?", models.NotificationRFEReceived).First(&n).Error)
	assert.Equal(t, org.PM.ID, n.UserID)

	req.ReceivedDate = strp("2026-04-25")
	resp = testutil.Do(router, "POST", fmt.Sprintf("/api/v1/petitions/%d/rfes", p.ID), testutil.AuthHeader(org.HR), req)
	assert.Equal(t, http.StatusBadRequest, resp.Code, "due date before received date")

	resp = testutil.Do(router, "POST", fmt.Sprintf("/api/v1/petitions/%d/rfes", p.ID), testutil.AuthHeader(org.Manager), req)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRespondToRFE(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	fixClock(t, time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC))

	p := testutil.Petition(t, db, org.Carol.ID, nil, models.PetitionI140)
	r := testutil.Create(t, db, &models.RFE{PetitionID: p.ID, RFEType: models.RFETypeAbilityToPay, Status: models.RFEStatusInProgress, ReceivedDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)})
	path := fmt.Sprintf("/api/v1/rfes/%d/respond", r.ID)

	resp := testutil.Do(router, "POST", path, testutil.AuthHeader(org.PM), RespondRequest{SubmittedDate: strp("2026-04-14")})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got RFEResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.RFEStatusResponded, got.Status)
	require.NotNil(t, got.ResponseSubmittedDate)
	assert.Equal(t, "2026-04-14", got.ResponseSubmittedDate.UTC().Format("2006-01-02"))
	assert.Nil(t, got.DaysUntilDue)

	db.First(&p, p.ID)
	assert.Equal(t, models.PetitionStatusRFEResponded, p.Status)
	var milestones int64
	db.Model(&models.Milestone{}).Where("petition_id = ? AND milestone_type = ?", p.ID, models.MilestoneRFEResponded).Count(&milestones)
	assert.Equal(t, int64(1), milestones)

	resp = testutil.Do(router, "POST", path, testutil.AuthHeader(org.PM), nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestUpcomingRFEs(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixClock(t, today.Add(10*time.Hour))

	due := func(days int) *time.Time {
		d := today.AddDate(0, 0, days)
		return &d
	}
	alice := testutil.Petition(t, db, org.Alice.ID, nil, models.PetitionI129)
	dave := testutil.Petition(t, db, org.Dave.ID, nil, models.PetitionI129)
	mk := func(p models.Petition, status models.RFEStatus, d *time.Time) *models.RFE {
		return testutil.Create(t, db, &models.RFE{PetitionID: p.ID, RFEType: models.RFETypeOther, Status: status, ReceivedDate: today, ResponseDueDate: d})
	}
	overdue := mk(alice, models.RFEStatusReceived, due(-2))
	soon := mk(alice, models.RFEStatusInProgress, due(14))
	mk(alice, models.RFEStatusReceived, due(15))
	mk(alice, models.RFEStatusResponded, due(3))
	mk(alice, models.RFEStatusReceived, nil)
	mk(dave, models.RFEStatusReceived, due(1))

	resp := testutil.Do(router, "GET", "/api/v1/rfes/upcoming", testutil.AuthHeader(org.HR), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got []RFEResponse
	testutil.Decode(t, resp, &got)
	require.Len(t, got, 2)
	assert.Equal(t, overdue.ID, got[0].ID)
	assert.True(t, got[0].IsOverdue)
	assert.Equal(t, soon.ID, got[1].ID)
	assert.Equal(t, 14, *got[1].DaysUntilDue)

	resp = testutil.Do(router, "GET", "/api/v1/rfes/upcoming?days=30", testutil.AuthHeader(org.Admin), nil)
	got = nil
	testutil.Decode(t, resp, &got)
	assert.Len(t, got, 4)

	resp = testutil.Do(router, "GET", "/api/v1/rfes/upcoming?days=0", testutil.AuthHeader(org.Admin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRFEDetailScope(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.SeedOrg(t, db)
	router := setupTestRouter(db)

	p := testutil.Petition(t, db, org.Dave.ID, nil, models.PetitionI129)
	r := testutil.Create(t, db, &models.RFE{PetitionID: p.ID, RFEType: models.RFETypeOther, Status: models.RFEStatusReceived, ReceivedDate: time.Now().UTC()})
	path := fmt.Sprintf("/api/v1/rfes/%d", r.ID)

	resp := testutil.Do(router, "GET", path, testutil.AuthHeader(org.HR), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = testutil.Do(router, "PUT", path, testutil.AuthHeader(org.OtherHR), UpdateRFERequest{Notes: strp("gathering pay stubs"), Status: strp("IN_PROGRESS")})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got RFEResponse
	testutil.Decode(t, resp, &got)
	assert.Equal(t, models.RFEStatusInProgress, got.Status)
	assert.Equal(t, "gathering pay stubs", got.Notes)

	resp = testutil.Do(router, "DELETE", path, testutil.AuthHeader(org.OtherHR), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}
