package dashboard

import (
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/reports"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VisaWarningDays is the window for the expiring visas count.
const VisaWarningDays = 90

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler handles dashboard requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new dashboard handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Summary is the caller's landing page overview
type Summary struct {
	Beneficiaries       int64            `json:"beneficiaries"`
	ActiveCaseGroups    int64            `json:"active_case_groups"`
	PendingApprovals    int64            `json:"pending_approvals"`
	PetitionsByStatus   map[string]int64 `json:"petitions_by_status"`
	OpenRFEs            int64            `json:"open_rfes"`
	MyOpenTodos         int64            `json:"my_open_todos"`
	MyOverdueTodos      int64            `json:"my_overdue_todos"`
	UnreadNotifications int64            `json:"unread_notifications"`
	VisasExpiring       int64            `json:"visas_expiring"`
}

// GetSummary returns scoped counts for the dashboard
// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} Summary
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	actor := access.FromContext(c)
	scope, ok := access.ScopeOf(c)
	if !ok {
		return
	}
	today := httputil.StartOfDay(nowFunc())
	closedTodos := []models.TodoStatus{models.TodoStatusCompleted, models.TodoStatusCancelled}
	myOpen := func() *gorm.DB {
		return h.db.Model(&models.Todo{}).Where("assigned_to_id = ? AND status NOT IN ?", actor.ID(), closedTodos)
	}
	groups := func() *gorm.DB { return scope.Owned(h.db.Model(&models.CaseGroup{}), "case_groups.beneficiary_id") }

	var s Summary
	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&s.Beneficiaries, scope.Beneficiaries(h.db.Model(&models.Beneficiary{})).Where("is_active = ?", true)},
		{&s.ActiveCaseGroups, groups().Where("status IN ?", []models.CaseStatus{models.CaseStatusPlanning, models.CaseStatusInProgress})},
		{&s.PendingApprovals, groups().Where("approval_status = ?", models.ApprovalPending)},
		{&s.OpenRFEs, scope.ViaPetition(h.db.Model(&models.RFE{}), "rfes.petition_id").
			Where("status IN ?", []models.RFEStatus{models.RFEStatusReceived, models.RFEStatusInProgress})},
		{&s.MyOpenTodos, myOpen()},
		{&s.MyOverdueTodos, myOpen().Where("due_date < ?", today)},
		{&s.UnreadNotifications, h.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", actor.ID(), false)},
		{&s.VisasExpiring, scope.Beneficiaries(h.db.Model(&models.Beneficiary{})).
			Where("is_active = ? AND current_visa_expiration >= ? AND current_visa_expiration < ?",
				true, today, today.AddDate(0, 0, VisaWarningDays+1))},
	}
	for _, ct := range counts {
		n, err := reports.Count(ct.q)
		if err != nil {
			apierror.Internal(c, err, "Failed to build dashboard")
			return
		}
		*ct.dst = n
	}

	byStatus, err := reports.CountBy(scope.Owned(h.db.Model(&models.Petition{}), "petitions.beneficiary_id"), "status")
	if err != nil {
		apierror.Internal(c, err, "Failed to build dashboard")
		return
	}
	s.PetitionsByStatus = byStatus
	c.JSON(http.StatusOK, s)
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.GetSummary)
}
