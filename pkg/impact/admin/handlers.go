// Package admin serves system-wide figures to administrators.
package admin

import (
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/reports"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var nowFunc = time.Now

// Handler handles admin requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new admin handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// StatsResponse represents system statistics
type StatsResponse struct {
	TotalUsers          int64            `json:"total_users"`
	ActiveUsers         int64            `json:"active_users"`
	UsersByRole         map[string]int64 `json:"users_by_role"`
	TotalContracts      int64            `json:"total_contracts"`
	TotalDepartments    int64            `json:"total_departments"`
	TotalBeneficiaries  int64            `json:"total_beneficiaries"`
	TotalCaseGroups     int64            `json:"total_case_groups"`
	TotalPetitions      int64            `json:"total_petitions"`
	TotalRFEs           int64            `json:"total_rfes"`
	OpenTodos           int64            `json:"open_todos"`
	UnreadNotifications int64            `json:"unread_notifications"`
	EmailsSent          int64            `json:"emails_sent"`
	EmailsFailed        int64            `json:"emails_failed"`
	ActiveAPIKeys       int64            `json:"active_api_keys"`
	AuditEntriesToday   int64            `json:"audit_entries_today"`
}

// GetStats returns system statistics
// @Summary System statistics
// @Tags admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	var stats StatsResponse
	now := nowFunc().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dest *int64
		q    *gorm.DB
	}{
		{&stats.TotalUsers, h.db.Model(&models.User{})},
		{&stats.ActiveUsers, h.db.Model(&models.User{}).Where("is_active = ?", true)},
		{&stats.TotalContracts, h.db.Model(&models.Contract{})},
		{&stats.TotalDepartments, h.db.Model(&models.Department{})},
		{&stats.TotalBeneficiaries, h.db.Model(&models.Beneficiary{})},
		{&stats.TotalCaseGroups, h.db.Model(&models.CaseGroup{})},
		{&stats.TotalPetitions, h.db.Model(&models.Petition{})},
		{&stats.TotalRFEs, h.db.Model(&models.RFE{})},
		{&stats.OpenTodos, h.db.Model(&models.Todo{}).
			Where("status NOT IN ?", []models.TodoStatus{models.TodoStatusCompleted, models.TodoStatusCancelled})},
		{&stats.UnreadNotifications, h.db.Model(&models.Notification{}).Where("is_read = ?", false)},
		{&stats.EmailsSent, h.db.Model(&models.EmailLog{}).Where("status = ?", models.EmailStatusSent)},
		{&stats.EmailsFailed, h.db.Model(&models.EmailLog{}).Where("status = ?", models.EmailStatusFailed)},
		{&stats.ActiveAPIKeys, h.db.Model(&models.APIKey{}).Where("expires_at IS NULL OR expires_at > ?", now)},
		{&stats.AuditEntriesToday, h.db.Model(&models.AuditLog{}).Where("created_at >= ?", today)},
	}
	for _, cnt := range counts {
		n, err := reports.Count(cnt.q)
		if err != nil {
			apierror.Internal(c, err, "Failed to compute statistics")
			return
		}
		*cnt.dest = n
	}

	byRole, err := reports.CountBy(h.db.Model(&models.User{}), "role")
	if err != nil {
		apierror.Internal(c, err, "Failed to compute statistics")
		return
	}
	stats.UsersByRole = byRole

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers admin routes. admin must already be restricted
// to administrators.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.GetStats)
}
