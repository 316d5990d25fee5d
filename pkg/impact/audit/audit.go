// Package audit records who changed what through the API.
package audit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/logging"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Entry describes one audited write.
type Entry struct {
	UserID     *uint
	Action     models.AuditAction
	EntityType string
	EntityID   uint
	Changes    interface{}
}

// Record stores e together with the request's client details. Failures are
// logged and never fail the request that triggered them.
func Record(db *gorm.DB, c *gin.Context, e Entry) {
	row := models.AuditLog{
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
	}
	if e.Changes != nil {
		if b, err := json.Marshal(e.Changes); err == nil {
			row.Changes = string(b)
		}
	}
	if c != nil {
		row.IPAddress = c.ClientIP()
		row.UserAgent = c.Request.UserAgent()
		row.RequestID = logging.GetRequestID(c)
	}
	if err := db.Create(&row).Error; err != nil {
		slog.Default().Warn("failed to write audit log",
			"error", err,
			"action", e.Action,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
		)
	}
}

// Handler serves the audit log to administrators
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new audit handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// List returns audit log rows, newest first
// @Summary List audit logs
// @Tags audit
// @Produce json
// @Param user_id query int false "Filter by acting user"
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query int false "Filter by entity id"
// @Param action query string false "Filter by action"
// @Param since query string false "Only rows at or after this date"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}

	q := h.db.Model(&models.AuditLog{})
	userID, ok := httputil.QueryUint(c, "user_id")
	if !ok {
		return
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if et := c.Query("entity_type"); et != "" {
		q = q.Where("entity_type = ?", et)
	}
	entityID, ok := httputil.QueryUint(c, "entity_id")
	if !ok {
		return
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	since, ok := httputil.QueryDate(c, "since")
	if !ok {
		return
	}
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count audit logs")
		return
	}
	var rows []models.AuditLog
	if err := p.Apply(q.Order("created_at DESC, id DESC")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch audit logs")
		return
	}
	c.JSON(http.StatusOK, httputil.NewList(rows, p, total))
}

// EmailLogs returns the email delivery log, newest first
// @Summary List email logs
// @Tags admin
// @Produce json
// @Param status query string false "SENT, FAILED or SKIPPED"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/email-logs [get]
func (h *Handler) EmailLogs(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q := h.db.Model(&models.EmailLog{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count email logs")
		return
	}
	var rows []models.EmailLog
	if err := p.Apply(q.Order("created_at DESC, id DESC")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch email logs")
		return
	}
	c.JSON(http.StatusOK, httputil.NewList(rows, p, total))
}

// RegisterRoutes registers the audit routes. rg must already be restricted
// to administrators.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", h.List)
	rg.GET("/admin/email-logs", h.EmailLogs)
}
