package notifications

import (
	"errors"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler serves the caller's notifications
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new notifications handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UnreadCountResponse is the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func (h *Handler) own(c *gin.Context) *gorm.DB {
	return h.db.Model(&models.Notification{}).Where("user_id = ?", access.FromContext(c).ID())
}

func (h *Handler) load(c *gin.Context) (*models.Notification, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	var n models.Notification
	if err := h.own(c).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "Notification not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch notification")
		}
		return nil, false
	}
	return &n, true
}

// List returns the caller's notifications, newest first
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Param unread_only query bool false "Only unread notifications"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q := h.own(c)
	unread, ok := httputil.QueryBool(c, "unread_only")
	if !ok {
		return
	}
	if unread != nil && *unread {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count notifications")
		return
	}
	var rows []models.Notification
	if err := p.Apply(q.Order("created_at DESC, id DESC")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, httputil.NewList(rows, p, total))
}

// UnreadCount returns how many notifications are unread
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} UnreadCountResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	var resp UnreadCountResponse
	if err := h.own(c).Where("is_read = ?", false).Count(&resp.Count).Error; err != nil {
		apierror.Internal(c, err, "Failed to count notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} models.Notification
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	n, ok := h.load(c)
	if !ok {
		return
	}
	if !n.IsRead {
		now := nowFunc()
		if err := h.db.Model(n).Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
			apierror.Internal(c, err, "Failed to update notification")
			return
		}
		n.IsRead = true
		n.ReadAt = &now
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllRead marks every unread notification of the caller read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *Handler) MarkAllRead(c *gin.Context) {
	res := h.own(c).Where("is_read = ?", false).Updates(map[string]interface{}{"is_read": true, "read_at": nowFunc()})
	if res.Error != nil {
		apierror.Internal(c, res.Error, "Failed to update notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}

// Delete removes one of the caller's notifications
// @Summary Delete notification
// @Tags notifications
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	n, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.db.Delete(n).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// Cleanup deletes read notifications older than ?days (default 90)
// @Summary Clean up old notifications
// @Tags admin
// @Produce json
// @Param days query int false "Age in days"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /admin/notifications/cleanup [post]
func (h *Handler) Cleanup(c *gin.Context) {
	days, ok := httputil.QueryInt(c, "days", 90, 1, 3650)
	if !ok {
		return
	}
	deleted, err := Cleanup(h.db, days, nowFunc())
	if err != nil {
		apierror.Internal(c, err, "Failed to clean up notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// CheckDeadlines scans for overdue todos, due RFEs and expiring visas
// @Summary Run the deadline check
// @Tags admin
// @Produce json
// @Success 200 {object} CheckResult
// @Security BearerAuth
// @Router /admin/notifications/check-deadlines [post]
func (h *Handler) CheckDeadlines(c *gin.Context) {
	res, err := Get().CheckDeadlines(c.Request.Context(), h.db, nowFunc())
	if err != nil {
		apierror.Internal(c, err, "Failed to check deadlines")
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterRoutes registers the caller's notification routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	n := rg.Group("/notifications")
	n.GET("", h.List)
	n.GET("/unread-count", h.UnreadCount)
	n.POST("/read-all", h.MarkAllRead)
	n.POST("/:id/read", h.MarkRead)
	n.DELETE("/:id", h.Delete)
}

// RegisterAdminRoutes registers maintenance routes. admin must already be
// restricted to administrators.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/notifications/cleanup", h.Cleanup)
	admin.POST("/notifications/check-deadlines", h.CheckDeadlines)
}
