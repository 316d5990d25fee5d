package users

import (
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
)

// UpdateSettingsRequest represents a partial settings update
type UpdateSettingsRequest struct {
	EmailNotifications    *bool   `json:"email_notifications"`
	NotifyDeadlines       *bool   `json:"notify_deadlines"`
	NotifyStatusChanges   *bool   `json:"notify_status_changes"`
	NotifyTodoAssignments *bool   `json:"notify_todo_assignments"`
	Timezone              *string `json:"timezone" binding:"omitempty,max=64"`
	Theme                 *string `json:"theme" binding:"omitempty,oneof=light dark system"`
	ItemsPerPage          *int    `json:"items_per_page" binding:"omitempty,min=1,max=100"`
}

// GetSettings returns the caller's settings
// @Summary Get my settings
// @Tags users
// @Produce json
// @Success 200 {object} models.UserSettings
// @Security BearerAuth
// @Router /users/me/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	s, err := models.LoadUserSettings(h.db, access.FromContext(c).ID())
	if err != nil {
		apierror.Internal(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSettings changes the caller's settings
// @Summary Update my settings
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings to change"
// @Success 200 {object} models.UserSettings
// @Security BearerAuth
// @Router /users/me/settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if !apierror.Bind(c, &req) {
		return
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			apierror.BadRequest(c, "Unknown timezone")
			return
		}
	}

	s, err := models.LoadUserSettings(h.db, access.FromContext(c).ID())
	if err != nil {
		apierror.Internal(c, err, "Failed to load settings")
		return
	}

	updates := map[string]interface{}{}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.NotifyDeadlines != nil {
		updates["notify_deadlines"] = *req.NotifyDeadlines
	}
	if req.NotifyStatusChanges != nil {
		updates["notify_status_changes"] = *req.NotifyStatusChanges
	}
	if req.NotifyTodoAssignments != nil {
		updates["notify_todo_assignments"] = *req.NotifyTodoAssignments
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}
	if req.ItemsPerPage != nil {
		updates["items_per_page"] = *req.ItemsPerPage
	}
	if len(updates) > 0 {
		if err := h.db.Model(&s).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update settings")
			return
		}
		h.db.First(&s, s.ID)
	}
	c.JSON(http.StatusOK, s)
}
