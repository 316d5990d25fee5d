package casegroups

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/notifications"
	"github.com/gin-gonic/gin"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// RejectRequest carries the reason a PM gives for sending a case group back
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

// transition moves cg from one of from to the given approval status, or
// answers 409 when the current state does not allow it.
func (h *Handler) transition(c *gin.Context, cg *models.CaseGroup, to models.ApprovalStatus, updates map[string]interface{}, from ...models.ApprovalStatus) bool {
	allowed := false
	for _, s := range from {
		if cg.ApprovalStatus == s {
			allowed = true
			break
		}
	}
	if !allowed {
		apierror.InvalidOperation(c, fmt.Sprintf("Cannot move case group from %s to %s", cg.ApprovalStatus, to))
		return false
	}
	updates["approval_status"] = to
	res := h.db.Model(&models.CaseGroup{}).
		Where("id = ? AND approval_status = ?", cg.ID, cg.ApprovalStatus).
		Updates(updates)
	if res.Error != nil {
		apierror.Internal(c, res.Error, "Failed to update case group")
		return false
	}
	if res.RowsAffected == 0 {
		apierror.InvalidOperation(c, "Case group was changed concurrently")
		return false
	}
	h.db.First(cg, cg.ID)
	return true
}

// canDecide reports whether the actor may approve or reject case groups of b.
func canDecide(actor *access.Actor, b *models.Beneficiary) bool {
	return actor.IsAdmin() || (actor.Is(models.RolePM) && actor.InContract(b.ContractID))
}

func caseLink(cg *models.CaseGroup) string {
	return fmt.Sprintf("/case-groups/%d", cg.ID)
}

// Submit sends a case group for PM approval
// @Summary Submit case group for approval
// @Tags case-groups
// @Produce json
// @Param id path int true "Case group ID"
// @Success 200 {object} CaseGroupResponse
// @Failure 409 {object} apierror.APIError "Not in DRAFT or PM_REJECTED"
// @Security BearerAuth
// @Router /case-groups/{id}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	actor := access.FromContext(c)
	cg, b, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	if !h.transition(c, cg, models.ApprovalPending, map[string]interface{}{"rejection_reason": ""},
		models.ApprovalDraft, models.ApprovalRejected) {
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "case_group", EntityID: cg.ID,
		Changes: map[string]interface{}{"approval_status": cg.ApprovalStatus}})

	var pms []uint
	if b.ContractID != nil {
		h.db.Model(&models.User{}).
			Where("role = ? AND contract_id = ? AND is_active = ?", models.RolePM, *b.ContractID, true).
			Order("id").Pluck("id", &pms)
	}
	notifications.Dispatch(c, h.db, pms, notifications.Input{
		Type:       models.NotificationCaseApprovalRequested,
		Title:      fmt.Sprintf("Approval requested: %s case for %s", cg.PathwayType, b.FullName()),
		Message:    fmt.Sprintf("%s submitted a %s case group for your approval.", actor.User.FullName, cg.PathwayType),
		Link:       caseLink(cg),
		EntityType: "case_group",
		EntityID:   cg.ID,
	})
	h.respond(c, http.StatusOK, *cg)
}

// Approve approves a pending case group and starts work on it
// @Summary Approve case group
// @Tags case-groups
// @Produce json
// @Param id path int true "Case group ID"
// @Success 200 {object} CaseGroupResponse
// @Failure 409 {object} apierror.APIError "Not pending approval"
// @Security BearerAuth
// @Router /case-groups/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	actor := access.FromContext(c)
	cg, ok := h.load(c)
	if !ok {
		return
	}
	b, ok := h.beneficiary(c, cg)
	if !ok {
		return
	}
	if !canDecide(actor, b) {
		apierror.Forbidden(c, "Only a PM of the contract can approve this case group")
		return
	}
	now := nowFunc().UTC()
	updates := map[string]interface{}{
		"approved_by_id":   actor.ID(),
		"approved_at":      now,
		"rejection_reason": "",
	}
	if cg.Status == models.CaseStatusPlanning {
		updates["status"] = models.CaseStatusInProgress
	}
	if !h.transition(c, cg, models.ApprovalApproved, updates, models.ApprovalPending) {
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditApprove, EntityType: "case_group", EntityID: cg.ID, Changes: updates})
	notifications.Dispatch(c, h.db, []uint{cg.CreatedByID}, notifications.Input{
		Type:       models.NotificationCaseApproved,
		Title:      fmt.Sprintf("Case approved for %s", b.FullName()),
		Message:    fmt.Sprintf("The %s case group was approved by %s.", cg.PathwayType, actor.User.FullName),
		Link:       caseLink(cg),
		EntityType: "case_group",
		EntityID:   cg.ID,
	})
	h.respond(c, http.StatusOK, *cg)
}

// Reject sends a pending case group back with a reason
// @Summary Reject case group
// @Tags case-groups
// @Accept json
// @Produce json
// @Param id path int true "Case group ID"
// @Param request body RejectRequest true "Rejection reason"
// @Success 200 {object} CaseGroupResponse
// @Failure 409 {object} apierror.APIError "Not pending approval"
// @Security BearerAuth
// @Router /case-groups/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	actor := access.FromContext(c)
	cg, ok := h.load(c)
	if !ok {
		return
	}
	var req RejectRequest
	if !apierror.Bind(c, &req) {
		return
	}
	b, ok := h.beneficiary(c, cg)
	if !ok {
		return
	}
	if !canDecide(actor, b) {
		apierror.Forbidden(c, "Only a PM of the contract can reject this case group")
		return
	}
	updates := map[string]interface{}{"rejection_reason": req.Reason}
	if !h.transition(c, cg, models.ApprovalRejected, updates, models.ApprovalPending) {
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditReject, EntityType: "case_group", EntityID: cg.ID, Changes: updates})
	notifications.Dispatch(c, h.db, []uint{cg.CreatedByID}, notifications.Input{
		Type:       models.NotificationCaseRejected,
		Title:      fmt.Sprintf("Case returned for %s", b.FullName()),
		Message:    req.Reason,
		Link:       caseLink(cg),
		EntityType: "case_group",
		EntityID:   cg.ID,
	})
	h.respond(c, http.StatusOK, *cg)
}
