package casegroups

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/petitions"
	"github.com/ama-impact/ama-impact/pkg/impact/pipeline"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles case group requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new case groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateCaseGroupRequest represents the request to create a case group
type CreateCaseGroupRequest struct {
	BeneficiaryID        uint    `json:"beneficiary_id" binding:"required"`
	PathwayType          string  `json:"pathway_type" binding:"required,oneof=H1B_INITIAL H1B_EXTENSION H1B_TRANSFER L1 O1 TN EB1 EB2_PERM EB2_NIW EB3_PERM GREEN_CARD_FAMILY OTHER"`
	Status               string  `json:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED CANCELLED ON_HOLD"`
	Priority             string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	ResponsiblePartyID   *uint   `json:"responsible_party_id"`
	LawFirmID            *uint   `json:"law_firm_id"`
	AttorneyName         string  `json:"attorney_name" binding:"max=200"`
	CaseNumber           string  `json:"case_number" binding:"max=100"`
	Notes                string  `json:"notes"`
	TargetCompletionDate *string `json:"target_completion_date" binding:"omitempty,isodate"`
}

// UpdateCaseGroupRequest represents the request to update a case group.
// The beneficiary and the approval status cannot be changed here.
type UpdateCaseGroupRequest struct {
	PathwayType          *string `json:"pathway_type" binding:"omitempty,oneof=H1B_INITIAL H1B_EXTENSION H1B_TRANSFER L1 O1 TN EB1 EB2_PERM EB2_NIW EB3_PERM GREEN_CARD_FAMILY OTHER"`
	Status               *string `json:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED CANCELLED ON_HOLD"`
	Priority             *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	ResponsiblePartyID   *uint   `json:"responsible_party_id"`
	LawFirmID            *uint   `json:"law_firm_id"`
	AttorneyName         *string `json:"attorney_name" binding:"omitempty,max=200"`
	CaseNumber           *string `json:"case_number" binding:"omitempty,max=100"`
	Notes                *string `json:"notes"`
	TargetCompletionDate *string `json:"target_completion_date" binding:"omitempty,isodate"`
}

// CaseGroupResponse is a case group with its petitions' progress
type CaseGroupResponse struct {
	models.CaseGroup
	BeneficiaryName    string                       `json:"beneficiary_name"`
	PetitionCount      int                          `json:"petition_count"`
	ProgressPercentage *float64                     `json:"progress_percentage"`
	Petitions          []petitions.PetitionResponse `json:"petitions,omitempty"`
}

// responses builds responses for groups. Petitions are only embedded when
// withPetitions is set.
func (h *Handler) responses(groups []models.CaseGroup, withPetitions bool) ([]CaseGroupResponse, error) {
	out := make([]CaseGroupResponse, len(groups))
	if len(groups) == 0 {
		return out, nil
	}
	ids := make([]uint, len(groups))
	benIDs := make([]uint, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
		benIDs[i] = g.BeneficiaryID
	}

	var rows []models.Petition
	if err := h.db.Where("case_group_id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading petitions: %w", err)
	}
	resps, results, err := petitions.Responses(h.db, rows)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[uint][]int, len(groups))
	for i, p := range rows {
		byGroup[*p.CaseGroupID] = append(byGroup[*p.CaseGroupID], i)
	}

	var bens []models.Beneficiary
	if err := h.db.Unscoped().Select("id", "first_name", "last_name").Where("id IN ?", benIDs).Find(&bens).Error; err != nil {
		return nil, fmt.Errorf("loading beneficiary names: %w", err)
	}
	names := make(map[uint]string, len(bens))
	for _, b := range bens {
		names[b.ID] = b.FullName()
	}

	for i, g := range groups {
		idx := byGroup[g.ID]
		groupResults := make([]pipeline.Result, len(idx))
		var embedded []petitions.PetitionResponse
		for j, k := range idx {
			groupResults[j] = results[k]
			if withPetitions {
				embedded = append(embedded, resps[k])
			}
		}
		r := CaseGroupResponse{
			CaseGroup:       g,
			BeneficiaryName: names[g.BeneficiaryID],
			PetitionCount:   len(idx),
			Petitions:       embedded,
		}
		if pct, ok := pipeline.CaseGroupProgress(groupResults); ok {
			r.ProgressPercentage = &pct
		}
		if withPetitions && r.Petitions == nil {
			r.Petitions = []petitions.PetitionResponse{}
		}
		out[i] = r
	}
	return out, nil
}

// respond writes cg with its petitions embedded.
func (h *Handler) respond(c *gin.Context, status int, cg models.CaseGroup) {
	out, err := h.responses([]models.CaseGroup{cg}, true)
	if err != nil {
		apierror.Internal(c, err, "Failed to build case group response")
		return
	}
	c.JSON(status, out[0])
}

func (h *Handler) load(c *gin.Context) (*models.CaseGroup, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	return access.LoadCaseGroup(c, h.db, id)
}

func (h *Handler) beneficiary(c *gin.Context, cg *models.CaseGroup) (*models.Beneficiary, bool) {
	var b models.Beneficiary
	if err := h.db.Unscoped().First(&b, cg.BeneficiaryID).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiary")
		return nil, false
	}
	return &b, true
}

// canEdit reports whether the actor may change case groups of b. Managers
// may edit any case group they can see.
func canEdit(actor *access.Actor, b *models.Beneficiary) bool {
	return petitions.CanWrite(actor, b) || actor.Is(models.RoleManager)
}

// loadForWrite loads the case group and its beneficiary and checks edit rights.
func (h *Handler) loadForWrite(c *gin.Context) (*models.CaseGroup, *models.Beneficiary, bool) {
	cg, ok := h.load(c)
	if !ok {
		return nil, nil, false
	}
	b, ok := h.beneficiary(c, cg)
	if !ok {
		return nil, nil, false
	}
	if !canEdit(access.FromContext(c), b) {
		apierror.Forbidden(c, "Insufficient permissions to change this case group")
		return nil, nil, false
	}
	return cg, b, true
}

func (h *Handler) checkRefs(c *gin.Context, lawFirmID, responsibleID *uint) bool {
	if lawFirmID != nil {
		var n int64
		h.db.Model(&models.LawFirm{}).Where("id = ?", *lawFirmID).Count(&n)
		if n == 0 {
			apierror.BadRequest(c, "Law firm does not exist")
			return false
		}
	}
	if responsibleID != nil {
		var n int64
		h.db.Model(&models.User{}).Where("id = ?", *responsibleID).Count(&n)
		if n == 0 {
			apierror.BadRequest(c, "Responsible party does not exist")
			return false
		}
	}
	return true
}

// List returns the case groups visible to the caller
// @Summary List case groups
// @Tags case-groups
// @Produce json
// @Param beneficiary_id query int false "Filter by beneficiary"
// @Param status query string false "Filter by status"
// @Param approval_status query string false "Filter by approval status"
// @Param priority query string false "Filter by priority"
// @Param pathway_type query string false "Filter by pathway"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /case-groups [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	scope, ok := access.ScopeOf(c)
	if !ok {
		return
	}
	q := scope.Owned(h.db.Model(&models.CaseGroup{}), "case_groups.beneficiary_id")
	benID, ok := httputil.QueryUint(c, "beneficiary_id")
	if !ok {
		return
	}
	if benID != nil {
		q = q.Where("case_groups.beneficiary_id = ?", *benID)
	}
	for _, col := range []string{"status", "approval_status", "priority", "pathway_type"} {
		if v := c.Query(col); v != "" {
			q = q.Where("case_groups."+col+" = ?", strings.ToUpper(v))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count case groups")
		return
	}
	var groups []models.CaseGroup
	if err := p.Apply(q.Order("case_groups.created_at DESC, case_groups.id DESC")).Find(&groups).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch case groups")
		return
	}
	items, err := h.responses(groups, false)
	if err != nil {
		apierror.Internal(c, err, "Failed to build case group responses")
		return
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// Create creates a case group in DRAFT approval state
// @Summary Create case group
// @Tags case-groups
// @Accept json
// @Produce json
// @Param request body CreateCaseGroupRequest true "Case group details"
// @Success 201 {object} CaseGroupResponse
// @Security BearerAuth
// @Router /case-groups [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreateCaseGroupRequest
	if !apierror.Bind(c, &req) {
		return
	}
	b, ok := access.LoadBeneficiary(c, h.db, req.BeneficiaryID)
	if !ok {
		return
	}
	if !canEdit(actor, b) {
		apierror.Forbidden(c, "Insufficient permissions to create case groups for this beneficiary")
		return
	}
	if !h.checkRefs(c, req.LawFirmID, req.ResponsiblePartyID) {
		return
	}
	target, err := httputil.ParseDatePtr(req.TargetCompletionDate)
	if err != nil {
		apierror.BadRequest(c, "Invalid target_completion_date")
		return
	}

	cg := models.CaseGroup{
		BeneficiaryID:        b.ID,
		PathwayType:          models.PathwayType(req.PathwayType),
		Status:               models.CaseStatusPlanning,
		Priority:             models.PriorityMedium,
		ApprovalStatus:       models.ApprovalDraft,
		ResponsiblePartyID:   req.ResponsiblePartyID,
		LawFirmID:            req.LawFirmID,
		AttorneyName:         req.AttorneyName,
		CaseNumber:           req.CaseNumber,
		Notes:                req.Notes,
		TargetCompletionDate: target,
		CreatedByID:          actor.ID(),
	}
	if req.Status != "" {
		cg.Status = models.CaseStatus(req.Status)
	}
	if req.Priority != "" {
		cg.Priority = models.Priority(req.Priority)
	}
	if err := h.db.Create(&cg).Error; err != nil {
		apierror.Internal(c, err, "Failed to create case group")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "case_group", EntityID: cg.ID, Changes: req})
	h.respond(c, http.StatusCreated, cg)
}

// Get returns a case group with its petitions
// @Summary Get case group
// @Tags case-groups
// @Produce json
// @Param id path int true "Case group ID"
// @Success 200 {object} CaseGroupResponse
// @Security BearerAuth
// @Router /case-groups/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	cg, ok := h.load(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, *cg)
}

// Update updates a case group
// @Summary Update case group
// @Tags case-groups
// @Accept json
// @Produce json
// @Param id path int true "Case group ID"
// @Param request body UpdateCaseGroupRequest true "Fields to change"
// @Success 200 {object} CaseGroupResponse
// @Security BearerAuth
// @Router /case-groups/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	cg, _, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	var req UpdateCaseGroupRequest
	if !apierror.Bind(c, &req) {
		return
	}
	if !h.checkRefs(c, req.LawFirmID, req.ResponsiblePartyID) {
		return
	}

	updates := map[string]interface{}{}
	for col, v := range map[string]*string{
		"pathway_type":  req.PathwayType,
		"status":        req.Status,
		"priority":      req.Priority,
		"attorney_name": req.AttorneyName,
		"case_number":   req.CaseNumber,
		"notes":         req.Notes,
	} {
		if v != nil {
			updates[col] = *v
		}
	}
	if req.ResponsiblePartyID != nil {
		updates["responsible_party_id"] = *req.ResponsiblePartyID
	}
	if req.LawFirmID != nil {
		updates["law_firm_id"] = *req.LawFirmID
	}
	if req.TargetCompletionDate != nil {
		target, err := httputil.ParseDatePtr(req.TargetCompletionDate)
		if err != nil {
			apierror.BadRequest(c, "Invalid target_completion_date")
			return
		}
		updates["target_completion_date"] = *target
	}

	if len(updates) > 0 {
		if err := h.db.Model(cg).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update case group")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "case_group", EntityID: cg.ID, Changes: updates})
	}
	h.db.First(cg, cg.ID)
	h.respond(c, http.StatusOK, *cg)
}

// Delete soft-deletes a case group that has no petitions
// @Summary Delete case group
// @Tags case-groups
// @Param id path int true "Case group ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} apierror.APIError "Case group still has petitions"
// @Security BearerAuth
// @Router /case-groups/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	cg, _, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	var n int64
	h.db.Model(&models.Petition{}).Where("case_group_id = ?", cg.ID).Count(&n)
	if n > 0 {
		apierror.Conflict(c, "Case group still has petitions")
		return
	}
	if err := h.db.Delete(cg).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete case group")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "case_group", EntityID: cg.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Case group deleted"})
}

// RegisterRoutes registers case group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	writers := access.RequireRoles(models.RoleAdmin, models.RoleHR, models.RolePM, models.RoleManager)
	approvers := access.RequireRoles(models.RoleAdmin, models.RolePM)

	g := rg.Group("/case-groups")
	g.GET("", h.List)
	g.POST("", writers, h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", writers, h.Update)
	g.DELETE("/:id", writers, h.Delete)
	g.POST("/:id/submit", writers, h.Submit)
	g.POST("/:id/approve", approvers, h.Approve)
	g.POST("/:id/reject", approvers, h.Reject)
}
