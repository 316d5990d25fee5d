package milestones

import (
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler handles milestone requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new milestones handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// MilestoneRequest represents the request to create a milestone
type MilestoneRequest struct {
	MilestoneType string  `json:"milestone_type" binding:"required,oneof=DOCUMENTS_REQUESTED DOCUMENTS_SUBMITTED PWD_FILED PWD_ISSUED RECRUITMENT_STARTED RECRUITMENT_COMPLETED PERM_FILED PERM_APPROVED LCA_FILED LCA_CERTIFIED PETITION_FILED PETITION_APPROVED I140_FILED I140_APPROVED I485_FILED BIOMETRICS_COMPLETED INTERVIEW_SCHEDULED INTERVIEW_COMPLETED I485_APPROVED EAD_RECEIVED ADVANCE_PAROLE_RECEIVED RFE_RECEIVED RFE_RESPONDED DENIED GREEN_CARD_RECEIVED OTHER"`
	Title         string  `json:"title" binding:"max=200"`
	Description   string  `json:"description"`
	DueDate       *string `json:"due_date" binding:"omitempty,isodate"`
	CompletedDate *string `json:"completed_date" binding:"omitempty,isodate"`
	Status        string  `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

// UpdateMilestoneRequest represents the request to update a milestone.
// An empty completed_date clears it.
type UpdateMilestoneRequest struct {
	MilestoneType *string `json:"milestone_type" binding:"omitempty,oneof=DOCUMENTS_REQUESTED DOCUMENTS_SUBMITTED PWD_FILED PWD_ISSUED RECRUITMENT_STARTED RECRUITMENT_COMPLETED PERM_FILED PERM_APPROVED LCA_FILED LCA_CERTIFIED PETITION_FILED PETITION_APPROVED I140_FILED I140_APPROVED I485_FILED BIOMETRICS_COMPLETED INTERVIEW_SCHEDULED INTERVIEW_COMPLETED I485_APPROVED EAD_RECEIVED ADVANCE_PAROLE_RECEIVED RFE_RECEIVED RFE_RESPONDED DENIED GREEN_CARD_RECEIVED OTHER"`
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Description   *string `json:"description"`
	DueDate       *string `json:"due_date" binding:"omitempty,isodate"`
	CompletedDate *string `json:"completed_date" binding:"omitempty,isodate|eq="`
	Status        *string `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

// CompleteRequest optionally carries the completion date
type CompleteRequest struct {
	CompletedDate *string `json:"completed_date" binding:"omitempty,isodate"`
}

// syncCompletion keeps the completed date and the COMPLETED status in step.
// A completed date forces COMPLETED; COMPLETED without a date stamps now;
// leaving COMPLETED clears the date.
func syncCompletion(m *models.Milestone, statusSet bool, now time.Time) {
	switch {
	case m.CompletedDate != nil && (!statusSet || m.Status == models.MilestoneStatusCompleted):
		m.Status = models.MilestoneStatusCompleted
	case m.Status == models.MilestoneStatusCompleted:
		if m.CompletedDate == nil {
			t := now.UTC()
			m.CompletedDate = &t
		}
	default:
		m.CompletedDate = nil
	}
}

// canWrite checks the actor may change case data of beneficiaryID,
// answering 403 otherwise.
func (h *Handler) canWrite(c *gin.Context, beneficiaryID uint) bool {
	actor := access.FromContext(c)
	if actor.IsAdmin() {
		return true
	}
	var b models.Beneficiary
	if err := h.db.Unscoped().Select("id", "contract_id").First(&b, beneficiaryID).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiary")
		return false
	}
	if actor.Is(models.RoleHR, models.RolePM) && actor.InContract(b.ContractID) {
		return true
	}
	apierror.Forbidden(c, "Insufficient permissions to change milestones")
	return false
}

// owner returns the beneficiary id behind a milestone.
func (h *Handler) owner(m *models.Milestone) (uint, error) {
	if m.PetitionID != nil {
		var p models.Petition
		err := h.db.Unscoped().Select("id", "beneficiary_id").First(&p, *m.PetitionID).Error
		return p.BeneficiaryID, err
	}
	var cg models.CaseGroup
	err := h.db.Unscoped().Select("id", "beneficiary_id").First(&cg, *m.CaseGroupID).Error
	return cg.BeneficiaryID, err
}

func (h *Handler) list(c *gin.Context, q *gorm.DB) {
	var items []models.Milestone
	if err := q.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date, id").Find(&items).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch milestones")
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListForPetition lists a petition's milestones
// @Summary List petition milestones
// @Tags milestones
// @Produce json
// @Param id path int true "Petition ID"
// @Success 200 {array} models.Milestone
// @Security BearerAuth
// @Router /petitions/{id}/milestones [get]
func (h *Handler) ListForPetition(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	p, ok := access.LoadPetition(c, h.db, id)
	if !ok {
		return
	}
	h.list(c, h.db.Where("petition_id = ?", p.ID))
}

// ListForCaseGroup lists the milestones of a case group and its petitions
// @Summary List case group milestones
// @Tags milestones
// @Produce json
// @Param id path int true "Case group ID"
// @Success 200 {array} models.Milestone
// @Security BearerAuth
// @Router /case-groups/{id}/milestones [get]
func (h *Handler) ListForCaseGroup(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	cg, ok := access.LoadCaseGroup(c, h.db, id)
	if !ok {
		return
	}
	h.list(c, h.db.Where("case_group_id = ?", cg.ID))
}

// Create adds a milestone to a petition. The milestone joins the petition's
// case group.
// @Summary Create milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path int true "Petition ID"
// @Param request body MilestoneRequest true "Milestone details"
// @Success 201 {object} models.Milestone
// @Security BearerAuth
// @Router /petitions/{id}/milestones [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	p, ok := access.LoadPetition(c, h.db, id)
	if !ok {
		return
	}
	if !h.canWrite(c, p.BeneficiaryID) {
		return
	}
	var req MilestoneRequest
	if !apierror.Bind(c, &req) {
		return
	}
	m := models.Milestone{
		PetitionID:    &p.ID,
		CaseGroupID:   p.CaseGroupID,
		MilestoneType: models.MilestoneType(req.MilestoneType),
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.MilestoneStatusPending,
		CreatedByID:   actor.IDPtr(),
	}
	if req.Status != "" {
		m.Status = models.MilestoneStatus(req.Status)
	}
	var err error
	if m.DueDate, err = httputil.ParseDatePtr(req.DueDate); err != nil {
		apierror.BadRequest(c, "Invalid due_date")
		return
	}
	if m.CompletedDate, err = httputil.ParseDatePtr(req.CompletedDate); err != nil {
		apierror.BadRequest(c, "Invalid completed_date")
		return
	}
	syncCompletion(&m, req.Status != "", nowFunc())

	if err := h.db.Create(&m).Error; err != nil {
		apierror.Internal(c, err, "Failed to create milestone")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "milestone", EntityID: m.ID, Changes: req})
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) loadForWrite(c *gin.Context) (*models.Milestone, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	m, ok := access.LoadMilestone(c, h.db, id)
	if !ok {
		return nil, false
	}
	benID, err := h.owner(m)
	if err != nil {
		apierror.Internal(c, err, "Failed to resolve milestone owner")
		return nil, false
	}
	if !h.canWrite(c, benID) {
		return nil, false
	}
	return m, true
}

// save writes every mutable column of m and audits the change.
func (h *Handler) save(c *gin.Context, m *models.Milestone, changes interface{}) bool {
	err := h.db.Model(m).Select("milestone_type", "title", "description", "due_date", "completed_date", "status").Updates(m).Error
	if err != nil {
		apierror.Internal(c, err, "Failed to update milestone")
		return false
	}
	audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditUpdate, EntityType: "milestone", EntityID: m.ID, Changes: changes})
	return true
}

// Update updates a milestone
// @Summary Update milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path int true "Milestone ID"
// @Param request body UpdateMilestoneRequest true "Fields to change"
// @Success 200 {object} models.Milestone
// @Security BearerAuth
// @Router /milestones/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	m, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	var req UpdateMilestoneRequest
	if !apierror.Bind(c, &req) {
		return
	}
	if req.MilestoneType != nil {
		m.MilestoneType = models.MilestoneType(*req.MilestoneType)
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Status != nil {
		m.Status = models.MilestoneStatus(*req.Status)
	}
	if req.DueDate != nil {
		t, err := httputil.ParseDatePtr(req.DueDate)
		if err != nil {
			apierror.BadRequest(c, "Invalid due_date")
			return
		}
		m.DueDate = t
	}
	if req.CompletedDate != nil {
		if *req.CompletedDate == "" {
			m.CompletedDate = nil
			if req.Status == nil && m.Status == models.MilestoneStatusCompleted {
				m.Status = models.MilestoneStatusPending
			}
		} else {
			t, err := httputil.ParseDatePtr(req.CompletedDate)
			if err != nil {
				apierror.BadRequest(c, "Invalid completed_date")
				return
			}
			m.CompletedDate = t
		}
	}
	syncCompletion(m, req.Status != nil, nowFunc())
	if !h.save(c, m, req) {
		return
	}
	c.JSON(http.StatusOK, m)
}

// Complete marks a milestone completed, today unless a date is given
// @Summary Complete milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path int true "Milestone ID"
// @Param request body CompleteRequest false "Completion date"
// @Success 200 {object} models.Milestone
// @Security BearerAuth
// @Router /milestones/{id}/complete [post]
func (h *Handler) Complete(c *gin.Context) {
	m, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	var req CompleteRequest
	if c.Request.ContentLength > 0 && !apierror.Bind(c, &req) {
		return
	}
	t, err := httputil.ParseDatePtr(req.CompletedDate)
	if err != nil {
		apierror.BadRequest(c, "Invalid completed_date")
		return
	}
	m.CompletedDate = t
	m.Status = models.MilestoneStatusCompleted
	syncCompletion(m, true, nowFunc())
	if !h.save(c, m, map[string]interface{}{"status": m.Status, "completed_date": m.CompletedDate}) {
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete removes a milestone
// @Summary Delete milestone
// @Tags milestones
// @Param id path int true "Milestone ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /milestones/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	m, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	if err := h.db.Delete(m).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete milestone")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditDelete, EntityType: "milestone", EntityID: m.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted"})
}

// RegisterRoutes registers milestone routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	writers := access.RequireRoles(models.RoleAdmin, models.RoleHR, models.RolePM)

	rg.GET("/petitions/:id/milestones", h.ListForPetition)
	rg.POST("/petitions/:id/milestones", writers, h.Create)
	rg.GET("/case-groups/:id/milestones", h.ListForCaseGroup)

	m := rg.Group("/milestones")
	m.PUT("/:id", writers, h.Update)
	m.DELETE("/:id", writers, h.Delete)
	m.POST("/:id/complete", writers, h.Complete)
}
