package petitions

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/notifications"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler handles petition requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new petitions handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreatePetitionRequest represents the request to create a petition
type CreatePetitionRequest struct {
	BeneficiaryID      uint    `json:"beneficiary_id" binding:"required"`
	CaseGroupID        *uint   `json:"case_group_id"`
	VisaTypeID         *uint   `json:"visa_type_id"`
	PetitionType       string  `json:"petition_type" binding:"required,oneof=I129 I140 I485 I765 I131 I539 PERM LCA I907 OTHER"`
	Status             string  `json:"status" binding:"omitempty,oneof=DRAFT IN_PREPARATION FILED PENDING RFE_RECEIVED RFE_RESPONDED APPROVED DENIED WITHDRAWN EXPIRED"`
	Priority           string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	FilingDate         *string `json:"filing_date" binding:"omitempty,isodate"`
	ApprovalDate       *string `json:"approval_date" binding:"omitempty,isodate"`
	DenialDate         *string `json:"denial_date" binding:"omitempty,isodate"`
	ExpirationDate     *string `json:"expiration_date" binding:"omitempty,isodate"`
	PriorityDate       *string `json:"priority_date" binding:"omitempty,isodate"`
	ReceiptNumber      *string `json:"receipt_number" binding:"omitempty,receipt"`
	PremiumProcessing  bool    `json:"premium_processing"`
	LawFirmID          *uint   `json:"law_firm_id"`
	LawFirmName        string  `json:"law_firm_name" binding:"max=200"`
	AttorneyName       string  `json:"attorney_name" binding:"max=200"`
	AttorneyEmail      string  `json:"attorney_email" binding:"omitempty,email"`
	ResponsiblePartyID *uint   `json:"responsible_party_id"`
	Notes              string  `json:"notes"`
}

// UpdatePetitionRequest represents the request to update a petition.
// case_group_id 0 detaches the petition from its case group.
type UpdatePetitionRequest struct {
	CaseGroupID        *uint   `json:"case_group_id"`
	VisaTypeID         *uint   `json:"visa_type_id"`
	PetitionType       *string `json:"petition_type" binding:"omitempty,oneof=I129 I140 I485 I765 I131 I539 PERM LCA I907 OTHER"`
	Status             *string `json:"status" binding:"omitempty,oneof=DRAFT IN_PREPARATION FILED PENDING RFE_RECEIVED RFE_RESPONDED APPROVED DENIED WITHDRAWN EXPIRED"`
	Priority           *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	FilingDate         *string `json:"filing_date" binding:"omitempty,isodate"`
	ApprovalDate       *string `json:"approval_date" binding:"omitempty,isodate"`
	DenialDate         *string `json:"denial_date" binding:"omitempty,isodate"`
	ExpirationDate     *string `json:"expiration_date" binding:"omitempty,isodate"`
	PriorityDate       *string `json:"priority_date" binding:"omitempty,isodate"`
	ReceiptNumber      *string `json:"receipt_number" binding:"omitempty,receipt"`
	PremiumProcessing  *bool   `json:"premium_processing"`
	LawFirmID          *uint   `json:"law_firm_id"`
	LawFirmName        *string `json:"law_firm_name" binding:"omitempty,max=200"`
	AttorneyName       *string `json:"attorney_name" binding:"omitempty,max=200"`
	AttorneyEmail      *string `json:"attorney_email" binding:"omitempty,email"`
	ResponsiblePartyID *uint   `json:"responsible_party_id"`
	Notes              *string `json:"notes"`
}

// CanWrite reports whether the actor may change case data of beneficiary b.
func CanWrite(actor *access.Actor, b *models.Beneficiary) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Is(models.RoleHR, models.RolePM) && actor.InContract(b.ContractID)
}

func (h *Handler) load(c *gin.Context) (*models.Petition, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	return access.LoadPetition(c, h.db, id)
}

// loadForWrite loads the petition and its beneficiary and checks write access.
func (h *Handler) loadForWrite(c *gin.Context) (*models.Petition, *models.Beneficiary, bool) {
	p, ok := h.load(c)
	if !ok {
		return nil, nil, false
	}
	var b models.Beneficiary
	if err := h.db.First(&b, p.BeneficiaryID).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiary")
		return nil, nil, false
	}
	if !CanWrite(access.FromContext(c), &b) {
		apierror.Forbidden(c, "Insufficient permissions to change this petition")
		return nil, nil, false
	}
	return p, &b, true
}

// List returns the petitions visible to the caller
// @Summary List petitions
// @Tags petitions
// @Produce json
// @Param beneficiary_id query int false "Filter by beneficiary"
// @Param case_group_id query int false "Filter by case group"
// @Param status query string false "Filter by status"
// @Param petition_type query string false "Filter by petition type"
// @Param priority query string false "Filter by priority"
// @Param q query string false "Search receipt number"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /petitions [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	scope, ok := access.ScopeOf(c)
	if !ok {
		return
	}
	q := scope.Owned(h.db.Model(&models.Petition{}), "petitions.beneficiary_id")
	for _, col := range []string{"beneficiary_id", "case_group_id", "law_firm_id", "responsible_party_id"} {
		v, ok := httputil.QueryUint(c, col)
		if !ok {
			return
		}
		if v != nil {
			q = q.Where("petitions."+col+" = ?", *v)
		}
	}
	for _, col := range []string{"status", "petition_type", "priority"} {
		if v := c.Query(col); v != "" {
			q = q.Where("petitions."+col+" = ?", strings.ToUpper(v))
		}
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("UPPER(receipt_number) LIKE ?", "%"+strings.ToUpper(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count petitions")
		return
	}
	var rows []models.Petition
	if err := p.Apply(q.Order("petitions.created_at DESC, petitions.id DESC")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch petitions")
		return
	}
	items, _, err := Responses(h.db, rows)
	if err != nil {
		apierror.Internal(c, err, "Failed to build petition responses")
		return
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// checkRefs validates the optional references of a petition for beneficiary b.
func (h *Handler) checkRefs(c *gin.Context, b *models.Beneficiary, caseGroupID, visaTypeID, lawFirmID, responsibleID *uint) bool {
	if caseGroupID != nil && *caseGroupID != 0 {
		var cg models.CaseGroup
		if err := h.db.First(&cg, *caseGroupID).Error; err != nil {
			apierror.BadRequest(c, "Case group does not exist")
			return false
		}
		if cg.BeneficiaryID != b.ID {
			apierror.BadRequest(c, "Case group belongs to a different beneficiary")
			return false
		}
	}
	checks := []struct {
		id    *uint
		model interface{}
		what  string
	}{
		{visaTypeID, &models.VisaType{}, "Visa type"},
		{lawFirmID, &models.LawFirm{}, "Law firm"},
		{responsibleID, &models.User{}, "Responsible party"},
	}
	for _, chk := range checks {
		if chk.id == nil {
			continue
		}
		var n int64
		if err := h.db.Model(chk.model).Where("id = ?", *chk.id).Count(&n).Error; err != nil {
			apierror.Internal(c, err, "Failed to check "+strings.ToLower(chk.what))
			return false
		}
		if n == 0 {
			apierror.BadRequest(c, chk.what+" does not exist")
			return false
		}
	}
	return true
}

// receiptTaken reports whether another petition, deleted or not, uses receipt.
func (h *Handler) receiptTaken(receipt string, exceptID uint) bool {
	var n int64
	h.db.Unscoped().Model(&models.Petition{}).Where("receipt_number = ? AND id <> ?", receipt, exceptID).Count(&n)
	return n > 0
}

func (h *Handler) lawFirmName(id uint) string {
	var f models.LawFirm
	if err := h.db.Select("name").First(&f, id).Error; err != nil {
		return ""
	}
	return f.Name
}

type dateField struct {
	col string
	in  *string
	out **time.Time
}

func parseDates(fields []dateField) error {
	for _, f := range fields {
		t, err := httputil.ParseDatePtr(f.in)
		if err != nil {
			return fmt.Errorf("%s: %w", f.col, err)
		}
		if f.out != nil {
			*f.out = t
		}
	}
	return nil
}

// Create creates a petition
// @Summary Create petition
// @Tags petitions
// @Accept json
// @Produce json
// @Param request body CreatePetitionRequest true "Petition details"
// @Success 201 {object} PetitionResponse
// @Failure 409 {object} apierror.APIError "Receipt number in use"
// @Security BearerAuth
// @Router /petitions [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreatePetitionRequest
	if !apierror.Bind(c, &req) {
		return
	}
	b, ok := access.LoadBeneficiary(c, h.db, req.BeneficiaryID)
	if !ok {
		return
	}
	if !CanWrite(actor, b) {
		apierror.Forbidden(c, "Insufficient permissions to create petitions for this beneficiary")
		return
	}
	if req.CaseGroupID != nil && *req.CaseGroupID == 0 {
		req.CaseGroupID = nil
	}
	if !h.checkRefs(c, b, req.CaseGroupID, req.VisaTypeID, req.LawFirmID, req.ResponsiblePartyID) {
		return
	}

	p := models.Petition{
		BeneficiaryID:      b.ID,
		CaseGroupID:        req.CaseGroupID,
		VisaTypeID:         req.VisaTypeID,
		PetitionType:       models.PetitionType(req.PetitionType),
		Status:             models.PetitionStatusDraft,
		Priority:           models.PriorityMedium,
		PremiumProcessing:  req.PremiumProcessing,
		LawFirmID:          req.LawFirmID,
		LawFirmName:        req.LawFirmName,
		AttorneyName:       req.AttorneyName,
		AttorneyEmail:      req.AttorneyEmail,
		ResponsiblePartyID: req.ResponsiblePartyID,
		Notes:              req.Notes,
	}
	if req.Status != "" {
		p.Status = models.PetitionStatus(req.Status)
	}
	if req.Priority != "" {
		p.Priority = models.Priority(req.Priority)
	}
	if req.ReceiptNumber != nil {
		receipt := strings.ToUpper(*req.ReceiptNumber)
		if h.receiptTaken(receipt, 0) {
			apierror.Conflict(c, "Receipt number already in use")
			return
		}
		p.ReceiptNumber = &receipt
	}
	if p.LawFirmID != nil && p.LawFirmName == "" {
		p.LawFirmName = h.lawFirmName(*p.LawFirmID)
	}
	if err := parseDates([]dateField{
		{"filing_date", req.FilingDate, &p.FilingDate},
		{"approval_date", req.ApprovalDate, &p.ApprovalDate},
		{"denial_date", req.DenialDate, &p.DenialDate},
		{"expiration_date", req.ExpirationDate, &p.ExpirationDate},
		{"priority_date", req.PriorityDate, &p.PriorityDate},
	}); err != nil {
		apierror.BadRequest(c, err.Error())
		return
	}
	stampFinalDates(&p, nowFunc())

	if err := h.db.Create(&p).Error; err != nil {
		apierror.Internal(c, err, "Failed to create petition")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "petition", EntityID: p.ID, Changes: req})
	h.respond(c, http.StatusCreated, p)
}

// respond writes p with its computed progress.
func (h *Handler) respond(c *gin.Context, status int, p models.Petition) {
	resp, err := NewResponse(h.db, p)
	if err != nil {
		apierror.Internal(c, err, "Failed to build petition response")
		return
	}
	c.JSON(status, resp)
}

// stampFinalDates sets the approval or denial date to today when the
// petition is in that state without one.
func stampFinalDates(p *models.Petition, now time.Time) {
	today := httputil.StartOfDay(now)
	switch p.Status {
	case models.PetitionStatusApproved:
		if p.ApprovalDate == nil {
			p.ApprovalDate = &today
		}
	case models.PetitionStatusDenied:
		if p.DenialDate == nil {
			p.DenialDate = &today
		}
	}
}

// Get returns a petition with its progress
// @Summary Get petition
// @Tags petitions
// @Produce json
// @Param id path int true "Petition ID"
// @Success 200 {object} PetitionResponse
// @Security BearerAuth
// @Router /petitions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, *p)
}

// Update updates a petition. Status changes notify the beneficiary and the
// responsible party.
// @Summary Update petition
// @Tags petitions
// @Accept json
// @Produce json
// @Param id path int true "Petition ID"
// @Param request body UpdatePetitionRequest true "Fields to change"
// @Success 200 {object} PetitionResponse
// @Security BearerAuth
// @Router /petitions/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	p, b, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	var req UpdatePetitionRequest
	if !apierror.Bind(c, &req) {
		return
	}
	if !h.checkRefs(c, b, req.CaseGroupID, req.VisaTypeID, req.LawFirmID, req.ResponsiblePartyID) {
		return
	}

	updates := map[string]interface{}{}
	oldStatus := p.Status
	var caseGroupID *uint
	if req.CaseGroupID != nil {
		if *req.CaseGroupID != 0 {
			caseGroupID = req.CaseGroupID
		}
		updates["case_group_id"] = caseGroupID
	}
	for col, v := range map[string]*uint{
		"visa_type_id":         req.VisaTypeID,
		"law_firm_id":          req.LawFirmID,
		"responsible_party_id": req.ResponsiblePartyID,
	} {
		if v != nil {
			updates[col] = *v
		}
	}
	for col, v := range map[string]*string{
		"petition_type":  req.PetitionType,
		"status":         req.Status,
		"priority":       req.Priority,
		"law_firm_name":  req.LawFirmName,
		"attorney_name":  req.AttorneyName,
		"attorney_email": req.AttorneyEmail,
		"notes":          req.Notes,
	} {
		if v != nil {
			updates[col] = *v
		}
	}
	if req.LawFirmID != nil && req.LawFirmName == nil {
		updates["law_firm_name"] = h.lawFirmName(*req.LawFirmID)
	}
	if req.PremiumProcessing != nil {
		updates["premium_processing"] = *req.PremiumProcessing
	}
	if req.ReceiptNumber != nil {
		receipt := strings.ToUpper(*req.ReceiptNumber)
		if h.receiptTaken(receipt, p.ID) {
			apierror.Conflict(c, "Receipt number already in use")
			return
		}
		updates["receipt_number"] = receipt
	}

	var dates struct{ filing, approval, denial, expiration, priority *time.Time }
	if err := parseDates([]dateField{
		{"filing_date", req.FilingDate, &dates.filing},
		{"approval_date", req.ApprovalDate, &dates.approval},
		{"denial_date", req.DenialDate, &dates.denial},
		{"expiration_date", req.ExpirationDate, &dates.expiration},
		{"priority_date", req.PriorityDate, &dates.priority},
	}); err != nil {
		apierror.BadRequest(c, err.Error())
		return
	}
	for col, t := range map[string]*time.Time{
		"filing_date":     dates.filing,
		"approval_date":   dates.approval,
		"denial_date":     dates.denial,
		"expiration_date": dates.expiration,
		"priority_date":   dates.priority,
	} {
		if t != nil {
			updates[col] = *t
		}
	}

	if req.Status != nil {
		next := *p
		next.Status = models.PetitionStatus(*req.Status)
		if dates.approval != nil {
			next.ApprovalDate = dates.approval
		}
		if dates.denial != nil {
			next.DenialDate = dates.denial
		}
		stampFinalDates(&next, nowFunc())
		if next.ApprovalDate != nil && (p.ApprovalDate == nil || !next.ApprovalDate.Equal(*p.ApprovalDate)) {
			updates["approval_date"] = *next.ApprovalDate
		}
		if next.DenialDate != nil && (p.DenialDate == nil || !next.DenialDate.Equal(*p.DenialDate)) {
			updates["denial_date"] = *next.DenialDate
		}
	}

	if len(updates) > 0 {
		err := h.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(p).Updates(updates).Error; err != nil {
				return err
			}
			if req.CaseGroupID == nil {
				return nil
			}
			return moveCaseGroup(tx, p.ID, caseGroupID)
		})
		if err != nil {
			apierror.Internal(c, err, "Failed to update petition")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "petition", EntityID: p.ID, Changes: updates})
	}
	h.db.First(p, p.ID)

	if p.Status != oldStatus {
		notifications.Dispatch(c, h.db, notifications.Users(b.UserID, p.ResponsiblePartyID), notifications.Input{
			Type:       models.NotificationStatusChanged,
			Title:      fmt.Sprintf("%s petition for %s is now %s", p.PetitionType, b.FullName(), p.Status),
			Message:    fmt.Sprintf("Status changed from %s to %s.", oldStatus, p.Status),
			Link:       fmt.Sprintf("/petitions/%d", p.ID),
			EntityType: "petition",
			EntityID:   p.ID,
		})
	}
	h.respond(c, http.StatusOK, *p)
}

// moveCaseGroup re-points the todos and milestones that inherited their case
// group from petition id.
func moveCaseGroup(tx *gorm.DB, id uint, caseGroupID *uint) error {
	if err := tx.Model(&models.Todo{}).Where("petition_id = ?", id).UpdateColumn("case_group_id", caseGroupID).Error; err != nil {
		return fmt.Errorf("moving todos: %w", err)
	}
	if err := tx.Model(&models.Milestone{}).Where("petition_id = ?", id).UpdateColumn("case_group_id", caseGroupID).Error; err != nil {
		return fmt.Errorf("moving milestones: %w", err)
	}
	return nil
}

// Delete soft-deletes a petition
// @Summary Delete petition
// @Tags petitions
// @Param id path int true "Petition ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /petitions/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	p, _, ok := h.loadForWrite(c)
	if !ok {
		return
	}
	if err := h.db.Delete(p).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete petition")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "petition", EntityID: p.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Petition deleted"})
}

// RegisterRoutes registers petition routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	writers := access.RequireRoles(models.RoleAdmin, models.RoleHR, models.RolePM)

	p := rg.Group("/petitions")
	p.GET("", h.List)
	p.POST("", writers, h.Create)
	p.GET("/:id", h.Get)
	p.PUT("/:id", writers, h.Update)
	p.DELETE("/:id", writers, h.Delete)
	p.GET("/:id/timeline", h.Timeline)
}
