package rfes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/notifications"
	"github.com/ama-impact/ama-impact/pkg/impact/petitions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler handles RFE requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new RFE handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateRFERequest represents the request to record a received RFE
type CreateRFERequest struct {
	RFEType         string  `json:"rfe_type" binding:"required,oneof=INITIAL_EVIDENCE SPECIALTY_OCCUPATION EMPLOYER_EMPLOYEE MAINTENANCE_OF_STATUS ABILITY_TO_PAY EXTRAORDINARY_ABILITY OTHER"`
	ReceivedDate    *string `json:"received_date" binding:"omitempty,isodate"`
	ResponseDueDate *string `json:"response_due_date" binding:"omitempty,isodate"`
	Description     string  `json:"description"`
	Notes           string  `json:"notes"`
}

// UpdateRFERequest represents the request to update an RFE
type UpdateRFERequest struct {
	RFEType               *string `json:"rfe_type" binding:"omitempty,oneof=INITIAL_EVIDENCE SPECIALTY_OCCUPATION EMPLOYER_EMPLOYEE MAINTENANCE_OF_STATUS ABILITY_TO_PAY EXTRAORDINARY_ABILITY OTHER"`
	Status                *string `json:"status" binding:"omitempty,oneof=RECEIVED IN_PROGRESS RESPONDED RESOLVED"`
	ReceivedDate          *string `json:"received_date" binding:"omitempty,isodate"`
	ResponseDueDate       *string `json:"response_due_date" binding:"omitempty,isodate"`
	ResponseSubmittedDate *string `json:"response_submitted_date" binding:"omitempty,isodate"`
	Description           *string `json:"description"`
	Notes                 *string `json:"notes"`
}

// RespondRequest optionally carries the date the response was submitted
type RespondRequest struct {
	SubmittedDate *string `json:"submitted_date" binding:"omitempty,isodate"`
}

// RFEResponse is an RFE with its due-date countdown
type RFEResponse struct {
	models.RFE
	DaysUntilDue *int `json:"days_until_due"`
	IsOverdue    bool `json:"is_overdue"`
}

func newResponse(r models.RFE, now time.Time) RFEResponse {
	out := RFEResponse{RFE: r}
	if r.ResponseDueDate != nil && r.Status.IsOpen() {
		days := int(httputil.StartOfDay(*r.ResponseDueDate).Sub(httputil.StartOfDay(now)).Hours() / 24)
		out.DaysUntilDue = &days
		out.IsOverdue = days < 0
	}
	return out
}

func newResponses(rs []models.RFE, now time.Time) []RFEResponse {
	out := make([]RFEResponse, len(rs))
	for i, r := range rs {
		out[i] = newResponse(r, now)
	}
	return out
}

// writable loads the petition behind an RFE and checks write access.
func (h *Handler) writable(c *gin.Context, petitionID uint) (*models.Petition, *models.Beneficiary, bool) {
	var p models.Petition
	if err := h.db.First(&p, petitionID).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch petition")
		return nil, nil, false
	}
	var b models.Beneficiary
	if err := h.db.Unscoped().First(&b, p.BeneficiaryID).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiary")
		return nil, nil, false
	}
	if !petitions.CanWrite(access.FromContext(c), &b) {
		apierror.Forbidden(c, "Insufficient permissions to change RFEs")
		return nil, nil, false
	}
	return &p, &b, true
}

// recordMilestone adds a completed milestone of type mt to p.
func recordMilestone(tx *gorm.DB, p *models.Petition, mt models.MilestoneType, title string, at time.Time, by *uint) error {
	return tx.Create(&models.Milestone{
		PetitionID:    &p.ID,
		CaseGroupID:   p.CaseGroupID,
		MilestoneType: mt,
		Title:         title,
		Status:        models.MilestoneStatusCompleted,
		CompletedDate: &at,
		CreatedByID:   by,
	}).Error
}

// ListForPetition lists a petition's RFEs
// @Summary List petition RFEs
// @Tags rfes
// @Produce json
// @Param id path int true "Petition ID"
// @Success 200 {array} RFEResponse
// @Security BearerAuth
// @Router /petitions/{id}/rfes [get]
func (h *Handler) ListForPetition(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	p, ok := access.LoadPetition(c, h.db, id)
	if !ok {
		return
	}
	var items []models.RFE
	if err := h.db.Where("petition_id = ?", p.ID).Order("received_date DESC, id DESC").Find(&items).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch RFEs")
		return
	}
	c.JSON(http.StatusOK, newResponses(items, nowFunc()))
}

// Create records an RFE against a petition, moves the petition to
// RFE_RECEIVED and notifies its responsible party
// @Summary Record RFE
// @Tags rfes
// @Accept json
// @Produce json
// @Param id path int true "Petition ID"
// @Param request body CreateRFERequest true "RFE details"
// @Success 201 {object} RFEResponse
// @Security BearerAuth
// @Router /petitions/{id}/rfes [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	if _, ok := access.LoadPetition(c, h.db, id); !ok {
		return
	}
	p, b, ok := h.writable(c, id)
	if !ok {
		return
	}
	var req CreateRFERequest
	if !apierror.Bind(c, &req) {
		return
	}
	now := nowFunc()
	received := httputil.StartOfDay(now)
	if req.ReceivedDate != nil {
		t, err := httputil.ParseDatePtr(req.ReceivedDate)
		if err != nil {
			apierror.BadRequest(c, "Invalid received_date")
			return
		}
		received = *t
	}
	due, err := httputil.ParseDatePtr(req.ResponseDueDate)
	if err != nil {
		apierror.BadRequest(c, "Invalid response_due_date")
		return
	}
	if due != nil && due.Before(received) {
		apierror.BadRequest(c, "response_due_date must not be before received_date")
		return
	}

	rfe := models.RFE{
		PetitionID:      p.ID,
		RFEType:         models.RFEType(req.RFEType),
		Status:          models.RFEStatusReceived,
		ReceivedDate:    received,
		ResponseDueDate: due,
		Description:     req.Description,
		Notes:           req.Notes,
	}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rfe).Error; err != nil {
			return err
		}
		if err := tx.Model(p).Update("status", models.PetitionStatusRFEReceived).Error; err != nil {
			return err
		}
		return recordMilestone(tx, p, models.MilestoneRFEReceived, "RFE received", received, actor.IDPtr())
	})
	if err != nil {
		apierror.Internal(c, err, "Failed to record RFE")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "rfe", EntityID: rfe.ID, Changes: req})

	msg := fmt.Sprintf("A %s RFE was received.", rfe.RFEType)
	if due != nil {
		msg += " Response due " + due.Format("2006-01-02") + "."
	}
	notifications.Dispatch(c, h.db, notifications.Users(p.ResponsiblePartyID), notifications.Input{
		Type:       models.NotificationRFEReceived,
		Title:      fmt.Sprintf("RFE received on %s petition for %s", p.PetitionType, b.FullName()),
		Message:    msg,
		Link:       fmt.Sprintf("/petitions/%d", p.ID),
		EntityType: "rfe",
		EntityID:   rfe.ID,
	})
	c.JSON(http.StatusCreated, newResponse(rfe, now))
}

func (h *Handler) load(c *gin.Context) (*models.RFE, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	return access.LoadRFE(c, h.db, id)
}

// Get returns an RFE
// @Summary Get RFE
// @Tags rfes
// @Produce json
// @Param id path int true "RFE ID"
// @Success 200 {object} RFEResponse
// @Security BearerAuth
// @Router /rfes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	r, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newResponse(*r, nowFunc()))
}

// Update updates an RFE
// @Summary Update RFE
// @Tags rfes
// @Accept json
// @Produce json
// @Param id path int true "RFE ID"
// @Param request body UpdateRFERequest true "Fields to change"
// @Success 200 {object} RFEResponse
// @Security BearerAuth
// @Router /rfes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	r, ok := h.load(c)
	if !ok {
		return
	}
	if _, _, ok := h.writable(c, r.PetitionID); !ok {
		return
	}
	var req UpdateRFERequest
	if !apierror.Bind(c, &req) {
		return
	}
	updates := map[string]interface{}{}
	for col, v := range map[string]*string{
		"rfe_type":    req.RFEType,
		"status":      req.Status,
		"description": req.Description,
		"notes":       req.Notes,
	} {
		if v != nil {
			updates[col] = *v
		}
	}
	for col, v := range map[string]*string{
		"received_date":           req.ReceivedDate,
		"response_due_date":       req.ResponseDueDate,
		"response_submitted_date": req.ResponseSubmittedDate,
	} {
		t, err := httputil.ParseDatePtr(v)
		if err != nil {
			apierror.BadRequest(c, "Invalid "+col)
			return
		}
		if t != nil {
			updates[col] = *t
		}
	}
	if len(updates) > 0 {
		if err := h.db.Model(r).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update RFE")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "rfe", EntityID: r.ID, Changes: updates})
	}
	h.db.First(r, r.ID)
	c.JSON(http.StatusOK, newResponse(*r, nowFunc()))
}

// Respond records that the RFE response was submitted
// @Summary Respond to RFE
// @Tags rfes
// @Accept json
// @Produce json
// @Param id path int true "RFE ID"
// @Param request body RespondRequest false "Submission date"
// @Success 200 {object} RFEResponse
// @Failure 409 {object} apierror.APIError "RFE already answered"
// @Security BearerAuth
// @Router /rfes/{id}/respond [post]
func (h *Handler) Respond(c *gin.Context) {
	actor := access.FromContext(c)
	r, ok := h.load(c)
	if !ok {
		return
	}
	p, _, ok := h.writable(c, r.PetitionID)
	if !ok {
		return
	}
	if !r.Status.IsOpen() {
		apierror.InvalidOperation(c, fmt.Sprintf("RFE is already %s", r.Status))
		return
	}
	var req RespondRequest
	if c.Request.ContentLength > 0 && !apierror.Bind(c, &req) {
		return
	}
	now := nowFunc()
	submitted := httputil.StartOfDay(now)
	if req.SubmittedDate != nil {
		t, err := httputil.ParseDatePtr(req.SubmittedDate)
		if err != nil {
			apierror.BadRequest(c, "Invalid submitted_date")
			return
		}
		submitted = *t
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(r).Updates(map[string]interface{}{
			"status":                  models.RFEStatusResponded,
			"response_submitted_date": submitted,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(p).Update("status", models.PetitionStatusRFEResponded).Error; err != nil {
			return err
		}
		return recordMilestone(tx, p, models.MilestoneRFEResponded, "RFE response submitted", submitted, actor.IDPtr())
	})
	if err != nil {
		apierror.Internal(c, err, "Failed to record RFE response")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "rfe", EntityID: r.ID,
		Changes: map[string]interface{}{"status": models.RFEStatusResponded, "response_submitted_date": submitted}})
	h.db.First(r, r.ID)
	c.JSON(http.StatusOK, newResponse(*r, now))
}

// Delete removes an RFE
// @Summary Delete RFE
// @Tags rfes
// @Param id path int true "RFE ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /rfes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	r, ok := h.load(c)
	if !ok {
		return
	}
	if _, _, ok := h.writable(c, r.PetitionID); !ok {
		return
	}
	if err := h.db.Delete(r).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete RFE")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "rfe", EntityID: r.ID})
	c.JSON(http.StatusOK, gin.H{"message": "RFE deleted"})
}

// Upcoming lists open RFEs visible to the caller whose response is due
// within the next days (default 14). Overdue RFEs are included.
// @Summary Upcoming RFE deadlines
// @Tags rfes
// @Produce json
// @Param days query int false "Look-ahead window in days" default(14)
// @Success 200 {array} RFEResponse
// @Security BearerAuth
// @Router /rfes/upcoming [get]
func (h *Handler) Upcoming(c *gin.Context) {
	days, ok := httputil.QueryInt(c, "days", 14, 1, 365)
	if !ok {
		return
	}
	scope, ok := access.ScopeOf(c)
	if !ok {
		return
	}
	now := nowFunc()
	until := httputil.StartOfDay(now).AddDate(0, 0, days+1)
	var items []models.RFE
	err := scope.ViaPetition(h.db.Model(&models.RFE{}), "rfes.petition_id").
		Where("status IN ? AND response_due_date IS NOT NULL AND response_due_date < ?",
			[]models.RFEStatus{models.RFEStatusReceived, models.RFEStatusInProgress}, until).
		Order("response_due_date, id").Find(&items).Error
	if err != nil {
		apierror.Internal(c, err, "Failed to fetch RFEs")
		return
	}
	c.JSON(http.StatusOK, newResponses(items, now))
}

// RegisterRoutes registers RFE routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	writers := access.RequireRoles(models.RoleAdmin, models.RoleHR, models.RolePM)

	rg.GET("/petitions/:id/rfes", h.ListForPetition)
	rg.POST("/petitions/:id/rfes", writers, h.Create)

	r := rg.Group("/rfes")
	r.GET("/upcoming", h.Upcoming)
	r.GET("/:id", h.Get)
	r.PUT("/:id", writers, h.Update)
	r.DELETE("/:id", writers, h.Delete)
	r.POST("/:id/respond", writers, h.Respond)
}
