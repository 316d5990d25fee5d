package beneficiaries

import (
	"errors"
	"net/http"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DependentRequest represents the request to create a dependent
type DependentRequest struct {
	FirstName            string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName             string  `json:"last_name" binding:"required,min=1,max=100"`
	Relationship         string  `json:"relationship" binding:"required,oneof=SPOUSE CHILD OTHER"`
	DateOfBirth          *string `json:"date_of_birth" binding:"omitempty,isodate"`
	CountryOfCitizenship string  `json:"country_of_citizenship" binding:"max=100"`
	VisaType             string  `json:"visa_type" binding:"max=50"`
	VisaExpiration       *string `json:"visa_expiration" binding:"omitempty,isodate"`
}

// UpdateDependentRequest represents the request to update a dependent
type UpdateDependentRequest struct {
	FirstName            *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName             *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Relationship         *string `json:"relationship" binding:"omitempty,oneof=SPOUSE CHILD OTHER"`
	DateOfBirth          *string `json:"date_of_birth" binding:"omitempty,isodate"`
	CountryOfCitizenship *string `json:"country_of_citizenship" binding:"omitempty,max=100"`
	VisaType             *string `json:"visa_type" binding:"omitempty,max=50"`
	VisaExpiration       *string `json:"visa_expiration" binding:"omitempty,isodate"`
}

// canEditDependents reports whether the actor may change the dependents of b.
func canEditDependents(actor *access.Actor, b *models.Beneficiary) bool {
	return canManage(actor, b) || isOwn(actor, b)
}

// loadDependent fetches a dependent whose beneficiary is visible to the actor.
func (h *Handler) loadDependent(c *gin.Context) (*models.Dependent, *models.Beneficiary, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, nil, false
	}
	scope, ok := access.ScopeOf(c)
	if !ok {
		return nil, nil, false
	}
	var d models.Dependent
	if err := scope.Owned(h.db.Model(&models.Dependent{}), "dependents.beneficiary_id").First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "Dependent not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch dependent")
		}
		return nil, nil, false
	}
	var b models.Beneficiary
	if err := h.db.First(&b, d.BeneficiaryID).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiary")
		return nil, nil, false
	}
	return &d, &b, true
}

// ListDependents returns the dependents of a beneficiary
// @Summary List dependents
// @Tags beneficiaries
// @Produce json
// @Param id path int true "Beneficiary ID"
// @Success 200 {array} models.Dependent
// @Security BearerAuth
// @Router /beneficiaries/{id}/dependents [get]
func (h *Handler) ListDependents(c *gin.Context) {
	b, ok := h.load(c)
	if !ok {
		return
	}
	deps := []models.Dependent{}
	if err := h.db.Where("beneficiary_id = ?", b.ID).Order("id").Find(&deps).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch dependents")
		return
	}
	c.JSON(http.StatusOK, deps)
}

// CreateDependent adds a dependent to a beneficiary
// @Summary Create dependent
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param id path int true "Beneficiary ID"
// @Param request body DependentRequest true "Dependent details"
// @Success 201 {object} models.Dependent
// @Security BearerAuth
// @Router /beneficiaries/{id}/dependents [post]
func (h *Handler) CreateDependent(c *gin.Context) {
	actor := access.FromContext(c)
	b, ok := h.load(c)
	if !ok {
		return
	}
	if !canEditDependents(actor, b) {
		apierror.Forbidden(c, "Insufficient permissions")
		return
	}
	var req DependentRequest
	if !apierror.Bind(c, &req) {
		return
	}
	dob, err := httputil.ParseDatePtr(req.DateOfBirth)
	if err != nil {
		apierror.BadRequest(c, err.Error())
		return
	}
	visaExp, err := httputil.ParseDatePtr(req.VisaExpiration)
	if err != nil {
		apierror.BadRequest(c, err.Error())
		return
	}

	d := models.Dependent{
		BeneficiaryID:        b.ID,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Relationship:         models.DependentRelationship(req.Relationship),
		DateOfBirth:          dob,
		CountryOfCitizenship: req.CountryOfCitizenship,
		VisaType:             req.VisaType,
		VisaExpiration:       visaExp,
	}
	if err := h.db.Create(&d).Error; err != nil {
		apierror.Internal(c, err, "Failed to create dependent")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "dependent", EntityID: d.ID, Changes: req})
	c.JSON(http.StatusCreated, d)
}

// UpdateDependent updates a dependent
// @Summary Update dependent
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param id path int true "Dependent ID"
// @Param request body UpdateDependentRequest true "Fields to change"
// @Success 200 {object} models.Dependent
// @Security BearerAuth
// @Router /dependents/{id} [put]
func (h *Handler) UpdateDependent(c *gin.Context) {
	actor := access.FromContext(c)
	d, b, ok := h.loadDependent(c)
	if !ok {
		return
	}
	if !canEditDependents(actor, b) {
		apierror.Forbidden(c, "Insufficient permissions")
		return
	}
	var req UpdateDependentRequest
	if !apierror.Bind(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	for col, v := range map[string]*string{
		"first_name":             req.FirstName,
		"last_name":              req.LastName,
		"relationship":           req.Relationship,
		"country_of_citizenship": req.CountryOfCitizenship,
		"visa_type":              req.VisaType,
	} {
		if v != nil {
			updates[col] = *v
		}
	}
	for col, v := range map[string]*string{"date_of_birth": req.DateOfBirth, "visa_expiration": req.VisaExpiration} {
		t, err := httputil.ParseDatePtr(v)
		if err != nil {
			apierror.BadRequest(c, err.Error())
			return
		}
		if t != nil {
			updates[col] = *t
		}
	}

	if len(updates) > 0 {
		if err := h.db.Model(d).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update dependent")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "dependent", EntityID: d.ID, Changes: updates})
	}
	h.db.First(d, d.ID)
	c.JSON(http.StatusOK, d)
}

// DeleteDependent removes a dependent
// @Summary Delete dependent
// @Tags beneficiaries
// @Param id path int true "Dependent ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /dependents/{id} [delete]
func (h *Handler) DeleteDependent(c *gin.Context) {
	actor := access.FromContext(c)
	d, b, ok := h.loadDependent(c)
	if !ok {
		return
	}
	if !canEditDependents(actor, b) {
		apierror.Forbidden(c, "Insufficient permissions")
		return
	}
	if err := h.db.Delete(d).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete dependent")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "dependent", EntityID: d.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Dependent deleted"})
}
