package visatypes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles visa type reference data
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new visa types handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateVisaTypeRequest represents the request to create a visa type
type CreateVisaTypeRequest struct {
	Code                  string `json:"code" binding:"required,min=1,max=20"`
	Name                  string `json:"name" binding:"required,min=1,max=200"`
	Category              string `json:"category" binding:"required,oneof=NONIMMIGRANT IMMIGRANT"`
	Description           string `json:"description"`
	IsActive              *bool  `json:"is_active"`
	DefaultValidityMonths int    `json:"default_validity_months" binding:"min=0,max=240"`
}

// UpdateVisaTypeRequest represents the request to update a visa type
type UpdateVisaTypeRequest struct {
	Name                  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category              *string `json:"category" binding:"omitempty,oneof=NONIMMIGRANT IMMIGRANT"`
	Description           *string `json:"description"`
	IsActive              *bool   `json:"is_active"`
	DefaultValidityMonths *int    `json:"default_validity_months" binding:"omitempty,min=0,max=240"`
}

func (h *Handler) load(c *gin.Context) (*models.VisaType, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	var v models.VisaType
	if err := h.db.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "Visa type not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch visa type")
		}
		return nil, false
	}
	return &v, true
}

// List returns visa types
// @Summary List visa types
// @Tags visa-types
// @Produce json
// @Param category query string false "NONIMMIGRANT or IMMIGRANT"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /visa-types [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q := h.db.Model(&models.VisaType{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", strings.ToUpper(cat))
	}
	active, ok := httputil.QueryBool(c, "is_active")
	if !ok {
		return
	}
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count visa types")
		return
	}
	var rows []models.VisaType
	if err := p.Apply(q.Order("code")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch visa types")
		return
	}
	c.JSON(http.StatusOK, httputil.NewList(rows, p, total))
}

// Create creates a visa type
// @Summary Create visa type
// @Tags visa-types
// @Accept json
// @Produce json
// @Param request body CreateVisaTypeRequest true "Visa type"
// @Success 201 {object} models.VisaType
// @Security BearerAuth
// @Router /visa-types [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateVisaTypeRequest
	if !apierror.Bind(c, &req) {
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var n int64
	h.db.Model(&models.VisaType{}).Where("code = ?", code).Count(&n)
	if n > 0 {
		apierror.Conflict(c, "Visa type code already exists")
		return
	}

	v := models.VisaType{
		Code:                  code,
		Name:                  req.Name,
		Category:              models.VisaCategory(req.Category),
		Description:           req.Description,
		IsActive:              req.IsActive == nil || *req.IsActive,
		DefaultValidityMonths: req.DefaultValidityMonths,
	}
	if err := h.db.Create(&v).Error; err != nil {
		apierror.Internal(c, err, "Failed to create visa type")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditCreate, EntityType: "visa_type", EntityID: v.ID, Changes: req})
	c.JSON(http.StatusCreated, v)
}

// Get returns a visa type
// @Summary Get visa type
// @Tags visa-types
// @Produce json
// @Param id path int true "Visa type ID"
// @Success 200 {object} models.VisaType
// @Security BearerAuth
// @Router /visa-types/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	v, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v)
}

// Update updates a visa type. The code is immutable.
// @Summary Update visa type
// @Tags visa-types
// @Accept json
// @Produce json
// @Param id path int true "Visa type ID"
// @Param request body UpdateVisaTypeRequest true "Fields to change"
// @Success 200 {object} models.VisaType
// @Security BearerAuth
// @Router /visa-types/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	v, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdateVisaTypeRequest
	if !apierror.Bind(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.DefaultValidityMonths != nil {
		updates["default_validity_months"] = *req.DefaultValidityMonths
	}
	if len(updates) > 0 {
		if err := h.db.Model(v).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update visa type")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditUpdate, EntityType: "visa_type", EntityID: v.ID, Changes: updates})
	}
	h.db.First(v, v.ID)
	c.JSON(http.StatusOK, v)
}

// Delete removes a visa type that no petition references
// @Summary Delete visa type
// @Tags visa-types
// @Param id path int true "Visa type ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} apierror.APIError
// @Security BearerAuth
// @Router /visa-types/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	v, ok := h.load(c)
	if !ok {
		return
	}
	var n int64
	h.db.Model(&models.Petition{}).Where("visa_type_id = ?", v.ID).Count(&n)
	if n > 0 {
		apierror.Conflict(c, "Visa type is referenced by petitions; deactivate it instead")
		return
	}
	if err := h.db.Delete(v).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete visa type")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditDelete, EntityType: "visa_type", EntityID: v.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Visa type deleted"})
}

// RegisterRoutes registers visa type routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := access.RequireRoles(models.RoleAdmin)

	vt := rg.Group("/visa-types")
	vt.GET("", h.List)
	vt.POST("", admin, h.Create)
	vt.GET("/:id", h.Get)
	vt.PUT("/:id", admin, h.Update)
	vt.DELETE("/:id", admin, h.Delete)
}
