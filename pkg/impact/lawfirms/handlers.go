package lawfirms

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

// Handler handles law firm requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new law firms handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateLawFirmRequest represents the request to create a law firm
type CreateLawFirmRequest struct {
	Name              string   `json:"name" binding:"required,min=1,max=200"`
	ContactPerson     string   `json:"contact_person" binding:"max=200"`
	Email             string   `json:"email" binding:"omitempty,email"`
	Phone             string   `json:"phone" binding:"max=50"`
	Address           string   `json:"address"`
	Website           string   `json:"website" binding:"omitempty,url"`
	IsPreferred       bool     `json:"is_preferred"`
	PerformanceRating *float64 `json:"performance_rating" binding:"omitempty,min=0,max=5"`
	Notes             string   `json:"notes"`
}

// UpdateLawFirmRequest represents the request to update a law firm
type UpdateLawFirmRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson     *string  `json:"contact_person" binding:"omitempty,max=200"`
	Email             *string  `json:"email" binding:"omitempty,email"`
	Phone             *string  `json:"phone" binding:"omitempty,max=50"`
	Address           *string  `json:"address"`
	Website           *string  `json:"website" binding:"omitempty,url"`
	IsPreferred       *bool    `json:"is_preferred"`
	PerformanceRating *float64 `json:"performance_rating" binding:"omitempty,min=0,max=5"`
	Notes             *string  `json:"notes"`
}

// LawFirmResponse represents a law firm with its open workload
type LawFirmResponse struct {
	models.LawFirm
	ActivePetitions int64 `json:"active_petitions"`
}

func (h *Handler) toResponse(f models.LawFirm) LawFirmResponse {
	resp := LawFirmResponse{LawFirm: f}
	h.db.Model(&models.Petition{}).
		Where("law_firm_id = ? AND status NOT IN ?", f.ID, models.ClosedPetitionStatuses).
		Count(&resp.ActivePetitions)
	return resp
}

func (h *Handler) nameTaken(name string, exceptID uint) bool {
	var n int64
	h.db.Model(&models.LawFirm{}).Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), exceptID).Count(&n)
	return n > 0
}

func (h *Handler) load(c *gin.Context) (*models.LawFirm, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	var f models.LawFirm
	if err := h.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "Law firm not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch law firm")
		}
		return nil, false
	}
	return &f, true
}

// List returns law firms
// @Summary List law firms
// @Tags law-firms
// @Produce json
// @Param preferred query bool false "Only preferred firms"
// @Param q query string false "Search name or contact"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /law-firms [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q := h.db.Model(&models.LawFirm{})
	preferred, ok := httputil.QueryBool(c, "preferred")
	if !ok {
		return
	}
	if preferred != nil {
		q = q.Where("is_preferred = ?", *preferred)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(contact_person) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count law firms")
		return
	}
	var rows []models.LawFirm
	if err := p.Apply(q.Order("is_preferred DESC, name")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch law firms")
		return
	}
	items := make([]LawFirmResponse, len(rows))
	for i, f := range rows {
		items[i] = h.toResponse(f)
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// Create creates a law firm
// @Summary Create law firm
// @Tags law-firms
// @Accept json
// @Produce json
// @Param request body CreateLawFirmRequest true "Law firm details"
// @Success 201 {object} LawFirmResponse
// @Security BearerAuth
// @Router /law-firms [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLawFirmRequest
	if !apierror.Bind(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if h.nameTaken(req.Name, 0) {
		apierror.Conflict(c, "A law firm with this name already exists")
		return
	}

	f := models.LawFirm{
		Name:              req.Name,
		ContactPerson:     req.ContactPerson,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Website:           req.Website,
		IsPreferred:       req.IsPreferred,
		PerformanceRating: req.PerformanceRating,
		Notes:             req.Notes,
	}
	if err := h.db.Create(&f).Error; err != nil {
		apierror.Internal(c, err, "Failed to create law firm")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditCreate, EntityType: "law_firm", EntityID: f.ID, Changes: req})
	c.JSON(http.StatusCreated, h.toResponse(f))
}

// Get returns a law firm
// @Summary Get law firm
// @Tags law-firms
// @Produce json
// @Param id path int true "Law firm ID"
// @Success 200 {object} LawFirmResponse
// @Security BearerAuth
// @Router /law-firms/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*f))
}

// Update updates a law firm
// @Summary Update law firm
// @Tags law-firms
// @Accept json
// @Produce json
// @Param id path int true "Law firm ID"
// @Param request body UpdateLawFirmRequest true "Fields to change"
// @Success 200 {object} LawFirmResponse
// @Security BearerAuth
// @Router /law-firms/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdateLawFirmRequest
	if !apierror.Bind(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if h.nameTaken(name, f.ID) {
			apierror.Conflict(c, "A law firm with this name already exists")
			return
		}
		updates["name"] = name
	}
	for col, v := range map[string]*string{
		"contact_person": req.ContactPerson,
		"email":          req.Email,
		"phone":          req.Phone,
		"address":        req.Address,
		"website":        req.Website,
		"notes":          req.Notes,
	} {
		if v != nil {
			updates[col] = *v
		}
	}
	if req.IsPreferred != nil {
		updates["is_preferred"] = *req.IsPreferred
	}
	if req.PerformanceRating != nil {
		updates["performance_rating"] = *req.PerformanceRating
	}

	if len(updates) > 0 {
		if err := h.db.Model(f).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update law firm")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditUpdate, EntityType: "law_firm", EntityID: f.ID, Changes: updates})
	}
	h.db.First(f, f.ID)
	c.JSON(http.StatusOK, h.toResponse(*f))
}

// Delete soft-deletes a law firm. Firms with open petitions cannot be removed.
// @Summary Delete law firm
// @Tags law-firms
// @Param id path int true "Law firm ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} apierror.APIError
// @Security BearerAuth
// @Router /law-firms/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	if h.toResponse(*f).ActivePetitions > 0 {
		apierror.Conflict(c, "Law firm still has open petitions")
		return
	}
	if err := h.db.Delete(f).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete law firm")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: access.FromContext(c).IDPtr(), Action: models.AuditDelete, EntityType: "law_firm", EntityID: f.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Law firm deleted"})
}

// RegisterRoutes registers law firm routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	writers := access.RequireRoles(models.RoleAdmin, models.RoleHR)

	firms := rg.Group("/law-firms")
	firms.GET("", h.List)
	firms.POST("", writers, h.Create)
	firms.GET("/:id", h.Get)
	firms.PUT("/:id", writers, h.Update)
	firms.DELETE("/:id", writers, h.Delete)
}
