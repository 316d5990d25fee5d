package beneficiaries

import (
	"net/http"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles beneficiary and dependent requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new beneficiaries handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateBeneficiaryRequest represents the request to create a beneficiary
type CreateBeneficiaryRequest struct {
	UserID                *uint   `json:"user_id"`
	ContractID            *uint   `json:"contract_id"`
	DepartmentID          *uint   `json:"department_id"`
	FirstName             string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName              string  `json:"last_name" binding:"required,min=1,max=100"`
	Email                 string  `json:"email" binding:"omitempty,email"`
	CountryOfCitizenship  string  `json:"country_of_citizenship" binding:"max=100"`
	CountryOfBirth        string  `json:"country_of_birth" binding:"max=100"`
	PassportNumber        string  `json:"passport_number" binding:"max=50"`
	PassportExpiration    *string `json:"passport_expiration" binding:"omitempty,isodate"`
	CurrentVisaType       string  `json:"current_visa_type" binding:"max=50"`
	CurrentVisaExpiration *string `json:"current_visa_expiration" binding:"omitempty,isodate"`
	I94Expiration         *string `json:"i94_expiration" binding:"omitempty,isodate"`
	JobTitle              string  `json:"job_title" binding:"max=200"`
	EmploymentStartDate   *string `json:"employment_start_date" binding:"omitempty,isodate"`
	IsActive              *bool   `json:"is_active"`
	Notes                 string  `json:"notes"`
}

// UpdateBeneficiaryRequest represents the request to update a beneficiary
type UpdateBeneficiaryRequest struct {
	UserID                *uint   `json:"user_id"`
	ContractID            *uint   `json:"contract_id"`
	DepartmentID          *uint   `json:"department_id"`
	FirstName             *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName              *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	CountryOfCitizenship  *string `json:"country_of_citizenship" binding:"omitempty,max=100"`
	CountryOfBirth        *string `json:"country_of_birth" binding:"omitempty,max=100"`
	PassportNumber        *string `json:"passport_number" binding:"omitempty,max=50"`
	PassportExpiration    *string `json:"passport_expiration" binding:"omitempty,isodate"`
	CurrentVisaType       *string `json:"current_visa_type" binding:"omitempty,max=50"`
	CurrentVisaExpiration *string `json:"current_visa_expiration" binding:"omitempty,isodate"`
	I94Expiration         *string `json:"i94_expiration" binding:"omitempty,isodate"`
	JobTitle              *string `json:"job_title" binding:"omitempty,max=200"`
	EmploymentStartDate   *string `json:"employment_start_date" binding:"omitempty,isodate"`
	IsActive              *bool   `json:"is_active"`
	Notes                 *string `json:"notes"`
}

// restricted reports whether the request touches fields a beneficiary may
// not change on their own record.
func (r UpdateBeneficiaryRequest) restricted() bool {
	return r.UserID != nil || r.ContractID != nil || r.DepartmentID != nil ||
		r.CurrentVisaType != nil || r.CurrentVisaExpiration != nil || r.I94Expiration != nil ||
		r.JobTitle != nil || r.EmploymentStartDate != nil || r.IsActive != nil || r.Notes != nil
}

// BeneficiaryResponse represents a beneficiary in API responses
type BeneficiaryResponse struct {
	models.Beneficiary
	FullName         string `json:"full_name"`
	DependentCount   int64  `json:"dependent_count"`
	ActiveCaseGroups int64  `json:"active_case_groups"`
}

func (h *Handler) toResponse(b models.Beneficiary) BeneficiaryResponse {
	resp := BeneficiaryResponse{Beneficiary: b, FullName: b.FullName()}
	h.db.Model(&models.Dependent{}).Where("beneficiary_id = ?", b.ID).Count(&resp.DependentCount)
	h.db.Model(&models.CaseGroup{}).
		Where("beneficiary_id = ? AND status IN ?", b.ID, []models.CaseStatus{models.CaseStatusPlanning, models.CaseStatusInProgress}).
		Count(&resp.ActiveCaseGroups)
	return resp
}

// scoped returns the beneficiaries query limited to the actor's scope.
func (h *Handler) scoped(c *gin.Context) (*gorm.DB, bool) {
	scope, ok := access.ScopeOf(c)
	if !ok {
		return nil, false
	}
	return scope.Beneficiaries(h.db.Model(&models.Beneficiary{})), true
}

func (h *Handler) load(c *gin.Context) (*models.Beneficiary, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	return access.LoadBeneficiary(c, h.db, id)
}

// canManage reports whether the actor may change administrative data of b.
func canManage(actor *access.Actor, b *models.Beneficiary) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Is(models.RoleHR, models.RolePM) && actor.InContract(b.ContractID)
}

// isOwn reports whether b is the actor's own beneficiary record.
func isOwn(actor *access.Actor, b *models.Beneficiary) bool {
	return actor.BeneficiaryID != nil && *actor.BeneficiaryID == b.ID
}

// List returns the beneficiaries visible to the caller
// @Summary List beneficiaries
// @Tags beneficiaries
// @Produce json
// @Param contract_id query int false "Filter by contract"
// @Param department_id query int false "Filter by department"
// @Param is_active query bool false "Filter by active flag"
// @Param q query string false "Search name or email"
// @Param expiring_within_days query int false "Visa or I-94 expiring within N days"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q, ok := h.scoped(c)
	if !ok {
		return
	}
	for _, col := range []string{"contract_id", "department_id"} {
		v, ok := httputil.QueryUint(c, col)
		if !ok {
			return
		}
		if v != nil {
			q = q.Where("beneficiaries."+col+" = ?", *v)
		}
	}
	active, ok := httputil.QueryBool(c, "is_active")
	if !ok {
		return
	}
	if active != nil {
		q = q.Where("beneficiaries.is_active = ?", *active)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	if c.Query("expiring_within_days") != "" {
		days, ok := httputil.QueryInt(c, "expiring_within_days", 90, 0, 3650)
		if !ok {
			return
		}
		today := httputil.StartOfDay(time.Now())
		until := today.AddDate(0, 0, days+1)
		q = q.Where("(current_visa_expiration >= ? AND current_visa_expiration < ?) OR (i94_expiration >= ? AND i94_expiration < ?)",
			today, until, today, until)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count beneficiaries")
		return
	}
	var rows []models.Beneficiary
	if err := p.Apply(q.Order("last_name, first_name")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiaries")
		return
	}
	items := make([]BeneficiaryResponse, len(rows))
	for i, b := range rows {
		items[i] = h.toResponse(b)
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// checkLinks validates the user, contract and department a beneficiary
// points at. beneficiaryID is 0 on create.
func (h *Handler) checkLinks(c *gin.Context, beneficiaryID uint, userID, contractID, departmentID *uint) bool {
	if userID != nil {
		var n int64
		h.db.Model(&models.User{}).Where("id = ?", *userID).Count(&n)
		if n == 0 {
			apierror.BadRequest(c, "User does not exist")
			return false
		}
		h.db.Model(&models.Beneficiary{}).Where("user_id = ? AND id <> ?", *userID, beneficiaryID).Count(&n)
		if n > 0 {
			apierror.Conflict(c, "User is already linked to another beneficiary")
			return false
		}
	}
	if contractID != nil {
		var n int64
		h.db.Model(&models.Contract{}).Where("id = ?", *contractID).Count(&n)
		if n == 0 {
			apierror.BadRequest(c, "Contract does not exist")
			return false
		}
	}
	if departmentID != nil {
		var d models.Department
		if err := h.db.First(&d, *departmentID).Error; err != nil {
			apierror.BadRequest(c, "Department does not exist")
			return false
		}
		if contractID == nil || d.ContractID != *contractID {
			apierror.BadRequest(c, "Department must belong to the beneficiary's contract")
			return false
		}
	}
	return true
}

// Create creates a beneficiary. Contract and department default to those
// of the linked user.
// @Summary Create beneficiary
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param request body CreateBeneficiaryRequest true "Beneficiary details"
// @Success 201 {object} BeneficiaryResponse
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreateBeneficiaryRequest
	if !apierror.Bind(c, &req) {
		return
	}

	if req.UserID != nil && (req.ContractID == nil || req.DepartmentID == nil) {
		var u models.User
		if err := h.db.First(&u, *req.UserID).Error; err == nil {
			if req.ContractID == nil {
				req.ContractID = u.ContractID
			}
			if req.DepartmentID == nil && (req.ContractID == nil || u.ContractID == nil || *u.ContractID == *req.ContractID) {
				req.DepartmentID = u.DepartmentID
			}
		}
	}
	if !actor.IsAdmin() {
		if actor.User.ContractID == nil {
			apierror.Forbidden(c, "User has no contract")
			return
		}
		if req.ContractID == nil {
			req.ContractID = actor.User.ContractID
		}
		if !actor.InContract(req.ContractID) {
			apierror.Forbidden(c, "Cannot create beneficiaries in another contract")
			return
		}
	}
	if !h.checkLinks(c, 0, req.UserID, req.ContractID, req.DepartmentID) {
		return
	}

	b := models.Beneficiary{
		UserID:               req.UserID,
		ContractID:           req.ContractID,
		DepartmentID:         req.DepartmentID,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                strings.ToLower(strings.TrimSpace(req.Email)),
		CountryOfCitizenship: req.CountryOfCitizenship,
		CountryOfBirth:       req.CountryOfBirth,
		PassportNumber:       req.PassportNumber,
		CurrentVisaType:      req.CurrentVisaType,
		JobTitle:             req.JobTitle,
		IsActive:             req.IsActive == nil || *req.IsActive,
		Notes:                req.Notes,
	}
	dates := []struct {
		in  *string
		out **time.Time
	}{
		{req.PassportExpiration, &b.PassportExpiration},
		{req.CurrentVisaExpiration, &b.CurrentVisaExpiration},
		{req.I94Expiration, &b.I94Expiration},
		{req.EmploymentStartDate, &b.EmploymentStartDate},
	}
	for _, d := range dates {
		t, err := httputil.ParseDatePtr(d.in)
		if err != nil {
			apierror.BadRequest(c, err.Error())
			return
		}
		*d.out = t
	}

	if err := h.db.Create(&b).Error; err != nil {
		apierror.Internal(c, err, "Failed to create beneficiary")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "beneficiary", EntityID: b.ID, Changes: req})
	c.JSON(http.StatusCreated, h.toResponse(b))
}

// Get returns a beneficiary with its dependents
// @Summary Get beneficiary
// @Tags beneficiaries
// @Produce json
// @Param id path int true "Beneficiary ID"
// @Success 200 {object} BeneficiaryResponse
// @Security BearerAuth
// @Router /beneficiaries/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	b, ok := h.load(c)
	if !ok {
		return
	}
	h.db.Where("beneficiary_id = ?", b.ID).Order("id").Find(&b.Dependents)
	c.JSON(http.StatusOK, h.toResponse(*b))
}

// Update updates a beneficiary
// @Summary Update beneficiary
// @Description Beneficiaries may change their own personal details only
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param id path int true "Beneficiary ID"
// @Param request body UpdateBeneficiaryRequest true "Fields to change"
// @Success 200 {object} BeneficiaryResponse
// @Security BearerAuth
// @Router /beneficiaries/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	b, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdateBeneficiaryRequest
	if !apierror.Bind(c, &req) {
		return
	}

	switch {
	case canManage(actor, b):
	case isOwn(actor, b) && !req.restricted():
	default:
		apierror.Forbidden(c, "Insufficient permissions to change this beneficiary")
		return
	}
	if req.ContractID != nil && !actor.IsAdmin() && !actor.InContract(req.ContractID) {
		apierror.Forbidden(c, "Cannot move beneficiaries to another contract")
		return
	}

	contractID := b.ContractID
	if req.ContractID != nil {
		contractID = req.ContractID
	}
	departmentID := req.DepartmentID
	if departmentID == nil && req.ContractID != nil {
		departmentID = b.DepartmentID
	}
	if !h.checkLinks(c, b.ID, req.UserID, contractID, departmentID) {
		return
	}

	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("first_name", req.FirstName)
	set("last_name", req.LastName)
	set("country_of_citizenship", req.CountryOfCitizenship)
	set("country_of_birth", req.CountryOfBirth)
	set("passport_number", req.PassportNumber)
	set("current_visa_type", req.CurrentVisaType)
	set("job_title", req.JobTitle)
	set("notes", req.Notes)
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	for col, v := range map[string]*uint{"user_id": req.UserID, "contract_id": req.ContractID, "department_id": req.DepartmentID} {
		if v != nil {
			updates[col] = *v
		}
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	for col, v := range map[string]*string{
		"passport_expiration":     req.PassportExpiration,
		"current_visa_expiration": req.CurrentVisaExpiration,
		"i94_expiration":          req.I94Expiration,
		"employment_start_date":   req.EmploymentStartDate,
	} {
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
		if err := h.db.Model(b).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update beneficiary")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "beneficiary", EntityID: b.ID, Changes: updates})
	}

	h.db.First(b, b.ID)
	c.JSON(http.StatusOK, h.toResponse(*b))
}

// Delete soft-deletes a beneficiary
// @Summary Delete beneficiary
// @Tags beneficiaries
// @Param id path int true "Beneficiary ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	b, ok := h.load(c)
	if !ok {
		return
	}
	if !actor.IsAdmin() && !(actor.Is(models.RoleHR) && actor.InContract(b.ContractID)) {
		apierror.Forbidden(c, "Insufficient permissions")
		return
	}

	if err := h.db.Delete(b).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete beneficiary")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "beneficiary", EntityID: b.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Beneficiary deleted"})
}

// RegisterRoutes registers beneficiary and dependent routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	writers := access.RequireRoles(models.RoleAdmin, models.RoleHR, models.RolePM)

	b := rg.Group("/beneficiaries")
	b.GET("", h.List)
	b.POST("", writers, h.Create)
	b.GET("/:id", h.Get)
	b.PUT("/:id", h.Update)
	b.DELETE("/:id", access.RequireRoles(models.RoleAdmin, models.RoleHR), h.Delete)
	b.GET("/:id/dependents", h.ListDependents)
	b.POST("/:id/dependents", h.CreateDependent)

	d := rg.Group("/dependents")
	d.PUT("/:id", h.UpdateDependent)
	d.DELETE("/:id", h.DeleteDependent)
}
