package contracts

import (
	"errors"
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

// Handler handles contract requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new contracts handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateContractRequest represents the request to create a contract
type CreateContractRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	Code          string  `json:"code" binding:"required,min=1,max=50"`
	ClientName    string  `json:"client_name" binding:"max=200"`
	Description   string  `json:"description"`
	StartDate     *string `json:"start_date" binding:"omitempty,isodate"`
	EndDate       *string `json:"end_date" binding:"omitempty,isodate"`
	Status        string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	ManagerUserID *uint   `json:"manager_user_id"`
}

// UpdateContractRequest represents the request to update a contract.
// Omitted fields are left unchanged.
type UpdateContractRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Code          *string `json:"code" binding:"omitempty,min=1,max=50"`
	ClientName    *string `json:"client_name" binding:"omitempty,max=200"`
	Description   *string `json:"description"`
	StartDate     *string `json:"start_date" binding:"omitempty,isodate"`
	EndDate       *string `json:"end_date" binding:"omitempty,isodate"`
	Status        *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	ManagerUserID *uint   `json:"manager_user_id"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	Code            string                `json:"code"`
	ClientName      string                `json:"client_name"`
	Description     string                `json:"description"`
	StartDate       *time.Time            `json:"start_date"`
	EndDate         *time.Time            `json:"end_date"`
	Status          models.ContractStatus `json:"status"`
	ManagerUserID   *uint                 `json:"manager_user_id"`
	DepartmentCount int64                 `json:"department_count"`
	UserCount       int64                 `json:"user_count"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (h *Handler) toResponse(ct models.Contract) ContractResponse {
	resp := ContractResponse{
		ID:            ct.ID,
		Name:          ct.Name,
		Code:          ct.Code,
		ClientName:    ct.ClientName,
		Description:   ct.Description,
		StartDate:     ct.StartDate,
		EndDate:       ct.EndDate,
		Status:        ct.Status,
		ManagerUserID: ct.ManagerUserID,
		CreatedAt:     ct.CreatedAt,
		UpdatedAt:     ct.UpdatedAt,
	}
	h.db.Model(&models.Department{}).Where("contract_id = ?", ct.ID).Count(&resp.DepartmentCount)
	h.db.Model(&models.User{}).Where("contract_id = ?", ct.ID).Count(&resp.UserCount)
	return resp
}

// visible returns the contracts query restricted to what the actor may see.
func visible(db *gorm.DB, actor *access.Actor) *gorm.DB {
	q := db.Model(&models.Contract{})
	if actor.IsAdmin() {
		return q
	}
	if actor.User.ContractID == nil {
		return q.Where("1 = 0")
	}
	return q.Where("id = ?", *actor.User.ContractID)
}

func (h *Handler) load(c *gin.Context) (*models.Contract, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	var ct models.Contract
	if err := visible(h.db, access.FromContext(c)).First(&ct, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "Contract not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch contract")
		}
		return nil, false
	}
	return &ct, true
}

// List returns the contracts visible to the current user
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param status query string false "Filter by status"
// @Param q query string false "Search name, code or client"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /contracts [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q := visible(h.db, access.FromContext(c))
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(client_name) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count contracts")
		return
	}
	var rows []models.Contract
	if err := p.Apply(q.Order("name")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch contracts")
		return
	}

	items := make([]ContractResponse, len(rows))
	for i, ct := range rows {
		items[i] = h.toResponse(ct)
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// Create creates a new contract
// @Summary Create contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param request body CreateContractRequest true "Contract details"
// @Success 201 {object} ContractResponse
// @Failure 409 {object} apierror.APIError "Code already in use"
// @Security BearerAuth
// @Router /contracts [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreateContractRequest
	if !apierror.Bind(c, &req) {
		return
	}

	start, err := httputil.ParseDatePtr(req.StartDate)
	if err != nil {
		apierror.BadRequest(c, "start_date: "+err.Error())
		return
	}
	end, err := httputil.ParseDatePtr(req.EndDate)
	if err != nil {
		apierror.BadRequest(c, "end_date: "+err.Error())
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		apierror.BadRequest(c, "end_date must not be before start_date")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if h.codeTaken(code, 0) {
		apierror.Conflict(c, "Contract code already in use")
		return
	}

	status := models.ContractStatusActive
	if req.Status != "" {
		status = models.ContractStatus(req.Status)
	}
	ct := models.Contract{
		Name:          req.Name,
		Code:          code,
		ClientName:    req.ClientName,
		Description:   req.Description,
		StartDate:     start,
		EndDate:       end,
		Status:        status,
		ManagerUserID: req.ManagerUserID,
	}
	if err := h.db.Create(&ct).Error; err != nil {
		apierror.Internal(c, err, "Failed to create contract")
		return
	}

	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "contract", EntityID: ct.ID, Changes: req})
	c.JSON(http.StatusCreated, h.toResponse(ct))
}

func (h *Handler) codeTaken(code string, excludeID uint) bool {
	q := h.db.Model(&models.Contract{}).Unscoped().Where("code = ?", code)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	q.Count(&count)
	return count > 0
}

// Get returns a contract
// @Summary Get contract
// @Tags contracts
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} ContractResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	ct, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*ct))
}

// Update updates a contract. Administrators may update any contract, PMs
// only their own.
// @Summary Update contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path int true "Contract ID"
// @Param request body UpdateContractRequest true "Fields to change"
// @Success 200 {object} ContractResponse
// @Security BearerAuth
// @Router /contracts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	ct, ok := h.load(c)
	if !ok {
		return
	}
	if !actor.IsAdmin() && !(actor.Is(models.RolePM) && actor.InContract(&ct.ID)) {
		apierror.Forbidden(c, "Only administrators or the contract's PM can update it")
		return
	}

	var req UpdateContractRequest
	if !apierror.Bind(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if h.codeTaken(code, ct.ID) {
			apierror.Conflict(c, "Contract code already in use")
			return
		}
		updates["code"] = code
	}
	if req.ClientName != nil {
		updates["client_name"] = *req.ClientName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	start, end := ct.StartDate, ct.EndDate
	if req.StartDate != nil {
		d, err := httputil.ParseDate(*req.StartDate)
		if err != nil {
			apierror.BadRequest(c, "start_date: "+err.Error())
			return
		}
		start = d
		updates["start_date"] = d
	}
	if req.EndDate != nil {
		d, err := httputil.ParseDate(*req.EndDate)
		if err != nil {
			apierror.BadRequest(c, "end_date: "+err.Error())
			return
		}
		end = d
		updates["end_date"] = d
	}
	if start != nil && end != nil && end.Before(*start) {
		apierror.BadRequest(c, "end_date must not be before start_date")
		return
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ManagerUserID != nil {
		updates["manager_user_id"] = *req.ManagerUserID
	}

	if len(updates) > 0 {
		if err := h.db.Model(ct).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update contract")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "contract", EntityID: ct.ID, Changes: updates})
	}

	h.db.First(ct, ct.ID)
	c.JSON(http.StatusOK, h.toResponse(*ct))
}

// Delete soft-deletes a contract that nothing references
// @Summary Delete contract
// @Tags contracts
// @Param id path int true "Contract ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} apierror.APIError "Contract still referenced"
// @Security BearerAuth
// @Router /contracts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	ct, ok := h.load(c)
	if !ok {
		return
	}

	var depts, users int64
	h.db.Model(&models.Department{}).Where("contract_id = ?", ct.ID).Count(&depts)
	h.db.Model(&models.User{}).Where("contract_id = ?", ct.ID).Count(&users)
	if depts > 0 || users > 0 {
		apierror.Conflict(c, "Contract still has departments or users")
		return
	}

	if err := h.db.Delete(ct).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete contract")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "contract", EntityID: ct.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// RegisterRoutes registers contract routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := access.RequireRoles(models.RoleAdmin)

	contracts := rg.Group("/contracts")
	contracts.GET("", h.List)
	contracts.POST("", admin, h.Create)
	contracts.GET("/:id", h.Get)
	contracts.PUT("/:id", h.Update)
	contracts.DELETE("/:id", admin, h.Delete)
}
