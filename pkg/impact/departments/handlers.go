package departments

import (
	"errors"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/orgtree"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles department requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new departments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	ContractID  uint   `json:"contract_id" binding:"required"`
	ParentID    *uint  `json:"parent_id"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Code        string `json:"code" binding:"max=50"`
	Description string `json:"description"`
	ManagerID   *uint  `json:"manager_id"`
}

// UpdateDepartmentRequest represents the request to update a department.
// A parent_id of 0 moves the department to the top level.
type UpdateDepartmentRequest struct {
	ParentID    *uint   `json:"parent_id"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Code        *string `json:"code" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	ManagerID   *uint   `json:"manager_id"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID          uint      `json:"id"`
	ContractID  uint      `json:"contract_id"`
	ParentID    *uint     `json:"parent_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	ManagerID   *uint     `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(d models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		ContractID:  d.ContractID,
		ParentID:    d.ParentID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// visible restricts departments to the actor's contract unless the actor
// is an administrator.
func visible(db *gorm.DB, actor *access.Actor) *gorm.DB {
	q := db.Model(&models.Department{})
	if actor.IsAdmin() {
		return q
	}
	if actor.User.ContractID == nil {
		return q.Where("1 = 0")
	}
	return q.Where("departments.contract_id = ?", *actor.User.ContractID)
}

func (h *Handler) load(c *gin.Context) (*models.Department, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	var d models.Department
	if err := visible(h.db, access.FromContext(c)).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "Department not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch department")
		}
		return nil, false
	}
	return &d, true
}

// canWrite reports whether the actor may change departments of contractID.
func canWrite(actor *access.Actor, contractID uint) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Is(models.RolePM, models.RoleHR) && actor.InContract(&contractID)
}

func (h *Handler) filtered(c *gin.Context) (*gorm.DB, bool) {
	q := visible(h.db, access.FromContext(c))
	contractID, ok := httputil.QueryUint(c, "contract_id")
	if !ok {
		return nil, false
	}
	if contractID != nil {
		q = q.Where("departments.contract_id = ?", *contractID)
	}
	return q, true
}

// List returns a flat, paginated list of departments
// @Summary List departments
// @Tags departments
// @Produce json
// @Param contract_id query int false "Filter by contract"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /departments [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q, ok := h.filtered(c)
	if !ok {
		return
	}
	parentID, ok := httputil.QueryUint(c, "parent_id")
	if !ok {
		return
	}
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count departments")
		return
	}
	var rows []models.Department
	if err := p.Apply(q.Order("name")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch departments")
		return
	}
	items := make([]DepartmentResponse, len(rows))
	for i, d := range rows {
		items[i] = toResponse(d)
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// Tree returns the departments as nested trees, one per top-level department
// @Summary Department tree
// @Tags departments
// @Produce json
// @Param contract_id query int false "Filter by contract"
// @Success 200 {array} orgtree.Node
// @Security BearerAuth
// @Router /departments/tree [get]
func (h *Handler) Tree(c *gin.Context) {
	q, ok := h.filtered(c)
	if !ok {
		return
	}
	var rows []models.Department
	if err := q.Order("name").Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch departments")
		return
	}
	c.JSON(http.StatusOK, orgtree.BuildTree(rows))
}

// Create creates a department
// @Summary Create department
// @Tags departments
// @Accept json
// @Produce json
// @Param request body CreateDepartmentRequest true "Department details"
// @Success 201 {object} DepartmentResponse
// @Security BearerAuth
// @Router /departments [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreateDepartmentRequest
	if !apierror.Bind(c, &req) {
		return
	}
	if !canWrite(actor, req.ContractID) {
		apierror.Forbidden(c, "Cannot create departments in this contract")
		return
	}

	var count int64
	h.db.Model(&models.Contract{}).Where("id = ?", req.ContractID).Count(&count)
	if count == 0 {
		apierror.BadRequest(c, "Contract does not exist")
		return
	}
	if req.ParentID != nil {
		if !h.checkParent(c, 0, req.ContractID, *req.ParentID) {
			return
		}
	}

	d := models.Department{
		ContractID:  req.ContractID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	}
	if err := h.db.Create(&d).Error; err != nil {
		apierror.Internal(c, err, "Failed to create department")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "department", EntityID: d.ID, Changes: req})
	c.JSON(http.StatusCreated, toResponse(d))
}

func (h *Handler) checkParent(c *gin.Context, deptID, contractID, parentID uint) bool {
	err := orgtree.CheckParent(h.db, deptID, contractID, parentID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, gorm.ErrRecordNotFound):
		apierror.BadRequest(c, "Parent department does not exist")
	case errors.Is(err, orgtree.ErrCycle), errors.Is(err, orgtree.ErrOtherContract):
		apierror.BadRequest(c, err.Error())
	default:
		apierror.Internal(c, err, "Failed to validate parent department")
	}
	return false
}

// Get returns a department
// @Summary Get department
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} DepartmentResponse
// @Security BearerAuth
// @Router /departments/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	d, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(*d))
}

// Update updates a department
// @Summary Update department
// @Tags departments
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Param request body UpdateDepartmentRequest true "Fields to change"
// @Success 200 {object} DepartmentResponse
// @Security BearerAuth
// @Router /departments/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	d, ok := h.load(c)
	if !ok {
		return
	}
	if !canWrite(actor, d.ContractID) {
		apierror.Forbidden(c, "Cannot modify departments in this contract")
		return
	}
	var req UpdateDepartmentRequest
	if !apierror.Bind(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.ParentID != nil {
		if *req.ParentID == 0 {
			updates["parent_id"] = nil
		} else {
			if !h.checkParent(c, d.ID, d.ContractID, *req.ParentID) {
				return
			}
			updates["parent_id"] = *req.ParentID
		}
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ManagerID != nil {
		updates["manager_id"] = *req.ManagerID
	}

	if len(updates) > 0 {
		if err := h.db.Model(d).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update department")
			return
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "department", EntityID: d.ID, Changes: updates})
	}
	h.db.First(d, d.ID)
	c.JSON(http.StatusOK, toResponse(*d))
}

// Delete removes a department without children or members
// @Summary Delete department
// @Tags departments
// @Param id path int true "Department ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} apierror.APIError "Department still in use"
// @Security BearerAuth
// @Router /departments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	d, ok := h.load(c)
	if !ok {
		return
	}
	if !canWrite(actor, d.ContractID) {
		apierror.Forbidden(c, "Cannot delete departments in this contract")
		return
	}

	var children, users int64
	h.db.Model(&models.Department{}).Where("parent_id = ?", d.ID).Count(&children)
	h.db.Model(&models.User{}).Where("department_id = ?", d.ID).Count(&users)
	if children > 0 || users > 0 {
		apierror.Conflict(c, "Department still has sub-departments or users")
		return
	}

	if err := h.db.Delete(d).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete department")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "department", EntityID: d.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted"})
}

// RegisterRoutes registers department routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	depts := rg.Group("/departments")
	depts.GET("", h.List)
	depts.GET("/tree", h.Tree)
	depts.POST("", h.Create)
	depts.GET("/:id", h.Get)
	depts.PUT("/:id", h.Update)
	depts.DELETE("/:id", h.Delete)
	depts.GET("/:id/stats", access.RequireRoles(models.RoleAdmin, models.RoleHR, models.RolePM, models.RoleManager), h.Stats)
}
