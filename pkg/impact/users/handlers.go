package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/orgtree"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles user management requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required,min=1,max=200"`
	Phone        string `json:"phone" binding:"max=50"`
	Role         string `json:"role" binding:"required,oneof=ADMIN HR PM MANAGER BENEFICIARY"`
	ContractID   *uint  `json:"contract_id"`
	DepartmentID *uint  `json:"department_id"`
	ReportsToID  *uint  `json:"reports_to_id"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Role         *string `json:"role" binding:"omitempty,oneof=ADMIN HR PM MANAGER BENEFICIARY"`
	ContractID   *uint   `json:"contract_id"`
	DepartmentID *uint   `json:"department_id"`
	ReportsToID  *uint   `json:"reports_to_id"`
	IsActive     *bool   `json:"is_active"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
}

// ReportsResponse lists the people below a user in the reporting chain
type ReportsResponse struct {
	UserID        uint                `json:"user_id"`
	DirectReports []auth.UserResponse `json:"direct_reports"`
	AllReports    []auth.UserResponse `json:"all_reports"`
}

// visible restricts users to what the actor may see: administrators see
// everyone, HR their contract, everybody else only themselves.
func visible(db *gorm.DB, actor *access.Actor) *gorm.DB {
	q := db.Model(&models.User{})
	switch {
	case actor.IsAdmin():
		return q
	case actor.Is(models.RoleHR) && actor.User.ContractID != nil:
		return q.Where("users.contract_id = ? OR users.id = ?", *actor.User.ContractID, actor.ID())
	default:
		return q.Where("users.id = ?", actor.ID())
	}
}

func (h *Handler) respond(u models.User) auth.UserResponse {
	return auth.NewUserResponse(u, auth.LinkedBeneficiaryID(h.db, u.ID))
}

func (h *Handler) load(c *gin.Context) (*models.User, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	var u models.User
	if err := visible(h.db, access.FromContext(c)).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, "User not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch user")
		}
		return nil, false
	}
	return &u, true
}

// List returns the users visible to the caller
// @Summary List users
// @Tags users
// @Produce json
// @Param role query string false "Filter by role"
// @Param contract_id query int false "Filter by contract"
// @Param department_id query int false "Filter by department"
// @Param is_active query bool false "Filter by active flag"
// @Param q query string false "Search name or email"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q := visible(h.db, access.FromContext(c))
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", strings.ToUpper(role))
	}
	for _, col := range []string{"contract_id", "department_id"} {
		v, ok := httputil.QueryUint(c, col)
		if !ok {
			return
		}
		if v != nil {
			q = q.Where(col+" = ?", *v)
		}
	}
	active, ok := httputil.QueryBool(c, "is_active")
	if !ok {
		return
	}
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count users")
		return
	}
	var rows []models.User
	if err := p.Apply(q.Order("full_name")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch users")
		return
	}
	items := make([]auth.UserResponse, len(rows))
	for i, u := range rows {
		items[i] = h.respond(u)
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// checkPlacement validates the contract, department and manager of a user.
func (h *Handler) checkPlacement(c *gin.Context, userID uint, contractID, departmentID, reportsToID *uint) bool {
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
			apierror.BadRequest(c, "Department must belong to the user's contract")
			return false
		}
	}
	if reportsToID != nil {
		if userID != 0 && *reportsToID == userID {
			apierror.BadRequest(c, "A user cannot report to themselves")
			return false
		}
		var n int64
		h.db.Model(&models.User{}).Where("id = ?", *reportsToID).Count(&n)
		if n == 0 {
			apierror.BadRequest(c, "Manager does not exist")
			return false
		}
		if userID != 0 {
			below, err := orgtree.Reports(h.db, userID)
			if err != nil {
				apierror.Internal(c, err, "Failed to resolve reporting chain")
				return false
			}
			for _, id := range below {
				if id == *reportsToID {
					apierror.BadRequest(c, "Reporting chain would contain a cycle")
					return false
				}
			}
		}
	}
	return true
}

// Create creates a user
// @Summary Create user
// @Description ADMIN may create any user; HR only non-admin users of its own contract
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User details"
// @Success 201 {object} auth.UserResponse
// @Failure 409 {object} apierror.APIError "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreateUserRequest
	if !apierror.Bind(c, &req) {
		return
	}
	role := models.Role(req.Role)

	if actor.Is(models.RoleHR) {
		if role == models.RoleAdmin {
			apierror.Forbidden(c, "HR cannot create administrators")
			return
		}
		if actor.User.ContractID == nil {
			apierror.Forbidden(c, "HR user has no contract")
			return
		}
		req.ContractID = actor.User.ContractID
	}
	if !h.checkPlacement(c, 0, req.ContractID, req.DepartmentID, req.ReportsToID) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing int64
	h.db.Model(&models.User{}).Unscoped().Where("email = ?", email).Count(&existing)
	if existing > 0 {
		apierror.Conflict(c, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		apierror.Internal(c, err, "Failed to process password")
		return
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         role,
		ContractID:   req.ContractID,
		DepartmentID: req.DepartmentID,
		ReportsToID:  req.ReportsToID,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		apierror.Internal(c, err, "Failed to create user")
		return
	}

	req.Password = ""
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "user", EntityID: user.ID, Changes: req})
	c.JSON(http.StatusCreated, h.respond(user))
}

// Get returns a user
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} auth.UserResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.respond(*u))
}

// Update updates a user. Users may change their own name and phone;
// administrative fields need ADMIN, or HR within its contract.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} auth.UserResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	u, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !apierror.Bind(c, &req) {
		return
	}

	manager := actor.IsAdmin() || (actor.Is(models.RoleHR) && actor.InContract(u.ContractID))
	adminFields := req.Role != nil || req.ContractID != nil || req.DepartmentID != nil ||
		req.ReportsToID != nil || req.IsActive != nil || req.Password != nil
	switch {
	case adminFields && !manager:
		apierror.Forbidden(c, "Insufficient permissions to change these fields")
		return
	case !manager && u.ID != actor.ID():
		apierror.Forbidden(c, "Cannot modify other users")
		return
	}
	if actor.Is(models.RoleHR) {
		if (req.Role != nil && models.Role(*req.Role) == models.RoleAdmin) || u.Role == models.RoleAdmin {
			apierror.Forbidden(c, "HR cannot manage administrators")
			return
		}
		if req.ContractID != nil && !actor.InContract(req.ContractID) {
			apierror.Forbidden(c, "HR cannot move users to another contract")
			return
		}
	}
	if u.ID == actor.ID() && req.IsActive != nil && !*req.IsActive {
		apierror.BadRequest(c, "You cannot deactivate your own account")
		return
	}

	contractID := u.ContractID
	if req.ContractID != nil {
		contractID = req.ContractID
	}
	departmentID := req.DepartmentID
	if departmentID == nil && req.ContractID != nil {
		departmentID = u.DepartmentID
	}
	if !h.checkPlacement(c, u.ID, contractID, departmentID, req.ReportsToID) {
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.ContractID != nil {
		updates["contract_id"] = *req.ContractID
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.ReportsToID != nil {
		updates["reports_to_id"] = *req.ReportsToID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			apierror.Internal(c, err, "Failed to process password")
			return
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := h.db.Model(u).Updates(updates).Error; err != nil {
			apierror.Internal(c, err, "Failed to update user")
			return
		}
		changes := make(map[string]interface{}, len(updates))
		for k, v := range updates {
			if k == "password_hash" {
				v = "changed"
			}
			changes[k] = v
		}
		audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "user", EntityID: u.ID, Changes: changes})
	}

	h.db.First(u, u.ID)
	c.JSON(http.StatusOK, h.respond(*u))
}

// Delete soft-deletes a user
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	u, ok := h.load(c)
	if !ok {
		return
	}
	if !actor.IsAdmin() && !(actor.Is(models.RoleHR) && actor.InContract(u.ContractID) && u.Role != models.RoleAdmin) {
		apierror.Forbidden(c, "Insufficient permissions")
		return
	}
	if u.ID == actor.ID() {
		apierror.BadRequest(c, "You cannot delete your own account")
		return
	}

	if err := h.db.Delete(u).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete user")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "user", EntityID: u.ID})
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// Reports lists the direct and indirect reports of a user
// @Summary List reports
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} ReportsResponse
// @Security BearerAuth
// @Router /users/{id}/reports [get]
func (h *Handler) Reports(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}

	all, err := orgtree.Reports(h.db, u.ID)
	if err != nil {
		apierror.Internal(c, err, "Failed to resolve reports")
		return
	}
	resp := ReportsResponse{UserID: u.ID, DirectReports: []auth.UserResponse{}, AllReports: []auth.UserResponse{}}
	if len(all) > 0 {
		var rows []models.User
		if err := h.db.Where("id IN ?", all).Order("full_name").Find(&rows).Error; err != nil {
			apierror.Internal(c, err, "Failed to fetch reports")
			return
		}
		for _, r := range rows {
			ur := h.respond(r)
			resp.AllReports = append(resp.AllReports, ur)
			if r.ReportsToID != nil && *r.ReportsToID == u.ID {
				resp.DirectReports = append(resp.DirectReports, ur)
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", h.List)
	users.POST("", access.RequireRoles(models.RoleAdmin, models.RoleHR), h.Create)
	users.GET("/me/settings", h.GetSettings)
	users.PUT("/me/settings", h.UpdateSettings)
	users.GET("/:id", h.Get)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", access.RequireRoles(models.RoleAdmin, models.RoleHR), h.Delete)
	users.GET("/:id/reports", h.Reports)
}
