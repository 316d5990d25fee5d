package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles authentication requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// TokenResponse represents the login response
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID            uint        `json:"id"`
	Email         string      `json:"email"`
	FullName      string      `json:"full_name"`
	Phone         string      `json:"phone"`
	Role          models.Role `json:"role"`
	ContractID    *uint       `json:"contract_id"`
	DepartmentID  *uint       `json:"department_id"`
	ReportsToID   *uint       `json:"reports_to_id"`
	IsActive      bool        `json:"is_active"`
	LastLoginAt   *time.Time  `json:"last_login_at"`
	BeneficiaryID *uint       `json:"beneficiary_id"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewUserResponse converts a user; beneficiaryID is the linked beneficiary, if any.
func NewUserResponse(u models.User, beneficiaryID *uint) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		ContractID:    u.ContractID,
		DepartmentID:  u.DepartmentID,
		ReportsToID:   u.ReportsToID,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		BeneficiaryID: beneficiaryID,
		CreatedAt:     u.CreatedAt,
	}
}

// LinkedBeneficiaryID returns the id of the beneficiary record linked to
// userID, or nil.
func LinkedBeneficiaryID(db *gorm.DB, userID uint) *uint {
	var b models.Beneficiary
	if err := db.Select("id").Where("user_id = ?", userID).First(&b).Error; err != nil {
		return nil
	}
	return &b.ID
}

// Login handles user login
// @Summary Login
// @Description Authenticate with email and password to receive a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} apierror.APIError "Validation error"
// @Failure 401 {object} apierror.APIError "Invalid credentials"
// @Failure 403 {object} apierror.APIError "Account disabled"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !apierror.Bind(c, &req) {
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		apierror.Unauthorized(c, "Invalid email or password")
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		apierror.Unauthorized(c, "Invalid email or password")
		return
	}

	if !user.IsActive {
		apierror.Forbidden(c, "User account is disabled")
		return
	}

	token, err := GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		apierror.Internal(c, err, "Failed to generate token")
		return
	}

	now := time.Now()
	if err := h.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		apierror.Internal(c, err, "Failed to update user")
		return
	}
	user.LastLoginAt = &now

	audit.Record(h.db, c, audit.Entry{
		UserID:     &user.ID,
		Action:     models.AuditLogin,
		EntityType: "user",
		EntityID:   user.ID,
	})

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(TokenTTL().Seconds()),
		User:        NewUserResponse(user, LinkedBeneficiaryID(h.db, user.ID)),
	})
}

// Me returns the current authenticated user
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} apierror.APIError "Authentication required"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		apierror.Unauthorized(c, "")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		apierror.NotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(user, LinkedBeneficiaryID(h.db, user.ID)))
}

// Logout handles user logout (client-side token invalidation)
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out successfully"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword replaces the caller's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} apierror.APIError "Wrong current password"
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req ChangePasswordRequest
	if !apierror.Bind(c, &req) {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		apierror.NotFound(c, "User not found")
		return
	}
	if !CheckPassword(req.CurrentPassword, user.PasswordHash) {
		apierror.BadRequest(c, "Current password is incorrect")
		return
	}
	if req.CurrentPassword == req.NewPassword {
		apierror.BadRequest(c, "New password must differ from the current password")
		return
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		apierror.Internal(c, err, "Failed to process password")
		return
	}
	if err := h.db.Model(&user).Update("password_hash", hash).Error; err != nil {
		apierror.Internal(c, err, "Failed to update password")
		return
	}

	audit.Record(h.db, c, audit.Entry{
		UserID:     &user.ID,
		Action:     models.AuditUpdate,
		EntityType: "user",
		EntityID:   user.ID,
		Changes:    map[string]string{"password": "changed"},
	})
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// RegisterRoutes registers auth routes on the given router group. authn
// guards everything but login.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authn ...gin.HandlerFunc) {
	rg.POST("/login", h.Login)

	protected := rg.Group("", authn...)
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
	protected.POST("/change-password", h.ChangePassword)
}

// EnsureAdmin creates the bootstrap administrator when no user has its
// email. With refresh set, an existing account is reactivated, promoted to
// ADMIN and given the configured password. The bool is true on create.
func EnsureAdmin(db *gorm.DB, email, password, fullName string, refresh bool) (*models.User, bool, error) {
	if email == "" || password == "" {
		return nil, false, errors.New("admin email and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	var user models.User
	err = db.Unscoped().Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:        email,
			PasswordHash: hash,
			FullName:     fullName,
			Role:         models.RoleAdmin,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, false, err
		}
		return &user, true, nil
	case err != nil:
		return nil, false, err
	case !refresh:
		return &user, false, nil
	}

	err = db.Unscoped().Model(&user).Updates(map[string]interface{}{
		"password_hash": hash,
		"role":          models.RoleAdmin,
		"is_active":     true,
		"deleted_at":    nil,
	}).Error
	if err != nil {
		return nil, false, err
	}
	return &user, false, nil
}
