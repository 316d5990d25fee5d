package apikeys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// KeyLength is the length of the generated API key in bytes (32 bytes = 64 hex chars)
	KeyLength = 32
	// KeyPrefixLength is the number of characters to store as prefix for identification
	KeyPrefixLength = 8
)

var ErrKeyExpired = errors.New("api key has expired")

// Handler handles API key requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new API keys handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// APIKeyResponse represents an API key in responses
type APIKeyResponse struct {
	ID          uint       `json:"id"`
	KeyPrefix   string     `json:"key_prefix"`
	Description string     `json:"description"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateAPIKeyRequest represents a request to create an API key
type CreateAPIKeyRequest struct {
	Description   string `json:"description" binding:"max=255"`
	ExpiresInDays *int   `json:"expires_in_days" binding:"omitempty,min=1,max=3650"`
}

// CreateAPIKeyResponse includes the full key (only shown once)
type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

func toResponse(k models.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:          k.ID,
		KeyPrefix:   k.KeyPrefix,
		Description: k.Description,
		LastUsedAt:  k.LastUsedAt,
		ExpiresAt:   k.ExpiresAt,
		CreatedAt:   k.CreatedAt,
	}
}

// generateAPIKey generates a new random API key
func generateAPIKey() (string, error) {
	bytes := make([]byte, KeyLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashAPIKey creates a SHA-256 hash of the API key
func hashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// Create creates a new API key for the authenticated user
// @Summary Create API key
// @Tags api-keys
// @Accept json
// @Produce json
// @Param request body CreateAPIKeyRequest false "Key details"
// @Success 201 {object} CreateAPIKeyResponse
// @Security BearerAuth
// @Router /api-keys [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateAPIKeyRequest
	if c.Request.ContentLength != 0 && !apierror.Bind(c, &req) {
		return
	}

	key, err := generateAPIKey()
	if err != nil {
		apierror.Internal(c, err, "Failed to generate API key")
		return
	}

	apiKey := models.APIKey{
		UserID:      userID,
		KeyHash:     hashAPIKey(key),
		KeyPrefix:   key[:KeyPrefixLength],
		Description: req.Description,
	}
	if req.ExpiresInDays != nil {
		exp := time.Now().AddDate(0, 0, *req.ExpiresInDays)
		apiKey.ExpiresAt = &exp
	}

	if err := h.db.Create(&apiKey).Error; err != nil {
		apierror.Internal(c, err, "Failed to create API key")
		return
	}

	audit.Record(h.db, c, audit.Entry{
		UserID:     &userID,
		Action:     models.AuditCreate,
		EntityType: "api_key",
		EntityID:   apiKey.ID,
		Changes:    map[string]string{"key_prefix": apiKey.KeyPrefix},
	})

	// The full key is only visible in this response
	c.JSON(http.StatusCreated, CreateAPIKeyResponse{APIKeyResponse: toResponse(apiKey), Key: key})
}

// List returns all API keys for the authenticated user
// @Summary List API keys
// @Tags api-keys
// @Produce json
// @Success 200 {array} APIKeyResponse
// @Security BearerAuth
// @Router /api-keys [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var apiKeys []models.APIKey
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apiKeys).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch API keys")
		return
	}

	responses := make([]APIKeyResponse, len(apiKeys))
	for i, key := range apiKeys {
		responses[i] = toResponse(key)
	}

	c.JSON(http.StatusOK, responses)
}

// Delete revokes an API key
// @Summary Revoke API key
// @Tags api-keys
// @Param id path int true "API key ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /api-keys/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	keyID, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}

	var apiKey models.APIKey
	if err := h.db.Where("id = ? AND user_id = ?", keyID, userID).First(&apiKey).Error; err != nil {
		apierror.NotFound(c, "API key not found")
		return
	}

	if err := h.db.Delete(&apiKey).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete API key")
		return
	}

	audit.Record(h.db, c, audit.Entry{
		UserID:     &userID,
		Action:     models.AuditDelete,
		EntityType: "api_key",
		EntityID:   apiKey.ID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "API key deleted"})
}

// ValidateAPIKey looks up an unexpired key
func ValidateAPIKey(db *gorm.DB, key string) (*models.APIKey, error) {
	var apiKey models.APIKey
	if err := db.Where("key_hash = ?", hashAPIKey(key)).First(&apiKey).Error; err != nil {
		return nil, err
	}
	if apiKey.ExpiresAt != nil && apiKey.ExpiresAt.Before(time.Now()) {
		return nil, ErrKeyExpired
	}
	return &apiKey, nil
}

// UpdateLastUsed updates the last_used_at timestamp for an API key
func UpdateLastUsed(db *gorm.DB, apiKeyID uint) error {
	return db.Model(&models.APIKey{}).Where("id = ?", apiKeyID).Update("last_used_at", time.Now()).Error
}

// CombinedAuthMiddleware returns a middleware that authenticates via JWT or API key
// Both are passed in the Authorization header as "Bearer <token>"
// JWTs contain dots, API keys are hex strings without dots
func CombinedAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c)
		if !ok {
			return
		}

		if strings.Contains(token, ".") {
			claims, err := auth.ValidateToken(token)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					apierror.Unauthorized(c, "Token has expired")
				} else {
					apierror.Unauthorized(c, "Invalid token")
				}
				return
			}
			auth.SetIdentity(c, claims.UserID, claims.Email, claims.Role)
			c.Next()
			return
		}

		apiKey, err := ValidateAPIKey(db, token)
		if err != nil {
			apierror.Unauthorized(c, "Invalid API key")
			return
		}

		var user models.User
		if err := db.First(&user, apiKey.UserID).Error; err != nil {
			apierror.Unauthorized(c, "User not found")
			return
		}
		if err := UpdateLastUsed(db, apiKey.ID); err != nil {
			apierror.Internal(c, err, "Failed to update API key")
			return
		}

		auth.SetIdentity(c, user.ID, user.Email, string(user.Role))
		c.Next()
	}
}

// RegisterRoutes registers API key routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/api-keys", h.Create)
	rg.GET("/api-keys", h.List)
	rg.DELETE("/api-keys/:id", h.Delete)
}
