package auth

import (
	"errors"
	"strings"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyEmail is the key for email in gin context
	ContextKeyEmail = "email"
	// ContextKeyRole is the key for the user's role in gin context
	ContextKeyRole = "role"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It answers 401 and returns false when the header is missing or
// malformed.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		apierror.Unauthorized(c, "Authorization header required")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		apierror.Unauthorized(c, "Invalid authorization header format")
		return "", false
	}
	return parts[1], true
}

// SetIdentity stores the authenticated user in the gin context.
func SetIdentity(c *gin.Context, userID uint, email, role string) {
	c.Set(ContextKeyUserID, userID)
	c.Set(ContextKeyEmail, email)
	c.Set(ContextKeyRole, role)
}

// AuthMiddleware validates JWT tokens and sets user info in context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			return
		}

		claims, err := ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				apierror.Unauthorized(c, "Token has expired")
			} else {
				apierror.Unauthorized(c, "Invalid token")
			}
			return
		}

		SetIdentity(c, claims.UserID, claims.Email, claims.Role)
		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetRole returns the role from the gin context
func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}
