// Package access decides which rows a request may see. Every list and
// detail query on beneficiary-owned data goes through a Scope built from
// the authenticated Actor.
package access

import (
	"errors"
	"net/http"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/orgtree"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const contextKeyActor = "actor"

// Actor is the authenticated user as seen by the access rules.
type Actor struct {
	User          models.User
	BeneficiaryID *uint

	db    *gorm.DB
	scope *Scope
}

// ID returns the actor's user id.
func (a *Actor) ID() uint { return a.User.ID }

// IDPtr returns a pointer to the actor's user id, for nullable columns.
func (a *Actor) IDPtr() *uint {
	id := a.User.ID
	return &id
}

// Role returns the actor's role.
func (a *Actor) Role() models.Role { return a.User.Role }

// Is reports whether the actor has one of roles.
func (a *Actor) Is(roles ...models.Role) bool {
	for _, r := range roles {
		if a.User.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor is an administrator.
func (a *Actor) IsAdmin() bool { return a.User.Role == models.RoleAdmin }

// InContract reports whether the actor belongs to contractID.
func (a *Actor) InContract(contractID *uint) bool {
	return contractID != nil && a.User.ContractID != nil && *a.User.ContractID == *contractID
}

// LoadActor builds an Actor for userID. Missing or inactive users yield
// gorm.ErrRecordNotFound.
func LoadActor(db *gorm.DB, userID uint) (*Actor, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return &Actor{User: user, BeneficiaryID: auth.LinkedBeneficiaryID(db, user.ID), db: db}, nil
}

// Middleware loads the Actor for the user authenticated by the preceding
// auth middleware. The token's role claim is not trusted; the current row is.
func Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierror.Unauthorized(c, "")
			return
		}
		actor, err := LoadActor(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierror.Unauthorized(c, "User not found or inactive")
				return
			}
			apierror.Internal(c, err, "Failed to load user")
			return
		}
		c.Set(contextKeyActor, actor)
		c.Set(auth.ContextKeyRole, string(actor.User.Role))
		c.Next()
	}
}

// FromContext returns the Actor set by Middleware.
func FromContext(c *gin.Context) *Actor {
	v, ok := c.Get(contextKeyActor)
	if !ok {
		return nil
	}
	a, _ := v.(*Actor)
	return a
}

// RequireRoles answers 403 unless the actor has one of roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := FromContext(c)
		if a == nil {
			apierror.Unauthorized(c, "")
			return
		}
		if !a.Is(roles...) {
			apierror.Respond(c, http.StatusForbidden, apierror.New(apierror.CodeForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// Scope returns the actor's visibility scope, computing it on first use.
func (a *Actor) Scope() (*Scope, error) {
	if a.scope != nil {
		return a.scope, nil
	}
	s, err := NewScope(a.db, a)
	if err != nil {
		return nil, err
	}
	a.scope = s
	return s, nil
}

// ManagedDepartments returns the actor's department and its descendants.
// It is empty for actors without a department.
func (a *Actor) ManagedDepartments() ([]uint, error) {
	if a.User.DepartmentID == nil {
		return nil, nil
	}
	return orgtree.DepartmentSubtree(a.db, *a.User.DepartmentID)
}
