package access

import (
	"errors"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// first runs q.First(dest, id) and answers 404 or 500 on failure.
func first(c *gin.Context, q *gorm.DB, dest interface{}, id uint, what string) bool {
	if err := q.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.NotFound(c, what+" not found")
		} else {
			apierror.Internal(c, err, "Failed to fetch "+what)
		}
		return false
	}
	return true
}

// ScopeOf returns the actor's scope, answering 500 when it cannot be built.
func ScopeOf(c *gin.Context) (*Scope, bool) {
	s, err := FromContext(c).Scope()
	if err != nil {
		apierror.Internal(c, err, "Failed to resolve access scope")
		return nil, false
	}
	return s, true
}

// LoadBeneficiary fetches a visible beneficiary, answering 404 otherwise.
func LoadBeneficiary(c *gin.Context, db *gorm.DB, id uint) (*models.Beneficiary, bool) {
	s, ok := ScopeOf(c)
	if !ok {
		return nil, false
	}
	var b models.Beneficiary
	if !first(c, s.Beneficiaries(db.Model(&models.Beneficiary{})), &b, id, "Beneficiary") {
		return nil, false
	}
	return &b, true
}

// LoadCaseGroup fetches a visible case group, answering 404 otherwise.
func LoadCaseGroup(c *gin.Context, db *gorm.DB, id uint) (*models.CaseGroup, bool) {
	s, ok := ScopeOf(c)
	if !ok {
		return nil, false
	}
	var cg models.CaseGroup
	if !first(c, s.Owned(db.Model(&models.CaseGroup{}), "case_groups.beneficiary_id"), &cg, id, "Case group") {
		return nil, false
	}
	return &cg, true
}

// LoadPetition fetches a visible petition, answering 404 otherwise.
func LoadPetition(c *gin.Context, db *gorm.DB, id uint) (*models.Petition, bool) {
	s, ok := ScopeOf(c)
	if !ok {
		return nil, false
	}
	var p models.Petition
	if !first(c, s.Owned(db.Model(&models.Petition{}), "petitions.beneficiary_id"), &p, id, "Petition") {
		return nil, false
	}
	return &p, true
}

// LoadRFE fetches an RFE on a visible petition, answering 404 otherwise.
func LoadRFE(c *gin.Context, db *gorm.DB, id uint) (*models.RFE, bool) {
	s, ok := ScopeOf(c)
	if !ok {
		return nil, false
	}
	var r models.RFE
	if !first(c, s.ViaPetition(db.Model(&models.RFE{}), "rfes.petition_id"), &r, id, "RFE") {
		return nil, false
	}
	return &r, true
}

// LoadMilestone fetches a visible milestone, answering 404 otherwise.
func LoadMilestone(c *gin.Context, db *gorm.DB, id uint) (*models.Milestone, bool) {
	s, ok := ScopeOf(c)
	if !ok {
		return nil, false
	}
	var m models.Milestone
	if !first(c, s.Milestones(db.Model(&models.Milestone{})), &m, id, "Milestone") {
		return nil, false
	}
	return &m, true
}

// LoadTodo fetches a visible todo, answering 404 otherwise.
func LoadTodo(c *gin.Context, db *gorm.DB, id uint) (*models.Todo, bool) {
	s, ok := ScopeOf(c)
	if !ok {
		return nil, false
	}
	var t models.Todo
	if !first(c, s.Todos(db.Model(&models.Todo{}), FromContext(c).ID()), &t, id, "Todo") {
		return nil, false
	}
	return &t, true
}
