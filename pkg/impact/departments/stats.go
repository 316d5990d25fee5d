package departments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/orgtree"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Stats aggregates people and case counts over a set of departments
type Stats struct {
	DepartmentID           uint             `json:"department_id"`
	Name                   string           `json:"name"`
	IncludesSubdepartments bool             `json:"includes_subdepartments"`
	DepartmentCount        int              `json:"department_count"`
	UserCount              int64            `json:"user_count"`
	BeneficiaryCount       int64            `json:"beneficiary_count"`
	ActiveBeneficiaryCount int64            `json:"active_beneficiary_count"`
	TotalPetitions         int64            `json:"total_petitions"`
	PetitionsByStatus      map[string]int64 `json:"petitions_by_status"`
	ActiveCaseGroups       int64            `json:"active_case_groups"`
	OpenTodos              int64            `json:"open_todos"`
	OverdueTodos           int64            `json:"overdue_todos"`
	Children               []Stats          `json:"children,omitempty"`
}

var nowFunc = time.Now

type statusCount struct {
	Status string
	Count  int64
}

// Compute aggregates the stats of the departments in ids.
func Compute(db *gorm.DB, ids []uint) (Stats, error) {
	s := Stats{DepartmentCount: len(ids), PetitionsByStatus: map[string]int64{}}

	if err := db.Model(&models.User{}).Where("department_id IN ?", ids).Count(&s.UserCount).Error; err != nil {
		return s, err
	}
	benQ := func() *gorm.DB {
		return db.Model(&models.Beneficiary{}).Where("beneficiaries.department_id IN ?", ids)
	}
	if err := benQ().Count(&s.BeneficiaryCount).Error; err != nil {
		return s, err
	}
	if err := benQ().Where("is_active = ?", true).Count(&s.ActiveBeneficiaryCount).Error; err != nil {
		return s, err
	}

	var rows []statusCount
	err := db.Model(&models.Petition{}).
		Select("status, COUNT(*) AS count").
		Where("beneficiary_id IN (?)", benQ().Select("beneficiaries.id")).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return s, err
	}
	for _, r := range rows {
		s.PetitionsByStatus[r.Status] = r.Count
		s.TotalPetitions += r.Count
	}

	err = db.Model(&models.CaseGroup{}).
		Where("beneficiary_id IN (?)", benQ().Select("beneficiaries.id")).
		Where("status NOT IN ?", []models.CaseStatus{models.CaseStatusCompleted, models.CaseStatusCancelled}).
		Count(&s.ActiveCaseGroups).Error
	if err != nil {
		return s, err
	}

	openTodos := func() *gorm.DB {
		return db.Model(&models.Todo{}).
			Where("beneficiary_id IN (?)", benQ().Select("beneficiaries.id")).
			Where("status NOT IN ?", []models.TodoStatus{models.TodoStatusCompleted, models.TodoStatusCancelled})
	}
	if err := openTodos().Count(&s.OpenTodos).Error; err != nil {
		return s, err
	}
	today := httputil.StartOfDay(nowFunc())
	if err := openTodos().Where("due_date < ?", today).Count(&s.OverdueTodos).Error; err != nil {
		return s, err
	}
	return s, nil
}

// Stats returns aggregate statistics for a department
// @Summary Department statistics
// @Description Counts for the department alone, or for its whole subtree with a per-child breakdown
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Param include_subdepartments query bool false "Aggregate over the subtree (default true)"
// @Success 200 {object} Stats
// @Failure 403 {object} apierror.APIError "Outside the manager's subtree"
// @Security BearerAuth
// @Router /departments/{id}/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	actor := access.FromContext(c)
	d, ok := h.load(c)
	if !ok {
		return
	}

	include := true
	if raw := c.Query("include_subdepartments"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apierror.BadRequest(c, "Invalid include_subdepartments")
			return
		}
		include = v
	}

	if actor.Is(models.RoleManager) {
		managed, err := actor.ManagedDepartments()
		if err != nil {
			apierror.Internal(c, err, "Failed to resolve managed departments")
			return
		}
		if !contains(managed, d.ID) {
			apierror.Forbidden(c, "Department is outside your management scope")
			return
		}
	}

	ids := []uint{d.ID}
	if include {
		var err error
		if ids, err = orgtree.DepartmentSubtree(h.db, d.ID); err != nil {
			apierror.Internal(c, err, "Failed to resolve department subtree")
			return
		}
	}

	stats, err := Compute(h.db, ids)
	if err != nil {
		apierror.Internal(c, err, "Failed to compute department stats")
		return
	}
	stats.DepartmentID = d.ID
	stats.Name = d.Name
	stats.IncludesSubdepartments = include

	if include {
		var children []models.Department
		if err := h.db.Where("parent_id = ?", d.ID).Order("name").Find(&children).Error; err != nil {
			apierror.Internal(c, err, "Failed to fetch sub-departments")
			return
		}
		stats.Children = make([]Stats, 0, len(children))
		for _, child := range children {
			childIDs, err := orgtree.DepartmentSubtree(h.db, child.ID)
			if err != nil {
				apierror.Internal(c, err, "Failed to resolve department subtree")
				return
			}
			cs, err := Compute(h.db, childIDs)
			if err != nil {
				apierror.Internal(c, err, "Failed to compute department stats")
				return
			}
			cs.DepartmentID = child.ID
			cs.Name = child.Name
			cs.IncludesSubdepartments = true
			stats.Children = append(stats.Children, cs)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
