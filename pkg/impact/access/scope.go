package access

import (
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/orgtree"
	"gorm.io/gorm"
)

// Scope restricts queries to the beneficiaries an actor may see, and to the
// rows that hang off them.
//
//	ADMIN        everything
//	HR, PM       beneficiaries of the actor's contract
//	MANAGER      beneficiaries in the actor's department subtree, or whose
//	             user reports to the actor directly or indirectly
//	BENEFICIARY  the actor's own beneficiary record
type Scope struct {
	all  bool
	db   *gorm.DB
	cond func(q *gorm.DB) *gorm.DB
}

// NewScope computes the scope of a.
func NewScope(db *gorm.DB, a *Actor) (*Scope, error) {
	s := &Scope{db: db}
	u := a.User

	switch u.Role {
	case models.RoleAdmin:
		s.all = true

	case models.RoleHR, models.RolePM:
		if u.ContractID == nil {
			s.cond = nothing
			break
		}
		contractID := *u.ContractID
		s.cond = func(q *gorm.DB) *gorm.DB {
			return q.Where("beneficiaries.contract_id = ?", contractID)
		}

	case models.RoleManager:
		depts, err := a.ManagedDepartments()
		if err != nil {
			return nil, err
		}
		reports, err := orgtree.Reports(db, u.ID)
		if err != nil {
			return nil, err
		}
		if len(depts) == 0 && len(reports) == 0 {
			s.cond = nothing
			break
		}
		s.cond = func(q *gorm.DB) *gorm.DB {
			switch {
			case len(depts) == 0:
				return q.Where("beneficiaries.user_id IN ?", reports)
			case len(reports) == 0:
				return q.Where("beneficiaries.department_id IN ?", depts)
			}
			return q.Where("beneficiaries.department_id IN ? OR beneficiaries.user_id IN ?", depts, reports)
		}

	case models.RoleBeneficiary:
		userID := u.ID
		s.cond = func(q *gorm.DB) *gorm.DB {
			return q.Where("beneficiaries.user_id = ?", userID)
		}

	default:
		s.cond = nothing
	}
	return s, nil
}

func nothing(q *gorm.DB) *gorm.DB {
	return q.Where("1 = 0")
}

// Beneficiaries filters a query over the beneficiaries table.
func (s *Scope) Beneficiaries(q *gorm.DB) *gorm.DB {
	if s.all {
		return q
	}
	return q.Where(s.cond(s.db.Session(&gorm.Session{NewDB: true})))
}

// beneficiaryIDs is a subquery selecting the visible beneficiary ids.
func (s *Scope) beneficiaryIDs() *gorm.DB {
	return s.cond(s.db.Session(&gorm.Session{NewDB: true}).Model(&models.Beneficiary{}).Select("beneficiaries.id"))
}

// Owned filters a query over a table whose column references beneficiaries.
func (s *Scope) Owned(q *gorm.DB, column string) *gorm.DB {
	if s.all {
		return q
	}
	return q.Where(column+" IN (?)", s.beneficiaryIDs())
}

// CanSeeBeneficiary reports whether beneficiary id is inside the scope.
func (s *Scope) CanSeeBeneficiary(id uint) (bool, error) {
	var count int64
	q := s.Beneficiaries(s.db.Model(&models.Beneficiary{})).Where("beneficiaries.id = ?", id)
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// petitionIDs selects the ids of visible petitions.
func (s *Scope) petitionIDs() *gorm.DB {
	return s.db.Session(&gorm.Session{NewDB: true}).Model(&models.Petition{}).
		Select("petitions.id").Where("petitions.beneficiary_id IN (?)", s.beneficiaryIDs())
}

// caseGroupIDs selects the ids of visible case groups.
func (s *Scope) caseGroupIDs() *gorm.DB {
	return s.db.Session(&gorm.Session{NewDB: true}).Model(&models.CaseGroup{}).
		Select("case_groups.id").Where("case_groups.beneficiary_id IN (?)", s.beneficiaryIDs())
}

// ViaPetition filters a query over a table whose column references petitions.
func (s *Scope) ViaPetition(q *gorm.DB, column string) *gorm.DB {
	if s.all {
		return q
	}
	return q.Where(column+" IN (?)", s.petitionIDs())
}

// Milestones filters a query over the milestones table. A milestone hangs
// off a petition, a case group, or both.
func (s *Scope) Milestones(q *gorm.DB) *gorm.DB {
	if s.all {
		return q
	}
	return q.Where("(milestones.petition_id IN (?) OR milestones.case_group_id IN (?))", s.petitionIDs(), s.caseGroupIDs())
}

// Todos filters a query over the todos table to the rows assigned to or
// created by userID plus those linked to a visible beneficiary.
func (s *Scope) Todos(q *gorm.DB, userID uint) *gorm.DB {
	if s.all {
		return q
	}
	return q.Where("(todos.assigned_to_id = ? OR todos.created_by_id = ? OR todos.beneficiary_id IN (?))",
		userID, userID, s.beneficiaryIDs())
}
