// Package orgtree walks the two hierarchies of the organization: the
// department tree (departments.parent_id) and the reporting chain
// (users.reports_to_id).
package orgtree

import (
	"errors"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"gorm.io/gorm"
)

var (
	ErrCycle         = errors.New("department cannot be its own ancestor")
	ErrOtherContract = errors.New("parent department belongs to a different contract")
)

// DepartmentSubtree returns rootID and the ids of all its descendants,
// breadth first.
func DepartmentSubtree(db *gorm.DB, rootID uint) ([]uint, error) {
	return walkDown(db, &models.Department{}, "parent_id", rootID, true)
}

// Reports returns the ids of every user who reports to userID directly or
// indirectly. userID itself is not included.
func Reports(db *gorm.DB, userID uint) ([]uint, error) {
	return walkDown(db, &models.User{}, "reports_to_id", userID, false)
}

func walkDown(db *gorm.DB, model interface{}, parentColumn string, rootID uint, includeRoot bool) ([]uint, error) {
	seen := map[uint]bool{rootID: true}
	var out []uint
	if includeRoot {
		out = append(out, rootID)
	}

	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var children []uint
		if err := db.Model(model).Where(parentColumn+" IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, id := range children {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
			frontier = append(frontier, id)
		}
	}
	return out, nil
}

// CheckParent validates moving department deptID under newParentID: the
// parent must exist in the same contract and must not be deptID or one of
// its descendants. deptID is zero for a department that does not exist yet.
func CheckParent(db *gorm.DB, deptID, contractID, newParentID uint) error {
	if deptID != 0 && deptID == newParentID {
		return ErrCycle
	}

	var parent models.Department
	if err := db.Select("id", "contract_id", "parent_id").First(&parent, newParentID).Error; err != nil {
		return err
	}
	if parent.ContractID != contractID {
		return ErrOtherContract
	}
	if deptID == 0 {
		return nil
	}

	seen := map[uint]bool{}
	for cur := parent.ParentID; cur != nil; {
		if *cur == deptID {
			return ErrCycle
		}
		if seen[*cur] {
			break
		}
		seen[*cur] = true
		var d models.Department
		if err := db.Select("id", "parent_id").First(&d, *cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return err
		}
		cur = d.ParentID
	}
	return nil
}

// Node is a department with its children, used for tree responses.
type Node struct {
	ID          uint    `json:"id"`
	ContractID  uint    `json:"contract_id"`
	ParentID    *uint   `json:"parent_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	ManagerID   *uint   `json:"manager_id"`
	Children    []*Node `json:"children"`
}

// BuildTree assembles a flat department list into trees. Departments whose
// parent is missing from the list become roots.
func BuildTree(depts []models.Department) []*Node {
	nodes := make(map[uint]*Node, len(depts))
	for _, d := range depts {
		nodes[d.ID] = &Node{
			ID:          d.ID,
			ContractID:  d.ContractID,
			ParentID:    d.ParentID,
			Name:        d.Name,
			Code:        d.Code,
			Description: d.Description,
			ManagerID:   d.ManagerID,
			Children:    []*Node{},
		}
	}

	roots := []*Node{}
	for _, d := range depts {
		n := nodes[d.ID]
		if d.ParentID != nil {
			if parent, ok := nodes[*d.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
