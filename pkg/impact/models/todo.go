package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TodoStatus is the state of a todo
type TodoStatus string

const (
	TodoStatusTodo       TodoStatus = "TODO"
	TodoStatusInProgress TodoStatus = "IN_PROGRESS"
	TodoStatusBlocked    TodoStatus = "BLOCKED"
	TodoStatusCompleted  TodoStatus = "COMPLETED"
	TodoStatusCancelled  TodoStatus = "CANCELLED"
)

// IsClosed reports whether the todo no longer counts as open work.
func (s TodoStatus) IsClosed() bool {
	return s == TodoStatusCompleted || s == TodoStatusCancelled
}

var (
	ErrTodoPetitionNotFound    = errors.New("referenced petition does not exist")
	ErrTodoCaseGroupNotFound   = errors.New("referenced case group does not exist")
	ErrTodoBeneficiaryNotFound = errors.New("referenced beneficiary does not exist")
)

// Todo is a task, optionally linked to a petition, case group or
// beneficiary. The links are denormalized so lists can filter on any level
// without joins; BeforeSave fills them in from the most specific one.
type Todo struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Status        TodoStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority      Priority       `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate       *time.Time     `gorm:"index" json:"due_date"`
	CompletedAt   *time.Time     `json:"completed_at"`
	AssignedToID  *uint          `gorm:"index" json:"assigned_to_id"`
	CreatedByID   uint           `gorm:"not null;index" json:"created_by_id"`
	PetitionID    *uint          `gorm:"index" json:"petition_id"`
	CaseGroupID   *uint          `gorm:"index" json:"case_group_id"`
	BeneficiaryID *uint          `gorm:"index" json:"beneficiary_id"`
}

// BeforeSave runs on create and on Save.
func (t *Todo) BeforeSave(tx *gorm.DB) error {
	return t.ResolveAncestry(tx)
}

// ResolveAncestry fills CaseGroupID and BeneficiaryID from the most specific
// link that is set: a petition determines both, a case group determines the
// beneficiary.
func (t *Todo) ResolveAncestry(tx *gorm.DB) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	if t.PetitionID != nil {
		var p Petition
		if err := db.Select("id", "case_group_id", "beneficiary_id").First(&p, *t.PetitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTodoPetitionNotFound
			}
			return fmt.Errorf("loading petition %d: %w", *t.PetitionID, err)
		}
		t.CaseGroupID = p.CaseGroupID
		beneficiaryID := p.BeneficiaryID
		t.BeneficiaryID = &beneficiaryID
		return nil
	}

	if t.CaseGroupID != nil {
		var cg CaseGroup
		if err := db.Select("id", "beneficiary_id").First(&cg, *t.CaseGroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTodoCaseGroupNotFound
			}
			return fmt.Errorf("loading case group %d: %w", *t.CaseGroupID, err)
		}
		beneficiaryID := cg.BeneficiaryID
		t.BeneficiaryID = &beneficiaryID
		return nil
	}

	if t.BeneficiaryID != nil {
		var count int64
		if err := db.Model(&Beneficiary{}).Where("id = ?", *t.BeneficiaryID).Count(&count).Error; err != nil {
			return fmt.Errorf("checking beneficiary %d: %w", *t.BeneficiaryID, err)
		}
		if count == 0 {
			return ErrTodoBeneficiaryNotFound
		}
	}
	return nil
}

// TodoMetrics are derived at read time and never stored.
type TodoMetrics struct {
	IsOverdue       bool  `json:"is_overdue"`
	DaysOverdue     int   `json:"days_overdue"`
	DaysToComplete  *int  `json:"days_to_complete"`
	CompletedOnTime *bool `json:"completed_on_time"`
}

// Metrics computes the todo's metrics as of now. Comparisons are done on
// calendar dates in UTC.
func (t *Todo) Metrics(now time.Time) TodoMetrics {
	var m TodoMetrics
	today := dateOnly(now)

	if t.DueDate != nil && !t.Status.IsClosed() {
		due := dateOnly(*t.DueDate)
		if due.Before(today) {
			m.IsOverdue = true
			m.DaysOverdue = daysBetween(due, today)
		}
	}

	if t.Status == TodoStatusCompleted && t.CompletedAt != nil {
		days := daysBetween(dateOnly(t.CreatedAt), dateOnly(*t.CompletedAt))
		if days < 0 {
			days = 0
		}
		m.DaysToComplete = &days

		if t.DueDate != nil {
			onTime := !dateOnly(*t.CompletedAt).After(dateOnly(*t.DueDate))
			m.CompletedOnTime = &onTime
		}
	}
	return m
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
