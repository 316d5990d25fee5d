package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"gorm.io/gorm"
)

const (
	// RFEWarningDays is how far ahead open RFE due dates are announced.
	RFEWarningDays = 7
	// VisaWarningDays is how far ahead visa expirations are announced.
	VisaWarningDays = 90
)

// CheckResult counts the notifications created by CheckDeadlines.
type CheckResult struct {
	TodoOverdue         int `json:"todo_overdue"`
	DeadlineApproaching int `json:"deadline_approaching"`
	VisaExpiring        int `json:"visa_expiring"`
}

func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// notifiedToday reports whether userID already got a notification of type t
// about the entity since the start of today.
func notifiedToday(db *gorm.DB, userID uint, t models.NotificationType, entityType string, entityID uint, today time.Time) (bool, error) {
	var n int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND entity_type = ? AND entity_id = ? AND created_at >= ?", userID, t, entityType, entityID, today).
		Count(&n).Error
	return n > 0, err
}

// contractStaff returns the active HR users of a contract.
func contractStaff(db *gorm.DB, contractID *uint) ([]uint, error) {
	if contractID == nil {
		return nil, nil
	}
	var ids []uint
	err := db.Model(&models.User{}).
		Where("contract_id = ? AND role = ? AND is_active = ?", *contractID, models.RoleHR, true).
		Pluck("id", &ids).Error
	return ids, err
}

func (n *Notifier) notifyOnce(ctx context.Context, db *gorm.DB, userIDs []uint, in Input, today time.Time) (int, error) {
	created := 0
	seen := map[uint]bool{0: true}
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		dup, err := notifiedToday(db, id, in.Type, in.EntityType, in.EntityID, today)
		if err != nil {
			return created, err
		}
		if dup {
			continue
		}
		if _, err := n.Notify(ctx, db, id, in); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// CheckDeadlines creates TODO_OVERDUE, DEADLINE_APPROACHING and
// VISA_EXPIRING notifications as of now. Each user is told about a given
// entity at most once per day, so the check may run repeatedly.
func (n *Notifier) CheckDeadlines(ctx context.Context, db *gorm.DB, now time.Time) (CheckResult, error) {
	var res CheckResult
	today := dayStart(now)

	var todos []models.Todo
	if err := db.Where("due_date < ? AND status NOT IN ?", today,
		[]models.TodoStatus{models.TodoStatusCompleted, models.TodoStatusCancelled}).Find(&todos).Error; err != nil {
		return res, fmt.Errorf("loading overdue todos: %w", err)
	}
	for _, t := range todos {
		recipient := t.CreatedByID
		if t.AssignedToID != nil {
			recipient = *t.AssignedToID
		}
		m := t.Metrics(now)
		c, err := n.notifyOnce(ctx, db, []uint{recipient}, Input{
			Type:       models.NotificationTodoOverdue,
			Title:      "Todo overdue: " + t.Title,
			Message:    fmt.Sprintf("%q is %d day(s) overdue.", t.Title, m.DaysOverdue),
			Link:       fmt.Sprintf("/todos/%d", t.ID),
			EntityType: "todo",
			EntityID:   t.ID,
		}, today)
		res.TodoOverdue += c
		if err != nil {
			return res, err
		}
	}

	var rfes []models.RFE
	if err := db.Where("status IN ? AND response_due_date >= ? AND response_due_date < ?",
		[]models.RFEStatus{models.RFEStatusReceived, models.RFEStatusInProgress},
		today, today.AddDate(0, 0, RFEWarningDays+1)).Find(&rfes).Error; err != nil {
		return res, fmt.Errorf("loading upcoming RFEs: %w", err)
	}
	for _, r := range rfes {
		var p models.Petition
		if err := db.First(&p, r.PetitionID).Error; err != nil {
			continue
		}
		var b models.Beneficiary
		if err := db.First(&b, p.BeneficiaryID).Error; err != nil {
			continue
		}
		recipients, err := contractStaff(db, b.ContractID)
		if err != nil {
			return res, err
		}
		if p.ResponsiblePartyID != nil {
			recipients = append([]uint{*p.ResponsiblePartyID}, recipients...)
		}
		days := int(dayStart(*r.ResponseDueDate).Sub(today).Hours() / 24)
		c, err := n.notifyOnce(ctx, db, recipients, Input{
			Type:       models.NotificationDeadlineApproaching,
			Title:      "RFE response due for " + b.FullName(),
			Message:    fmt.Sprintf("The %s RFE response is due in %d day(s) on %s.", p.PetitionType, days, r.ResponseDueDate.Format("2006-01-02")),
			Link:       fmt.Sprintf("/petitions/%d", p.ID),
			EntityType: "rfe",
			EntityID:   r.ID,
		}, today)
		res.DeadlineApproaching += c
		if err != nil {
			return res, err
		}
	}

	var bens []models.Beneficiary
	if err := db.Where("is_active = ? AND current_visa_expiration >= ? AND current_visa_expiration < ?",
		true, today, today.AddDate(0, 0, VisaWarningDays+1)).Find(&bens).Error; err != nil {
		return res, fmt.Errorf("loading expiring visas: %w", err)
	}
	for _, b := range bens {
		recipients, err := contractStaff(db, b.ContractID)
		if err != nil {
			return res, err
		}
		if b.UserID != nil {
			recipients = append([]uint{*b.UserID}, recipients...)
		}
		days := int(dayStart(*b.CurrentVisaExpiration).Sub(today).Hours() / 24)
		c, err := n.notifyOnce(ctx, db, recipients, Input{
			Type:       models.NotificationVisaExpiring,
			Title:      "Visa expiring for " + b.FullName(),
			Message:    fmt.Sprintf("The %s visa expires in %d day(s) on %s.", b.CurrentVisaType, days, b.CurrentVisaExpiration.Format("2006-01-02")),
			Link:       fmt.Sprintf("/beneficiaries/%d", b.ID),
			EntityType: "beneficiary",
			EntityID:   b.ID,
		}, today)
		res.VisaExpiring += c
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// Cleanup deletes read notifications older than days and returns how many
// were removed.
func Cleanup(db *gorm.DB, days int, now time.Time) (int64, error) {
	if days < 1 {
		return 0, fmt.Errorf("days must be positive, got %d", days)
	}
	cutoff := now.UTC().AddDate(0, 0, -days)
	res := db.Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
