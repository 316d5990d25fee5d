// Package notifications stores in-app notifications, mirrors them to email
// according to each user's settings, and scans for upcoming deadlines.
package notifications

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/email"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"gorm.io/gorm"
)

// sendTimeout bounds a single email delivery.
const sendTimeout = 10 * time.Second

// Input describes a notification to create.
type Input struct {
	Type       models.NotificationType
	Title      string
	Message    string
	Link       string
	EntityType string
	EntityID   uint
}

// Notifier creates notifications and sends the matching emails.
type Notifier struct {
	sender      email.Sender
	logger      *slog.Logger
	frontendURL string
}

// NewNotifier creates a notifier. Links in emails are made absolute with
// frontendURL.
func NewNotifier(sender email.Sender, logger *slog.Logger, frontendURL string) *Notifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{sender: sender, logger: logger, frontendURL: frontendURL}
}

var (
	mu      sync.RWMutex
	current = NewNotifier(email.NewConsoleSender(io.Discard, "AMA-IMPACT", "noreply@ama-impact.local"), nil, "")
)

// SetNotifier installs the process-wide notifier.
func SetNotifier(n *Notifier) {
	mu.Lock()
	defer mu.Unlock()
	current = n
}

// Get returns the process-wide notifier.
func Get() *Notifier {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Notify stores a notification for userID and sends an email when the
// user's settings allow it. Email failures are recorded in the email log
// and do not fail the call.
func (n *Notifier) Notify(ctx context.Context, db *gorm.DB, userID uint, in Input) (*models.Notification, error) {
	row := models.Notification{
		UserID:     userID,
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Link:       in.Link,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	n.mail(ctx, db, userID, in)
	return &row, nil
}

// NotifyUsers notifies each distinct non-zero user id once. skip is
// excluded, typically the acting user.
func (n *Notifier) NotifyUsers(ctx context.Context, db *gorm.DB, userIDs []uint, skip uint, in Input) error {
	seen := map[uint]bool{0: true, skip: true}
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := n.Notify(ctx, db, id, in); err != nil {
			return err
		}
	}
	return nil
}

// wantsEmail reports whether s allows email for notification type t.
func wantsEmail(s models.UserSettings, t models.NotificationType) bool {
	if !s.EmailNotifications {
		return false
	}
	switch t {
	case models.NotificationTodoAssigned:
		return s.NotifyTodoAssignments
	case models.NotificationTodoOverdue, models.NotificationDeadlineApproaching, models.NotificationVisaExpiring:
		return s.NotifyDeadlines
	case models.NotificationStatusChanged, models.NotificationRFEReceived,
		models.NotificationCaseApprovalRequested, models.NotificationCaseApproved, models.NotificationCaseRejected:
		return s.NotifyStatusChanges
	}
	return true
}

func (n *Notifier) mail(ctx context.Context, db *gorm.DB, userID uint, in Input) {
	var user models.User
	if err := db.Select("id", "email", "full_name").First(&user, userID).Error; err != nil {
		n.logger.Warn("notification recipient not found", "user_id", userID, "error", err)
		return
	}

	entry := models.EmailLog{
		UserID:           &userID,
		ToEmail:          user.Email,
		Subject:          in.Title,
		NotificationType: in.Type,
		Provider:         n.sender.Provider(),
	}

	settings, err := models.LoadUserSettings(db, userID)
	switch {
	case err != nil:
		entry.Status = models.EmailStatusFailed
		entry.ErrorMessage = "loading settings: " + err.Error()
	case !wantsEmail(settings, in.Type):
		entry.Status = models.EmailStatusSkipped
		entry.ErrorMessage = "disabled in user settings"
	default:
		msg := email.Message{To: user.Email, ToName: user.FullName, Subject: in.Title, Text: n.body(in)}
		sctx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := n.sender.Send(sctx, msg)
		cancel()
		if err != nil {
			entry.Status = models.EmailStatusFailed
			entry.ErrorMessage = err.Error()
			n.logger.Warn("email delivery failed", "user_id", userID, "type", in.Type, "error", err)
		} else {
			now := time.Now()
			entry.Status = models.EmailStatusSent
			entry.SentAt = &now
		}
	}

	if err := db.Create(&entry).Error; err != nil {
		n.logger.Warn("failed to write email log", "user_id", userID, "error", err)
	}
}

func (n *Notifier) body(in Input) string {
	text := in.Message
	if in.Link != "" {
		text += "\n\n" + n.frontendURL + in.Link
	}
	return text
}
