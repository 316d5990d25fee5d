package models

import "time"

// NotificationType classifies in-app notifications
type NotificationType string

const (
	NotificationTodoAssigned          NotificationType = "TODO_ASSIGNED"
	NotificationTodoOverdue           NotificationType = "TODO_OVERDUE"
	NotificationDeadlineApproaching   NotificationType = "DEADLINE_APPROACHING"
	NotificationRFEReceived           NotificationType = "RFE_RECEIVED"
	NotificationStatusChanged         NotificationType = "STATUS_CHANGED"
	NotificationCaseApprovalRequested NotificationType = "CASE_APPROVAL_REQUESTED"
	NotificationCaseApproved          NotificationType = "CASE_APPROVED"
	NotificationCaseRejected          NotificationType = "CASE_REJECTED"
	NotificationVisaExpiring          NotificationType = "VISA_EXPIRING"
	NotificationSystem                NotificationType = "SYSTEM"
)

// Notification is an in-app message for one user
type Notification struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`
	UserID     uint             `gorm:"not null;index" json:"user_id"`
	Type       NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title      string           `gorm:"not null" json:"title"`
	Message    string           `gorm:"type:text" json:"message"`
	Link       string           `json:"link"`
	EntityType string           `gorm:"index:idx_notification_entity" json:"entity_type"`
	EntityID   uint             `gorm:"index:idx_notification_entity" json:"entity_id"`
	IsRead     bool             `gorm:"index" json:"is_read"`
	ReadAt     *time.Time       `json:"read_at"`
}

// EmailStatus is the outcome of one email attempt
type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "SENT"
	EmailStatusFailed  EmailStatus = "FAILED"
	EmailStatusSkipped EmailStatus = "SKIPPED"
)

// EmailLog records every email the system attempted to send
type EmailLog struct {
	ID               uint             `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
	UserID           *uint            `gorm:"index" json:"user_id"`
	ToEmail          string           `gorm:"not null" json:"to_email"`
	Subject          string           `json:"subject"`
	NotificationType NotificationType `gorm:"type:varchar(40)" json:"notification_type"`
	Provider         string           `gorm:"type:varchar(20)" json:"provider"`
	Status           EmailStatus      `gorm:"type:varchar(20);not null" json:"status"`
	ErrorMessage     string           `gorm:"type:text" json:"error_message"`
	SentAt           *time.Time       `json:"sent_at"`
}
