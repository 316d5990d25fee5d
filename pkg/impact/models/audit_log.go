package models

import "time"

// AuditAction is what happened to an entity
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
	AuditLogin   AuditAction = "LOGIN"
	AuditApprove AuditAction = "APPROVE"
	AuditReject  AuditAction = "REJECT"
	AuditImport  AuditAction = "IMPORT"
)

// AuditLog is an append-only record of a write performed through the API
type AuditLog struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
	UserID     *uint       `gorm:"index" json:"user_id"`
	Action     AuditAction `gorm:"type:varchar(20);not null;index" json:"action"`
	EntityType string      `gorm:"not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   uint        `gorm:"index:idx_audit_entity" json:"entity_id"`
	Changes    string      `gorm:"type:text" json:"changes"` // JSON document
	IPAddress  string      `json:"ip_address"`
	UserAgent  string      `json:"user_agent"`
	RequestID  string      `gorm:"index" json:"request_id"`
}
