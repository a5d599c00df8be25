// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Severity grades an audit entry.
type Severity string

const (
	// SeverityInfo marks routine activity.
	SeverityInfo Severity = "info"
	// SeverityWarning marks degraded but recoverable situations.
	SeverityWarning Severity = "warning"
	// SeverityCritical marks failures needing admin attention.
	SeverityCritical Severity = "critical"
)

// Audit action names recorded by the application.
const (
	ActionDeviceProvisioned = "DEVICE_PROVISIONED"
	ActionDeviceLinked      = "DEVICE_LINKED"
	ActionDeviceUnlinked    = "DEVICE_UNLINKED"
	ActionDeviceCalibrated  = "DEVICE_CALIBRATED"
	ActionStatusInitFailed  = "STATUS_INIT_FAILED"
	ActionScheduleRemoved   = "SCHEDULE_REMOVED"
	ActionDispenseRecorded  = "DISPENSE_RECORDED"
	ActionAccountCreated    = "ACCOUNT_CREATED"
)

// Audit categories, used by the admin console filters and the CSV export.
const (
	CategoryDevice   = "device"
	CategoryAccount  = "account"
	CategorySchedule = "schedule"
	CategoryFeeding  = "feeding"
)

// AuditLogEntry is an append-only record of a user or device action. The
// application only ever writes these; they are read back by the admin console.
type AuditLogEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Category  string         `json:"category"`
	Severity  Severity       `json:"severity"`
	SubjectID string         `json:"subject_id"` // Account uid or device id the action concerns.
	Detail    string         `json:"detail"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewAuditLogEntry builds an entry with generated id and timestamp.
func NewAuditLogEntry(action, category string, severity Severity, subjectID, detail string) *AuditLogEntry {
	return &AuditLogEntry{
		ID:        uuid.New().String(),
		Action:    action,
		Category:  category,
		Severity:  severity,
		SubjectID: subjectID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}
