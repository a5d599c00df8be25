package model

import "time"

// AuditLogModel is the Firestore document for one audit log entry.
type AuditLogModel struct {
	ID        string         `firestore:"-"`
	Action    string         `firestore:"action"`
	Category  string         `firestore:"category"`
	Severity  string         `firestore:"severity"`
	SubjectID string         `firestore:"subjectId"`
	Detail    string         `firestore:"detail"`
	Metadata  map[string]any `firestore:"metadata,omitempty"`
	CreatedAt time.Time      `firestore:"createdAt"`
}

// DispenseEventModel is the Firestore document for one dispensed feeding.
type DispenseEventModel struct {
	ID          string    `firestore:"-"`
	DeviceID    string    `firestore:"deviceId"`
	UserID      string    `firestore:"userId"`
	Grams       float64   `firestore:"grams"`
	Kind        string    `firestore:"kind"`
	DispensedAt time.Time `firestore:"dispensedAt"`
}
