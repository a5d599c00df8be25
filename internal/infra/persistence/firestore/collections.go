// Package firestore contains the concrete implementation of the persistence
// layer on top of the Firestore document store.
package firestore

// Collection names of the durable document store.
const (
	collectionAccounts        = "accounts"
	collectionDevices         = "devices"
	collectionScheduleArchive = "schedule_archive"
	collectionAuditLogs       = "audit_logs"
	collectionDispenseEvents  = "dispense_events"
)

const defaultListLimit = 100
