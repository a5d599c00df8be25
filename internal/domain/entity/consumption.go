// Package entity contains the core business objects of the project.
package entity

import "time"

// DispenseKind distinguishes scheduled feedings from manual ones.
type DispenseKind string

const (
	// DispenseScheduled marks a feeding triggered by a schedule entry.
	DispenseScheduled DispenseKind = "scheduled"
	// DispenseManual marks a feeding triggered by the owner.
	DispenseManual DispenseKind = "manual"
)

// IsValid checks if the DispenseKind is a valid value.
func (k DispenseKind) IsValid() bool {
	switch k {
	case DispenseScheduled, DispenseManual:
		return true
	default:
		return false
	}
}

// DispenseEvent is one dispensed feeding reported by a unit. It backs the
// consumption history screen and its CSV export.
type DispenseEvent struct {
	ID          string       `json:"id"`
	DeviceID    string       `json:"device_id"`
	UserID      string       `json:"user_id"`
	Grams       float64      `json:"grams"`
	Kind        DispenseKind `json:"kind"`
	DispensedAt time.Time    `json:"dispensed_at"`
}
