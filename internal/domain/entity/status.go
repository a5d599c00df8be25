// Package entity contains the core business objects of the project.
package entity

import "time"

// Connection strings shown to users. The realtime flag and the merged view
// both collapse onto these two values.
const (
	ConnectionOnline  = "conectado"
	ConnectionOffline = "desconectado"
	// UnknownOwnerEmail is the owner fallback when neither store names one.
	UnknownOwnerEmail = "Sin dueño"
)

// CommandType identifies a pending instruction for a feeder unit.
type CommandType string

const (
	// CommandDisable tells the unit to stop dispensing after an unlink.
	CommandDisable CommandType = "DISABLE"
	// CommandCalibrate re-tares the load cell against a reference weight.
	CommandCalibrate CommandType = "CALIBRATE"
	// CommandDispense triggers a manual feeding.
	CommandDispense CommandType = "DISPENSE"
)

// Command is an entry in a device's realtime command queue.
type Command struct {
	Type     CommandType `json:"type"`
	Grams    int         `json:"grams,omitempty"`
	IssuedAt time.Time   `json:"issued_at"`
}

// RealtimeStatus is the ephemeral fragment a feeder maintains in the realtime
// tree. Fields are pointers so "absent" is distinguishable from a zero value:
// the reconciler only lets a realtime field win when it is actually present.
type RealtimeStatus struct {
	Online     *bool      `json:"online,omitempty"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	FoodLevel  *int       `json:"food_level,omitempty"`
	RSSI       *int       `json:"rssi,omitempty"`
	OwnerID    string     `json:"owner_id,omitempty"`
	OwnerEmail string     `json:"owner_email,omitempty"`
	Commands   []Command  `json:"commands,omitempty"`
}

// DeviceStatusView is the reconciliation of the durable device record with
// its realtime fragment. It is derived, never persisted.
type DeviceStatusView struct {
	DeviceID        string     `json:"device_id"`
	Connection      string     `json:"connection"` // ConnectionOnline/ConnectionOffline or the durable fallback.
	FoodLevel       int        `json:"food_level"`
	OwnerEmail      string     `json:"owner_email"`
	RSSI            int        `json:"rssi"`
	Firmware        string     `json:"firmware,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
	PendingCommands int        `json:"pending_commands"`
}
