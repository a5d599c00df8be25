// Package entity contains the core business objects of the project.
package entity

import "time"

// NullOwnerSentinel is the literal string "null" some provisioning tools wrote
// into the linked-user field instead of leaving it empty. Both forms mean
// "no owner" and both make a device eligible for pairing.
const NullOwnerSentinel = "null"

// DeviceState is the lifecycle state of a feeder.
type DeviceState string

const (
	// DeviceStateFactory is the state of a freshly provisioned unit.
	DeviceStateFactory DeviceState = "factory"
	// DeviceStateAvailable marks a unit released for pairing.
	DeviceStateAvailable DeviceState = "available"
	// DeviceStateLinked marks a unit claimed by an account.
	DeviceStateLinked DeviceState = "linked"
	// DeviceStateInactive marks an unlinked, disabled unit.
	DeviceStateInactive DeviceState = "inactive"
)

// String returns the string representation of the DeviceState.
func (s DeviceState) String() string {
	return string(s)
}

// IsValid checks if the DeviceState is a valid value.
func (s DeviceState) IsValid() bool {
	switch s {
	case DeviceStateFactory, DeviceStateAvailable, DeviceStateLinked, DeviceStateInactive:
		return true
	default:
		return false
	}
}

// Device is the durable record of a physical feeder unit.
type Device struct {
	ID           string      `json:"id"` // Serial/MAC-derived identifier, e.g. "ESP-PET-0001".
	State        DeviceState `json:"state"`
	LinkedUserID string      `json:"linked_user_id"` // Owning account uid; empty or "null" when unlinked.
	OwnerEmail   string      `json:"owner_email"`    // Denormalized owner email for the status view.
	FoodLevel    int         `json:"food_level"`     // Last persisted hopper level, 0-100.
	RSSI         int         `json:"rssi"`           // Last persisted signal strength.
	Firmware     string      `json:"firmware"`
	LastStatus   string      `json:"last_status"` // Last connection string persisted by the unit.
	Schedules    []Schedule  `json:"schedules"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Unlinked reports whether the device is eligible for pairing.
func (d *Device) Unlinked() bool {
	return d.LinkedUserID == "" || d.LinkedUserID == NullOwnerSentinel
}

// ScheduleByID returns the schedule with the given id and its index, or nil and -1.
func (d *Device) ScheduleByID(id string) (*Schedule, int) {
	for i := range d.Schedules {
		if d.Schedules[i].ID == id {
			return &d.Schedules[i], i
		}
	}

	return nil, -1
}
