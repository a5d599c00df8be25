package model

import "time"

// ScheduleModel is one feeding rule embedded in a device document.
type ScheduleModel struct {
	ID           string  `firestore:"id"`
	Days         []int   `firestore:"days"`
	Time         string  `firestore:"time"`
	PortionGrams float64 `firestore:"portionGrams"`
	Enabled      bool    `firestore:"enabled"`
}

// DeviceModel is the Firestore document for a feeder unit. The document id is
// the serial-derived device id.
type DeviceModel struct {
	ID           string          `firestore:"-"`
	State        string          `firestore:"state"`
	LinkedUserID string          `firestore:"linkedUserId"`
	OwnerEmail   string          `firestore:"ownerEmail"`
	FoodLevel    int             `firestore:"foodLevel"`
	RSSI         int             `firestore:"rssi"`
	Firmware     string          `firestore:"firmware"`
	LastStatus   string          `firestore:"lastStatus"`
	Schedules    []ScheduleModel `firestore:"schedules"`
	CreatedAt    time.Time       `firestore:"createdAt"`
	UpdatedAt    time.Time       `firestore:"updatedAt,serverTimestamp"`
}

// ScheduleArchiveModel is the durable copy of a removed schedule entry.
type ScheduleArchiveModel struct {
	DeviceID   string        `firestore:"deviceId"`
	Schedule   ScheduleModel `firestore:"schedule"`
	ArchivedAt time.Time     `firestore:"archivedAt,serverTimestamp"`
}
