package impl

import (
	"testing"
	"time"

	"petfeeder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int { return &v }

func TestMergeStatus_Fallbacks(t *testing.T) {
	t.Run("nil sources yield offline unknown-owner view", func(t *testing.T) {
		view := mergeStatus(nil, nil)

		assert.Equal(t, entity.ConnectionOffline, view.Connection)
		assert.Zero(t, view.FoodLevel)
		assert.Equal(t, entity.UnknownOwnerEmail, view.OwnerEmail)
	})

	t.Run("missing realtime fragment falls back to durable record", func(t *testing.T) {
		device := &entity.Device{
			ID:         "ESP-PET-0001",
			FoodLevel:  42,
			RSSI:       -60,
			Firmware:   "1.4.0",
			OwnerEmail: "u1@example.com",
			LastStatus: entity.ConnectionOffline,
		}

		view := mergeStatus(device, nil)

		assert.Equal(t, "ESP-PET-0001", view.DeviceID)
		assert.Equal(t, 42, view.FoodLevel)
		assert.Equal(t, -60, view.RSSI)
		assert.Equal(t, "u1@example.com", view.OwnerEmail)
		assert.Equal(t, entity.ConnectionOffline, view.Connection)
	})

	t.Run("null owner sentinel maps to unknown owner", func(t *testing.T) {
		device := &entity.Device{ID: "ESP-PET-0001", OwnerEmail: entity.NullOwnerSentinel}

		view := mergeStatus(device, &entity.RealtimeStatus{OwnerEmail: entity.NullOwnerSentinel})

		assert.Equal(t, entity.UnknownOwnerEmail, view.OwnerEmail)
	})
}

func TestMergeStatus_RealtimeFieldsWinWhenPresent(t *testing.T) {
	lastSeen := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	device := &entity.Device{
		ID:         "ESP-PET-0001",
		FoodLevel:  42,
		RSSI:       -60,
		OwnerEmail: "u1@example.com",
		LastStatus: entity.ConnectionOffline,
	}
	status := &entity.RealtimeStatus{
		Online:     boolPtr(true),
		FoodLevel:  intPtr(88),
		RSSI:       intPtr(-41),
		LastSeen:   &lastSeen,
		OwnerEmail: "nuevo@example.com",
		Commands:   []entity.Command{{Type: entity.CommandDispense}},
	}

	view := mergeStatus(device, status)

	assert.Equal(t, entity.ConnectionOnline, view.Connection)
	assert.Equal(t, 88, view.FoodLevel)
	assert.Equal(t, -41, view.RSSI)
	assert.Equal(t, &lastSeen, view.LastSeen)
	assert.Equal(t, 1, view.PendingCommands)
	// The realtime owner overrides the durable one when present.
	assert.Equal(t, "nuevo@example.com", view.OwnerEmail)
}

func TestMergeStatus_OwnerEmailPrecedence(t *testing.T) {
	device := &entity.Device{ID: "ESP-PET-0001", OwnerEmail: "u1@example.com"}

	t.Run("realtime owner wins over durable owner", func(t *testing.T) {
		view := mergeStatus(device, &entity.RealtimeStatus{OwnerEmail: "nuevo@example.com"})

		assert.Equal(t, "nuevo@example.com", view.OwnerEmail)
	})

	t.Run("absent realtime owner falls back to durable owner", func(t *testing.T) {
		view := mergeStatus(device, &entity.RealtimeStatus{})

		assert.Equal(t, "u1@example.com", view.OwnerEmail)
	})

	t.Run("realtime null sentinel falls back to durable owner", func(t *testing.T) {
		view := mergeStatus(device, &entity.RealtimeStatus{OwnerEmail: entity.NullOwnerSentinel})

		assert.Equal(t, "u1@example.com", view.OwnerEmail)
	})
}

func TestMergeStatus_AbsentRealtimeFieldsDoNotOverwrite(t *testing.T) {
	device := &entity.Device{ID: "ESP-PET-0001", FoodLevel: 42, RSSI: -60}
	status := &entity.RealtimeStatus{Online: boolPtr(false)}

	view := mergeStatus(device, status)

	assert.Equal(t, entity.ConnectionOffline, view.Connection)
	assert.Equal(t, 42, view.FoodLevel)
	assert.Equal(t, -60, view.RSSI)
}

// The merged view only depends on the latest value of each source, so
// interleaving order between the two stores cannot change the final result.
func TestMergeStatus_OrderIndependence(t *testing.T) {
	deviceV1 := &entity.Device{ID: "ESP-PET-0001", FoodLevel: 10}
	deviceV2 := &entity.Device{ID: "ESP-PET-0001", FoodLevel: 20}
	statusV1 := &entity.RealtimeStatus{Online: boolPtr(false), FoodLevel: intPtr(50)}
	statusV2 := &entity.RealtimeStatus{Online: boolPtr(true), FoodLevel: intPtr(60)}

	// Device update then status update.
	_ = mergeStatus(deviceV2, statusV1)
	a := mergeStatus(deviceV2, statusV2)

	// Status update then device update.
	_ = mergeStatus(deviceV1, statusV2)
	b := mergeStatus(deviceV2, statusV2)

	assert.Equal(t, a, b)
	assert.Equal(t, entity.ConnectionOnline, a.Connection)
	assert.Equal(t, 60, a.FoodLevel)
}

func TestEdgeNotifier_FirstValueIsSuppressed(t *testing.T) {
	var n edgeNotifier

	assert.False(t, n.Observe(true))
	assert.False(t, n.Observe(true))
}

func TestEdgeNotifier_FiresOncePerTransition(t *testing.T) {
	var n edgeNotifier

	fired := 0
	for _, online := range []bool{true, true, false, false, true} {
		if n.Observe(online) {
			fired++
		}
	}

	assert.Equal(t, 2, fired)
}

func TestEdgeNotifier_SingleValueNeverFires(t *testing.T) {
	var n edgeNotifier

	assert.False(t, n.Observe(false))
}
