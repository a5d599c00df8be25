package impl

import (
	"petfeeder/internal/domain/entity"
)

// mergeStatus reconciles the durable device record with the realtime
// fragment into the view the dashboard renders. The merge is pure and only
// depends on the latest value of each source, so the order in which updates
// arrive cannot change the result. A realtime field wins only when it is
// present; otherwise the durable record, then a fixed fallback, fills in.
func mergeStatus(device *entity.Device, status *entity.RealtimeStatus) *entity.DeviceStatusView {
	view := &entity.DeviceStatusView{
		Connection: entity.ConnectionOffline,
		OwnerEmail: entity.UnknownOwnerEmail,
	}

	if device != nil {
		view.DeviceID = device.ID
		view.FoodLevel = device.FoodLevel
		view.RSSI = device.RSSI
		view.Firmware = device.Firmware
		if device.LastStatus != "" {
			view.Connection = device.LastStatus
		}
		if device.OwnerEmail != "" && device.OwnerEmail != entity.NullOwnerSentinel {
			view.OwnerEmail = device.OwnerEmail
		}
	}

	if status != nil {
		if status.Online != nil {
			if *status.Online {
				view.Connection = entity.ConnectionOnline
			} else {
				view.Connection = entity.ConnectionOffline
			}
		}
		if status.FoodLevel != nil {
			view.FoodLevel = *status.FoodLevel
		}
		if status.RSSI != nil {
			view.RSSI = *status.RSSI
		}
		if status.LastSeen != nil {
			view.LastSeen = status.LastSeen
		}
		if status.OwnerEmail != "" && status.OwnerEmail != entity.NullOwnerSentinel {
			view.OwnerEmail = status.OwnerEmail
		}
		view.PendingCommands = len(status.Commands)
	}

	return view
}

// edgeNotifier tracks online/offline transitions for one device stream. The
// first observed value seeds the state without firing; every change after
// that fires exactly once.
type edgeNotifier struct {
	seeded bool
	online bool
}

// Observe feeds the next online flag and reports whether a transition
// notification should fire.
func (n *edgeNotifier) Observe(online bool) bool {
	if !n.seeded {
		n.seeded = true
		n.online = online

		return false
	}
	if online == n.online {
		return false
	}
	n.online = online

	return true
}
