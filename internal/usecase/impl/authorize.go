// Package impl contains the concrete use case services.
package impl

import (
	domainerrors "petfeeder/internal/domain/errors"

	"petfeeder/internal/domain/entity"
)

// authorizeDevice checks that the actor may operate on the device: the
// linked owner or an admin.
func authorizeDevice(actor *entity.UserAccount, device *entity.Device) error {
	if actor == nil {
		return domainerrors.ErrSessionRequired
	}
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if device.LinkedUserID == actor.UID {
		return nil
	}

	return domainerrors.ErrDeviceNotOwned
}

// requireAdmin gates admin-only operations.
func requireAdmin(actor *entity.UserAccount) error {
	if actor == nil {
		return domainerrors.ErrSessionRequired
	}
	if actor.Role != entity.RoleAdmin {
		return domainerrors.ErrForbidden
	}

	return nil
}
