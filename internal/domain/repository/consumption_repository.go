// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"petfeeder/internal/domain/entity"
)

// ConsumptionRepository defines the interface for dispensed-feeding history.
type ConsumptionRepository interface {
	// Record persists one dispense event.
	Record(ctx context.Context, event *entity.DispenseEvent) error

	// ListByDevice retrieves events for a device within [since, until],
	// newest first. Zero times mean an open bound.
	ListByDevice(ctx context.Context, deviceID string, since, until time.Time, limit int) ([]*entity.DispenseEvent, error)
}
