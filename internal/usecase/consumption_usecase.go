package usecase

import (
	"context"
	"time"

	"petfeeder/internal/domain/entity"
)

// HistoryQuery narrows a consumption history request
type HistoryQuery struct {
	Since time.Time
	Until time.Time
	Limit int
}

// ConsumptionUsecase defines the interface for dispense tracking and reports
type ConsumptionUsecase interface {
	// RecordDispense persists a dispense event and its audit entry
	RecordDispense(ctx context.Context, event *entity.DispenseEvent) error

	// History returns dispense events for a device, newest first
	History(ctx context.Context, actor *entity.UserAccount, deviceID string, query *HistoryQuery) ([]*entity.DispenseEvent, error)

	// ExportCSV renders the device's history as a CSV download
	ExportCSV(ctx context.Context, actor *entity.UserAccount, deviceID string, query *HistoryQuery) ([]byte, error)
}
