package usecase

import (
	"context"

	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"
)

// AuditUsecase defines the interface for the append-only audit console
type AuditUsecase interface {
	// Record appends an audit entry
	Record(ctx context.Context, entry *entity.AuditLogEntry) error

	// List returns entries newest first, optionally filtered
	List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLogEntry, error)

	// ExportCSV renders the filtered entries as a CSV download
	ExportCSV(ctx context.Context, filter repository.AuditFilter) ([]byte, error)
}
