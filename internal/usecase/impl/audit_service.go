package impl

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// exportTimeLayout is the timestamp format used in CSV downloads.
const exportTimeLayout = "02/01/2006 15:04:05"

type auditService struct {
	auditRepo repository.AuditRepository
	logger    *slog.Logger
}

// AuditServiceParams holds dependencies for AuditService, injected by Fx.
type AuditServiceParams struct {
	fx.In

	AuditRepo repository.AuditRepository
	Logger    *slog.Logger
}

// NewAuditService creates a new audit service instance
func NewAuditService(params AuditServiceParams) usecase.AuditUsecase {
	return &auditService{
		auditRepo: params.AuditRepo,
		logger:    params.Logger,
	}
}

// Record appends an audit entry
func (s *auditService) Record(ctx context.Context, entry *entity.AuditLogEntry) error {
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to append audit entry")
	}

	return nil
}

// List returns entries newest first, optionally filtered
func (s *auditService) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLogEntry, error) {
	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to list audit entries")
	}

	return entries, nil
}

// ExportCSV renders the filtered entries as a CSV download. An empty result
// still yields the header row.
func (s *auditService) ExportCSV(ctx context.Context, filter repository.AuditFilter) ([]byte, error) {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Origen", "Accion", "Detalles", "Tipo", "Fecha"}); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV header")
	}
	for _, entry := range entries {
		record := []string{
			entry.ID,
			entry.Category,
			entry.Action,
			entry.Detail,
			string(entry.Severity),
			entry.CreatedAt.Format(exportTimeLayout),
		}
		if err := writer.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write CSV record")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush CSV")
	}

	return buf.Bytes(), nil
}
