package impl

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"
	mockRepo "petfeeder/internal/mocks/repository"
	"petfeeder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// auditServiceFixtures holds all test dependencies for audit service tests.
type auditServiceFixtures struct {
	service   usecase.AuditUsecase
	auditRepo *mockRepo.MockAuditRepository
}

func createTestAuditService(t *testing.T) auditServiceFixtures {
	auditRepo := mockRepo.NewMockAuditRepository(t)

	svc := NewAuditService(AuditServiceParams{
		AuditRepo: auditRepo,
		Logger:    slog.Default(),
	})

	return auditServiceFixtures{
		service:   svc,
		auditRepo: auditRepo,
	}
}

func TestAuditService_List(t *testing.T) {
	fx := createTestAuditService(t)
	ctx := context.Background()

	filter := repository.AuditFilter{Category: entity.CategoryDevice, Limit: 10}
	entries := []*entity.AuditLogEntry{
		{ID: "a1", Action: entity.ActionDeviceLinked, Category: entity.CategoryDevice},
	}
	fx.auditRepo.EXPECT().
		List(ctx, filter).
		Return(entries, nil)

	got, err := fx.service.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestAuditService_ExportCSV(t *testing.T) {
	fx := createTestAuditService(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	fx.auditRepo.EXPECT().
		List(ctx, repository.AuditFilter{}).
		Return([]*entity.AuditLogEntry{
			{
				ID:        "a1",
				Action:    entity.ActionDeviceLinked,
				Category:  entity.CategoryDevice,
				Severity:  entity.SeverityInfo,
				Detail:    "Dispositivo vinculado a la cuenta U1",
				CreatedAt: createdAt,
			},
		}, nil)

	data, err := fx.service.ExportCSV(ctx, repository.AuditFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Origen,Accion,Detalles,Tipo,Fecha", lines[0])
	assert.Equal(t, "a1,device,DEVICE_LINKED,Dispositivo vinculado a la cuenta U1,info,14/03/2026 09:30:00", lines[1])
}

func TestAuditService_ExportCSV_EmptyStillHasHeader(t *testing.T) {
	fx := createTestAuditService(t)
	ctx := context.Background()

	fx.auditRepo.EXPECT().
		List(ctx, repository.AuditFilter{}).
		Return(nil, nil)

	data, err := fx.service.ExportCSV(ctx, repository.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, "ID,Origen,Accion,Detalles,Tipo,Fecha\n", string(data))
}

func TestAuditService_Record_BackendFailure(t *testing.T) {
	fx := createTestAuditService(t)
	ctx := context.Background()

	entry := entity.NewAuditLogEntry(entity.ActionDeviceLinked, entity.CategoryDevice,
		entity.SeverityInfo, "ESP-PET-0001", "Dispositivo vinculado a la cuenta U1")
	fx.auditRepo.EXPECT().
		Append(ctx, entry).
		Return(assert.AnError)

	err := fx.service.Record(ctx, entry)
	require.Error(t, err)
}
