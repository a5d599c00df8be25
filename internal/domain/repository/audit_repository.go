// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"petfeeder/internal/domain/entity"
)

// AuditFilter narrows audit log queries for the admin console.
type AuditFilter struct {
	Category string          // Empty matches all categories.
	Severity entity.Severity // Empty matches all severities.
	Limit    int             // Zero means the repository default.
}

// AuditRepository defines the interface for the append-only audit log.
// The application only appends; entries are never updated or deleted.
type AuditRepository interface {
	// Append persists a new audit entry.
	Append(ctx context.Context, entry *entity.AuditLogEntry) error

	// List retrieves entries matching the filter, newest first.
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLogEntry, error)
}
