package firestore

import (
	"context"

	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// auditRepository implements the repository.AuditRepository interface.
// Entries are append-only: there is deliberately no update or delete path.
type auditRepository struct {
	client *firestore.Client
}

// NewAuditRepository is the constructor for auditRepository.
func NewAuditRepository(client *firestore.Client) repository.AuditRepository {
	return &auditRepository{
		client: client,
	}
}

// Append persists a new audit entry.
func (repo *auditRepository) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	entryM := fromAuditDomain(entry)

	if _, err := repo.client.Collection(collectionAuditLogs).Doc(entry.ID).Create(ctx, entryM); err != nil {
		return errors.Wrap(err, "failed to append audit entry")
	}

	return nil
}

// List retrieves entries matching the filter, newest first.
func (repo *auditRepository) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLogEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := repo.client.Collection(collectionAuditLogs).Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Severity != "" {
		query = query.Where("severity", "==", string(filter.Severity))
	}

	iter := query.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var entries []*entity.AuditLogEntry
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list audit entries")
		}

		var entryM model.AuditLogModel
		if err := snap.DataTo(&entryM); err != nil {
			return nil, errors.Wrap(err, "failed to decode audit document")
		}
		entryM.ID = snap.Ref.ID
		entries = append(entries, toAuditDomain(&entryM))
	}

	return entries, nil
}

// --- Mapper Functions ---

func toAuditDomain(data *model.AuditLogModel) *entity.AuditLogEntry {
	return &entity.AuditLogEntry{
		ID:        data.ID,
		Action:    data.Action,
		Category:  data.Category,
		Severity:  entity.Severity(data.Severity),
		SubjectID: data.SubjectID,
		Detail:    data.Detail,
		Metadata:  data.Metadata,
		CreatedAt: data.CreatedAt,
	}
}

func fromAuditDomain(data *entity.AuditLogEntry) *model.AuditLogModel {
	return &model.AuditLogModel{
		ID:        data.ID,
		Action:    data.Action,
		Category:  data.Category,
		Severity:  string(data.Severity),
		SubjectID: data.SubjectID,
		Detail:    data.Detail,
		Metadata:  data.Metadata,
		CreatedAt: data.CreatedAt,
	}
}
