package firestore

import (
	"context"
	"time"

	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// consumptionRepository implements the repository.ConsumptionRepository interface.
type consumptionRepository struct {
	client *firestore.Client
}

// NewConsumptionRepository is the constructor for consumptionRepository.
func NewConsumptionRepository(client *firestore.Client) repository.ConsumptionRepository {
	return &consumptionRepository{
		client: client,
	}
}

// Record persists one dispense event.
func (repo *consumptionRepository) Record(ctx context.Context, event *entity.DispenseEvent) error {
	eventM := fromDispenseDomain(event)

	if _, err := repo.client.Collection(collectionDispenseEvents).Doc(event.ID).Create(ctx, eventM); err != nil {
		return errors.Wrap(err, "failed to record dispense event")
	}

	return nil
}

// ListByDevice retrieves events for a device within [since, until], newest first.
func (repo *consumptionRepository) ListByDevice(ctx context.Context, deviceID string, since, until time.Time, limit int) ([]*entity.DispenseEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := repo.client.Collection(collectionDispenseEvents).
		Where("deviceId", "==", deviceID)
	if !since.IsZero() {
		query = query.Where("dispensedAt", ">=", since)
	}
	if !until.IsZero() {
		query = query.Where("dispensedAt", "<=", until)
	}

	iter := query.OrderBy("dispensedAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var events []*entity.DispenseEvent
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list dispense events")
		}

		var eventM model.DispenseEventModel
		if err := snap.DataTo(&eventM); err != nil {
			return nil, errors.Wrap(err, "failed to decode dispense document")
		}
		eventM.ID = snap.Ref.ID
		events = append(events, toDispenseDomain(&eventM))
	}

	return events, nil
}

// --- Mapper Functions ---

func toDispenseDomain(data *model.DispenseEventModel) *entity.DispenseEvent {
	return &entity.DispenseEvent{
		ID:          data.ID,
		DeviceID:    data.DeviceID,
		UserID:      data.UserID,
		Grams:       data.Grams,
		Kind:        entity.DispenseKind(data.Kind),
		DispensedAt: data.DispensedAt,
	}
}

func fromDispenseDomain(data *entity.DispenseEvent) *model.DispenseEventModel {
	return &model.DispenseEventModel{
		ID:          data.ID,
		DeviceID:    data.DeviceID,
		UserID:      data.UserID,
		Grams:       data.Grams,
		Kind:        string(data.Kind),
		DispensedAt: data.DispensedAt,
	}
}
