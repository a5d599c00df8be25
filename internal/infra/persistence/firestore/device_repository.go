package firestore

import (
	"context"

	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(client *firestore.Client) repository.DeviceRepository {
	return &deviceRepository{
		client: client,
	}
}

func (repo *deviceRepository) doc(id string) *firestore.DocumentRef {
	return repo.client.Collection(collectionDevices).Doc(id)
}

// FindByID retrieves a device by its unique ID.
func (repo *deviceRepository) FindByID(ctx context.Context, id string) (*entity.Device, error) {
	ref := repo.doc(id)

	var snap *firestore.DocumentSnapshot
	var err error
	if repo.tx != nil {
		snap, err = repo.tx.Get(ref)
	} else {
		snap, err = ref.Get(ctx)
	}
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device by id")
	}

	var deviceM model.DeviceModel
	if err := snap.DataTo(&deviceM); err != nil {
		return nil, errors.Wrap(err, "failed to decode device document")
	}
	deviceM.ID = snap.Ref.ID

	return toDeviceDomain(&deviceM), nil
}

// Create persists a newly provisioned device. The device id doubles as the
// document key, so provisioning the same serial twice fails.
func (repo *deviceRepository) Create(ctx context.Context, device *entity.Device) error {
	deviceM := fromDeviceDomain(device)
	ref := repo.doc(device.ID)

	var err error
	if repo.tx != nil {
		err = repo.tx.Create(ref, deviceM)
	} else {
		_, err = ref.Create(ctx, deviceM)
	}
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrDuplicateDevice
		}

		return errors.Wrap(err, "failed to create device")
	}

	return nil
}

// Update modifies an existing device record.
func (repo *deviceRepository) Update(ctx context.Context, device *entity.Device) error {
	ref := repo.doc(device.ID)
	deviceM := fromDeviceDomain(device)

	var err error
	if repo.tx != nil {
		err = repo.tx.Set(ref, deviceM)
	} else {
		_, err = ref.Set(ctx, deviceM)
	}
	if err != nil {
		return errors.Wrap(err, "failed to update device")
	}

	return nil
}

// List retrieves devices ordered by creation time, newest first.
func (repo *deviceRepository) List(ctx context.Context, limit int) ([]*entity.Device, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	iter := repo.client.Collection(collectionDevices).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var devices []*entity.Device
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list devices")
		}

		var deviceM model.DeviceModel
		if err := snap.DataTo(&deviceM); err != nil {
			return nil, errors.Wrap(err, "failed to decode device document")
		}
		deviceM.ID = snap.Ref.ID
		devices = append(devices, toDeviceDomain(&deviceM))
	}

	return devices, nil
}

// ArchiveSchedule copies a schedule entry into the durable removal log.
func (repo *deviceRepository) ArchiveSchedule(ctx context.Context, deviceID string, schedule entity.Schedule) error {
	archiveM := &model.ScheduleArchiveModel{
		DeviceID: deviceID,
		Schedule: fromScheduleDomain(schedule),
	}
	ref := repo.client.Collection(collectionScheduleArchive).Doc(uuid.New().String())

	var err error
	if repo.tx != nil {
		err = repo.tx.Create(ref, archiveM)
	} else {
		_, err = ref.Create(ctx, archiveM)
	}
	if err != nil {
		return errors.Wrap(err, "failed to archive schedule")
	}

	return nil
}

// Watch streams the device record on every backend update until ctx is cancelled.
func (repo *deviceRepository) Watch(ctx context.Context, id string) (<-chan *entity.Device, error) {
	out := make(chan *entity.Device, 1)
	snaps := repo.doc(id).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			if !snap.Exists() {
				continue
			}

			var deviceM model.DeviceModel
			if err := snap.DataTo(&deviceM); err != nil {
				continue
			}
			deviceM.ID = snap.Ref.ID

			emitLatest(ctx, out, toDeviceDomain(&deviceM))
			if ctx.Err() != nil {
				return
			}
		}
	}()

	return out, nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a Firestore DeviceModel to a domain Device entity.
func toDeviceDomain(data *model.DeviceModel) *entity.Device {
	if data == nil {
		return nil
	}

	device := &entity.Device{
		ID:           data.ID,
		State:        entity.DeviceState(data.State),
		LinkedUserID: data.LinkedUserID,
		OwnerEmail:   data.OwnerEmail,
		FoodLevel:    data.FoodLevel,
		RSSI:         data.RSSI,
		Firmware:     data.Firmware,
		LastStatus:   data.LastStatus,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	for _, scheduleM := range data.Schedules {
		device.Schedules = append(device.Schedules, toScheduleDomain(scheduleM))
	}

	return device
}

// fromDeviceDomain converts a domain Device entity to a Firestore DeviceModel.
func fromDeviceDomain(data *entity.Device) *model.DeviceModel {
	if data == nil {
		return nil
	}

	deviceM := &model.DeviceModel{
		ID:           data.ID,
		State:        data.State.String(),
		LinkedUserID: data.LinkedUserID,
		OwnerEmail:   data.OwnerEmail,
		FoodLevel:    data.FoodLevel,
		RSSI:         data.RSSI,
		Firmware:     data.Firmware,
		LastStatus:   data.LastStatus,
		CreatedAt:    data.CreatedAt,
	}
	for _, schedule := range data.Schedules {
		deviceM.Schedules = append(deviceM.Schedules, fromScheduleDomain(schedule))
	}

	return deviceM
}

func toScheduleDomain(data model.ScheduleModel) entity.Schedule {
	return entity.Schedule{
		ID:           data.ID,
		Days:         data.Days,
		Time:         data.Time,
		PortionGrams: data.PortionGrams,
		Enabled:      data.Enabled,
	}
}

func fromScheduleDomain(data entity.Schedule) model.ScheduleModel {
	return model.ScheduleModel{
		ID:           data.ID,
		Days:         data.Days,
		Time:         data.Time,
		PortionGrams: data.PortionGrams,
		Enabled:      data.Enabled,
	}
}
