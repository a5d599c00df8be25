// Package realtime implements the ephemeral status fragment store on top of
// the Firebase Realtime Database tree.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"petfeeder/config"
	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"
)

const (
	feedersPath         = "feeders"
	defaultPollInterval = 5 * time.Second
)

// statusModel mirrors the JSON shape the feeder firmware writes under
// feeders/{deviceID}. Commands live under push-generated keys.
type statusModel struct {
	Online     *bool                   `json:"online,omitempty"`
	LastSeen   *int64                  `json:"last_seen,omitempty"` // Unix seconds.
	FoodLevel  *int                    `json:"food_level,omitempty"`
	RSSI       *int                    `json:"rssi,omitempty"`
	OwnerID    string                  `json:"owner_id,omitempty"`
	OwnerEmail string                  `json:"owner_email,omitempty"`
	Commands   map[string]commandModel `json:"commands,omitempty"`
}

type commandModel struct {
	Type     string `json:"type"`
	Grams    int    `json:"grams,omitempty"`
	IssuedAt int64  `json:"issued_at"` // Unix seconds.
}

// statusRepository implements the repository.StatusRepository interface.
type statusRepository struct {
	client       *db.Client
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewStatusRepository is the constructor for statusRepository.
func NewStatusRepository(client *db.Client, cfg *config.Config, logger *slog.Logger) repository.StatusRepository {
	pollInterval := defaultPollInterval
	if cfg.Status != nil && cfg.Status.PollInterval > 0 {
		pollInterval = cfg.Status.PollInterval
	}

	return &statusRepository{
		client:       client,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

func (repo *statusRepository) ref(deviceID string) *db.Ref {
	return repo.client.NewRef(feedersPath).Child(deviceID)
}

// Get reads the current status fragment for a device.
func (repo *statusRepository) Get(ctx context.Context, deviceID string) (*entity.RealtimeStatus, error) {
	var statusM *statusModel
	if err := repo.ref(deviceID).Get(ctx, &statusM); err != nil {
		return nil, errors.Wrap(err, "failed to read status fragment")
	}
	if statusM == nil {
		return nil, repository.ErrStatusNotFound
	}

	return toStatusDomain(statusM), nil
}

// Init writes a fresh fragment for a newly paired device.
func (repo *statusRepository) Init(ctx context.Context, deviceID string, status *entity.RealtimeStatus) error {
	if err := repo.ref(deviceID).Set(ctx, fromStatusDomain(status)); err != nil {
		return errors.Wrap(err, "failed to initialize status fragment")
	}

	return nil
}

// Update patches individual fields of the fragment.
func (repo *statusRepository) Update(ctx context.Context, deviceID string, fields map[string]any) error {
	if err := repo.ref(deviceID).Update(ctx, fields); err != nil {
		return errors.Wrap(err, "failed to update status fragment")
	}

	return nil
}

// PushCommand appends a command to the device's pending queue.
func (repo *statusRepository) PushCommand(ctx context.Context, deviceID string, cmd entity.Command) error {
	cmdM := commandModel{
		Type:     string(cmd.Type),
		Grams:    cmd.Grams,
		IssuedAt: cmd.IssuedAt.Unix(),
	}

	if _, err := repo.ref(deviceID).Child("commands").Push(ctx, cmdM); err != nil {
		return errors.Wrap(err, "failed to push command")
	}

	return nil
}

// Watch polls the status fragment and emits a snapshot whenever it changes.
// The Admin SDK offers no streaming listener for the Realtime Database, so
// the poll interval bounds the staleness of the stream. The first successful
// read is always emitted.
func (repo *statusRepository) Watch(ctx context.Context, deviceID string) (<-chan *entity.RealtimeStatus, error) {
	out := make(chan *entity.RealtimeStatus, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(repo.pollInterval)
		defer ticker.Stop()

		var prev map[string]any
		seeded := false

		poll := func() {
			var raw map[string]any
			if err := repo.ref(deviceID).Get(ctx, &raw); err != nil {
				if ctx.Err() == nil {
					repo.logger.Warn("status poll failed",
						slog.String("device_id", deviceID),
						slog.Any("error", err),
					)
				}

				return
			}
			if raw == nil {
				// No fragment yet; nothing to emit until one appears.
				return
			}
			if seeded && reflect.DeepEqual(raw, prev) {
				return
			}
			prev = raw
			seeded = true

			statusM, err := decodeStatus(raw)
			if err != nil {
				repo.logger.Warn("malformed status fragment",
					slog.String("device_id", deviceID),
					slog.Any("error", err),
				)

				return
			}

			select {
			case out <- toStatusDomain(statusM):
			case <-ctx.Done():
			default:
				// Consumer still holds a stale snapshot; replace it.
				select {
				case <-out:
				default:
				}
				select {
				case out <- toStatusDomain(statusM):
				default:
				}
			}
		}

		poll()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				poll()
			}
		}
	}()

	return out, nil
}

func decodeStatus(raw map[string]any) (*statusModel, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var statusM statusModel
	if err := json.Unmarshal(buf, &statusM); err != nil {
		return nil, errors.WithStack(err)
	}

	return &statusM, nil
}

// --- Mapper Functions ---

func toStatusDomain(data *statusModel) *entity.RealtimeStatus {
	if data == nil {
		return nil
	}

	status := &entity.RealtimeStatus{
		Online:     data.Online,
		FoodLevel:  data.FoodLevel,
		RSSI:       data.RSSI,
		OwnerID:    data.OwnerID,
		OwnerEmail: data.OwnerEmail,
	}
	if data.LastSeen != nil {
		lastSeen := time.Unix(*data.LastSeen, 0).UTC()
		status.LastSeen = &lastSeen
	}

	// Push keys sort chronologically, which preserves queue order.
	keys := make([]string, 0, len(data.Commands))
	for key := range data.Commands {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmdM := data.Commands[key]
		status.Commands = append(status.Commands, entity.Command{
			Type:     entity.CommandType(cmdM.Type),
			Grams:    cmdM.Grams,
			IssuedAt: time.Unix(cmdM.IssuedAt, 0).UTC(),
		})
	}

	return status
}

func fromStatusDomain(data *entity.RealtimeStatus) *statusModel {
	if data == nil {
		return nil
	}

	statusM := &statusModel{
		Online:     data.Online,
		FoodLevel:  data.FoodLevel,
		RSSI:       data.RSSI,
		OwnerID:    data.OwnerID,
		OwnerEmail: data.OwnerEmail,
	}
	if data.LastSeen != nil {
		lastSeen := data.LastSeen.Unix()
		statusM.LastSeen = &lastSeen
	}
	if len(data.Commands) > 0 {
		statusM.Commands = make(map[string]commandModel, len(data.Commands))
		for i, cmd := range data.Commands {
			statusM.Commands[fmt.Sprintf("cmd-%04d", i)] = commandModel{
				Type:     string(cmd.Type),
				Grams:    cmd.Grams,
				IssuedAt: cmd.IssuedAt.Unix(),
			}
		}
	}

	return statusM
}
