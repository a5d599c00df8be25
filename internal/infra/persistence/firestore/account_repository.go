package firestore

import (
	"context"

	"petfeeder/internal/domain/entity"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// accountRepository implements the repository.AccountRepository interface.
// When tx is non-nil every document operation runs inside that transaction,
// mirroring how the transaction manager binds repositories.
type accountRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(client *firestore.Client) repository.AccountRepository {
	return &accountRepository{
		client: client,
	}
}

func (repo *accountRepository) doc(uid string) *firestore.DocumentRef {
	return repo.client.Collection(collectionAccounts).Doc(uid)
}

func (repo *accountRepository) getDoc(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if repo.tx != nil {
		return repo.tx.Get(ref)
	}

	return ref.Get(ctx)
}

func (repo *accountRepository) setDoc(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if repo.tx != nil {
		return repo.tx.Set(ref, data)
	}

	_, err := ref.Set(ctx, data)

	return err
}

// FindByUID retrieves a single account by the identity provider subject.
func (repo *accountRepository) FindByUID(ctx context.Context, uid string) (*entity.UserAccount, error) {
	snap, err := repo.getDoc(ctx, repo.doc(uid))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by uid")
	}

	var accountM model.AccountModel
	if err := snap.DataTo(&accountM); err != nil {
		return nil, errors.Wrap(err, "failed to decode account document")
	}
	accountM.UID = snap.Ref.ID

	return toAccountDomain(&accountM), nil
}

// Create persists a new account record. Fails if the uid is already taken.
func (repo *accountRepository) Create(ctx context.Context, account *entity.UserAccount) error {
	accountM := fromAccountDomain(account)
	ref := repo.doc(account.UID)

	var err error
	if repo.tx != nil {
		err = repo.tx.Create(ref, accountM)
	} else {
		_, err = ref.Create(ctx, accountM)
	}
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Wrap(err, "account already exists")
		}

		return errors.Wrap(err, "failed to create account")
	}

	return nil
}

// Update modifies an existing account record.
func (repo *accountRepository) Update(ctx context.Context, account *entity.UserAccount) error {
	if err := repo.setDoc(ctx, repo.doc(account.UID), fromAccountDomain(account)); err != nil {
		return errors.Wrap(err, "failed to update account")
	}

	return nil
}

// List retrieves accounts ordered by creation time, newest first.
func (repo *accountRepository) List(ctx context.Context, limit int) ([]*entity.UserAccount, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	iter := repo.client.Collection(collectionAccounts).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var accounts []*entity.UserAccount
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list accounts")
		}

		var accountM model.AccountModel
		if err := snap.DataTo(&accountM); err != nil {
			return nil, errors.Wrap(err, "failed to decode account document")
		}
		accountM.UID = snap.Ref.ID
		accounts = append(accounts, toAccountDomain(&accountM))
	}

	return accounts, nil
}

// Watch streams the account record on every backend update until ctx is cancelled.
func (repo *accountRepository) Watch(ctx context.Context, uid string) (<-chan *entity.UserAccount, error) {
	out := make(chan *entity.UserAccount, 1)
	snaps := repo.doc(uid).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				// Context cancellation and permission loss both end the
				// stream; the closed channel is the teardown signal.
				return
			}
			if !snap.Exists() {
				continue
			}

			var accountM model.AccountModel
			if err := snap.DataTo(&accountM); err != nil {
				continue
			}
			accountM.UID = snap.Ref.ID

			emitLatest(ctx, out, toAccountDomain(&accountM))
			if ctx.Err() != nil {
				return
			}
		}
	}()

	return out, nil
}

// --- Mapper Functions ---

// toAccountDomain converts a Firestore AccountModel to a domain UserAccount entity.
func toAccountDomain(data *model.AccountModel) *entity.UserAccount {
	if data == nil {
		return nil
	}

	account := &entity.UserAccount{
		UID:         data.UID,
		Email:       data.Email,
		DisplayName: data.DisplayName,
		Role:        entity.Role(data.Role),
		DeviceID:    data.DeviceID,
		FCMToken:    data.FCMToken,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
	if data.Pet != nil {
		account.Pet = &entity.PetProfile{
			Name:     data.Pet.Name,
			Breed:    data.Pet.Breed,
			AgeYears: data.Pet.AgeYears,
			WeightKg: data.Pet.WeightKg,
		}
	}
	// Records written before roles existed carry no role field.
	account.NormalizeRole()

	return account
}

// fromAccountDomain converts a domain UserAccount entity to a Firestore AccountModel.
func fromAccountDomain(data *entity.UserAccount) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		UID:         data.UID,
		Email:       data.Email,
		DisplayName: data.DisplayName,
		Role:        data.Role.String(),
		DeviceID:    data.DeviceID,
		FCMToken:    data.FCMToken,
		CreatedAt:   data.CreatedAt,
	}
	if data.Pet != nil {
		accountM.Pet = &model.PetProfileModel{
			Name:     data.Pet.Name,
			Breed:    data.Pet.Breed,
			AgeYears: data.Pet.AgeYears,
			WeightKg: data.Pet.WeightKg,
		}
	}

	return accountM
}
