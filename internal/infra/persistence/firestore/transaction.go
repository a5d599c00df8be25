package firestore

import (
	"context"

	"petfeeder/internal/domain/repository"

	"cloud.google.com/go/firestore"
)

// firestoreTransactionManager implements the domain's TransactionManager
// interface on top of Firestore's optimistic read-modify-write transactions.
type firestoreTransactionManager struct {
	client *firestore.Client
}

// firestoreRepositoryFactory implements the domain's RepositoryFactory
// interface. It binds repository instances to one *firestore.Transaction so
// every read and write inside the callback belongs to the same transaction.
type firestoreRepositoryFactory struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// AccountRepo returns an account repository bound to the transaction.
func (f *firestoreRepositoryFactory) AccountRepo() repository.AccountRepository {
	return &accountRepository{client: f.client, tx: f.tx}
}

// DeviceRepo returns a device repository bound to the transaction.
func (f *firestoreRepositoryFactory) DeviceRepo() repository.DeviceRepository {
	return &deviceRepository{client: f.client, tx: f.tx}
}

// NewTransactionManager is the constructor for firestoreTransactionManager.
func NewTransactionManager(client *firestore.Client) repository.TransactionManager {
	return &firestoreTransactionManager{client: client}
}

// Execute runs the given function within a single Firestore transaction.
// Firestore requires all reads before the first write inside a transaction;
// on contention the callback is retried by the client, so it must stay free
// of side effects beyond the transaction itself.
func (tm *firestoreTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	// Callback errors pass through unwrapped so callers can match domain
	// sentinels with errors.Is; commit failures surface as-is too.
	return tm.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		factory := &firestoreRepositoryFactory{client: tm.client, tx: tx}

		return fn(factory)
	})
}
