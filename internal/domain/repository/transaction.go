package repository

import "context"

// TransactionManager defines the interface for atomic multi-document
// mutations. Pairing is the only operation with a cross-record invariant
// (device ownership and account linkage must change together), so it runs
// through this interface; everything else is a single-record write.
type TransactionManager interface {
	// Execute runs a function within one backend transaction. If the function
	// returns an error, nothing is committed. All repository operations
	// obtained from the factory observe and mutate the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	// AccountRepo returns an AccountRepository bound to the current transaction.
	AccountRepo() AccountRepository

	// DeviceRepo returns a DeviceRepository bound to the current transaction.
	DeviceRepo() DeviceRepository
}
