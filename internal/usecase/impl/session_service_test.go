package impl

import (
	"context"
	"log/slog"
	"testing"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/domain/service"
	mockRepo "petfeeder/internal/mocks/repository"
	mockSvc "petfeeder/internal/mocks/service"
	"petfeeder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sessionServiceFixtures holds all test dependencies for session service tests.
type sessionServiceFixtures struct {
	service       usecase.SessionUsecase
	tokenVerifier *mockSvc.MockTokenVerifier
	accountRepo   *mockRepo.MockAccountRepository
	txManager     *mockRepo.MockTransactionManager
	factory       *mockRepo.MockRepositoryFactory
	auditRepo     *mockRepo.MockAuditRepository
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	tokenVerifier := mockSvc.NewMockTokenVerifier(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	auditRepo := mockRepo.NewMockAuditRepository(t)

	svc := NewSessionService(SessionServiceParams{
		TokenVerifier: tokenVerifier,
		AccountRepo:   accountRepo,
		TxManager:     txManager,
		AuditRepo:     auditRepo,
		Logger:        slog.Default(),
	})

	return sessionServiceFixtures{
		service:       svc,
		tokenVerifier: tokenVerifier,
		accountRepo:   accountRepo,
		txManager:     txManager,
		factory:       factory,
		auditRepo:     auditRepo,
	}
}

func TestSessionService_Resolve_ExistingAccount(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.tokenVerifier.EXPECT().
		Verify(ctx, "valid-token").
		Return(&service.Identity{UID: "U1", Email: "u1@example.com"}, nil)
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U1").
		Return(&entity.UserAccount{UID: "U1", Email: "u1@example.com", Role: entity.RoleUser}, nil)

	account, err := fx.service.Resolve(ctx, "valid-token")
	require.NoError(t, err)
	assert.Equal(t, "U1", account.UID)
}

func TestSessionService_Resolve_InvalidToken(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.tokenVerifier.EXPECT().
		Verify(ctx, "bad-token").
		Return(nil, domainerrors.ErrTokenInvalid)

	_, err := fx.service.Resolve(ctx, "bad-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestSessionService_Resolve_ProvisionsMissingAccount(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.tokenVerifier.EXPECT().
		Verify(ctx, "valid-token").
		Return(&service.Identity{UID: "U9", Email: "new@example.com"}, nil)
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U9").
		Return(nil, repository.ErrAccountNotFound).
		Once()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
	fx.factory.EXPECT().AccountRepo().Return(fx.accountRepo)

	// Inside the transaction the account is still missing, so it is created.
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U9").
		Return(nil, repository.ErrAccountNotFound).
		Once()
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.UserAccount")).
		Run(func(_ context.Context, account *entity.UserAccount) {
			assert.Equal(t, "U9", account.UID)
			assert.Equal(t, "new@example.com", account.Email)
			assert.Equal(t, entity.RoleUser, account.Role)
		}).
		Return(nil)

	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Run(func(_ context.Context, entry *entity.AuditLogEntry) {
			assert.Equal(t, entity.ActionAccountCreated, entry.Action)
		}).
		Return(nil)

	account, err := fx.service.Resolve(ctx, "valid-token")
	require.NoError(t, err)
	assert.Equal(t, "U9", account.UID)
	assert.Equal(t, entity.RoleUser, account.Role)
}

func TestSessionService_Resolve_ConcurrentFirstSignInReusesAccount(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	existing := &entity.UserAccount{UID: "U9", Email: "new@example.com", Role: entity.RoleUser}

	fx.tokenVerifier.EXPECT().
		Verify(ctx, "valid-token").
		Return(&service.Identity{UID: "U9", Email: "new@example.com"}, nil)
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U9").
		Return(nil, repository.ErrAccountNotFound).
		Once()

	fx.txManager.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
	fx.factory.EXPECT().AccountRepo().Return(fx.accountRepo)

	// Another request created the account between the first read and the
	// transaction; no duplicate write happens.
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U9").
		Return(existing, nil).
		Once()

	account, err := fx.service.Resolve(ctx, "valid-token")
	require.NoError(t, err)
	assert.Same(t, existing, account)
}

func TestSessionService_Watch_ReplacesExistingListener(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	firstCh := make(chan *entity.UserAccount)
	secondCh := make(chan *entity.UserAccount)

	var watchContexts []context.Context
	calls := 0
	fx.accountRepo.EXPECT().
		Watch(mock.Anything, "U1").
		RunAndReturn(func(watchCtx context.Context, _ string) (<-chan *entity.UserAccount, error) {
			watchContexts = append(watchContexts, watchCtx)
			calls++
			if calls == 1 {
				return firstCh, nil
			}
			return secondCh, nil
		})

	out1, _, err := fx.service.Watch(ctx, "U1")
	require.NoError(t, err)
	assert.NotNil(t, out1)

	out2, _, err := fx.service.Watch(ctx, "U1")
	require.NoError(t, err)
	assert.NotNil(t, out2)

	require.Len(t, watchContexts, 2)
	// The first listener context is torn down before the second attaches.
	assert.Error(t, watchContexts[0].Err())
	assert.NoError(t, watchContexts[1].Err())
}

func TestSessionService_Release_CancelsListener(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	ch := make(chan *entity.UserAccount)
	var watchCtx context.Context
	fx.accountRepo.EXPECT().
		Watch(mock.Anything, "U1").
		RunAndReturn(func(innerCtx context.Context, _ string) (<-chan *entity.UserAccount, error) {
			watchCtx = innerCtx
			return ch, nil
		})

	_, release, err := fx.service.Watch(ctx, "U1")
	require.NoError(t, err)

	release()
	assert.Error(t, watchCtx.Err())

	// Releasing again is a no-op.
	release()
}

func TestSessionService_StaleReleaseLeavesReplacementRunning(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	firstCh := make(chan *entity.UserAccount)
	secondCh := make(chan *entity.UserAccount)

	var watchContexts []context.Context
	calls := 0
	fx.accountRepo.EXPECT().
		Watch(mock.Anything, "U1").
		RunAndReturn(func(watchCtx context.Context, _ string) (<-chan *entity.UserAccount, error) {
			watchContexts = append(watchContexts, watchCtx)
			calls++
			if calls == 1 {
				return firstCh, nil
			}
			return secondCh, nil
		})

	_, release1, err := fx.service.Watch(ctx, "U1")
	require.NoError(t, err)

	_, release2, err := fx.service.Watch(ctx, "U1")
	require.NoError(t, err)

	// The displaced stream's deferred release fires after the replacement
	// attached; the replacement must keep running.
	release1()
	require.Len(t, watchContexts, 2)
	assert.NoError(t, watchContexts[1].Err())

	release2()
	assert.Error(t, watchContexts[1].Err())
}
