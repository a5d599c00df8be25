package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/domain/service"
	"petfeeder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type sessionService struct {
	tokenVerifier service.TokenVerifier
	accountRepo   repository.AccountRepository
	txManager     repository.TransactionManager
	auditRepo     repository.AuditRepository
	logger        *slog.Logger

	mu        sync.Mutex
	listeners map[string]*accountListener
}

// accountListener identifies one registered watch so a release handle can
// tell its own listener apart from a replacement.
type accountListener struct {
	cancel context.CancelFunc
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TokenVerifier service.TokenVerifier
	AccountRepo   repository.AccountRepository
	TxManager     repository.TransactionManager
	AuditRepo     repository.AuditRepository
	Logger        *slog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenVerifier: params.TokenVerifier,
		accountRepo:   params.AccountRepo,
		txManager:     params.TxManager,
		auditRepo:     params.AuditRepo,
		logger:        params.Logger,
		listeners:     make(map[string]*accountListener),
	}
}

// Resolve verifies the ID token and returns the matching account. An
// authenticated identity without an account document gets a minimal one
// provisioned inside a transaction, so a concurrent first sign-in still
// creates exactly one record.
func (s *sessionService) Resolve(ctx context.Context, idToken string) (*entity.UserAccount, error) {
	identity, err := s.tokenVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByUID(ctx, identity.UID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to load account")
	}

	return s.provisionAccount(ctx, identity)
}

func (s *sessionService) provisionAccount(ctx context.Context, identity *service.Identity) (*entity.UserAccount, error) {
	account := &entity.UserAccount{
		UID:       identity.UID,
		Email:     identity.Email,
		Role:      entity.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created := false
	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		existing, err := factory.AccountRepo().FindByUID(ctx, identity.UID)
		if err == nil {
			account = existing

			return nil
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return err
		}

		created = true

		return factory.AccountRepo().Create(ctx, account)
	})
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to provision account")
	}
	if !created {
		return account, nil
	}

	s.logger.Info("provisioned account on first sign-in", slog.String("uid", identity.UID))

	entry := entity.NewAuditLogEntry(entity.ActionAccountCreated, entity.CategoryAccount,
		entity.SeverityInfo, identity.UID, "Cuenta creada en el primer inicio de sesión")
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to audit account creation",
			slog.String("uid", identity.UID),
			slog.Any("error", err),
		)
	}

	return account, nil
}

// Watch attaches a live account stream for the uid. Only one listener per
// uid exists at a time: a prior listener is torn down before the new
// subscription is registered. The release func is scoped to the listener it
// came from, so a stale handle cannot tear down a replacement.
func (s *sessionService) Watch(ctx context.Context, uid string) (<-chan *entity.UserAccount, func(), error) {
	s.mu.Lock()
	if prev, ok := s.listeners[uid]; ok {
		prev.cancel()
		delete(s.listeners, uid)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	out, err := s.accountRepo.Watch(watchCtx, uid)
	if err != nil {
		cancel()
		s.mu.Unlock()

		return nil, nil, domainerrors.NewBackendUnavailableError(err, "failed to watch account")
	}
	listener := &accountListener{cancel: cancel}
	s.listeners[uid] = listener
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		listener.cancel()
		if s.listeners[uid] == listener {
			delete(s.listeners, uid)
		}
	}

	return out, release, nil
}
