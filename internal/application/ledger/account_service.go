package ledger

import (
	"context"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService coordinates bulk mutations of the chart of accounts
type AccountService struct {
	uow      UnitOfWork
	accounts ledger.AccountRepository
	txRepo   ledger.LedgerTransactionRepository
	bus      shared.EventPublisher
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	uow UnitOfWork,
	accounts ledger.AccountRepository,
	txRepo ledger.LedgerTransactionRepository,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		uow:      uow,
		accounts: accounts,
		txRepo:   txRepo,
		bus:      bus,
		logger:   logger,
	}
}

// BulkDeleteAccounts deletes a batch of accounts atomically. The batch is
// rejected whole if any account is missing, predefined, or still linked to
// ledger transactions. Children of deleted accounts are re-rooted, not
// cascaded. Returns the pre-delete snapshots.
func (s *AccountService) BulkDeleteAccounts(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Account, error) {
	accounts, err := s.fetchAll(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if err := account.EnsureDeletable(); err != nil {
			return nil, err
		}
	}

	linked, err := s.txRepo.CountByAccountIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if linked > 0 {
		return nil, shared.ErrAccountHasTransactions
	}

	deleting := make([]shared.DomainEvent, 0, len(accounts))
	deleted := make([]shared.DomainEvent, 0, len(accounts))
	for _, account := range accounts {
		deleting = append(deleting, ledger.NewAccountDeletingEvent(account))
		deleted = append(deleted, ledger.NewAccountDeletedEvent(account))
	}

	err = s.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		if err := s.bus.PublishAll(ctx, deleting); err != nil {
			return err
		}
		if err := repos.AccountRepo().UnlinkChildren(ctx, tenantID, ids); err != nil {
			return err
		}
		if err := repos.AccountRepo().DeleteByIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		return s.bus.PublishAll(ctx, deleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("accounts deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("count", len(accounts)),
	)
	return accounts, nil
}

// ListAccounts returns the tenant's chart of accounts as a flat list
// ordered by code.
func (s *AccountService) ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]*ledger.Account, error) {
	return s.accounts.FindAll(ctx, tenantID)
}

// ListAccountTree returns the chart of accounts as a forest
func (s *AccountService) ListAccountTree(ctx context.Context, tenantID uuid.UUID) ([]*ledger.AccountNode, error) {
	accounts, err := s.accounts.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	tree, err := ledger.NewAccountTree(accounts)
	if err != nil {
		return nil, err
	}
	return tree.Roots(), nil
}

// ListAccountsFlattened returns the chart of accounts flattened in tree
// order, each non-root account renamed to carry its parent's name prefix.
func (s *AccountService) ListAccountsFlattened(ctx context.Context, tenantID uuid.UUID) ([]*ledger.Account, error) {
	accounts, err := s.accounts.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	tree, err := ledger.NewAccountTree(accounts)
	if err != nil {
		return nil, err
	}
	return tree.Flatten(ledger.ParentNamePrefixVisitor()), nil
}

// fetchAll loads every requested account and fails the batch if any id is
// missing from the tenant.
func (s *AccountService) fetchAll(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Account, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "no account ids given")
	}
	accounts, err := s.accounts.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, shared.ErrNotFound
	}
	return accounts, nil
}
