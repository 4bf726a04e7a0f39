package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BalanceService recomputes derived account balance snapshots from the
// ledger transaction stream. Recomputation is delete-then-insert: stale
// snapshots for the affected accounts are removed and fresh ones written,
// so running it twice over the same stream stores identical rows.
//
// It also subscribes to the events that change the stream and must be
// registered after the TransactionProjector so it reads projected rows.
//
// Recomputations are serialized: a batch publish delivers its events
// concurrently, and two recomputes over a shared account must not
// interleave their reads with each other's writes. Under the mutex the
// last snapshot write always read the stream after every earlier write.
type BalanceService struct {
	uow    UnitOfWork
	logger *zap.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// BalanceServiceOption is a functional option for BalanceService
type BalanceServiceOption func(*BalanceService)

// WithBalanceClock overrides the snapshot timestamp source
func WithBalanceClock(now func() time.Time) BalanceServiceOption {
	return func(s *BalanceService) {
		s.now = now
	}
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	uow UnitOfWork,
	logger *zap.Logger,
	opts ...BalanceServiceOption,
) *BalanceService {
	s := &BalanceService{
		uow:    uow,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recompute rebuilds the balance snapshots for the given accounts. An
// empty id set rebuilds the whole tenant. Accounts that end up with no
// transactions keep no snapshot row; their balance reads as zero.
func (s *BalanceService) Recompute(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) error {
	asOf := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		transactions, err := repos.TransactionRepo().FindByAccountIDs(ctx, tenantID, accountIDs)
		if err != nil {
			return err
		}

		sheet := ledger.NewBalanceSheet()
		sheet.Load(transactions)

		// Accounts in scope with no remaining transactions still need
		// their stale snapshot removed. The whole-tenant rebuild sweeps
		// every row, including snapshots of accounts the stream no
		// longer mentions.
		if len(accountIDs) == 0 {
			if err := repos.BalanceRepo().DeleteAll(ctx, tenantID); err != nil {
				return err
			}
		} else if err := repos.BalanceRepo().DeleteByAccountIDs(ctx, tenantID, accountIDs); err != nil {
			return err
		}
		return repos.BalanceRepo().InsertAll(ctx, sheet.Snapshots(tenantID, asOf))
	})
	if err != nil {
		return err
	}

	s.logger.Debug("account balances recomputed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("accounts", len(accountIDs)),
	)
	return nil
}

// Balance returns the stored snapshot balance for one account, zero when
// no snapshot exists.
func (s *BalanceService) Balance(ctx context.Context, repos TenantRepositories, tenantID, accountID uuid.UUID) (*ledger.AccountBalance, error) {
	balance, err := repos.BalanceRepo().FindByAccountID(ctx, tenantID, accountID)
	if err != nil {
		if err == shared.ErrNotFound {
			return &ledger.AccountBalance{
				TenantEntity: shared.NewTenantEntity(tenantID),
				AccountID:    accountID,
				AsOfDate:     s.now(),
			}, nil
		}
		return nil, err
	}
	return balance, nil
}

// EventTypes returns the event types this handler is interested in
func (s *BalanceService) EventTypes() []string {
	return []string{
		ledger.EventManualJournalPublished,
		ledger.EventManualJournalDeleted,
		ledger.EventAccountDeleted,
	}
}

// Handle recomputes the snapshots of the accounts the event touched,
// inside the mutation's transaction.
func (s *BalanceService) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ledger.ManualJournalPublishedEvent:
		return s.Recompute(ctx, e.TenantID(), journalAccountIDs(e.ManualJournal))
	case *ledger.ManualJournalDeletedEvent:
		return s.Recompute(ctx, e.TenantID(), journalAccountIDs(e.OldManualJournal))
	case *ledger.AccountDeletedEvent:
		// The account had no transactions (deletion is blocked otherwise);
		// only its stale snapshot needs to go.
		return s.uow.Execute(ctx, e.TenantID(), func(ctx context.Context, repos TenantRepositories) error {
			return repos.BalanceRepo().DeleteByAccountIDs(ctx, e.TenantID(), []uuid.UUID{e.AccountID})
		})
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

// journalAccountIDs collects the distinct accounts referenced by a
// journal's entries.
func journalAccountIDs(journal *ledger.ManualJournal) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(journal.Entries))
	ids := make([]uuid.UUID, 0, len(journal.Entries))
	for _, entry := range journal.Entries {
		if _, ok := seen[entry.AccountID]; ok {
			continue
		}
		seen[entry.AccountID] = struct{}{}
		ids = append(ids, entry.AccountID)
	}
	return ids
}

var _ shared.EventHandler = (*BalanceService)(nil)
