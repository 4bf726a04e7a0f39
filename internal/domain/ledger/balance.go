package ledger

import (
	"sort"
	"time"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountBalance is a derived snapshot of one account's balance. It is
// owned exclusively by the balance engine: any stale row is deleted before
// a fresh one is inserted, so the snapshot is always recomputable from the
// ledger transaction stream.
type AccountBalance struct {
	shared.TenantEntity
	AccountID uuid.UUID
	Balance   decimal.Decimal
	AsOfDate  time.Time
}

// BalanceSheet ingests ledger transactions and accumulates one balance per
// account. Loading the same transaction set always produces the same
// snapshots, which keeps recompute-and-persist idempotent.
type BalanceSheet struct {
	balances map[uuid.UUID]decimal.Decimal
}

// NewBalanceSheet creates an empty balance sheet
func NewBalanceSheet() *BalanceSheet {
	return &BalanceSheet{
		balances: make(map[uuid.UUID]decimal.Decimal),
	}
}

// Load folds the transactions into the per-account balances
func (s *BalanceSheet) Load(transactions []LedgerTransaction) {
	for i := range transactions {
		tx := &transactions[i]
		s.balances[tx.AccountID] = s.balances[tx.AccountID].Add(tx.Amount())
	}
}

// Balance returns the accumulated balance for an account. Accounts with no
// loaded transactions report zero.
func (s *BalanceSheet) Balance(accountID uuid.UUID) decimal.Decimal {
	return s.balances[accountID]
}

// AccountIDs returns the accounts seen so far, ordered deterministically
func (s *BalanceSheet) AccountIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.balances))
	for id := range s.balances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Snapshots materializes the accumulated balances as AccountBalance rows
// for the given tenant, in deterministic account order.
func (s *BalanceSheet) Snapshots(tenantID uuid.UUID, asOf time.Time) []AccountBalance {
	ids := s.AccountIDs()
	snapshots := make([]AccountBalance, 0, len(ids))
	for _, accountID := range ids {
		snapshots = append(snapshots, AccountBalance{
			TenantEntity: shared.NewTenantEntity(tenantID),
			AccountID:    accountID,
			Balance:      s.balances[accountID],
			AsOfDate:     asOf,
		})
	}
	return snapshots
}
