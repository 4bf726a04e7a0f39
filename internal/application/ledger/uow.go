package ledger

import (
	"context"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// TenantRepositories gives a unit-of-work callback access to every
// repository, all scoped to the same storage transaction.
type TenantRepositories interface {
	AccountRepo() ledger.AccountRepository
	ManualJournalRepo() ledger.ManualJournalRepository
	SaleInvoiceRepo() ledger.SaleInvoiceRepository
	PaymentReceivedRepo() ledger.PaymentReceivedRepository
	CreditNoteApplicationRepo() ledger.CreditNoteApplicationRepository
	TransactionRepo() ledger.LedgerTransactionRepository
	BalanceRepo() ledger.AccountBalanceRepository
}

// UnitOfWork runs a function atomically: every repository write inside the
// callback commits together or not at all. A nested Execute for the same
// tenant joins the enclosing transaction; a nested Execute for a different
// tenant is a programming error and fails without touching storage.
type UnitOfWork interface {
	Execute(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context, repos TenantRepositories) error) error
}
