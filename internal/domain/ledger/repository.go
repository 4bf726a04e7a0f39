package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionQuery bounds a transaction stream read. A nil boundary means
// unbounded on that side.
type TransactionQuery struct {
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
}

// AccountRepository persists the chart of accounts. Bulk operations are
// single whereIn statements, not per-row loops.
type AccountRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	// FindByIDs returns the accounts for the given ids. Callers detect
	// missing ids by comparing lengths.
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Account, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*Account, error)
	Save(ctx context.Context, account *Account) error
	// UnlinkChildren nulls parent_account_id on every child of the given
	// parents in one bulk statement. Children survive parent deletion.
	UnlinkChildren(ctx context.Context, tenantID uuid.UUID, parentIDs []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error
}

// ManualJournalRepository persists manual journals with their owned entries
type ManualJournalRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ManualJournal, error)
	// FindByIDs returns journals together with their entries
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ManualJournal, error)
	Save(ctx context.Context, journal *ManualJournal) error
	// MarkPublished patches published_at for the whole id set in one statement
	MarkPublished(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, publishedAt time.Time) error
	DeleteEntriesByJournalIDs(ctx context.Context, tenantID uuid.UUID, journalIDs []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error
}

// SaleInvoiceRepository persists sale invoices with their owned entries
type SaleInvoiceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*SaleInvoice, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*SaleInvoice, error)
	Save(ctx context.Context, invoice *SaleInvoice) error
	DeleteEntriesByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error
}

// PaymentReceivedRepository persists received payments with their entries
type PaymentReceivedRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PaymentReceived, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*PaymentReceived, error)
	Save(ctx context.Context, payment *PaymentReceived) error
	// CountEntriesByInvoiceIDs counts payment entries referencing the
	// invoices; a non-zero count blocks invoice deletion.
	CountEntriesByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (int64, error)
	DeleteEntriesByPaymentIDs(ctx context.Context, tenantID uuid.UUID, paymentIDs []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error
}

// CreditNoteApplicationRepository reads credit-note/invoice links
type CreditNoteApplicationRepository interface {
	CountByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (int64, error)
}

// LedgerTransactionRepository reads and writes the derived transaction
// stream. It is the transaction-reading contract the balance engine and the
// running-balance report depend on.
type LedgerTransactionRepository interface {
	// FindByAccountIDs returns transactions for the given accounts; an
	// empty id set means all accounts of the tenant.
	FindByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) ([]LedgerTransaction, error)
	// FindForAccount returns one account's transactions ordered ascending
	// by (date, insertion order).
	FindForAccount(ctx context.Context, tenantID, accountID uuid.UUID, query TransactionQuery) ([]LedgerTransaction, error)
	// SumAmountBefore computes the opening balance for a report boundary
	SumAmountBefore(ctx context.Context, tenantID, accountID uuid.UUID, before time.Time) (decimal.Decimal, error)
	CountByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) (int64, error)
	InsertAll(ctx context.Context, transactions []LedgerTransaction) error
	DeleteByReference(ctx context.Context, tenantID uuid.UUID, referenceType string, referenceIDs []uuid.UUID) error
}

// AccountBalanceRepository persists derived balance snapshots
type AccountBalanceRepository interface {
	FindByAccountID(ctx context.Context, tenantID, accountID uuid.UUID) (*AccountBalance, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]AccountBalance, error)
	DeleteByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) error
	DeleteAll(ctx context.Context, tenantID uuid.UUID) error
	InsertAll(ctx context.Context, balances []AccountBalance) error
}
