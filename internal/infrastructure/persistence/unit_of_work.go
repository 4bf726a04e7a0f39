package persistence

import (
	"context"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConflictingTenantTransaction is returned when a unit of work is nested
// inside a transaction that belongs to a different tenant.
var ErrConflictingTenantTransaction = shared.NewDomainError(
	"CONFLICTING_TENANT_TRANSACTION",
	"a transaction for a different tenant is already in progress",
)

type txContextKey struct{}

type txState struct {
	tx       *gorm.DB
	tenantID uuid.UUID
}

// GormUnitOfWork implements UnitOfWork on GORM transactions. The open
// transaction is carried in the context so nested Execute calls for the
// same tenant join it instead of deadlocking on a second connection.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction. On error the transaction
// is rolled back and the original error is returned unchanged.
func (u *GormUnitOfWork) Execute(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context, repos appledger.TenantRepositories) error) error {
	if state, ok := ctx.Value(txContextKey{}).(*txState); ok {
		if state.tenantID != tenantID {
			return ErrConflictingTenantTransaction
		}
		return fn(ctx, &gormTenantRepositories{tx: state.tx})
	}

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txContextKey{}, &txState{tx: tx, tenantID: tenantID})
		return fn(txCtx, &gormTenantRepositories{tx: tx})
	})
}

// gormTenantRepositories hands out repositories bound to one transaction.
type gormTenantRepositories struct {
	tx *gorm.DB
}

func (r *gormTenantRepositories) AccountRepo() ledger.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *gormTenantRepositories) ManualJournalRepo() ledger.ManualJournalRepository {
	return NewGormManualJournalRepository(r.tx)
}

func (r *gormTenantRepositories) SaleInvoiceRepo() ledger.SaleInvoiceRepository {
	return NewGormSaleInvoiceRepository(r.tx)
}

func (r *gormTenantRepositories) PaymentReceivedRepo() ledger.PaymentReceivedRepository {
	return NewGormPaymentReceivedRepository(r.tx)
}

func (r *gormTenantRepositories) CreditNoteApplicationRepo() ledger.CreditNoteApplicationRepository {
	return NewGormCreditNoteApplicationRepository(r.tx)
}

func (r *gormTenantRepositories) TransactionRepo() ledger.LedgerTransactionRepository {
	return NewGormLedgerTransactionRepository(r.tx)
}

func (r *gormTenantRepositories) BalanceRepo() ledger.AccountBalanceRepository {
	return NewGormAccountBalanceRepository(r.tx)
}

var _ appledger.UnitOfWork = (*GormUnitOfWork)(nil)
var _ appledger.TenantRepositories = (*gormTenantRepositories)(nil)
