package persistence

import (
	"testing"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/bigledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func mustNewAccount(t *testing.T, tenantID uuid.UUID, code, name string) *ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(tenantID, code, name, ledger.AccountTypeAsset, nil)
	require.NoError(t, err)
	return account
}

func mustNewJournal(t *testing.T, tenantID uuid.UUID, number string, date time.Time, debitAccount, creditAccount uuid.UUID, amount decimal.Decimal) *ledger.ManualJournal {
	t.Helper()
	journal, err := ledger.NewManualJournal(tenantID, number, date, []ledger.ManualJournalEntry{
		{AccountID: debitAccount, Debit: amount, Credit: decimal.Zero},
		{AccountID: creditAccount, Debit: decimal.Zero, Credit: amount},
	})
	require.NoError(t, err)
	return journal
}

func newLedgerTransaction(tenantID, accountID uuid.UUID, date time.Time, deposit, withdrawal decimal.Decimal) ledger.LedgerTransaction {
	return ledger.LedgerTransaction{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		AccountID:         accountID,
		Date:              date,
		Deposit:           deposit,
		Withdrawal:        withdrawal,
		TransactionType:   ledger.TransactionTypeManualJournal,
		TransactionNumber: "MJ-1",
		ReferenceType:     ledger.ReferenceTypeManualJournal,
		ReferenceID:       uuid.New(),
		Status:            ledger.TransactionStatusPublished,
	}
}
