package ledger

import (
	"time"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction type names as they appear on report rows
const (
	TransactionTypeManualJournal   = "ManualJournal"
	TransactionTypeSaleInvoice     = "SaleInvoice"
	TransactionTypePaymentReceived = "PaymentReceived"
	TransactionTypeOpeningBalance  = "OpeningBalance"
)

// Reference type names linking a transaction back to its owning document
const (
	ReferenceTypeManualJournal   = "ManualJournal"
	ReferenceTypeSaleInvoice     = "SaleInvoice"
	ReferenceTypePaymentReceived = "PaymentReceived"
)

// Transaction row statuses
const (
	TransactionStatusPublished = "PUBLISHED"
	TransactionStatusDraft     = "DRAFT"
)

// LedgerTransaction is the read-model row every balance computation and
// running-balance report is derived from. Rows are always rebuilt from the
// owning document's entries, never mutated in place.
type LedgerTransaction struct {
	shared.TenantEntity
	AccountID         uuid.UUID
	Date              time.Time
	Deposit           decimal.Decimal
	Withdrawal        decimal.Decimal
	TransactionType   string
	TransactionNumber string
	ReferenceType     string
	ReferenceID       uuid.UUID
	Status            string
}

// Amount returns the signed amount of the transaction: deposits positive,
// withdrawals negative.
func (t *LedgerTransaction) Amount() decimal.Decimal {
	return t.Deposit.Sub(t.Withdrawal)
}
