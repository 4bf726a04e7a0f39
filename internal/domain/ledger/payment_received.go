package ledger

import (
	"time"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentReceivedEntry applies part of a received payment against one sale
// invoice. Owned by the payment and deleted with it.
type PaymentReceivedEntry struct {
	shared.BaseEntity
	PaymentReceivedID uuid.UUID
	Index             int
	InvoiceID         uuid.UUID
	AppliedAmount     decimal.Decimal
}

// PaymentReceived records a customer payment deposited into an account and
// applied across one or more invoices.
type PaymentReceived struct {
	shared.TenantEntity
	PaymentNumber    string
	CustomerID       uuid.UUID
	CustomerName     string
	Date             time.Time
	Amount           decimal.Decimal
	DepositAccountID uuid.UUID
	Reference        string
	Entries          []PaymentReceivedEntry
}

// NewPaymentReceived creates a payment with its owned application entries.
// The applied total may not exceed the payment amount.
func NewPaymentReceived(tenantID uuid.UUID, paymentNumber string, customerID uuid.UUID, date time.Time, amount decimal.Decimal, depositAccountID uuid.UUID, entries []PaymentReceivedEntry) (*PaymentReceived, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	payment := &PaymentReceived{
		TenantEntity:     shared.NewTenantEntity(tenantID),
		PaymentNumber:    paymentNumber,
		CustomerID:       customerID,
		Date:             date,
		Amount:           amount,
		DepositAccountID: depositAccountID,
	}
	applied := decimal.Zero
	for i := range entries {
		if entries[i].AppliedAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "applied amount cannot be negative")
		}
		if entries[i].ID == uuid.Nil {
			entries[i].BaseEntity = shared.NewBaseEntity()
		}
		entries[i].PaymentReceivedID = payment.ID
		entries[i].Index = i + 1
		applied = applied.Add(entries[i].AppliedAmount)
	}
	if applied.GreaterThan(amount) {
		return nil, shared.NewDomainError("INVALID_INPUT", "applied total exceeds the payment amount")
	}
	payment.Entries = entries
	return payment, nil
}
