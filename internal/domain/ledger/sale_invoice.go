package ledger

import (
	"time"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleInvoiceEntry is one line item of a sale invoice, owned by it and
// deleted with it.
type SaleInvoiceEntry struct {
	shared.BaseEntity
	SaleInvoiceID uuid.UUID
	Index         int
	Description   string
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	Amount        decimal.Decimal
	AccountID     uuid.UUID
}

// SaleInvoice is an invoice issued to a customer. It cannot be deleted
// while payment entries or credit-note applications still reference it.
type SaleInvoice struct {
	shared.TenantEntity
	InvoiceNumber string
	CustomerID    uuid.UUID
	CustomerName  string
	Date          time.Time
	DueDate       time.Time
	Total         decimal.Decimal
	Balance       decimal.Decimal
	Entries       []SaleInvoiceEntry
}

// NewSaleInvoice creates a sale invoice with its owned line items. The
// invoice total is derived from the entries.
func NewSaleInvoice(tenantID uuid.UUID, invoiceNumber string, customerID uuid.UUID, customerName string, date, dueDate time.Time, entries []SaleInvoiceEntry) (*SaleInvoice, error) {
	if len(entries) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "a sale invoice requires at least one entry")
	}
	invoice := &SaleInvoice{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		InvoiceNumber: invoiceNumber,
		CustomerID:    customerID,
		CustomerName:  customerName,
		Date:          date,
		DueDate:       dueDate,
	}
	total := decimal.Zero
	for i := range entries {
		if entries[i].Amount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "invoice entry amount cannot be negative")
		}
		if entries[i].ID == uuid.Nil {
			entries[i].BaseEntity = shared.NewBaseEntity()
		}
		entries[i].SaleInvoiceID = invoice.ID
		entries[i].Index = i + 1
		total = total.Add(entries[i].Amount)
	}
	invoice.Entries = entries
	invoice.Total = total
	invoice.Balance = total
	return invoice, nil
}

// CreditNoteApplication links a credit note to the invoice it is applied
// against. Its existence blocks deletion of the invoice.
type CreditNoteApplication struct {
	shared.TenantEntity
	CreditNoteID uuid.UUID
	InvoiceID    uuid.UUID
	Amount       decimal.Decimal
}
