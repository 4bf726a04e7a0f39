package dto

import (
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// BulkIDsRequest is the body of every bulk mutation endpoint
type BulkIDsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// AccountResponse is the wire shape of one account
type AccountResponse struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	ParentAccountID *uuid.UUID `json:"parent_account_id,omitempty"`
	Predefined      bool       `json:"predefined"`
	Active          bool       `json:"active"`
	Description     string     `json:"description,omitempty"`
}

// AccountTreeNodeResponse is one node of the account hierarchy
type AccountTreeNodeResponse struct {
	AccountResponse
	Children []AccountTreeNodeResponse `json:"children"`
}

// ManualJournalEntryResponse is one line of a manual journal
type ManualJournalEntryResponse struct {
	Index     int       `json:"index"`
	AccountID uuid.UUID `json:"account_id"`
	Debit     string    `json:"debit"`
	Credit    string    `json:"credit"`
	Note      string    `json:"note,omitempty"`
}

// ManualJournalResponse is the wire shape of one manual journal
type ManualJournalResponse struct {
	ID            uuid.UUID                    `json:"id"`
	JournalNumber string                       `json:"journal_number"`
	Date          time.Time                    `json:"date"`
	Reference     string                       `json:"reference,omitempty"`
	Description   string                       `json:"description,omitempty"`
	PublishedAt   *time.Time                   `json:"published_at,omitempty"`
	Entries       []ManualJournalEntryResponse `json:"entries"`
}

// SaleInvoiceResponse is the wire shape of one sale invoice
type SaleInvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	Date          time.Time `json:"date"`
	DueDate       time.Time `json:"due_date"`
	Total         string    `json:"total"`
	Balance       string    `json:"balance"`
}

// PaymentReceivedResponse is the wire shape of one received payment
type PaymentReceivedResponse struct {
	ID            uuid.UUID `json:"id"`
	PaymentNumber string    `json:"payment_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	Date          time.Time `json:"date"`
	Amount        string    `json:"amount"`
	Reference     string    `json:"reference,omitempty"`
}

// NewAccountResponse maps a domain account to its wire shape
func NewAccountResponse(account *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:              account.ID,
		Code:            account.Code,
		Name:            account.Name,
		Type:            account.Type.String(),
		ParentAccountID: account.ParentAccountID,
		Predefined:      account.Predefined,
		Active:          account.Active,
		Description:     account.Description,
	}
}

// NewAccountResponses maps a slice of accounts
func NewAccountResponses(accounts []*ledger.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, NewAccountResponse(account))
	}
	return out
}

// NewAccountTreeResponse maps an account hierarchy to its wire shape
func NewAccountTreeResponse(nodes []*ledger.AccountNode) []AccountTreeNodeResponse {
	out := make([]AccountTreeNodeResponse, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, AccountTreeNodeResponse{
			AccountResponse: NewAccountResponse(node.Account),
			Children:        NewAccountTreeResponse(node.Children),
		})
	}
	return out
}

// NewManualJournalResponse maps a domain journal to its wire shape
func NewManualJournalResponse(journal *ledger.ManualJournal) ManualJournalResponse {
	entries := make([]ManualJournalEntryResponse, 0, len(journal.Entries))
	for _, entry := range journal.Entries {
		entries = append(entries, ManualJournalEntryResponse{
			Index:     entry.Index,
			AccountID: entry.AccountID,
			Debit:     entry.Debit.String(),
			Credit:    entry.Credit.String(),
			Note:      entry.Note,
		})
	}
	return ManualJournalResponse{
		ID:            journal.ID,
		JournalNumber: journal.JournalNumber,
		Date:          journal.Date,
		Reference:     journal.Reference,
		Description:   journal.Description,
		PublishedAt:   journal.PublishedAt,
		Entries:       entries,
	}
}

// NewManualJournalResponses maps a slice of journals
func NewManualJournalResponses(journals []*ledger.ManualJournal) []ManualJournalResponse {
	out := make([]ManualJournalResponse, 0, len(journals))
	for _, journal := range journals {
		out = append(out, NewManualJournalResponse(journal))
	}
	return out
}

// NewSaleInvoiceResponses maps a slice of invoices
func NewSaleInvoiceResponses(invoices []*ledger.SaleInvoice) []SaleInvoiceResponse {
	out := make([]SaleInvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, SaleInvoiceResponse{
			ID:            invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			CustomerID:    invoice.CustomerID,
			CustomerName:  invoice.CustomerName,
			Date:          invoice.Date,
			DueDate:       invoice.DueDate,
			Total:         invoice.Total.String(),
			Balance:       invoice.Balance.String(),
		})
	}
	return out
}

// NewPaymentReceivedResponses maps a slice of payments
func NewPaymentReceivedResponses(payments []*ledger.PaymentReceived) []PaymentReceivedResponse {
	out := make([]PaymentReceivedResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, PaymentReceivedResponse{
			ID:            payment.ID,
			PaymentNumber: payment.PaymentNumber,
			CustomerID:    payment.CustomerID,
			Date:          payment.Date,
			Amount:        payment.Amount.String(),
			Reference:     payment.Reference,
		})
	}
	return out
}
