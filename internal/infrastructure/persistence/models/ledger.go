package models

import (
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for chart-of-accounts entries.
type AccountModel struct {
	TenantModel
	Code            string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_account_tenant_code,priority:2"`
	Name            string             `gorm:"type:varchar(200);not null"`
	Type            ledger.AccountType `gorm:"type:varchar(20);not null;index"`
	ParentAccountID *uuid.UUID         `gorm:"type:uuid;index"`
	Predefined      bool               `gorm:"not null;default:false"`
	Active          bool               `gorm:"not null;default:true"`
	Description     string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account.
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		TenantEntity:    m.TenantModel.ToDomain(),
		Code:            m.Code,
		Name:            m.Name,
		Type:            m.Type,
		ParentAccountID: m.ParentAccountID,
		Predefined:      m.Predefined,
		Active:          m.Active,
		Description:     m.Description,
	}
}

// FromDomain populates the persistence model from a domain Account.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainTenantEntity(a.TenantEntity)
	m.Code = a.Code
	m.Name = a.Name
	m.Type = a.Type
	m.ParentAccountID = a.ParentAccountID
	m.Predefined = a.Predefined
	m.Active = a.Active
	m.Description = a.Description
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// ManualJournalModel is the persistence model for manual journals.
type ManualJournalModel struct {
	TenantModel
	JournalNumber string                    `gorm:"type:varchar(50);not null;uniqueIndex:idx_journal_tenant_number,priority:2"`
	Date          time.Time                 `gorm:"not null;index"`
	Reference     string                    `gorm:"type:varchar(100)"`
	Description   string                    `gorm:"type:text"`
	PublishedAt   *time.Time                `gorm:"index"`
	Entries       []ManualJournalEntryModel `gorm:"foreignKey:ManualJournalID;references:ID"`
}

// TableName returns the table name for GORM
func (ManualJournalModel) TableName() string {
	return "manual_journals"
}

// ToDomain converts the persistence model to a domain ManualJournal.
func (m *ManualJournalModel) ToDomain() *ledger.ManualJournal {
	entries := make([]ledger.ManualJournalEntry, 0, len(m.Entries))
	for i := range m.Entries {
		entries = append(entries, m.Entries[i].ToDomain())
	}
	return &ledger.ManualJournal{
		TenantEntity:  m.TenantModel.ToDomain(),
		JournalNumber: m.JournalNumber,
		Date:          m.Date,
		Reference:     m.Reference,
		Description:   m.Description,
		PublishedAt:   m.PublishedAt,
		Entries:       entries,
	}
}

// FromDomain populates the persistence model from a domain ManualJournal.
func (m *ManualJournalModel) FromDomain(j *ledger.ManualJournal) {
	m.FromDomainTenantEntity(j.TenantEntity)
	m.JournalNumber = j.JournalNumber
	m.Date = j.Date
	m.Reference = j.Reference
	m.Description = j.Description
	m.PublishedAt = j.PublishedAt
	m.Entries = make([]ManualJournalEntryModel, 0, len(j.Entries))
	for i := range j.Entries {
		entry := ManualJournalEntryModel{}
		entry.FromDomain(&j.Entries[i])
		m.Entries = append(m.Entries, entry)
	}
}

// ManualJournalModelFromDomain creates a new persistence model from a domain ManualJournal.
func ManualJournalModelFromDomain(j *ledger.ManualJournal) *ManualJournalModel {
	m := &ManualJournalModel{}
	m.FromDomain(j)
	return m
}

// ManualJournalEntryModel is the persistence model for journal lines.
type ManualJournalEntryModel struct {
	BaseModel
	ManualJournalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Index           int             `gorm:"column:entry_index;not null"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Debit           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note            string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ManualJournalEntryModel) TableName() string {
	return "manual_journal_entries"
}

// ToDomain converts the persistence model to a domain entry.
func (m *ManualJournalEntryModel) ToDomain() ledger.ManualJournalEntry {
	return ledger.ManualJournalEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		ManualJournalID: m.ManualJournalID,
		Index:           m.Index,
		AccountID:       m.AccountID,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Note:            m.Note,
	}
}

// FromDomain populates the persistence model from a domain entry.
func (m *ManualJournalEntryModel) FromDomain(e *ledger.ManualJournalEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ManualJournalID = e.ManualJournalID
	m.Index = e.Index
	m.AccountID = e.AccountID
	m.Debit = e.Debit
	m.Credit = e.Credit
	m.Note = e.Note
}

// SaleInvoiceModel is the persistence model for sale invoices.
type SaleInvoiceModel struct {
	TenantModel
	InvoiceNumber string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	CustomerID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	CustomerName  string                  `gorm:"type:varchar(200);not null"`
	Date          time.Time               `gorm:"not null;index"`
	DueDate       time.Time               `gorm:"not null"`
	Total         decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Balance       decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Entries       []SaleInvoiceEntryModel `gorm:"foreignKey:SaleInvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleInvoiceModel) TableName() string {
	return "sale_invoices"
}

// ToDomain converts the persistence model to a domain SaleInvoice.
func (m *SaleInvoiceModel) ToDomain() *ledger.SaleInvoice {
	entries := make([]ledger.SaleInvoiceEntry, 0, len(m.Entries))
	for i := range m.Entries {
		entries = append(entries, m.Entries[i].ToDomain())
	}
	return &ledger.SaleInvoice{
		TenantEntity:  m.TenantModel.ToDomain(),
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		Date:          m.Date,
		DueDate:       m.DueDate,
		Total:         m.Total,
		Balance:       m.Balance,
		Entries:       entries,
	}
}

// FromDomain populates the persistence model from a domain SaleInvoice.
func (m *SaleInvoiceModel) FromDomain(inv *ledger.SaleInvoice) {
	m.FromDomainTenantEntity(inv.TenantEntity)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.Date = inv.Date
	m.DueDate = inv.DueDate
	m.Total = inv.Total
	m.Balance = inv.Balance
	m.Entries = make([]SaleInvoiceEntryModel, 0, len(inv.Entries))
	for i := range inv.Entries {
		entry := SaleInvoiceEntryModel{}
		entry.FromDomain(&inv.Entries[i])
		m.Entries = append(m.Entries, entry)
	}
}

// SaleInvoiceModelFromDomain creates a new persistence model from a domain SaleInvoice.
func SaleInvoiceModelFromDomain(inv *ledger.SaleInvoice) *SaleInvoiceModel {
	m := &SaleInvoiceModel{}
	m.FromDomain(inv)
	return m
}

// SaleInvoiceEntryModel is the persistence model for invoice line items.
type SaleInvoiceEntryModel struct {
	BaseModel
	SaleInvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Index         int             `gorm:"column:entry_index;not null"`
	Description   string          `gorm:"type:varchar(500)"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (SaleInvoiceEntryModel) TableName() string {
	return "sale_invoice_entries"
}

// ToDomain converts the persistence model to a domain entry.
func (m *SaleInvoiceEntryModel) ToDomain() ledger.SaleInvoiceEntry {
	return ledger.SaleInvoiceEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		SaleInvoiceID: m.SaleInvoiceID,
		Index:         m.Index,
		Description:   m.Description,
		Quantity:      m.Quantity,
		Rate:          m.Rate,
		Amount:        m.Amount,
		AccountID:     m.AccountID,
	}
}

// FromDomain populates the persistence model from a domain entry.
func (m *SaleInvoiceEntryModel) FromDomain(e *ledger.SaleInvoiceEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.SaleInvoiceID = e.SaleInvoiceID
	m.Index = e.Index
	m.Description = e.Description
	m.Quantity = e.Quantity
	m.Rate = e.Rate
	m.Amount = e.Amount
	m.AccountID = e.AccountID
}

// PaymentReceivedModel is the persistence model for received payments.
type PaymentReceivedModel struct {
	TenantModel
	PaymentNumber    string                      `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_tenant_number,priority:2"`
	CustomerID       uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CustomerName     string                      `gorm:"type:varchar(200)"`
	Date             time.Time                   `gorm:"not null;index"`
	Amount           decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	DepositAccountID uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Reference        string                      `gorm:"type:varchar(100)"`
	Entries          []PaymentReceivedEntryModel `gorm:"foreignKey:PaymentReceivedID;references:ID"`
}

// TableName returns the table name for GORM
func (PaymentReceivedModel) TableName() string {
	return "payments_received"
}

// ToDomain converts the persistence model to a domain PaymentReceived.
func (m *PaymentReceivedModel) ToDomain() *ledger.PaymentReceived {
	entries := make([]ledger.PaymentReceivedEntry, 0, len(m.Entries))
	for i := range m.Entries {
		entries = append(entries, m.Entries[i].ToDomain())
	}
	return &ledger.PaymentReceived{
		TenantEntity:     m.TenantModel.ToDomain(),
		PaymentNumber:    m.PaymentNumber,
		CustomerID:       m.CustomerID,
		CustomerName:     m.CustomerName,
		Date:             m.Date,
		Amount:           m.Amount,
		DepositAccountID: m.DepositAccountID,
		Reference:        m.Reference,
		Entries:          entries,
	}
}

// FromDomain populates the persistence model from a domain PaymentReceived.
func (m *PaymentReceivedModel) FromDomain(p *ledger.PaymentReceived) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.PaymentNumber = p.PaymentNumber
	m.CustomerID = p.CustomerID
	m.CustomerName = p.CustomerName
	m.Date = p.Date
	m.Amount = p.Amount
	m.DepositAccountID = p.DepositAccountID
	m.Reference = p.Reference
	m.Entries = make([]PaymentReceivedEntryModel, 0, len(p.Entries))
	for i := range p.Entries {
		entry := PaymentReceivedEntryModel{}
		entry.FromDomain(&p.Entries[i])
		m.Entries = append(m.Entries, entry)
	}
}

// PaymentReceivedModelFromDomain creates a new persistence model from a domain PaymentReceived.
func PaymentReceivedModelFromDomain(p *ledger.PaymentReceived) *PaymentReceivedModel {
	m := &PaymentReceivedModel{}
	m.FromDomain(p)
	return m
}

// PaymentReceivedEntryModel is the persistence model for payment applications.
type PaymentReceivedEntryModel struct {
	BaseModel
	PaymentReceivedID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Index             int             `gorm:"column:entry_index;not null"`
	InvoiceID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	AppliedAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PaymentReceivedEntryModel) TableName() string {
	return "payment_received_entries"
}

// ToDomain converts the persistence model to a domain entry.
func (m *PaymentReceivedEntryModel) ToDomain() ledger.PaymentReceivedEntry {
	return ledger.PaymentReceivedEntry{
		BaseEntity:        m.BaseModel.ToDomain(),
		PaymentReceivedID: m.PaymentReceivedID,
		Index:             m.Index,
		InvoiceID:         m.InvoiceID,
		AppliedAmount:     m.AppliedAmount,
	}
}

// FromDomain populates the persistence model from a domain entry.
func (m *PaymentReceivedEntryModel) FromDomain(e *ledger.PaymentReceivedEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.PaymentReceivedID = e.PaymentReceivedID
	m.Index = e.Index
	m.InvoiceID = e.InvoiceID
	m.AppliedAmount = e.AppliedAmount
}

// CreditNoteApplicationModel links a credit note to a sale invoice.
type CreditNoteApplicationModel struct {
	TenantModel
	CreditNoteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CreditNoteApplicationModel) TableName() string {
	return "credit_note_applications"
}

// ToDomain converts the persistence model to a domain CreditNoteApplication.
func (m *CreditNoteApplicationModel) ToDomain() *ledger.CreditNoteApplication {
	return &ledger.CreditNoteApplication{
		TenantEntity: m.TenantModel.ToDomain(),
		CreditNoteID: m.CreditNoteID,
		InvoiceID:    m.InvoiceID,
		Amount:       m.Amount,
	}
}

// FromDomain populates the persistence model from a domain CreditNoteApplication.
func (m *CreditNoteApplicationModel) FromDomain(a *ledger.CreditNoteApplication) {
	m.FromDomainTenantEntity(a.TenantEntity)
	m.CreditNoteID = a.CreditNoteID
	m.InvoiceID = a.InvoiceID
	m.Amount = a.Amount
}

// LedgerTransactionModel is the persistence model for the derived
// transaction stream.
type LedgerTransactionModel struct {
	TenantModel
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_tx_tenant_account"`
	Date              time.Time       `gorm:"not null;index"`
	Deposit           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Withdrawal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TransactionType   string          `gorm:"type:varchar(30);not null;index"`
	TransactionNumber string          `gorm:"type:varchar(50);not null"`
	ReferenceType     string          `gorm:"type:varchar(30);not null;index:idx_tx_reference"`
	ReferenceID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_tx_reference"`
	Status            string          `gorm:"type:varchar(20);not null;default:'PUBLISHED'"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction.
func (m *LedgerTransactionModel) ToDomain() ledger.LedgerTransaction {
	return ledger.LedgerTransaction{
		TenantEntity:      m.TenantModel.ToDomain(),
		AccountID:         m.AccountID,
		Date:              m.Date,
		Deposit:           m.Deposit,
		Withdrawal:        m.Withdrawal,
		TransactionType:   m.TransactionType,
		TransactionNumber: m.TransactionNumber,
		ReferenceType:     m.ReferenceType,
		ReferenceID:       m.ReferenceID,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain LedgerTransaction.
func (m *LedgerTransactionModel) FromDomain(t *ledger.LedgerTransaction) {
	m.FromDomainTenantEntity(t.TenantEntity)
	m.AccountID = t.AccountID
	m.Date = t.Date
	m.Deposit = t.Deposit
	m.Withdrawal = t.Withdrawal
	m.TransactionType = t.TransactionType
	m.TransactionNumber = t.TransactionNumber
	m.ReferenceType = t.ReferenceType
	m.ReferenceID = t.ReferenceID
	m.Status = t.Status
}

// AccountBalanceModel is the persistence model for derived balance snapshots.
type AccountBalanceModel struct {
	TenantModel
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_balance_tenant_account,priority:2"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AsOfDate  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountBalanceModel) TableName() string {
	return "account_balances"
}

// ToDomain converts the persistence model to a domain AccountBalance.
func (m *AccountBalanceModel) ToDomain() ledger.AccountBalance {
	return ledger.AccountBalance{
		TenantEntity: m.TenantModel.ToDomain(),
		AccountID:    m.AccountID,
		Balance:      m.Balance,
		AsOfDate:     m.AsOfDate,
	}
}

// FromDomain populates the persistence model from a domain AccountBalance.
func (m *AccountBalanceModel) FromDomain(b *ledger.AccountBalance) {
	m.FromDomainTenantEntity(b.TenantEntity)
	m.AccountID = b.AccountID
	m.Balance = b.Balance
	m.AsOfDate = b.AsOfDate
}

// AllModels lists every persistence model for migrations and test setup.
func AllModels() []interface{} {
	return []interface{}{
		&AccountModel{},
		&ManualJournalModel{},
		&ManualJournalEntryModel{},
		&SaleInvoiceModel{},
		&SaleInvoiceEntryModel{},
		&PaymentReceivedModel{},
		&PaymentReceivedEntryModel{},
		&CreditNoteApplicationModel{},
		&LedgerTransactionModel{},
		&AccountBalanceModel{},
	}
}
