package ledger

import (
	"time"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManualJournalEntry is a single debit or credit line of a manual journal.
// Entries are owned exclusively by their journal and are deleted with it.
type ManualJournalEntry struct {
	shared.BaseEntity
	ManualJournalID uuid.UUID
	Index           int
	AccountID       uuid.UUID
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	Note            string
}

// ManualJournal is a hand-entered double-entry journal. It stays in draft
// until published; publishing is monotonic and projects the entries into
// the ledger transaction stream.
type ManualJournal struct {
	shared.TenantEntity
	JournalNumber string
	Date          time.Time
	Reference     string
	Description   string
	PublishedAt   *time.Time
	Entries       []ManualJournalEntry
}

// NewManualJournal creates a draft manual journal, enforcing the
// double-entry invariant over its entries.
func NewManualJournal(tenantID uuid.UUID, journalNumber string, date time.Time, entries []ManualJournalEntry) (*ManualJournal, error) {
	journal := &ManualJournal{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		JournalNumber: journalNumber,
		Date:          date,
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == uuid.Nil {
			entries[i].BaseEntity = shared.NewBaseEntity()
		}
		entries[i].ManualJournalID = journal.ID
		entries[i].Index = i + 1
	}
	journal.Entries = entries
	return journal, nil
}

func validateEntries(entries []ManualJournalEntry) error {
	if len(entries) < 2 {
		return shared.NewDomainError("INVALID_INPUT", "a manual journal requires at least two entries")
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, entry := range entries {
		if entry.Debit.IsNegative() || entry.Credit.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "journal entry amounts cannot be negative")
		}
		if entry.Debit.IsPositive() && entry.Credit.IsPositive() {
			return shared.NewDomainError("INVALID_INPUT", "a journal entry cannot carry both debit and credit")
		}
		totalDebit = totalDebit.Add(entry.Debit)
		totalCredit = totalCredit.Add(entry.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return shared.ErrJournalNotBalanced
	}
	return nil
}

// TotalDebit sums the debit side of all entries
func (j *ManualJournal) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range j.Entries {
		total = total.Add(entry.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all entries
func (j *ManualJournal) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range j.Entries {
		total = total.Add(entry.Credit)
	}
	return total
}

// IsPublished reports whether the journal carries a publish timestamp
func (j *ManualJournal) IsPublished() bool {
	return j.PublishedAt != nil
}

// EnsureNotPublished rejects re-publishing an already published journal
func (j *ManualJournal) EnsureNotPublished() error {
	if j.IsPublished() {
		return shared.ErrJournalAlreadyPublished
	}
	return nil
}

// Publish stamps the journal as published. Publishing is monotonic.
func (j *ManualJournal) Publish(at time.Time) error {
	if err := j.EnsureNotPublished(); err != nil {
		return err
	}
	j.PublishedAt = &at
	j.IncrementVersion()
	return nil
}

// LedgerTransactions derives the ledger transaction rows this journal
// contributes once published. Rows are never mutated in place; they are
// recreated from the owning entries.
func (j *ManualJournal) LedgerTransactions() []LedgerTransaction {
	transactions := make([]LedgerTransaction, 0, len(j.Entries))
	for _, entry := range j.Entries {
		transactions = append(transactions, LedgerTransaction{
			TenantEntity:      shared.NewTenantEntity(j.TenantID),
			AccountID:         entry.AccountID,
			Date:              j.Date,
			Deposit:           entry.Debit,
			Withdrawal:        entry.Credit,
			TransactionType:   TransactionTypeManualJournal,
			TransactionNumber: j.JournalNumber,
			ReferenceType:     ReferenceTypeManualJournal,
			ReferenceID:       j.ID,
			Status:            TransactionStatusPublished,
		})
	}
	return transactions
}
