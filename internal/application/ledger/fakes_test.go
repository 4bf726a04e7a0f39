package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory backing store shared by the fake repositories.
// It records the order of mutating calls so tests can assert pipelines.
type fakeStore struct {
	mu sync.Mutex

	accounts map[uuid.UUID]*ledger.Account
	journals map[uuid.UUID]*ledger.ManualJournal
	invoices map[uuid.UUID]*ledger.SaleInvoice
	payments map[uuid.UUID]*ledger.PaymentReceived

	transactions []ledger.LedgerTransaction
	balances     map[uuid.UUID]ledger.AccountBalance

	paymentEntryRefs map[uuid.UUID]int64 // invoiceID -> payment applications
	creditNoteRefs   map[uuid.UUID]int64 // invoiceID -> credit note applications

	calls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:         make(map[uuid.UUID]*ledger.Account),
		journals:         make(map[uuid.UUID]*ledger.ManualJournal),
		invoices:         make(map[uuid.UUID]*ledger.SaleInvoice),
		payments:         make(map[uuid.UUID]*ledger.PaymentReceived),
		balances:         make(map[uuid.UUID]ledger.AccountBalance),
		paymentEntryRefs: make(map[uuid.UUID]int64),
		creditNoteRefs:   make(map[uuid.UUID]int64),
	}
}

func (s *fakeStore) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *fakeStore) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// AccountRepo and friends make fakeStore a TenantRepositories
func (s *fakeStore) AccountRepo() ledger.AccountRepository { return &fakeAccountRepo{s} }
func (s *fakeStore) ManualJournalRepo() ledger.ManualJournalRepository {
	return &fakeManualJournalRepo{s}
}
func (s *fakeStore) SaleInvoiceRepo() ledger.SaleInvoiceRepository { return &fakeSaleInvoiceRepo{s} }
func (s *fakeStore) PaymentReceivedRepo() ledger.PaymentReceivedRepository {
	return &fakePaymentReceivedRepo{s}
}
func (s *fakeStore) CreditNoteApplicationRepo() ledger.CreditNoteApplicationRepository {
	return &fakeCreditNoteApplicationRepo{s}
}
func (s *fakeStore) TransactionRepo() ledger.LedgerTransactionRepository {
	return &fakeTransactionRepo{s}
}
func (s *fakeStore) BalanceRepo() ledger.AccountBalanceRepository {
	return &fakeBalanceRepo{s}
}

var _ TenantRepositories = (*fakeStore)(nil)

// fakeUnitOfWork hands the callback the store's repositories. There is no
// real transaction; error propagation is what the services under test care
// about.
type fakeUnitOfWork struct {
	store    *fakeStore
	executed atomic.Int64
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context, repos TenantRepositories) error) error {
	u.executed.Add(1)
	return fn(ctx, u.store)
}

var _ UnitOfWork = (*fakeUnitOfWork)(nil)

// recordingBus captures published events in order and can fail on demand.
type recordingBus struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	store  *fakeStore
	err    error
}

func (b *recordingBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return b.PublishAll(ctx, events)
}

func (b *recordingBus) PublishAll(ctx context.Context, events []shared.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	for _, evt := range events {
		if b.store != nil {
			b.store.record("publish:" + evt.EventType())
		}
		b.events = append(b.events, evt)
	}
	return nil
}

func (b *recordingBus) published() []shared.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]shared.DomainEvent(nil), b.events...)
}

func (b *recordingBus) typesInOrder() []string {
	types := make([]string, 0)
	for _, evt := range b.published() {
		types = append(types, evt.EventType())
	}
	return types
}

var _ shared.EventPublisher = (*recordingBus)(nil)

// mustBalancedJournal builds a 100-per-side journal debiting one account
// and crediting another.
func mustBalancedJournal(t *testing.T, tenantID, debitAccountID, creditAccountID uuid.UUID) *ledger.ManualJournal {
	t.Helper()
	journal, err := ledger.NewManualJournal(tenantID, "MJ-001", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), []ledger.ManualJournalEntry{
		{AccountID: debitAccountID, Debit: decimal.NewFromInt(100)},
		{AccountID: creditAccountID, Credit: decimal.NewFromInt(100)},
	})
	if err != nil {
		t.Fatalf("building journal fixture: %v", err)
	}
	return journal
}

type fakeAccountRepo struct{ store *fakeStore }

func (r *fakeAccountRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[id]
	if !ok || account.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var accounts []*ledger.Account
	for _, id := range ids {
		if account, ok := r.store.accounts[id]; ok && account.TenantID == tenantID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepo) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*ledger.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var accounts []*ledger.Account
	for _, account := range r.store.accounts {
		if account.TenantID == tenantID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepo) Save(ctx context.Context, account *ledger.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) UnlinkChildren(ctx context.Context, tenantID uuid.UUID, parentIDs []uuid.UUID) error {
	r.store.record("accounts.unlink_children")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	parents := make(map[uuid.UUID]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = struct{}{}
	}
	for _, account := range r.store.accounts {
		if account.TenantID != tenantID || account.ParentAccountID == nil {
			continue
		}
		if _, ok := parents[*account.ParentAccountID]; ok {
			account.ParentAccountID = nil
		}
	}
	return nil
}

func (r *fakeAccountRepo) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.store.record("accounts.delete")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		if account, ok := r.store.accounts[id]; ok && account.TenantID == tenantID {
			delete(r.store.accounts, id)
		}
	}
	return nil
}

type fakeManualJournalRepo struct{ store *fakeStore }

func (r *fakeManualJournalRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ManualJournal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	journal, ok := r.store.journals[id]
	if !ok || journal.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return journal, nil
}

func (r *fakeManualJournalRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.ManualJournal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var journals []*ledger.ManualJournal
	for _, id := range ids {
		if journal, ok := r.store.journals[id]; ok && journal.TenantID == tenantID {
			journals = append(journals, journal)
		}
	}
	return journals, nil
}

func (r *fakeManualJournalRepo) Save(ctx context.Context, journal *ledger.ManualJournal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.journals[journal.ID] = journal
	return nil
}

func (r *fakeManualJournalRepo) MarkPublished(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, publishedAt time.Time) error {
	r.store.record("journals.mark_published")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		journal, ok := r.store.journals[id]
		if !ok || journal.TenantID != tenantID {
			continue
		}
		updated := *journal
		at := publishedAt
		updated.PublishedAt = &at
		updated.Version++
		r.store.journals[id] = &updated
	}
	return nil
}

func (r *fakeManualJournalRepo) DeleteEntriesByJournalIDs(ctx context.Context, tenantID uuid.UUID, journalIDs []uuid.UUID) error {
	r.store.record("journals.delete_entries")
	return nil
}

func (r *fakeManualJournalRepo) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.store.record("journals.delete")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		if journal, ok := r.store.journals[id]; ok && journal.TenantID == tenantID {
			delete(r.store.journals, id)
		}
	}
	return nil
}

type fakeSaleInvoiceRepo struct{ store *fakeStore }

func (r *fakeSaleInvoiceRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.SaleInvoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	invoice, ok := r.store.invoices[id]
	if !ok || invoice.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return invoice, nil
}

func (r *fakeSaleInvoiceRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.SaleInvoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var invoices []*ledger.SaleInvoice
	for _, id := range ids {
		if invoice, ok := r.store.invoices[id]; ok && invoice.TenantID == tenantID {
			invoices = append(invoices, invoice)
		}
	}
	return invoices, nil
}

func (r *fakeSaleInvoiceRepo) Save(ctx context.Context, invoice *ledger.SaleInvoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeSaleInvoiceRepo) DeleteEntriesByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) error {
	r.store.record("invoices.delete_entries")
	return nil
}

func (r *fakeSaleInvoiceRepo) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.store.record("invoices.delete")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		if invoice, ok := r.store.invoices[id]; ok && invoice.TenantID == tenantID {
			delete(r.store.invoices, id)
		}
	}
	return nil
}

type fakePaymentReceivedRepo struct{ store *fakeStore }

func (r *fakePaymentReceivedRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.PaymentReceived, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	payment, ok := r.store.payments[id]
	if !ok || payment.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

func (r *fakePaymentReceivedRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.PaymentReceived, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var payments []*ledger.PaymentReceived
	for _, id := range ids {
		if payment, ok := r.store.payments[id]; ok && payment.TenantID == tenantID {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

func (r *fakePaymentReceivedRepo) Save(ctx context.Context, payment *ledger.PaymentReceived) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentReceivedRepo) CountEntriesByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, id := range invoiceIDs {
		count += r.store.paymentEntryRefs[id]
	}
	return count, nil
}

func (r *fakePaymentReceivedRepo) DeleteEntriesByPaymentIDs(ctx context.Context, tenantID uuid.UUID, paymentIDs []uuid.UUID) error {
	r.store.record("payments.delete_entries")
	return nil
}

func (r *fakePaymentReceivedRepo) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.store.record("payments.delete")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		if payment, ok := r.store.payments[id]; ok && payment.TenantID == tenantID {
			delete(r.store.payments, id)
		}
	}
	return nil
}

type fakeCreditNoteApplicationRepo struct{ store *fakeStore }

func (r *fakeCreditNoteApplicationRepo) CountByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, id := range invoiceIDs {
		count += r.store.creditNoteRefs[id]
	}
	return count, nil
}

type fakeTransactionRepo struct{ store *fakeStore }

func (r *fakeTransactionRepo) FindByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) ([]ledger.LedgerTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}
	var transactions []ledger.LedgerTransaction
	for _, tx := range r.store.transactions {
		if tx.TenantID != tenantID {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[tx.AccountID]; !ok {
				continue
			}
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (r *fakeTransactionRepo) FindForAccount(ctx context.Context, tenantID, accountID uuid.UUID, query ledger.TransactionQuery) ([]ledger.LedgerTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var transactions []ledger.LedgerTransaction
	for _, tx := range r.store.transactions {
		if tx.TenantID != tenantID || tx.AccountID != accountID {
			continue
		}
		if query.FromDate != nil && tx.Date.Before(*query.FromDate) {
			continue
		}
		if query.ToDate != nil && tx.Date.After(*query.ToDate) {
			continue
		}
		transactions = append(transactions, tx)
		if query.Limit > 0 && len(transactions) == query.Limit {
			break
		}
	}
	return transactions, nil
}

func (r *fakeTransactionRepo) SumAmountBefore(ctx context.Context, tenantID, accountID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, tx := range r.store.transactions {
		if tx.TenantID == tenantID && tx.AccountID == accountID && tx.Date.Before(before) {
			sum = sum.Add(tx.Deposit).Sub(tx.Withdrawal)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) CountByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}
	var count int64
	for _, tx := range r.store.transactions {
		if tx.TenantID != tenantID {
			continue
		}
		if _, ok := wanted[tx.AccountID]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransactionRepo) InsertAll(ctx context.Context, transactions []ledger.LedgerTransaction) error {
	r.store.record("transactions.insert")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transactions = append(r.store.transactions, transactions...)
	return nil
}

func (r *fakeTransactionRepo) DeleteByReference(ctx context.Context, tenantID uuid.UUID, referenceType string, referenceIDs []uuid.UUID) error {
	r.store.record("transactions.delete_by_reference")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(referenceIDs))
	for _, id := range referenceIDs {
		wanted[id] = struct{}{}
	}
	kept := r.store.transactions[:0]
	for _, tx := range r.store.transactions {
		_, doomed := wanted[tx.ReferenceID]
		if tx.TenantID == tenantID && tx.ReferenceType == referenceType && doomed {
			continue
		}
		kept = append(kept, tx)
	}
	r.store.transactions = kept
	return nil
}

type fakeBalanceRepo struct{ store *fakeStore }

func (r *fakeBalanceRepo) FindByAccountID(ctx context.Context, tenantID, accountID uuid.UUID) (*ledger.AccountBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	balance, ok := r.store.balances[accountID]
	if !ok || balance.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &balance, nil
}

func (r *fakeBalanceRepo) FindAll(ctx context.Context, tenantID uuid.UUID) ([]ledger.AccountBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var balances []ledger.AccountBalance
	for _, balance := range r.store.balances {
		if balance.TenantID == tenantID {
			balances = append(balances, balance)
		}
	}
	return balances, nil
}

func (r *fakeBalanceRepo) DeleteByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) error {
	r.store.record("balances.delete")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range accountIDs {
		if balance, ok := r.store.balances[id]; ok && balance.TenantID == tenantID {
			delete(r.store.balances, id)
		}
	}
	return nil
}

func (r *fakeBalanceRepo) DeleteAll(ctx context.Context, tenantID uuid.UUID) error {
	r.store.record("balances.delete_all")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, balance := range r.store.balances {
		if balance.TenantID == tenantID {
			delete(r.store.balances, id)
		}
	}
	return nil
}

func (r *fakeBalanceRepo) InsertAll(ctx context.Context, balances []ledger.AccountBalance) error {
	r.store.record("balances.insert")
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, balance := range balances {
		r.store.balances[balance.AccountID] = balance
	}
	return nil
}
