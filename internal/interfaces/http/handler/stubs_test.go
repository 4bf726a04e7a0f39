package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/bigledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// stubStore is a shared in-memory backing store for all repositories. The
// per-repository wrappers below filter by tenant and mutate it under lock.
type stubStore struct {
	mu sync.Mutex

	accounts        map[uuid.UUID]*ledger.Account
	journals        map[uuid.UUID]*ledger.ManualJournal
	invoices        map[uuid.UUID]*ledger.SaleInvoice
	payments        map[uuid.UUID]*ledger.PaymentReceived
	transactions    []ledger.LedgerTransaction
	balances        map[uuid.UUID]ledger.AccountBalance
	paymentEntryRef map[uuid.UUID]int64
	creditNoteRef   map[uuid.UUID]int64
}

func newStubStore() *stubStore {
	return &stubStore{
		accounts:        make(map[uuid.UUID]*ledger.Account),
		journals:        make(map[uuid.UUID]*ledger.ManualJournal),
		invoices:        make(map[uuid.UUID]*ledger.SaleInvoice),
		payments:        make(map[uuid.UUID]*ledger.PaymentReceived),
		balances:        make(map[uuid.UUID]ledger.AccountBalance),
		paymentEntryRef: make(map[uuid.UUID]int64),
		creditNoteRef:   make(map[uuid.UUID]int64),
	}
}

func (s *stubStore) AccountRepo() ledger.AccountRepository             { return stubAccountRepo{s} }
func (s *stubStore) ManualJournalRepo() ledger.ManualJournalRepository { return stubJournalRepo{s} }
func (s *stubStore) SaleInvoiceRepo() ledger.SaleInvoiceRepository     { return stubInvoiceRepo{s} }
func (s *stubStore) PaymentReceivedRepo() ledger.PaymentReceivedRepository {
	return stubPaymentRepo{s}
}
func (s *stubStore) CreditNoteApplicationRepo() ledger.CreditNoteApplicationRepository {
	return stubCreditNoteRepo{s}
}
func (s *stubStore) TransactionRepo() ledger.LedgerTransactionRepository {
	return stubTransactionRepo{s}
}
func (s *stubStore) BalanceRepo() ledger.AccountBalanceRepository { return stubBalanceRepo{s} }

type stubAccountRepo struct{ s *stubStore }

func (r stubAccountRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[id]; ok && a.TenantID == tenantID {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubAccountRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ledger.Account
	for _, id := range ids {
		if a, ok := r.s.accounts[id]; ok && a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r stubAccountRepo) FindAll(_ context.Context, tenantID uuid.UUID) ([]*ledger.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ledger.Account
	for _, a := range r.s.accounts {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r stubAccountRepo) Save(_ context.Context, account *ledger.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[account.ID] = account
	return nil
}

func (r stubAccountRepo) UnlinkChildren(_ context.Context, tenantID uuid.UUID, parentIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	parents := make(map[uuid.UUID]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = struct{}{}
	}
	for _, a := range r.s.accounts {
		if a.TenantID != tenantID || a.ParentAccountID == nil {
			continue
		}
		if _, ok := parents[*a.ParentAccountID]; ok {
			a.ParentAccountID = nil
		}
	}
	return nil
}

func (r stubAccountRepo) DeleteByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if a, ok := r.s.accounts[id]; ok && a.TenantID == tenantID {
			delete(r.s.accounts, id)
		}
	}
	return nil
}

type stubJournalRepo struct{ s *stubStore }

func (r stubJournalRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*ledger.ManualJournal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j, ok := r.s.journals[id]; ok && j.TenantID == tenantID {
		return j, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubJournalRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.ManualJournal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ledger.ManualJournal
	for _, id := range ids {
		if j, ok := r.s.journals[id]; ok && j.TenantID == tenantID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r stubJournalRepo) Save(_ context.Context, journal *ledger.ManualJournal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.journals[journal.ID] = journal
	return nil
}

func (r stubJournalRepo) MarkPublished(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID, publishedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if j, ok := r.s.journals[id]; ok && j.TenantID == tenantID {
			at := publishedAt
			j.PublishedAt = &at
			j.IncrementVersion()
		}
	}
	return nil
}

func (r stubJournalRepo) DeleteEntriesByJournalIDs(_ context.Context, tenantID uuid.UUID, journalIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range journalIDs {
		if j, ok := r.s.journals[id]; ok && j.TenantID == tenantID {
			j.Entries = nil
		}
	}
	return nil
}

func (r stubJournalRepo) DeleteByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if j, ok := r.s.journals[id]; ok && j.TenantID == tenantID {
			delete(r.s.journals, id)
		}
	}
	return nil
}

type stubInvoiceRepo struct{ s *stubStore }

func (r stubInvoiceRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*ledger.SaleInvoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invoices[id]; ok && inv.TenantID == tenantID {
		return inv, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubInvoiceRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.SaleInvoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ledger.SaleInvoice
	for _, id := range ids {
		if inv, ok := r.s.invoices[id]; ok && inv.TenantID == tenantID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r stubInvoiceRepo) Save(_ context.Context, invoice *ledger.SaleInvoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[invoice.ID] = invoice
	return nil
}

func (r stubInvoiceRepo) DeleteEntriesByInvoiceIDs(_ context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range invoiceIDs {
		if inv, ok := r.s.invoices[id]; ok && inv.TenantID == tenantID {
			inv.Entries = nil
		}
	}
	return nil
}

func (r stubInvoiceRepo) DeleteByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if inv, ok := r.s.invoices[id]; ok && inv.TenantID == tenantID {
			delete(r.s.invoices, id)
		}
	}
	return nil
}

type stubPaymentRepo struct{ s *stubStore }

func (r stubPaymentRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*ledger.PaymentReceived, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.payments[id]; ok && p.TenantID == tenantID {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubPaymentRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.PaymentReceived, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ledger.PaymentReceived
	for _, id := range ids {
		if p, ok := r.s.payments[id]; ok && p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r stubPaymentRepo) Save(_ context.Context, payment *ledger.PaymentReceived) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[payment.ID] = payment
	return nil
}

func (r stubPaymentRepo) CountEntriesByInvoiceIDs(_ context.Context, _ uuid.UUID, invoiceIDs []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, id := range invoiceIDs {
		total += r.s.paymentEntryRef[id]
	}
	return total, nil
}

func (r stubPaymentRepo) DeleteEntriesByPaymentIDs(_ context.Context, tenantID uuid.UUID, paymentIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range paymentIDs {
		if p, ok := r.s.payments[id]; ok && p.TenantID == tenantID {
			p.Entries = nil
		}
	}
	return nil
}

func (r stubPaymentRepo) DeleteByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if p, ok := r.s.payments[id]; ok && p.TenantID == tenantID {
			delete(r.s.payments, id)
		}
	}
	return nil
}

type stubCreditNoteRepo struct{ s *stubStore }

func (r stubCreditNoteRepo) CountByInvoiceIDs(_ context.Context, _ uuid.UUID, invoiceIDs []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, id := range invoiceIDs {
		total += r.s.creditNoteRef[id]
	}
	return total, nil
}

type stubTransactionRepo struct{ s *stubStore }

func (r stubTransactionRepo) FindByAccountIDs(_ context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) ([]ledger.LedgerTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}
	var out []ledger.LedgerTransaction
	for _, tx := range r.s.transactions {
		if tx.TenantID != tenantID {
			continue
		}
		if len(accountIDs) > 0 {
			if _, ok := wanted[tx.AccountID]; !ok {
				continue
			}
		}
		out = append(out, tx)
	}
	return out, nil
}

func (r stubTransactionRepo) FindForAccount(_ context.Context, tenantID, accountID uuid.UUID, query ledger.TransactionQuery) ([]ledger.LedgerTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []ledger.LedgerTransaction
	for _, tx := range r.s.transactions {
		if tx.TenantID != tenantID || tx.AccountID != accountID {
			continue
		}
		if query.FromDate != nil && tx.Date.Before(*query.FromDate) {
			continue
		}
		if query.ToDate != nil && tx.Date.After(*query.ToDate) {
			continue
		}
		out = append(out, tx)
		if query.Limit > 0 && len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

func (r stubTransactionRepo) SumAmountBefore(_ context.Context, tenantID, accountID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, tx := range r.s.transactions {
		if tx.TenantID == tenantID && tx.AccountID == accountID && tx.Date.Before(before) {
			sum = sum.Add(tx.Amount())
		}
	}
	return sum, nil
}

func (r stubTransactionRepo) CountByAccountIDs(_ context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}
	var total int64
	for _, tx := range r.s.transactions {
		if tx.TenantID != tenantID {
			continue
		}
		if _, ok := wanted[tx.AccountID]; ok {
			total++
		}
	}
	return total, nil
}

func (r stubTransactionRepo) InsertAll(_ context.Context, transactions []ledger.LedgerTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions = append(r.s.transactions, transactions...)
	return nil
}

func (r stubTransactionRepo) DeleteByReference(_ context.Context, tenantID uuid.UUID, referenceType string, referenceIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(referenceIDs))
	for _, id := range referenceIDs {
		wanted[id] = struct{}{}
	}
	kept := r.s.transactions[:0]
	for _, tx := range r.s.transactions {
		_, match := wanted[tx.ReferenceID]
		if tx.TenantID == tenantID && tx.ReferenceType == referenceType && match {
			continue
		}
		kept = append(kept, tx)
	}
	r.s.transactions = kept
	return nil
}

type stubBalanceRepo struct{ s *stubStore }

func (r stubBalanceRepo) FindByAccountID(_ context.Context, tenantID, accountID uuid.UUID) (*ledger.AccountBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.balances[accountID]; ok && b.TenantID == tenantID {
		return &b, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubBalanceRepo) FindAll(_ context.Context, tenantID uuid.UUID) ([]ledger.AccountBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []ledger.AccountBalance
	for _, b := range r.s.balances {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r stubBalanceRepo) DeleteByAccountIDs(_ context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range accountIDs {
		if b, ok := r.s.balances[id]; ok && b.TenantID == tenantID {
			delete(r.s.balances, id)
		}
	}
	return nil
}

func (r stubBalanceRepo) DeleteAll(_ context.Context, tenantID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, b := range r.s.balances {
		if b.TenantID == tenantID {
			delete(r.s.balances, id)
		}
	}
	return nil
}

func (r stubBalanceRepo) InsertAll(_ context.Context, balances []ledger.AccountBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range balances {
		r.s.balances[b.AccountID] = b
	}
	return nil
}

type stubUnitOfWork struct{ store *stubStore }

func (u stubUnitOfWork) Execute(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context, repos appledger.TenantRepositories) error) error {
	return fn(ctx, u.store)
}

// nopBus satisfies the publisher contract without delivering anywhere
type nopBus struct{}

func (nopBus) Publish(context.Context, ...shared.DomainEvent) error   { return nil }
func (nopBus) PublishAll(context.Context, []shared.DomainEvent) error { return nil }

// testEnv wires real services over the stub store behind a routed engine
type testEnv struct {
	engine *gin.Engine
	store  *stubStore
	tenant uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newStubStore()
	uow := stubUnitOfWork{store: store}
	log := zap.NewNop()

	accountService := appledger.NewAccountService(uow, store.AccountRepo(), store.TransactionRepo(), nopBus{}, log)
	journalService := appledger.NewManualJournalService(uow, store.ManualJournalRepo(), nopBus{}, log)
	invoiceService := appledger.NewSaleInvoiceService(uow, store.SaleInvoiceRepo(), store.PaymentReceivedRepo(), store.CreditNoteApplicationRepo(), nopBus{}, log)
	paymentService := appledger.NewPaymentReceivedService(uow, store.PaymentReceivedRepo(), nopBus{}, log)
	balanceService := appledger.NewBalanceService(uow, log)
	reportService := appledger.NewAccountTransactionsService(store.AccountRepo(), store.TransactionRepo(), log)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.Tenant())

	NewAccountHandler(accountService, balanceService).RegisterRoutes(api)
	NewManualJournalHandler(journalService).RegisterRoutes(api)
	NewSaleInvoiceHandler(invoiceService).RegisterRoutes(api)
	NewPaymentReceivedHandler(paymentService).RegisterRoutes(api)
	NewReportHandler(reportService).RegisterRoutes(api)

	return &testEnv{
		engine: engine,
		store:  store,
		tenant: uuid.New(),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, e.tenant.String())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// firstError pulls the first entry out of the wire error payload
func firstError(t *testing.T, w *httptest.ResponseRecorder) (string, float64) {
	t.Helper()
	body := decodeBody(t, w)
	entries, ok := body["errors"].([]any)
	require.True(t, ok, "expected errors array, got %s", w.Body.String())
	require.NotEmpty(t, entries)
	entry := entries[0].(map[string]any)
	return entry["type"].(string), entry["code"].(float64)
}

func seedAccount(t *testing.T, env *testEnv, code, name string, accountType ledger.AccountType) *ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(env.tenant, code, name, accountType, nil)
	require.NoError(t, err)
	env.store.accounts[account.ID] = account
	return account
}

func seedJournal(t *testing.T, env *testEnv, number string, debitAccount, creditAccount uuid.UUID) *ledger.ManualJournal {
	t.Helper()
	amount := decimal.NewFromInt(100)
	journal, err := ledger.NewManualJournal(env.tenant, number,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		[]ledger.ManualJournalEntry{
			{BaseEntity: shared.NewBaseEntity(), Index: 0, AccountID: debitAccount, Debit: amount},
			{BaseEntity: shared.NewBaseEntity(), Index: 1, AccountID: creditAccount, Credit: amount},
		})
	require.NoError(t, err)
	env.store.journals[journal.ID] = journal
	return journal
}

func seedInvoice(t *testing.T, env *testEnv, number string) *ledger.SaleInvoice {
	t.Helper()
	incomeAccount := uuid.New()
	invoice, err := ledger.NewSaleInvoice(env.tenant, number, uuid.New(), "Acme Pte Ltd",
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		[]ledger.SaleInvoiceEntry{{
			BaseEntity:  shared.NewBaseEntity(),
			Index:       0,
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(1),
			Rate:        decimal.NewFromInt(1000),
			Amount:      decimal.NewFromInt(1000),
			AccountID:   incomeAccount,
		}})
	require.NoError(t, err)
	env.store.invoices[invoice.ID] = invoice
	return invoice
}

func seedPayment(t *testing.T, env *testEnv, number string, invoiceID uuid.UUID) *ledger.PaymentReceived {
	t.Helper()
	payment, err := ledger.NewPaymentReceived(env.tenant, number, uuid.New(),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(250), uuid.New(),
		[]ledger.PaymentReceivedEntry{{
			BaseEntity:    shared.NewBaseEntity(),
			Index:         0,
			InvoiceID:     invoiceID,
			AppliedAmount: decimal.NewFromInt(250),
		}})
	require.NoError(t, err)
	env.store.payments[payment.ID] = payment
	return payment
}

func bulkIDs(ids ...uuid.UUID) map[string]any {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return map[string]any{"ids": out}
}
