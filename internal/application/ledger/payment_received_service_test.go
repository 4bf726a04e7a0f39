package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentFixture(t *testing.T, store *fakeStore, tenantID uuid.UUID, number string) *ledger.PaymentReceived {
	t.Helper()
	payment, err := ledger.NewPaymentReceived(tenantID, number, uuid.New(), time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(250), uuid.New(), []ledger.PaymentReceivedEntry{
		{InvoiceID: uuid.New(), AppliedAmount: decimal.NewFromInt(250)},
	})
	require.NoError(t, err)
	store.payments[payment.ID] = payment
	return payment
}

func newPaymentServiceHarness() (*fakeStore, *recordingBus, *PaymentReceivedService) {
	store := newFakeStore()
	bus := &recordingBus{store: store}
	uow := &fakeUnitOfWork{store: store}
	service := NewPaymentReceivedService(uow, store.PaymentReceivedRepo(), bus, zap.NewNop())
	return store, bus, service
}

func TestPaymentReceivedService_BulkDeletePaymentsReceived(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deletes application entries before payments", func(t *testing.T) {
		store, bus, service := newPaymentServiceHarness()
		payment := newPaymentFixture(t, store, tenantID, "PAY-001")

		deleted, err := service.BulkDeletePaymentsReceived(ctx, tenantID, []uuid.UUID{payment.ID})
		require.NoError(t, err)
		require.Len(t, deleted, 1)
		assert.Equal(t, payment.ID, deleted[0].ID)
		assert.Empty(t, store.payments)

		assert.Equal(t, []string{
			"publish:PaymentReceivedDeleting",
			"payments.delete_entries",
			"payments.delete",
			"publish:PaymentReceivedDeleted",
		}, store.callLog())

		events := bus.published()
		require.Len(t, events, 2)
		deletedEvent, ok := events[1].(*ledger.PaymentReceivedDeletedEvent)
		require.True(t, ok)
		assert.Equal(t, payment.ID, deletedEvent.OldPaymentReceived.ID)
	})

	t.Run("rejects batch when any id is missing", func(t *testing.T) {
		store, bus, service := newPaymentServiceHarness()
		payment := newPaymentFixture(t, store, tenantID, "PAY-002")

		_, err := service.BulkDeletePaymentsReceived(ctx, tenantID, []uuid.UUID{payment.ID, uuid.New()})
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, store.payments, payment.ID)
		assert.Empty(t, bus.published())
	})

	t.Run("rejects empty id set", func(t *testing.T) {
		_, _, service := newPaymentServiceHarness()

		_, err := service.BulkDeletePaymentsReceived(ctx, tenantID, nil)
		require.Error(t, err)
	})

	t.Run("subscriber failure aborts the batch", func(t *testing.T) {
		store, bus, service := newPaymentServiceHarness()
		payment := newPaymentFixture(t, store, tenantID, "PAY-003")
		bus.err = assert.AnError

		_, err := service.BulkDeletePaymentsReceived(ctx, tenantID, []uuid.UUID{payment.ID})
		require.ErrorIs(t, err, assert.AnError)
	})
}
