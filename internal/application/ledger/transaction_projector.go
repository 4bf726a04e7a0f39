package ledger

import (
	"context"
	"fmt"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionProjector maintains the derived ledger transaction stream. It
// subscribes to document lifecycle events and rebuilds the affected rows:
// publishing a journal projects its entries, deleting a document removes
// every row derived from it. It must be registered before any handler that
// reads the stream, registration order is dispatch order.
type TransactionProjector struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// NewTransactionProjector creates a new TransactionProjector
func NewTransactionProjector(uow UnitOfWork, logger *zap.Logger) *TransactionProjector {
	return &TransactionProjector{
		uow:    uow,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (p *TransactionProjector) EventTypes() []string {
	return []string{
		ledger.EventManualJournalPublished,
		ledger.EventManualJournalDeleted,
		ledger.EventSaleInvoiceDeleted,
		ledger.EventPaymentReceivedDeleted,
	}
}

// Handle projects the event into the ledger transaction stream. The write
// joins the publishing operation's transaction, so a failure here rolls the
// whole mutation back.
func (p *TransactionProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ledger.ManualJournalPublishedEvent:
		return p.projectJournal(ctx, e)
	case *ledger.ManualJournalDeletedEvent:
		return p.removeByReference(ctx, event, ledger.ReferenceTypeManualJournal)
	case *ledger.SaleInvoiceDeletedEvent:
		return p.removeByReference(ctx, event, ledger.ReferenceTypeSaleInvoice)
	case *ledger.PaymentReceivedDeletedEvent:
		return p.removeByReference(ctx, event, ledger.ReferenceTypePaymentReceived)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (p *TransactionProjector) projectJournal(ctx context.Context, event *ledger.ManualJournalPublishedEvent) error {
	journal := event.ManualJournal
	transactions := journal.LedgerTransactions()

	err := p.uow.Execute(ctx, journal.TenantID, func(ctx context.Context, repos TenantRepositories) error {
		// Republishing after a crash must not duplicate rows.
		if err := repos.TransactionRepo().DeleteByReference(ctx, journal.TenantID, ledger.ReferenceTypeManualJournal, []uuid.UUID{journal.ID}); err != nil {
			return err
		}
		return repos.TransactionRepo().InsertAll(ctx, transactions)
	})
	if err != nil {
		return err
	}

	p.logger.Debug("journal projected into transaction stream",
		zap.String("journal_id", journal.ID.String()),
		zap.Int("rows", len(transactions)),
	)
	return nil
}

func (p *TransactionProjector) removeByReference(ctx context.Context, event shared.DomainEvent, referenceType string) error {
	tenantID := event.TenantID()
	referenceID := event.AggregateID()

	err := p.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		return repos.TransactionRepo().DeleteByReference(ctx, tenantID, referenceType, []uuid.UUID{referenceID})
	})
	if err != nil {
		return err
	}

	p.logger.Debug("derived transactions removed",
		zap.String("reference_type", referenceType),
		zap.String("reference_id", referenceID.String()),
	)
	return nil
}

var _ shared.EventHandler = (*TransactionProjector)(nil)
