package ledger

import (
	"context"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleInvoiceService coordinates bulk mutations of sale invoices
type SaleInvoiceService struct {
	uow         UnitOfWork
	invoices    ledger.SaleInvoiceRepository
	payments    ledger.PaymentReceivedRepository
	creditNotes ledger.CreditNoteApplicationRepository
	bus         shared.EventPublisher
	logger      *zap.Logger
}

// NewSaleInvoiceService creates a new SaleInvoiceService
func NewSaleInvoiceService(
	uow UnitOfWork,
	invoices ledger.SaleInvoiceRepository,
	payments ledger.PaymentReceivedRepository,
	creditNotes ledger.CreditNoteApplicationRepository,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *SaleInvoiceService {
	return &SaleInvoiceService{
		uow:         uow,
		invoices:    invoices,
		payments:    payments,
		creditNotes: creditNotes,
		bus:         bus,
		logger:      logger,
	}
}

// BulkDeleteSaleInvoices deletes a batch of invoices and their line items
// atomically. The batch is rejected whole if any invoice is missing, still
// referenced by payment applications, or has credit notes applied. Returns
// the pre-delete snapshots.
func (s *SaleInvoiceService) BulkDeleteSaleInvoices(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, actorID uuid.UUID) ([]*ledger.SaleInvoice, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "no sale invoice ids given")
	}
	invoices, err := s.invoices.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(invoices) != len(ids) {
		return nil, shared.ErrNotFound
	}

	paymentEntries, err := s.payments.CountEntriesByInvoiceIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if paymentEntries > 0 {
		return nil, shared.ErrInvoiceHasPaymentEntries
	}

	creditApplications, err := s.creditNotes.CountByInvoiceIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if creditApplications > 0 {
		return nil, shared.ErrInvoiceHasAppliedCreditNotes
	}

	deleting := make([]shared.DomainEvent, 0, len(invoices))
	deleted := make([]shared.DomainEvent, 0, len(invoices))
	for _, invoice := range invoices {
		deleting = append(deleting, ledger.NewSaleInvoiceDeletingEvent(invoice, actorID))
		deleted = append(deleted, ledger.NewSaleInvoiceDeletedEvent(invoice, actorID))
	}

	err = s.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		if err := s.bus.PublishAll(ctx, deleting); err != nil {
			return err
		}
		if err := repos.SaleInvoiceRepo().DeleteEntriesByInvoiceIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		if err := repos.SaleInvoiceRepo().DeleteByIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		return s.bus.PublishAll(ctx, deleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale invoices deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("actor_id", actorID.String()),
		zap.Int("count", len(invoices)),
	)
	return invoices, nil
}
