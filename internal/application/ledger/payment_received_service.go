package ledger

import (
	"context"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentReceivedService coordinates bulk mutations of received payments
type PaymentReceivedService struct {
	uow      UnitOfWork
	payments ledger.PaymentReceivedRepository
	bus      shared.EventPublisher
	logger   *zap.Logger
}

// NewPaymentReceivedService creates a new PaymentReceivedService
func NewPaymentReceivedService(
	uow UnitOfWork,
	payments ledger.PaymentReceivedRepository,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *PaymentReceivedService {
	return &PaymentReceivedService{
		uow:      uow,
		payments: payments,
		bus:      bus,
		logger:   logger,
	}
}

// BulkDeletePaymentsReceived deletes a batch of payments and their
// application entries atomically. The batch is rejected whole if any id is
// missing. Returns the pre-delete snapshots.
func (s *PaymentReceivedService) BulkDeletePaymentsReceived(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.PaymentReceived, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "no payment ids given")
	}
	payments, err := s.payments.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(payments) != len(ids) {
		return nil, shared.ErrNotFound
	}

	deleting := make([]shared.DomainEvent, 0, len(payments))
	deleted := make([]shared.DomainEvent, 0, len(payments))
	for _, payment := range payments {
		deleting = append(deleting, ledger.NewPaymentReceivedDeletingEvent(payment))
		deleted = append(deleted, ledger.NewPaymentReceivedDeletedEvent(payment))
	}

	err = s.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		if err := s.bus.PublishAll(ctx, deleting); err != nil {
			return err
		}
		if err := repos.PaymentReceivedRepo().DeleteEntriesByPaymentIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		if err := repos.PaymentReceivedRepo().DeleteByIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		return s.bus.PublishAll(ctx, deleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payments received deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("count", len(payments)),
	)
	return payments, nil
}
