package ledger

import (
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Payment received event type names
const (
	EventPaymentReceivedDeleting = "PaymentReceivedDeleting"
	EventPaymentReceivedDeleted  = "PaymentReceivedDeleted"
)

// PaymentReceivedDeletingEvent is raised inside the delete transaction
// before the payment and its entries are removed.
type PaymentReceivedDeletingEvent struct {
	shared.BaseDomainEvent
	OldPaymentReceived *PaymentReceived `json:"old_payment_received"`
}

// EventType returns the event type name
func (e *PaymentReceivedDeletingEvent) EventType() string {
	return EventPaymentReceivedDeleting
}

// NewPaymentReceivedDeletingEvent creates a new PaymentReceivedDeletingEvent
func NewPaymentReceivedDeletingEvent(payment *PaymentReceived) *PaymentReceivedDeletingEvent {
	return &PaymentReceivedDeletingEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventPaymentReceivedDeleting, "PaymentReceived", payment.ID, payment.TenantID),
		OldPaymentReceived: payment,
	}
}

// PaymentReceivedDeletedEvent carries the pre-delete snapshot after removal
type PaymentReceivedDeletedEvent struct {
	shared.BaseDomainEvent
	PaymentReceivedID  uuid.UUID        `json:"payment_received_id"`
	OldPaymentReceived *PaymentReceived `json:"old_payment_received"`
}

// EventType returns the event type name
func (e *PaymentReceivedDeletedEvent) EventType() string {
	return EventPaymentReceivedDeleted
}

// NewPaymentReceivedDeletedEvent creates a new PaymentReceivedDeletedEvent
func NewPaymentReceivedDeletedEvent(payment *PaymentReceived) *PaymentReceivedDeletedEvent {
	return &PaymentReceivedDeletedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventPaymentReceivedDeleted, "PaymentReceived", payment.ID, payment.TenantID),
		PaymentReceivedID:  payment.ID,
		OldPaymentReceived: payment,
	}
}
