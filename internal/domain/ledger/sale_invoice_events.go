package ledger

import (
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Sale invoice event type names
const (
	EventSaleInvoiceDeleting = "SaleInvoiceDeleting"
	EventSaleInvoiceDeleted  = "SaleInvoiceDeleted"
)

// SaleInvoiceDeletingEvent is raised inside the delete transaction before
// the invoice and its entries are removed.
type SaleInvoiceDeletingEvent struct {
	shared.BaseDomainEvent
	OldSaleInvoice *SaleInvoice `json:"old_sale_invoice"`
	ActorID        uuid.UUID    `json:"actor_id"`
}

// EventType returns the event type name
func (e *SaleInvoiceDeletingEvent) EventType() string {
	return EventSaleInvoiceDeleting
}

// NewSaleInvoiceDeletingEvent creates a new SaleInvoiceDeletingEvent
func NewSaleInvoiceDeletingEvent(invoice *SaleInvoice, actorID uuid.UUID) *SaleInvoiceDeletingEvent {
	return &SaleInvoiceDeletingEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleInvoiceDeleting, "SaleInvoice", invoice.ID, invoice.TenantID),
		OldSaleInvoice:  invoice,
		ActorID:         actorID,
	}
}

// SaleInvoiceDeletedEvent carries the pre-delete snapshot after removal
type SaleInvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	SaleInvoiceID  uuid.UUID    `json:"sale_invoice_id"`
	OldSaleInvoice *SaleInvoice `json:"old_sale_invoice"`
	ActorID        uuid.UUID    `json:"actor_id"`
}

// EventType returns the event type name
func (e *SaleInvoiceDeletedEvent) EventType() string {
	return EventSaleInvoiceDeleted
}

// NewSaleInvoiceDeletedEvent creates a new SaleInvoiceDeletedEvent
func NewSaleInvoiceDeletedEvent(invoice *SaleInvoice, actorID uuid.UUID) *SaleInvoiceDeletedEvent {
	return &SaleInvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleInvoiceDeleted, "SaleInvoice", invoice.ID, invoice.TenantID),
		SaleInvoiceID:   invoice.ID,
		OldSaleInvoice:  invoice,
		ActorID:         actorID,
	}
}
