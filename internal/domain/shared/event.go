package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is raised by an aggregate when something observable happened
// to it. Events are immutable once constructed.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
}

// BaseDomainEvent carries the identity fields shared by every event.
// Concrete events embed it and add their payload.
type BaseDomainEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	SubjectID   uuid.UUID `json:"aggregate_id"`
	SubjectType string    `json:"aggregate_type"`
	Tenant      uuid.UUID `json:"tenant_id"`
}

// NewBaseDomainEvent stamps a fresh event identity for the given aggregate
func NewBaseDomainEvent(eventType, aggType string, aggID, tenantID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.New(),
		Type:        eventType,
		Timestamp:   time.Now(),
		SubjectID:   aggID,
		SubjectType: aggType,
		Tenant:      tenantID,
	}
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID { return e.ID }

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string { return e.Type }

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time { return e.Timestamp }

// AggregateID returns the id of the aggregate that raised the event
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.SubjectID }

// AggregateType returns the kind of aggregate that raised the event
func (e *BaseDomainEvent) AggregateType() string { return e.SubjectType }

// TenantID returns the owning tenant
func (e *BaseDomainEvent) TenantID() uuid.UUID { return e.Tenant }
