package ledger

import (
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Account event type names
const (
	EventAccountDeleting = "AccountDeleting"
	EventAccountDeleted  = "AccountDeleted"
)

// AccountDeletingEvent is raised inside the delete transaction, before any
// account row is removed. A failing subscriber aborts the whole batch.
type AccountDeletingEvent struct {
	shared.BaseDomainEvent
	OldAccount *Account `json:"old_account"`
}

// EventType returns the event type name
func (e *AccountDeletingEvent) EventType() string {
	return EventAccountDeleting
}

// NewAccountDeletingEvent creates a new AccountDeletingEvent
func NewAccountDeletingEvent(account *Account) *AccountDeletingEvent {
	return &AccountDeletingEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventAccountDeleting, "Account", account.ID, account.TenantID),
		OldAccount:      account,
	}
}

// AccountDeletedEvent is raised inside the delete transaction after the
// account rows are removed, carrying the pre-delete snapshot.
type AccountDeletedEvent struct {
	shared.BaseDomainEvent
	AccountID  uuid.UUID `json:"account_id"`
	OldAccount *Account  `json:"old_account"`
}

// EventType returns the event type name
func (e *AccountDeletedEvent) EventType() string {
	return EventAccountDeleted
}

// NewAccountDeletedEvent creates a new AccountDeletedEvent
func NewAccountDeletedEvent(account *Account) *AccountDeletedEvent {
	return &AccountDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventAccountDeleted, "Account", account.ID, account.TenantID),
		AccountID:       account.ID,
		OldAccount:      account,
	}
}
