package ledger

import (
	"time"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Manual journal event type names
const (
	EventManualJournalDeleting   = "ManualJournalDeleting"
	EventManualJournalDeleted    = "ManualJournalDeleted"
	EventManualJournalPublishing = "ManualJournalPublishing"
	EventManualJournalPublished  = "ManualJournalPublished"
)

// ManualJournalDeletingEvent is raised inside the delete transaction
// before the journal and its entries are removed.
type ManualJournalDeletingEvent struct {
	shared.BaseDomainEvent
	OldManualJournal *ManualJournal `json:"old_manual_journal"`
}

// EventType returns the event type name
func (e *ManualJournalDeletingEvent) EventType() string {
	return EventManualJournalDeleting
}

// NewManualJournalDeletingEvent creates a new ManualJournalDeletingEvent
func NewManualJournalDeletingEvent(journal *ManualJournal) *ManualJournalDeletingEvent {
	return &ManualJournalDeletingEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventManualJournalDeleting, "ManualJournal", journal.ID, journal.TenantID),
		OldManualJournal: journal,
	}
}

// ManualJournalDeletedEvent is raised after the journal rows are removed,
// carrying the pre-delete snapshot for downstream recalculation.
type ManualJournalDeletedEvent struct {
	shared.BaseDomainEvent
	ManualJournalID  uuid.UUID      `json:"manual_journal_id"`
	OldManualJournal *ManualJournal `json:"old_manual_journal"`
}

// EventType returns the event type name
func (e *ManualJournalDeletedEvent) EventType() string {
	return EventManualJournalDeleted
}

// NewManualJournalDeletedEvent creates a new ManualJournalDeletedEvent
func NewManualJournalDeletedEvent(journal *ManualJournal) *ManualJournalDeletedEvent {
	return &ManualJournalDeletedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventManualJournalDeleted, "ManualJournal", journal.ID, journal.TenantID),
		ManualJournalID:  journal.ID,
		OldManualJournal: journal,
	}
}

// ManualJournalPublishingEvent is raised inside the publish transaction
// before the publish timestamp is patched.
type ManualJournalPublishingEvent struct {
	shared.BaseDomainEvent
	OldManualJournal *ManualJournal `json:"old_manual_journal"`
}

// EventType returns the event type name
func (e *ManualJournalPublishingEvent) EventType() string {
	return EventManualJournalPublishing
}

// NewManualJournalPublishingEvent creates a new ManualJournalPublishingEvent
func NewManualJournalPublishingEvent(journal *ManualJournal) *ManualJournalPublishingEvent {
	return &ManualJournalPublishingEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventManualJournalPublishing, "ManualJournal", journal.ID, journal.TenantID),
		OldManualJournal: journal,
	}
}

// ManualJournalPublishedEvent pairs the updated journal with its
// pre-publish snapshot. Subscribers project the entries into the ledger
// transaction stream and recompute account balances.
type ManualJournalPublishedEvent struct {
	shared.BaseDomainEvent
	ManualJournalID  uuid.UUID      `json:"manual_journal_id"`
	ManualJournal    *ManualJournal `json:"manual_journal"`
	OldManualJournal *ManualJournal `json:"old_manual_journal"`
	PublishedAt      time.Time      `json:"published_at"`
}

// EventType returns the event type name
func (e *ManualJournalPublishedEvent) EventType() string {
	return EventManualJournalPublished
}

// NewManualJournalPublishedEvent creates a new ManualJournalPublishedEvent
func NewManualJournalPublishedEvent(journal, oldJournal *ManualJournal, publishedAt time.Time) *ManualJournalPublishedEvent {
	return &ManualJournalPublishedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventManualJournalPublished, "ManualJournal", journal.ID, journal.TenantID),
		ManualJournalID:  journal.ID,
		ManualJournal:    journal,
		OldManualJournal: oldJournal,
		PublishedAt:      publishedAt,
	}
}
