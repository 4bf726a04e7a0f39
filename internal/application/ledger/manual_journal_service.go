package ledger

import (
	"context"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ManualJournalService coordinates bulk mutations of manual journals
type ManualJournalService struct {
	uow      UnitOfWork
	journals ledger.ManualJournalRepository
	bus      shared.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// ManualJournalServiceOption is a functional option for ManualJournalService
type ManualJournalServiceOption func(*ManualJournalService)

// WithClock overrides the publish timestamp source
func WithClock(now func() time.Time) ManualJournalServiceOption {
	return func(s *ManualJournalService) {
		s.now = now
	}
}

// NewManualJournalService creates a new ManualJournalService
func NewManualJournalService(
	uow UnitOfWork,
	journals ledger.ManualJournalRepository,
	bus shared.EventPublisher,
	logger *zap.Logger,
	opts ...ManualJournalServiceOption,
) *ManualJournalService {
	s := &ManualJournalService{
		uow:      uow,
		journals: journals,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BulkDeleteManualJournals deletes a batch of journals and their entries
// atomically. The batch is rejected whole if any id is missing. Returns the
// pre-delete snapshots.
func (s *ManualJournalService) BulkDeleteManualJournals(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.ManualJournal, error) {
	journals, err := s.fetchAll(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	deleting := make([]shared.DomainEvent, 0, len(journals))
	deleted := make([]shared.DomainEvent, 0, len(journals))
	for _, journal := range journals {
		deleting = append(deleting, ledger.NewManualJournalDeletingEvent(journal))
		deleted = append(deleted, ledger.NewManualJournalDeletedEvent(journal))
	}

	err = s.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		if err := s.bus.PublishAll(ctx, deleting); err != nil {
			return err
		}
		if err := repos.ManualJournalRepo().DeleteEntriesByJournalIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		if err := repos.ManualJournalRepo().DeleteByIDs(ctx, tenantID, ids); err != nil {
			return err
		}
		return s.bus.PublishAll(ctx, deleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("manual journals deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("count", len(journals)),
	)
	return journals, nil
}

// BulkPublishManualJournals publishes a batch of draft journals atomically.
// A single already-published journal rejects the whole batch. The publish
// timestamp is patched for the whole id set in one statement; subscribers
// receive the updated journals paired with their pre-publish snapshots.
func (s *ManualJournalService) BulkPublishManualJournals(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.ManualJournal, error) {
	oldJournals, err := s.fetchAll(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	for _, journal := range oldJournals {
		if err := journal.EnsureNotPublished(); err != nil {
			return nil, err
		}
	}

	oldByID := make(map[uuid.UUID]*ledger.ManualJournal, len(oldJournals))
	publishing := make([]shared.DomainEvent, 0, len(oldJournals))
	for _, journal := range oldJournals {
		oldByID[journal.ID] = journal
		publishing = append(publishing, ledger.NewManualJournalPublishingEvent(journal))
	}

	publishedAt := s.now()
	var published []*ledger.ManualJournal

	err = s.uow.Execute(ctx, tenantID, func(ctx context.Context, repos TenantRepositories) error {
		if err := s.bus.PublishAll(ctx, publishing); err != nil {
			return err
		}
		if err := repos.ManualJournalRepo().MarkPublished(ctx, tenantID, ids, publishedAt); err != nil {
			return err
		}
		updated, err := repos.ManualJournalRepo().FindByIDs(ctx, tenantID, ids)
		if err != nil {
			return err
		}
		events := make([]shared.DomainEvent, 0, len(updated))
		for _, journal := range updated {
			events = append(events, ledger.NewManualJournalPublishedEvent(journal, oldByID[journal.ID], publishedAt))
		}
		if err := s.bus.PublishAll(ctx, events); err != nil {
			return err
		}
		published = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("manual journals published",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("count", len(published)),
		zap.Time("published_at", publishedAt),
	)
	return published, nil
}

func (s *ManualJournalService) fetchAll(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.ManualJournal, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "no manual journal ids given")
	}
	journals, err := s.journals.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(journals) != len(ids) {
		return nil, shared.ErrNotFound
	}
	return journals, nil
}
