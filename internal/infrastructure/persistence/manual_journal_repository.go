package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/bigledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormManualJournalRepository implements ManualJournalRepository using GORM
type GormManualJournalRepository struct {
	db *gorm.DB
}

// NewGormManualJournalRepository creates a new GormManualJournalRepository
func NewGormManualJournalRepository(db *gorm.DB) *GormManualJournalRepository {
	return &GormManualJournalRepository{db: db}
}

// FindByID finds a journal with its entries within a tenant
func (r *GormManualJournalRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ManualJournal, error) {
	var model models.ManualJournalModel
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_index ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds journals with their entries within a tenant
func (r *GormManualJournalRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.ManualJournal, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var journalModels []models.ManualJournalModel
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_index ASC")
		}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&journalModels).Error; err != nil {
		return nil, err
	}
	journals := make([]*ledger.ManualJournal, 0, len(journalModels))
	for i := range journalModels {
		journals = append(journals, journalModels[i].ToDomain())
	}
	return journals, nil
}

// Save creates or updates a journal together with its entries
func (r *GormManualJournalRepository) Save(ctx context.Context, journal *ledger.ManualJournal) error {
	model := models.ManualJournalModelFromDomain(journal)
	return r.db.WithContext(ctx).Save(model).Error
}

// MarkPublished patches published_at for the whole id set in one statement
func (r *GormManualJournalRepository) MarkPublished(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ManualJournalModel{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Updates(map[string]interface{}{
			"published_at": publishedAt,
			"version":      gorm.Expr("version + 1"),
		}).Error
}

// DeleteEntriesByJournalIDs deletes all entries owned by the journals.
// The entries table has no tenant column; ownership is checked through the
// parent journals.
func (r *GormManualJournalRepository) DeleteEntriesByJournalIDs(ctx context.Context, tenantID uuid.UUID, journalIDs []uuid.UUID) error {
	if len(journalIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("manual_journal_id IN (?)",
			r.db.Model(&models.ManualJournalModel{}).
				Select("id").
				Where("tenant_id = ? AND id IN ?", tenantID, journalIDs),
		).
		Delete(&models.ManualJournalEntryModel{}).Error
}

// DeleteByIDs deletes the journals in a single bulk statement
func (r *GormManualJournalRepository) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Delete(&models.ManualJournalModel{}).Error
}

// Ensure GormManualJournalRepository implements ManualJournalRepository
var _ ledger.ManualJournalRepository = (*GormManualJournalRepository)(nil)
