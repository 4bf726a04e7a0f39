package persistence

import (
	"context"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCreditNoteApplicationRepository implements CreditNoteApplicationRepository using GORM
type GormCreditNoteApplicationRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteApplicationRepository creates a new GormCreditNoteApplicationRepository
func NewGormCreditNoteApplicationRepository(db *gorm.DB) *GormCreditNoteApplicationRepository {
	return &GormCreditNoteApplicationRepository{db: db}
}

// CountByInvoiceIDs counts credit-note applications against the invoices.
// A non-zero count blocks invoice deletion.
func (r *GormCreditNoteApplicationRepository) CountByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (int64, error) {
	if len(invoiceIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CreditNoteApplicationModel{}).
		Where("tenant_id = ? AND invoice_id IN ?", tenantID, invoiceIDs).
		Count(&count).Error
	return count, err
}

// Ensure GormCreditNoteApplicationRepository implements CreditNoteApplicationRepository
var _ ledger.CreditNoteApplicationRepository = (*GormCreditNoteApplicationRepository)(nil)
