package persistence

import (
	"context"
	"errors"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/bigledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentReceivedRepository implements PaymentReceivedRepository using GORM
type GormPaymentReceivedRepository struct {
	db *gorm.DB
}

// NewGormPaymentReceivedRepository creates a new GormPaymentReceivedRepository
func NewGormPaymentReceivedRepository(db *gorm.DB) *GormPaymentReceivedRepository {
	return &GormPaymentReceivedRepository{db: db}
}

// FindByID finds a payment with its entries within a tenant
func (r *GormPaymentReceivedRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.PaymentReceived, error) {
	var model models.PaymentReceivedModel
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

// FindByIDs finds payments with their entries within a tenant
func (r *GormPaymentReceivedRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.PaymentReceived, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var paymentModels []models.PaymentReceivedModel
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_index ASC")
		}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]*ledger.PaymentReceived, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentModels[i].ToDomain())
	}
	return payments, nil
}

// Save creates or updates a payment together with its entries
func (r *GormPaymentReceivedRepository) Save(ctx context.Context, payment *ledger.PaymentReceived) error {
	model := models.PaymentReceivedModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountEntriesByInvoiceIDs counts payment applications that reference the
// given invoices. A non-zero count blocks invoice deletion.
func (r *GormPaymentReceivedRepository) CountEntriesByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (int64, error) {
	if len(invoiceIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PaymentReceivedEntryModel{}).
		Where("invoice_id IN ?", invoiceIDs).
		Where("payment_received_id IN (?)",
			r.db.Model(&models.PaymentReceivedModel{}).
				Select("id").
				Where("tenant_id = ?", tenantID),
		).
		Count(&count).Error
	return count, err
}

// DeleteEntriesByPaymentIDs deletes all applications owned by the payments
func (r *GormPaymentReceivedRepository) DeleteEntriesByPaymentIDs(ctx context.Context, tenantID uuid.UUID, paymentIDs []uuid.UUID) error {
	if len(paymentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("payment_received_id IN (?)",
			r.db.Model(&models.PaymentReceivedModel{}).
				Select("id").
				Where("tenant_id = ? AND id IN ?", tenantID, paymentIDs),
		).
		Delete(&models.PaymentReceivedEntryModel{}).Error
}

// DeleteByIDs deletes the payments in a single bulk statement
func (r *GormPaymentReceivedRepository) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Delete(&models.PaymentReceivedModel{}).Error
}

// Ensure GormPaymentReceivedRepository implements PaymentReceivedRepository
var _ ledger.PaymentReceivedRepository = (*GormPaymentReceivedRepository)(nil)
