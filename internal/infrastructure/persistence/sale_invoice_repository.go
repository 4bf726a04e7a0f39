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

// GormSaleInvoiceRepository implements SaleInvoiceRepository using GORM
type GormSaleInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSaleInvoiceRepository creates a new GormSaleInvoiceRepository
func NewGormSaleInvoiceRepository(db *gorm.DB) *GormSaleInvoiceRepository {
	return &GormSaleInvoiceRepository{db: db}
}

// FindByID finds an invoice with its entries within a tenant
func (r *GormSaleInvoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.SaleInvoice, error) {
	var model models.SaleInvoiceModel
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

// FindByIDs finds invoices with their entries within a tenant
func (r *GormSaleInvoiceRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.SaleInvoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var invoiceModels []models.SaleInvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_index ASC")
		}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]*ledger.SaleInvoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, invoiceModels[i].ToDomain())
	}
	return invoices, nil
}

// Save creates or updates an invoice together with its entries
func (r *GormSaleInvoiceRepository) Save(ctx context.Context, invoice *ledger.SaleInvoice) error {
	model := models.SaleInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteEntriesByInvoiceIDs deletes all line items owned by the invoices
func (r *GormSaleInvoiceRepository) DeleteEntriesByInvoiceIDs(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) error {
	if len(invoiceIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("sale_invoice_id IN (?)",
			r.db.Model(&models.SaleInvoiceModel{}).
				Select("id").
				Where("tenant_id = ? AND id IN ?", tenantID, invoiceIDs),
		).
		Delete(&models.SaleInvoiceEntryModel{}).Error
}

// DeleteByIDs deletes the invoices in a single bulk statement
func (r *GormSaleInvoiceRepository) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Delete(&models.SaleInvoiceModel{}).Error
}

// Ensure GormSaleInvoiceRepository implements SaleInvoiceRepository
var _ ledger.SaleInvoiceRepository = (*GormSaleInvoiceRepository)(nil)
