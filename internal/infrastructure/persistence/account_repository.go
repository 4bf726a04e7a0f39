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

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID within a tenant
func (r *GormAccountRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds accounts by their IDs within a tenant. Missing ids are
// simply absent from the result.
func (r *GormAccountRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*ledger.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, accountModels[i].ToDomain())
	}
	return accounts, nil
}

// FindAll returns the tenant's whole chart of accounts ordered by code
func (r *GormAccountRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*ledger.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, accountModels[i].ToDomain())
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// UnlinkChildren nulls parent_account_id on every child of the given
// parents in a single bulk statement.
func (r *GormAccountRepository) UnlinkChildren(ctx context.Context, tenantID uuid.UUID, parentIDs []uuid.UUID) error {
	if len(parentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("tenant_id = ? AND parent_account_id IN ?", tenantID, parentIDs).
		Update("parent_account_id", nil).Error
}

// DeleteByIDs deletes the accounts in a single bulk statement
func (r *GormAccountRepository) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Delete(&models.AccountModel{}).Error
}

// Ensure GormAccountRepository implements AccountRepository
var _ ledger.AccountRepository = (*GormAccountRepository)(nil)
