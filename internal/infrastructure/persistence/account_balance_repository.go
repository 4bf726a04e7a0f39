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

// GormAccountBalanceRepository implements AccountBalanceRepository using GORM
type GormAccountBalanceRepository struct {
	db *gorm.DB
}

// NewGormAccountBalanceRepository creates a new GormAccountBalanceRepository
func NewGormAccountBalanceRepository(db *gorm.DB) *GormAccountBalanceRepository {
	return &GormAccountBalanceRepository{db: db}
}

// FindByAccountID finds the balance snapshot for one account
func (r *GormAccountBalanceRepository) FindByAccountID(ctx context.Context, tenantID, accountID uuid.UUID) (*ledger.AccountBalance, error) {
	var model models.AccountBalanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND account_id = ?", tenantID, accountID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	balance := model.ToDomain()
	return &balance, nil
}

// FindAll returns all balance snapshots of the tenant
func (r *GormAccountBalanceRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]ledger.AccountBalance, error) {
	var balanceModels []models.AccountBalanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("account_id ASC").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}
	balances := make([]ledger.AccountBalance, 0, len(balanceModels))
	for i := range balanceModels {
		balances = append(balances, balanceModels[i].ToDomain())
	}
	return balances, nil
}

// DeleteByAccountIDs removes stale snapshots before fresh ones are inserted
func (r *GormAccountBalanceRepository) DeleteByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) error {
	if len(accountIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND account_id IN ?", tenantID, accountIDs).
		Delete(&models.AccountBalanceModel{}).Error
}

// DeleteAll removes every snapshot of the tenant ahead of a full rebuild
func (r *GormAccountBalanceRepository) DeleteAll(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.AccountBalanceModel{}).Error
}

// InsertAll inserts the snapshots in one batch
func (r *GormAccountBalanceRepository) InsertAll(ctx context.Context, balances []ledger.AccountBalance) error {
	if len(balances) == 0 {
		return nil
	}
	balanceModels := make([]models.AccountBalanceModel, 0, len(balances))
	for i := range balances {
		model := models.AccountBalanceModel{}
		model.FromDomain(&balances[i])
		balanceModels = append(balanceModels, model)
	}
	return r.db.WithContext(ctx).Create(&balanceModels).Error
}

// Ensure GormAccountBalanceRepository implements AccountBalanceRepository
var _ ledger.AccountBalanceRepository = (*GormAccountBalanceRepository)(nil)
