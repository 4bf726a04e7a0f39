package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/bigledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerTransactionRepository implements LedgerTransactionRepository using GORM
type GormLedgerTransactionRepository struct {
	db *gorm.DB
}

// NewGormLedgerTransactionRepository creates a new GormLedgerTransactionRepository
func NewGormLedgerTransactionRepository(db *gorm.DB) *GormLedgerTransactionRepository {
	return &GormLedgerTransactionRepository{db: db}
}

// FindByAccountIDs returns transactions for the given accounts. An empty id
// set means all accounts of the tenant.
func (r *GormLedgerTransactionRepository) FindByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) ([]ledger.LedgerTransaction, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if len(accountIDs) > 0 {
		query = query.Where("account_id IN ?", accountIDs)
	}
	var txModels []models.LedgerTransactionModel
	if err := query.Order("date ASC, created_at ASC").Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txModels), nil
}

// FindForAccount returns one account's transactions ordered ascending by
// date then insertion order, optionally bounded by the query.
func (r *GormLedgerTransactionRepository) FindForAccount(ctx context.Context, tenantID, accountID uuid.UUID, query ledger.TransactionQuery) ([]ledger.LedgerTransaction, error) {
	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND account_id = ?", tenantID, accountID)
	if query.FromDate != nil {
		q = q.Where("date >= ?", *query.FromDate)
	}
	if query.ToDate != nil {
		q = q.Where("date <= ?", *query.ToDate)
	}
	q = q.Order("date ASC, created_at ASC")
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	var txModels []models.LedgerTransactionModel
	if err := q.Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txModels), nil
}

// SumAmountBefore computes the opening balance for a report boundary:
// deposits minus withdrawals over all rows strictly before the date.
func (r *GormLedgerTransactionRepository) SumAmountBefore(ctx context.Context, tenantID, accountID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	var sum sql.NullString
	err := r.db.WithContext(ctx).
		Model(&models.LedgerTransactionModel{}).
		Select("SUM(deposit - withdrawal)").
		Where("tenant_id = ? AND account_id = ? AND date < ?", tenantID, accountID, before).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(sum.String)
}

// CountByAccountIDs counts transactions linked to the accounts. A non-zero
// count blocks account deletion.
func (r *GormLedgerTransactionRepository) CountByAccountIDs(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerTransactionModel{}).
		Where("tenant_id = ? AND account_id IN ?", tenantID, accountIDs).
		Count(&count).Error
	return count, err
}

// InsertAll inserts the transactions in one batch
func (r *GormLedgerTransactionRepository) InsertAll(ctx context.Context, transactions []ledger.LedgerTransaction) error {
	if len(transactions) == 0 {
		return nil
	}
	txModels := make([]models.LedgerTransactionModel, 0, len(transactions))
	for i := range transactions {
		model := models.LedgerTransactionModel{}
		model.FromDomain(&transactions[i])
		txModels = append(txModels, model)
	}
	return r.db.WithContext(ctx).Create(&txModels).Error
}

// DeleteByReference deletes all rows derived from the given source
// documents in one bulk statement.
func (r *GormLedgerTransactionRepository) DeleteByReference(ctx context.Context, tenantID uuid.UUID, referenceType string, referenceIDs []uuid.UUID) error {
	if len(referenceIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_type = ? AND reference_id IN ?", tenantID, referenceType, referenceIDs).
		Delete(&models.LedgerTransactionModel{}).Error
}

func toDomainTransactions(txModels []models.LedgerTransactionModel) []ledger.LedgerTransaction {
	transactions := make([]ledger.LedgerTransaction, 0, len(txModels))
	for i := range txModels {
		transactions = append(transactions, txModels[i].ToDomain())
	}
	return transactions
}

// Ensure GormLedgerTransactionRepository implements LedgerTransactionRepository
var _ ledger.LedgerTransactionRepository = (*GormLedgerTransactionRepository)(nil)
