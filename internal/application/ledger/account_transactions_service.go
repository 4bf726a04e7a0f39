package ledger

import (
	"context"
	"time"

	"github.com/bigledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Report column keys, in table order
const (
	ColumnDate              = "date"
	ColumnTransactionType   = "transaction_type"
	ColumnTransactionNumber = "transaction_number"
	ColumnReferenceNumber   = "reference_number"
	ColumnStatus            = "status"
	ColumnDeposit           = "deposit"
	ColumnWithdrawal        = "withdrawal"
	ColumnRunningBalance    = "running_balance"
)

// ReportColumn describes one column of the account transactions table
type ReportColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ReportCell is one formatted cell, keyed by its column
type ReportCell struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ReportRow is one table row. Cells carry formatted values for display;
// Line keeps the raw decimals and timestamps inspectable.
type ReportRow struct {
	Cells []ReportCell              `json:"cells"`
	Line  ledger.RunningBalanceLine `json:"-"`
}

// AccountTransactionsReport is the running-balance table for one account
type AccountTransactionsReport struct {
	AccountID      uuid.UUID      `json:"account_id"`
	OpeningBalance string         `json:"opening_balance"`
	Columns        []ReportColumn `json:"columns"`
	Rows           []ReportRow    `json:"rows"`
}

// AccountTransactionsQuery bounds the report
type AccountTransactionsQuery struct {
	AccountID uuid.UUID
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
}

// AccountTransactionsService builds the account transactions report: one
// account's ledger rows in chronological order with a running balance.
type AccountTransactionsService struct {
	accounts ledger.AccountRepository
	txRepo   ledger.LedgerTransactionRepository
	logger   *zap.Logger
}

// NewAccountTransactionsService creates a new AccountTransactionsService
func NewAccountTransactionsService(
	accounts ledger.AccountRepository,
	txRepo ledger.LedgerTransactionRepository,
	logger *zap.Logger,
) *AccountTransactionsService {
	return &AccountTransactionsService{
		accounts: accounts,
		txRepo:   txRepo,
		logger:   logger,
	}
}

// ReportColumns returns the fixed column schema of the table
func ReportColumns() []ReportColumn {
	return []ReportColumn{
		{Key: ColumnDate, Label: "Date"},
		{Key: ColumnTransactionType, Label: "Transaction Type"},
		{Key: ColumnTransactionNumber, Label: "Transaction Number"},
		{Key: ColumnReferenceNumber, Label: "Reference Number"},
		{Key: ColumnStatus, Label: "Status"},
		{Key: ColumnDeposit, Label: "Deposit"},
		{Key: ColumnWithdrawal, Label: "Withdrawal"},
		{Key: ColumnRunningBalance, Label: "Running Balance"},
	}
}

// Build assembles the report. When the query has a lower date bound, the
// opening balance is the sum of all transactions strictly before it;
// otherwise the account opens at zero.
func (s *AccountTransactionsService) Build(ctx context.Context, tenantID uuid.UUID, query AccountTransactionsQuery) (*AccountTransactionsReport, error) {
	if _, err := s.accounts.FindByID(ctx, tenantID, query.AccountID); err != nil {
		return nil, err
	}

	opening := decimal.Zero
	if query.FromDate != nil {
		sum, err := s.txRepo.SumAmountBefore(ctx, tenantID, query.AccountID, *query.FromDate)
		if err != nil {
			return nil, err
		}
		opening = sum
	}

	transactions, err := s.txRepo.FindForAccount(ctx, tenantID, query.AccountID, ledger.TransactionQuery{
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Limit:    query.Limit,
	})
	if err != nil {
		return nil, err
	}

	lines := ledger.BuildRunningBalance(transactions, opening)
	rows := make([]ReportRow, 0, len(lines))
	for i := range lines {
		rows = append(rows, formatRow(lines[i]))
	}

	s.logger.Debug("account transactions report built",
		zap.String("account_id", query.AccountID.String()),
		zap.Int("rows", len(rows)),
	)

	return &AccountTransactionsReport{
		AccountID:      query.AccountID,
		OpeningBalance: opening.StringFixed(2),
		Columns:        ReportColumns(),
		Rows:           rows,
	}, nil
}

// SelectColumns narrows a report to the given column keys, preserving the
// table's column order. Unknown keys are ignored. Used by exports that
// need a subset of the table without rebuilding it.
func SelectColumns(report *AccountTransactionsReport, keys []string) *AccountTransactionsReport {
	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		wanted[key] = struct{}{}
	}

	columns := make([]ReportColumn, 0, len(keys))
	for _, column := range report.Columns {
		if _, ok := wanted[column.Key]; ok {
			columns = append(columns, column)
		}
	}

	rows := make([]ReportRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		cells := make([]ReportCell, 0, len(columns))
		for _, cell := range row.Cells {
			if _, ok := wanted[cell.Key]; ok {
				cells = append(cells, cell)
			}
		}
		rows = append(rows, ReportRow{Cells: cells, Line: row.Line})
	}

	return &AccountTransactionsReport{
		AccountID:      report.AccountID,
		OpeningBalance: report.OpeningBalance,
		Columns:        columns,
		Rows:           rows,
	}
}

func formatRow(line ledger.RunningBalanceLine) ReportRow {
	return ReportRow{
		Cells: []ReportCell{
			{Key: ColumnDate, Value: line.Date.Format("2006-01-02")},
			{Key: ColumnTransactionType, Value: line.TransactionType},
			{Key: ColumnTransactionNumber, Value: line.TransactionNumber},
			{Key: ColumnReferenceNumber, Value: line.ReferenceID.String()},
			{Key: ColumnStatus, Value: line.Status},
			{Key: ColumnDeposit, Value: line.Deposit.StringFixed(2)},
			{Key: ColumnWithdrawal, Value: line.Withdrawal.StringFixed(2)},
			{Key: ColumnRunningBalance, Value: line.RunningBalance.StringFixed(2)},
		},
		Line: line,
	}
}
