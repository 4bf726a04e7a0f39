package ledger

import "github.com/shopspring/decimal"

// RunningBalanceLine annotates a ledger transaction with the cumulative
// balance after applying it.
type RunningBalanceLine struct {
	LedgerTransaction
	RunningBalance decimal.Decimal
}

// BuildRunningBalance computes the running balance over one account's
// transactions, which must already be ordered ascending by date and
// insertion order. The opening balance seeds the accumulator:
//
//	running[i] = running[i-1] + deposit[i] - withdrawal[i]
func BuildRunningBalance(transactions []LedgerTransaction, openingBalance decimal.Decimal) []RunningBalanceLine {
	lines := make([]RunningBalanceLine, 0, len(transactions))
	running := openingBalance
	for i := range transactions {
		tx := transactions[i]
		running = running.Add(tx.Deposit).Sub(tx.Withdrawal)
		lines = append(lines, RunningBalanceLine{
			LedgerTransaction: tx,
			RunningBalance:    running,
		})
	}
	return lines
}
