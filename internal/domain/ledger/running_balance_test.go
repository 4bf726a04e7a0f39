package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRunningBalance(t *testing.T) {
	accountID := uuid.New()

	t.Run("accumulates deposits and withdrawals in order", func(t *testing.T) {
		transactions := []LedgerTransaction{
			depositTx(accountID, "100"),
			withdrawalTx(accountID, "30"),
			depositTx(accountID, "20"),
		}

		lines := BuildRunningBalance(transactions, decimal.Zero)
		require.Len(t, lines, 3)
		assert.True(t, lines[0].RunningBalance.Equal(decimal.NewFromInt(100)))
		assert.True(t, lines[1].RunningBalance.Equal(decimal.NewFromInt(70)))
		assert.True(t, lines[2].RunningBalance.Equal(decimal.NewFromInt(90)))
	})

	t.Run("opening balance seeds the accumulator", func(t *testing.T) {
		transactions := []LedgerTransaction{
			withdrawalTx(accountID, "250"),
		}

		lines := BuildRunningBalance(transactions, decimal.NewFromInt(1000))
		require.Len(t, lines, 1)
		assert.True(t, lines[0].RunningBalance.Equal(decimal.NewFromInt(750)))
	})

	t.Run("empty input gives empty output", func(t *testing.T) {
		assert.Empty(t, BuildRunningBalance(nil, decimal.Zero))
	})

	t.Run("underlying transaction values stay inspectable", func(t *testing.T) {
		transactions := []LedgerTransaction{depositTx(accountID, "42.50")}
		lines := BuildRunningBalance(transactions, decimal.Zero)
		require.Len(t, lines, 1)
		assert.True(t, lines[0].Deposit.Equal(decimal.RequireFromString("42.50")))
		assert.True(t, lines[0].Withdrawal.IsZero())
	})
}
