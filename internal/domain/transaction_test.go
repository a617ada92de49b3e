package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseTransactionType(t *testing.T) {
	got, ok := ParseTransactionType("buy")
	assert.True(t, ok)
	assert.Equal(t, TransactionTypeBuy, got)

	got, ok = ParseTransactionType(" SELL ")
	assert.True(t, ok)
	assert.Equal(t, TransactionTypeSell, got)

	_, ok = ParseTransactionType("SHORT")
	assert.False(t, ok)
}

func TestNewTransaction_CapturesTradeDetails(t *testing.T) {
	userID := uuid.New()
	asset := testAsset("BTCUSDT", "Bitcoin")

	tx := NewTransaction(userID, asset, TransactionTypeBuy,
		decimal.NewFromInt(2), decimal.NewFromInt(10000))

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, asset.ID, tx.AssetID)
	assert.Equal(t, "BTCUSDT", tx.AssetSymbol)
	assert.False(t, tx.Timestamp.IsZero())
	assert.True(t, tx.TotalPrice().Equal(decimal.NewFromInt(20000)))
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", NormalizeSymbol("  btcusdt "))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestClassifyPerformance(t *testing.T) {
	assert.Equal(t, PerformanceWinning, ClassifyPerformance(decimal.NewFromInt(1)))
	assert.Equal(t, PerformanceLosing, ClassifyPerformance(decimal.NewFromInt(-1)))
	assert.Equal(t, PerformanceBreakEven, ClassifyPerformance(decimal.Zero))
}
