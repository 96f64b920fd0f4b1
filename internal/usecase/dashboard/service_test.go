package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func closedTrade(t *testing.T, id string, entry, exit int64, exitDay int) domain.Trade {
	t.Helper()
	trade := domain.Trade{
		ID:             id,
		UserID:         "u",
		Symbol:         "SPY",
		Action:         domain.TradeActionBuy,
		Quantity:       decimal.NewFromInt(10),
		EntryPrice:     decimal.NewFromInt(entry),
		InstrumentType: domain.InstrumentStock,
		Strategy:       "Trend",
		EntryDate:      day(1),
	}
	closed, err := domain.RecordExit(trade, day(exitDay), decimal.NewFromInt(exit))
	require.NoError(t, err)
	return closed
}

func TestCalculatePerformance(t *testing.T) {
	trades := []domain.Trade{
		closedTrade(t, "a", 100, 120, 3), // +200, +20%
		closedTrade(t, "b", 100, 90, 2),  // -100, -10%
		closedTrade(t, "c", 50, 60, 3),   // +100, +20%
		{ID: "d", UserID: "u"},           // open
	}

	result := CalculatePerformance(trades)

	assert.Equal(t, 4, result.TotalTrades)
	assert.Equal(t, 1, result.OpenTrades)
	assert.Equal(t, 3, result.ClosedTrades)
	assert.Equal(t, 2, result.Wins)
	assert.Equal(t, 1, result.Losses)

	assert.True(t, result.TotalProfit.Equal(decimal.NewFromInt(200)))
	assert.InDelta(t, 2.0/3.0, result.WinRatio.InexactFloat64(), 1e-9)
	assert.InDelta(t, 66.6667, result.AverageProfit.InexactFloat64(), 1e-4)
	assert.True(t, result.BiggestWin.Equal(decimal.NewFromInt(200)))
	assert.True(t, result.BiggestLoss.Equal(decimal.NewFromInt(-100)))
	assert.True(t, result.RiskRewardRatio.Equal(decimal.NewFromFloat(1.5)), "avg win 150 / avg loss 100")

	assert.InDelta(t, 10.0, result.AverageReturnPct, 1e-9)
	assert.Greater(t, result.ReturnStdDevPct, 0.0)

	require.Len(t, result.PnLCurve, 2)
	assert.Equal(t, day(2), result.PnLCurve[0].Date)
	assert.True(t, result.PnLCurve[0].Cumulative.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, day(3), result.PnLCurve[1].Date)
	assert.True(t, result.PnLCurve[1].Cumulative.Equal(decimal.NewFromInt(200)))
}

func TestCalculatePerformance_NoClosedTrades(t *testing.T) {
	result := CalculatePerformance([]domain.Trade{{ID: "x"}})

	assert.Equal(t, 1, result.TotalTrades)
	assert.Equal(t, 0, result.ClosedTrades)
	assert.True(t, result.TotalProfit.IsZero())
	assert.True(t, result.WinRatio.IsZero())
	assert.Empty(t, result.PnLCurve)
}

func TestCalculatePerformance_NoLossesHasNoRiskReward(t *testing.T) {
	result := CalculatePerformance([]domain.Trade{closedTrade(t, "a", 10, 11, 1)})

	assert.True(t, result.RiskRewardRatio.IsZero())
	assert.Equal(t, 0.0, result.ReturnStdDevPct)
}

type staticRepo struct {
	trades []domain.Trade
}

func (r staticRepo) FetchAll(_ context.Context, _ string) ([]domain.Trade, error) {
	return r.trades, nil
}
func (r staticRepo) Insert(_ context.Context, t domain.Trade) (domain.Trade, error) { return t, nil }
func (r staticRepo) Replace(_ context.Context, _ string, t domain.Trade) (domain.Trade, error) {
	return t, nil
}
func (r staticRepo) Delete(_ context.Context, _ string) error { return nil }

func TestGetPerformance(t *testing.T) {
	repo := staticRepo{trades: []domain.Trade{closedTrade(t, "a", 100, 120, 3)}}
	service := NewDashboardService(journal.NewSessions(repo, zerolog.Nop()))

	result, err := service.GetPerformance(context.Background(), "u")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Wins)
	assert.True(t, result.TotalProfit.Equal(decimal.NewFromInt(200)))
}
