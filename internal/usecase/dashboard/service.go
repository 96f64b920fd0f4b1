package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
)

// PerformanceResult represents the trading performance of one user
type PerformanceResult struct {
	TotalTrades  int
	OpenTrades   int
	ClosedTrades int
	Wins         int
	Losses       int

	WinRatio        decimal.Decimal // Wins / ClosedTrades
	TotalProfit     decimal.Decimal
	AverageProfit   decimal.Decimal
	BiggestWin      decimal.Decimal
	BiggestLoss     decimal.Decimal
	RiskRewardRatio decimal.Decimal // average win / |average loss|, zero without losses

	AverageReturnPct float64
	ReturnStdDevPct  float64

	PnLCurve []PnLPoint
}

// PnLPoint is the cumulative realized profit after the trades closed on Date
type PnLPoint struct {
	Date       time.Time
	Cumulative decimal.Decimal
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	Sessions *journal.Sessions
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(sessions *journal.Sessions) *DashboardService {
	return &DashboardService{Sessions: sessions}
}

// GetPerformance calculates the performance of userID's journal
func (s *DashboardService) GetPerformance(ctx context.Context, userID string) (*PerformanceResult, error) {
	store, err := s.Sessions.Store(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	return CalculatePerformance(store.List()), nil
}

// CalculatePerformance derives performance metrics from trades
// Logic:
//   - Only closed trades contribute to profit metrics
//   - A win has Profit > 0, a loss has Profit < 0; break-even trades are neither
//   - Return statistics use the closed trades' ProfitPercentage
func CalculatePerformance(trades []domain.Trade) *PerformanceResult {
	open, closed := domain.PartitionTrades(trades)

	result := &PerformanceResult{
		TotalTrades:  len(trades),
		OpenTrades:   len(open),
		ClosedTrades: len(closed),
	}
	if len(closed) == 0 {
		return result
	}

	winTotal := decimal.Zero
	lossTotal := decimal.Zero
	returns := make([]float64, 0, len(closed))

	for _, t := range closed {
		profit := t.Exit.Profit
		result.TotalProfit = result.TotalProfit.Add(profit)
		returns = append(returns, t.Exit.ProfitPercentage.InexactFloat64())

		switch {
		case profit.IsPositive():
			result.Wins++
			winTotal = winTotal.Add(profit)
			if profit.GreaterThan(result.BiggestWin) {
				result.BiggestWin = profit
			}
		case profit.IsNegative():
			result.Losses++
			lossTotal = lossTotal.Add(profit)
			if profit.LessThan(result.BiggestLoss) {
				result.BiggestLoss = profit
			}
		}
	}

	closedCount := decimal.NewFromInt(int64(len(closed)))
	result.WinRatio = decimal.NewFromInt(int64(result.Wins)).Div(closedCount)
	result.AverageProfit = result.TotalProfit.Div(closedCount)

	if result.Wins > 0 && result.Losses > 0 {
		avgWin := winTotal.Div(decimal.NewFromInt(int64(result.Wins)))
		avgLoss := lossTotal.Div(decimal.NewFromInt(int64(result.Losses))).Abs()
		result.RiskRewardRatio = avgWin.Div(avgLoss)
	}

	result.AverageReturnPct = stat.Mean(returns, nil)
	if len(returns) > 1 {
		result.ReturnStdDevPct = stat.StdDev(returns, nil)
	}

	result.PnLCurve = pnlCurve(closed)
	return result
}

// pnlCurve accumulates profit by exit date, one point per distinct date
func pnlCurve(closed []domain.Trade) []PnLPoint {
	sorted := make([]domain.Trade, len(closed))
	copy(sorted, closed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Exit.Date.Before(sorted[j].Exit.Date)
	})

	var curve []PnLPoint
	running := decimal.Zero
	for _, t := range sorted {
		running = running.Add(t.Exit.Profit)
		day := t.Exit.Date.Truncate(24 * time.Hour)
		if n := len(curve); n > 0 && curve[n-1].Date.Equal(day) {
			curve[n-1].Cumulative = running
			continue
		}
		curve = append(curve, PnLPoint{Date: day, Cumulative: running})
	}
	return curve
}
