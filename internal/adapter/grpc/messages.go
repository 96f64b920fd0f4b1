package grpc

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
)

// Trade statuses accepted by ListTrades
const (
	StatusAll    = ""
	StatusOpen   = "open"
	StatusClosed = "closed"
)

type ProjectRequest struct {
	InitialInvestment     decimal.Decimal `json:"initialInvestment"`
	RecurringContribution decimal.Decimal `json:"recurringContribution"`
	ContributionFrequency string          `json:"contributionFrequency"`
	DividendGrowthRatePct decimal.Decimal `json:"dividendGrowthRate"`
	ExpectedReturnPct     decimal.Decimal `json:"expectedReturn"`
	ProjectionYears       int             `json:"projectionYears"`
	ReferencePrice        decimal.Decimal `json:"referencePrice"`
	DividendYieldPct      decimal.Decimal `json:"dividendYield"`
}

type ProjectionYear struct {
	Year           int             `json:"year"`
	SharesHeld     decimal.Decimal `json:"sharesHeld"`
	StockValue     decimal.Decimal `json:"stockValue"`
	DividendIncome decimal.Decimal `json:"dividendIncome"`
	TotalValue     decimal.Decimal `json:"totalValue"`
}

type ProjectResponse struct {
	Years            []ProjectionYear `json:"years"`
	TotalContributed decimal.Decimal  `json:"totalContributed"`
	TotalDividends   decimal.Decimal  `json:"totalDividends"`
}

type ListTradesRequest struct {
	UserID  string `json:"userId"`
	Status  string `json:"status,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // reload from the record store first
}

type ListTradesResponse struct {
	Trades []wire.Trade `json:"trades"`
}

type CreateTradeRequest struct {
	UserID     string          `json:"userId"`
	Date       wire.Date       `json:"date"`
	Symbol     string          `json:"symbol"`
	Action     string          `json:"action"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Type       string          `json:"type"`
	OptionType string          `json:"optionType,omitempty"`
	Strategy   string          `json:"strategy"`
	Notes      string          `json:"notes,omitempty"`
}

type CloseTradeRequest struct {
	UserID    string          `json:"userId"`
	TradeID   string          `json:"tradeId"`
	ExitDate  wire.Date       `json:"exitDate"`
	ExitPrice decimal.Decimal `json:"exitPrice"`
}

// TradeResponse carries a single trade
type TradeResponse struct {
	Trade wire.Trade `json:"trade"`
}

type DeleteTradeRequest struct {
	UserID  string `json:"userId"`
	TradeID string `json:"tradeId"`
}

type DeleteTradeResponse struct{}

type GetPerformanceRequest struct {
	UserID string `json:"userId"`
}

type PnLPoint struct {
	Date       wire.Date       `json:"date"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

type GetPerformanceResponse struct {
	TotalTrades      int             `json:"totalTrades"`
	OpenTrades       int             `json:"openTrades"`
	ClosedTrades     int             `json:"closedTrades"`
	Wins             int             `json:"wins"`
	Losses           int             `json:"losses"`
	WinRatio         decimal.Decimal `json:"winRatio"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	AverageProfit    decimal.Decimal `json:"averageProfit"`
	BiggestWin       decimal.Decimal `json:"biggestWin"`
	BiggestLoss      decimal.Decimal `json:"biggestLoss"`
	RiskRewardRatio  decimal.Decimal `json:"riskRewardRatio"`
	AverageReturnPct float64         `json:"averageReturnPct"`
	ReturnStdDevPct  float64         `json:"returnStdDevPct"`
	PnLCurve         []PnLPoint      `json:"pnlCurve"`
}
