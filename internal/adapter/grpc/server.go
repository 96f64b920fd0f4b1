package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/dashboard"
	"github.com/simaogato/tradejournal-backend/internal/usecase/investment"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
)

// Server implements the JournalService gRPC server
type Server struct {
	Sessions         *journal.Sessions
	DashboardService *dashboard.DashboardService
}

var _ JournalServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(sessions *journal.Sessions, dashboardService *dashboard.DashboardService) *Server {
	return &Server{
		Sessions:         sessions,
		DashboardService: dashboardService,
	}
}

// Project handles the Project RPC
func (s *Server) Project(ctx context.Context, req *ProjectRequest) (*ProjectResponse, error) {
	input := domain.ProjectionInput{
		InitialInvestment:     req.InitialInvestment,
		RecurringContribution: req.RecurringContribution,
		ContributionFrequency: domain.ContributionFrequency(strings.ToLower(req.ContributionFrequency)),
		DividendGrowthRatePct: req.DividendGrowthRatePct,
		ExpectedReturnPct:     req.ExpectedReturnPct,
		ProjectionYears:       req.ProjectionYears,
		ReferencePrice:        req.ReferencePrice,
		DividendYieldPct:      req.DividendYieldPct,
	}

	results, err := investment.Project(input)
	if err != nil {
		return nil, mapError(err)
	}
	summary, err := investment.Summarize(input)
	if err != nil {
		return nil, mapError(err)
	}

	years := make([]ProjectionYear, 0, len(results))
	for _, r := range results {
		years = append(years, ProjectionYear{
			Year:           r.Year,
			SharesHeld:     r.SharesHeld,
			StockValue:     r.StockValue,
			DividendIncome: r.DividendIncome,
			TotalValue:     r.TotalValue,
		})
	}

	return &ProjectResponse{
		Years:            years,
		TotalContributed: summary.TotalContributed,
		TotalDividends:   summary.TotalDividends,
	}, nil
}

// ListTrades handles the ListTrades RPC
func (s *Server) ListTrades(ctx context.Context, req *ListTradesRequest) (*ListTradesResponse, error) {
	filter := strings.ToLower(req.Status)
	if filter != StatusAll && filter != StatusOpen && filter != StatusClosed {
		return nil, status.Errorf(codes.InvalidArgument, "unknown status filter %q", req.Status)
	}

	store, err := s.Sessions.Store(ctx, req.UserID)
	if err != nil {
		return nil, mapError(err)
	}
	if req.Refresh {
		if err := store.Refresh(ctx); err != nil {
			return nil, mapError(err)
		}
	}

	trades := store.List()
	open, closed := domain.PartitionTrades(trades)
	switch filter {
	case StatusOpen:
		trades = open
	case StatusClosed:
		trades = closed
	}

	out := make([]wire.Trade, 0, len(trades))
	for _, t := range trades {
		out = append(out, wire.FromDomain(t))
	}
	return &ListTradesResponse{Trades: out}, nil
}

// CreateTrade handles the CreateTrade RPC
func (s *Server) CreateTrade(ctx context.Context, req *CreateTradeRequest) (*TradeResponse, error) {
	store, err := s.Sessions.Store(ctx, req.UserID)
	if err != nil {
		return nil, mapError(err)
	}

	trade, err := store.Create(ctx, domain.NewTradeInput{
		Symbol:         req.Symbol,
		Action:         domain.TradeAction(strings.ToLower(req.Action)),
		Quantity:       req.Quantity,
		EntryPrice:     req.Price,
		InstrumentType: domain.InstrumentType(strings.ToLower(req.Type)),
		OptionType:     domain.OptionType(strings.ToLower(req.OptionType)),
		Strategy:       req.Strategy,
		Notes:          req.Notes,
		EntryDate:      req.Date.Time,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &TradeResponse{Trade: wire.FromDomain(trade)}, nil
}

// CloseTrade handles the CloseTrade RPC
func (s *Server) CloseTrade(ctx context.Context, req *CloseTradeRequest) (*TradeResponse, error) {
	store, err := s.Sessions.Store(ctx, req.UserID)
	if err != nil {
		return nil, mapError(err)
	}

	trade, err := store.CloseTrade(ctx, req.TradeID, req.ExitDate.Time, req.ExitPrice)
	if err != nil {
		return nil, mapError(err)
	}

	return &TradeResponse{Trade: wire.FromDomain(trade)}, nil
}

// DeleteTrade handles the DeleteTrade RPC
func (s *Server) DeleteTrade(ctx context.Context, req *DeleteTradeRequest) (*DeleteTradeResponse, error) {
	store, err := s.Sessions.Store(ctx, req.UserID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := store.Remove(ctx, req.TradeID); err != nil {
		return nil, mapError(err)
	}
	return &DeleteTradeResponse{}, nil
}

// GetPerformance handles the GetPerformance RPC
func (s *Server) GetPerformance(ctx context.Context, req *GetPerformanceRequest) (*GetPerformanceResponse, error) {
	result, err := s.DashboardService.GetPerformance(ctx, req.UserID)
	if err != nil {
		return nil, mapError(err)
	}

	curve := make([]PnLPoint, 0, len(result.PnLCurve))
	for _, p := range result.PnLCurve {
		curve = append(curve, PnLPoint{Date: wire.Date{Time: p.Date}, Cumulative: p.Cumulative})
	}

	return &GetPerformanceResponse{
		TotalTrades:      result.TotalTrades,
		OpenTrades:       result.OpenTrades,
		ClosedTrades:     result.ClosedTrades,
		Wins:             result.Wins,
		Losses:           result.Losses,
		WinRatio:         result.WinRatio,
		TotalProfit:      result.TotalProfit,
		AverageProfit:    result.AverageProfit,
		BiggestWin:       result.BiggestWin,
		BiggestLoss:      result.BiggestLoss,
		RiskRewardRatio:  result.RiskRewardRatio,
		AverageReturnPct: result.AverageReturnPct,
		ReturnStdDevPct:  result.ReturnStdDevPct,
		PnLCurve:         curve,
	}, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case domain.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrPersistence):
		// before NotFound: a not-found reported by the record store is a persistence failure
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, domain.ErrTradeNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
