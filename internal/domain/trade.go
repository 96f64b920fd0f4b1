package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeAction represents the direction of a journaled trade
type TradeAction string

const (
	TradeActionBuy  TradeAction = "buy"
	TradeActionSell TradeAction = "sell"
)

// InstrumentType represents the kind of instrument traded
type InstrumentType string

const (
	InstrumentStock  InstrumentType = "stock"
	InstrumentOption InstrumentType = "option"
)

// OptionType represents the option right. Empty for stock trades.
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// Trade represents a journaled position in the domain layer.
// A trade is Open while Exit is nil and Closed once an exit has been recorded.
type Trade struct {
	ID             string // assigned by the persistence collaborator
	UserID         string
	Symbol         string
	Action         TradeAction
	Quantity       decimal.Decimal
	EntryPrice     decimal.Decimal
	InstrumentType InstrumentType
	OptionType     OptionType // required iff InstrumentType is option
	Strategy       string
	Notes          string
	EntryDate      time.Time
	Exit           *TradeExit
}

// TradeExit holds the exit fields of a closed trade.
// Profit and ProfitPercentage are derived when the exit is recorded and never recomputed.
type TradeExit struct {
	Date             time.Time
	Price            decimal.Decimal
	Profit           decimal.Decimal
	ProfitPercentage decimal.Decimal
}

// IsClosed reports whether an exit has been recorded
func (t Trade) IsClosed() bool {
	return t.Exit != nil
}

// Clone returns a copy that shares no memory with t
func (t Trade) Clone() Trade {
	if t.Exit != nil {
		exit := *t.Exit
		t.Exit = &exit
	}
	return t
}

// NewTradeInput represents the caller-supplied fields of a new trade
type NewTradeInput struct {
	Symbol         string
	Action         TradeAction
	Quantity       decimal.Decimal
	EntryPrice     decimal.Decimal
	InstrumentType InstrumentType
	OptionType     OptionType
	Strategy       string
	Notes          string
	EntryDate      time.Time
}

// ValidateNewTrade checks the fields of a new trade and returns an Open trade.
// The returned trade has no ID and no UserID: identity is assigned by the
// persistence collaborator, ownership by the caller.
func ValidateNewTrade(in NewTradeInput) (Trade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		return Trade{}, fmt.Errorf("%w: symbol is required", ErrInvalidTrade)
	}
	if strings.TrimSpace(in.Strategy) == "" {
		return Trade{}, fmt.Errorf("%w: strategy is required", ErrInvalidTrade)
	}
	if in.EntryDate.IsZero() {
		return Trade{}, fmt.Errorf("%w: entry date is required", ErrInvalidTrade)
	}
	if in.Action != TradeActionBuy && in.Action != TradeActionSell {
		return Trade{}, fmt.Errorf("%w: action must be buy or sell", ErrInvalidTrade)
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return Trade{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidTrade)
	}
	if in.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return Trade{}, fmt.Errorf("%w: entry price must be positive", ErrInvalidTrade)
	}

	optionType := in.OptionType
	switch in.InstrumentType {
	case InstrumentStock:
		optionType = ""
	case InstrumentOption:
		if optionType != OptionCall && optionType != OptionPut {
			return Trade{}, fmt.Errorf("%w: option trades must have option type call or put", ErrInvalidTrade)
		}
	default:
		return Trade{}, fmt.Errorf("%w: instrument type must be stock or option", ErrInvalidTrade)
	}

	return Trade{
		Symbol:         symbol,
		Action:         in.Action,
		Quantity:       in.Quantity,
		EntryPrice:     in.EntryPrice,
		InstrumentType: in.InstrumentType,
		OptionType:     optionType,
		Strategy:       strings.TrimSpace(in.Strategy),
		Notes:          in.Notes,
		EntryDate:      in.EntryDate,
	}, nil
}

// RecordExit closes a trade at the given date and price.
// Logic:
//   - Profit = (ExitPrice - EntryPrice) * Quantity
//   - ProfitPercentage = (ExitPrice - EntryPrice) / EntryPrice * 100
//
// A previously recorded exit is replaced, never accumulated.
// The input trade is not modified.
func RecordExit(trade Trade, exitDate time.Time, exitPrice decimal.Decimal) (Trade, error) {
	if trade.ID == "" {
		return Trade{}, fmt.Errorf("%w: trade does not exist", ErrInvalidExit)
	}
	if exitDate.IsZero() {
		return Trade{}, fmt.Errorf("%w: exit date is required", ErrInvalidExit)
	}
	if exitPrice.LessThanOrEqual(decimal.Zero) {
		return Trade{}, fmt.Errorf("%w: exit price must be positive", ErrInvalidExit)
	}
	if trade.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return Trade{}, fmt.Errorf("%w: trade has no positive entry price", ErrInvalidExit)
	}

	move := exitPrice.Sub(trade.EntryPrice)

	closed := trade
	closed.Exit = &TradeExit{
		Date:             exitDate,
		Price:            exitPrice,
		Profit:           move.Mul(trade.Quantity),
		ProfitPercentage: move.Div(trade.EntryPrice).Mul(decimal.NewFromInt(100)),
	}

	return closed, nil
}

// PartitionTrades splits trades into open and closed, preserving order
func PartitionTrades(trades []Trade) (open, closed []Trade) {
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		} else {
			open = append(open, t)
		}
	}
	return open, closed
}
