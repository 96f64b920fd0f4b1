// Package wire defines the JSON representation of trade records shared by
// the record service and its HTTP client.
package wire

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// DateLayout is the civil date format used on the wire
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD"
type Date struct {
	time.Time
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
// Full RFC 3339 timestamps are accepted and truncated to their date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string // null leaves s empty
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if len(s) > len(DateLayout) && strings.Contains(s, "T") {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
		y, m, dd := ts.Date()
		d.Time = time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Trade is the JSON trade record
type Trade struct {
	ID               string           `json:"id,omitempty"`
	UserID           string           `json:"userId"`
	Date             Date             `json:"date"`
	Symbol           string           `json:"symbol"`
	Action           string           `json:"action"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Price            decimal.Decimal  `json:"price"`
	Type             string           `json:"type"`
	OptionType       string           `json:"optionType,omitempty"`
	Strategy         string           `json:"strategy"`
	Notes            string           `json:"notes"`
	ExitDate         *Date            `json:"exitDate,omitempty"`
	ExitPrice        *decimal.Decimal `json:"exitPrice,omitempty"`
	Profit           *decimal.Decimal `json:"profit,omitempty"`
	ProfitPercentage *decimal.Decimal `json:"profitPercentage,omitempty"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromDomain converts a domain trade to its wire form
func FromDomain(t domain.Trade) Trade {
	w := Trade{
		ID:         t.ID,
		UserID:     t.UserID,
		Date:       Date{t.EntryDate},
		Symbol:     t.Symbol,
		Action:     string(t.Action),
		Quantity:   t.Quantity,
		Price:      t.EntryPrice,
		Type:       string(t.InstrumentType),
		OptionType: string(t.OptionType),
		Strategy:   t.Strategy,
		Notes:      t.Notes,
	}

	if t.Exit != nil {
		exitPrice := t.Exit.Price
		profit := t.Exit.Profit
		pct := t.Exit.ProfitPercentage
		w.ExitDate = &Date{t.Exit.Date}
		w.ExitPrice = &exitPrice
		w.Profit = &profit
		w.ProfitPercentage = &pct
	}

	return w
}

// ToDomain converts a wire trade to a domain trade.
// Exit fields are taken only when exitDate is present, the same rule the
// journal uses to tell open from closed trades.
func (w Trade) ToDomain() (domain.Trade, error) {
	t := domain.Trade{
		ID:             w.ID,
		UserID:         w.UserID,
		Symbol:         w.Symbol,
		Action:         domain.TradeAction(w.Action),
		Quantity:       w.Quantity,
		EntryPrice:     w.Price,
		InstrumentType: domain.InstrumentType(w.Type),
		OptionType:     domain.OptionType(w.OptionType),
		Strategy:       w.Strategy,
		Notes:          w.Notes,
		EntryDate:      w.Date.Time,
	}

	if w.ExitDate == nil || w.ExitDate.IsZero() {
		return t, nil
	}
	if w.ExitPrice == nil {
		return domain.Trade{}, fmt.Errorf("trade %s has exitDate without exitPrice", w.ID)
	}

	exit := &domain.TradeExit{
		Date:  w.ExitDate.Time,
		Price: *w.ExitPrice,
	}
	if w.Profit != nil {
		exit.Profit = *w.Profit
	}
	if w.ProfitPercentage != nil {
		exit.ProfitPercentage = *w.ProfitPercentage
	}
	t.Exit = exit

	return t, nil
}

// ToDomainList converts a list of wire trades
func ToDomainList(ws []Trade) ([]domain.Trade, error) {
	out := make([]domain.Trade, 0, len(ws))
	for _, w := range ws {
		t, err := w.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
