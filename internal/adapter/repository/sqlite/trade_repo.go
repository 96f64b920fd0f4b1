package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// tradeColumns must match the Scan order in scanTrade
const tradeColumns = `id, user_id, entry_date, symbol, action, quantity, entry_price,
	instrument_type, option_type, strategy, notes,
	exit_date, exit_price, profit, profit_percentage`

// TradeRepository implements domain.TradeRepository on SQLite.
// IDs are ULIDs, so ordering by id is ordering by creation time.
type TradeRepository struct {
	db *DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *DB) *TradeRepository {
	return &TradeRepository{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (r *TradeRepository) newID() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), r.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate trade id: %w", err)
	}
	return id.String(), nil
}

// FetchAll retrieves every trade owned by userID, oldest first
func (r *TradeRepository) FetchAll(ctx context.Context, userID string) ([]domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE user_id = ? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// Insert stores a new trade under a freshly generated ULID
func (r *TradeRepository) Insert(ctx context.Context, trade domain.Trade) (domain.Trade, error) {
	id, err := r.newID()
	if err != nil {
		return domain.Trade{}, err
	}
	trade.ID = id

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO trades (`+tradeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tradeArgs(trade)...)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to insert trade: %w", err)
	}

	return trade, nil
}

// Replace overwrites every column of the trade with the given ID
func (r *TradeRepository) Replace(ctx context.Context, id string, trade domain.Trade) (domain.Trade, error) {
	trade.ID = id
	args := tradeArgs(trade)

	result, err := r.db.ExecContext(ctx, `
		UPDATE trades
		SET user_id = ?, entry_date = ?, symbol = ?, action = ?, quantity = ?,
			entry_price = ?, instrument_type = ?, option_type = ?, strategy = ?,
			notes = ?, exit_date = ?, exit_price = ?, profit = ?, profit_percentage = ?
		WHERE id = ?`,
		append(args[1:], id)...)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to update trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.Trade{}, fmt.Errorf("%w: %s", domain.ErrTradeNotFound, id)
	}

	return trade, nil
}

// Delete removes a trade. Deleting an unknown id is not an error.
func (r *TradeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

// tradeArgs returns the column values in tradeColumns order
func tradeArgs(t domain.Trade) []interface{} {
	var exitDate, exitPrice, profit, profitPct sql.NullString
	if t.Exit != nil {
		exitDate = sql.NullString{String: t.Exit.Date.Format(dateLayout), Valid: true}
		exitPrice = sql.NullString{String: t.Exit.Price.String(), Valid: true}
		profit = sql.NullString{String: t.Exit.Profit.String(), Valid: true}
		profitPct = sql.NullString{String: t.Exit.ProfitPercentage.String(), Valid: true}
	}

	return []interface{}{
		t.ID,
		t.UserID,
		t.EntryDate.Format(dateLayout),
		t.Symbol,
		string(t.Action),
		t.Quantity.String(),
		t.EntryPrice.String(),
		string(t.InstrumentType),
		string(t.OptionType),
		t.Strategy,
		t.Notes,
		exitDate,
		exitPrice,
		profit,
		profitPct,
	}
}

func scanTrade(rows *sql.Rows) (domain.Trade, error) {
	var trade domain.Trade
	var entryDate, quantityStr, priceStr string
	var exitDate, exitPrice, profit, profitPct sql.NullString

	err := rows.Scan(
		&trade.ID,
		&trade.UserID,
		&entryDate,
		&trade.Symbol,
		&trade.Action,
		&quantityStr,
		&priceStr,
		&trade.InstrumentType,
		&trade.OptionType,
		&trade.Strategy,
		&trade.Notes,
		&exitDate,
		&exitPrice,
		&profit,
		&profitPct,
	)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to scan trade: %w", err)
	}

	if trade.EntryDate, err = time.Parse(dateLayout, entryDate); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to parse entry_date: %w", err)
	}
	if trade.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to parse quantity: %w", err)
	}
	if trade.EntryPrice, err = decimal.NewFromString(priceStr); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to parse entry_price: %w", err)
	}

	if !exitDate.Valid {
		return trade, nil
	}

	exit := &domain.TradeExit{}
	if exit.Date, err = time.Parse(dateLayout, exitDate.String); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to parse exit_date: %w", err)
	}
	for _, f := range []struct {
		dst *decimal.Decimal
		src sql.NullString
		col string
	}{
		{&exit.Price, exitPrice, "exit_price"},
		{&exit.Profit, profit, "profit"},
		{&exit.ProfitPercentage, profitPct, "profit_percentage"},
	} {
		if !f.src.Valid {
			continue
		}
		if *f.dst, err = decimal.NewFromString(f.src.String); err != nil {
			return domain.Trade{}, fmt.Errorf("failed to parse %s: %w", f.col, err)
		}
	}
	trade.Exit = exit

	return trade, nil
}
