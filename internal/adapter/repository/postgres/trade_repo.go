package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// tradeColumns must match the Scan order in scanTrade
const tradeColumns = `id, user_id, entry_date, symbol, action, quantity, entry_price,
	instrument_type, option_type, strategy, notes,
	exit_date, exit_price, profit, profit_percentage`

// tradeRepository implements domain.TradeRepository
type tradeRepository struct {
	db *DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *DB) domain.TradeRepository {
	return &tradeRepository{db: db}
}

// FetchAll retrieves every trade owned by userID, oldest first
func (r *tradeRepository) FetchAll(ctx context.Context, userID string) ([]domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
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

// Insert stores a new trade under a freshly generated UUID
func (r *tradeRepository) Insert(ctx context.Context, trade domain.Trade) (domain.Trade, error) {
	trade.ID = uuid.New().String()

	query := `
		INSERT INTO trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	if _, err := r.db.ExecContext(ctx, query, tradeArgs(trade)...); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to insert trade: %w", err)
	}

	return trade, nil
}

// Replace overwrites every column of the trade with the given ID
func (r *tradeRepository) Replace(ctx context.Context, id string, trade domain.Trade) (domain.Trade, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Trade{}, fmt.Errorf("%w: %s", domain.ErrTradeNotFound, id)
	}
	trade.ID = id

	query := `
		UPDATE trades
		SET user_id = $2, entry_date = $3, symbol = $4, action = $5, quantity = $6,
			entry_price = $7, instrument_type = $8, option_type = $9, strategy = $10,
			notes = $11, exit_date = $12, exit_price = $13, profit = $14,
			profit_percentage = $15
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, tradeArgs(trade)...)
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
func (r *tradeRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

// tradeArgs returns the column values in tradeColumns order
func tradeArgs(t domain.Trade) []interface{} {
	var exitDate, exitPrice, profit, profitPct interface{}
	if t.Exit != nil {
		exitDate = t.Exit.Date
		exitPrice = t.Exit.Price.String()
		profit = t.Exit.Profit.String()
		profitPct = t.Exit.ProfitPercentage.String()
	}

	return []interface{}{
		t.ID,
		t.UserID,
		t.EntryDate,
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
	var quantityStr, priceStr string
	var exitDate sql.NullTime
	var exitPrice, profit, profitPct sql.NullString

	err := rows.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.EntryDate,
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

	// Parse quantity and entry_price (NUMERIC)
	if trade.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to parse quantity: %w", err)
	}
	if trade.EntryPrice, err = decimal.NewFromString(priceStr); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to parse entry_price: %w", err)
	}

	// Exit columns are all NULL while the trade is open
	if exitDate.Valid {
		exit := &domain.TradeExit{Date: exitDate.Time}
		if exit.Price, err = parseNullDecimal(exitPrice); err != nil {
			return domain.Trade{}, fmt.Errorf("failed to parse exit_price: %w", err)
		}
		if exit.Profit, err = parseNullDecimal(profit); err != nil {
			return domain.Trade{}, fmt.Errorf("failed to parse profit: %w", err)
		}
		if exit.ProfitPercentage, err = parseNullDecimal(profitPct); err != nil {
			return domain.Trade{}, fmt.Errorf("failed to parse profit_percentage: %w", err)
		}
		trade.Exit = exit
	}

	return trade, nil
}

func parseNullDecimal(s sql.NullString) (decimal.Decimal, error) {
	if !s.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s.String)
}
