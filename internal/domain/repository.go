package domain

import "context"

// TradeRepository defines the persistence collaborator for trade records.
// Implementations are remote (HTTP record service) or database backed.
type TradeRepository interface {
	// FetchAll retrieves every trade owned by userID
	FetchAll(ctx context.Context, userID string) ([]Trade, error)

	// Insert stores a new trade and returns it with its assigned ID
	Insert(ctx context.Context, trade Trade) (Trade, error)

	// Replace overwrites the stored trade with the given ID
	// Returns ErrTradeNotFound if no such trade exists
	Replace(ctx context.Context, id string, trade Trade) (Trade, error)

	// Delete removes the trade with the given ID
	Delete(ctx context.Context, id string) error
}
