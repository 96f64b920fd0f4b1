package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// TradeStore holds the cached trades of a single user, mirrored from the
// persistence collaborator.
//
// Cached trades are values: every write replaces the entry, so trades handed
// out by List or Get never change underneath the caller.
// All operations are serialized by a mutex that is held across the
// collaborator round trip.
type TradeStore struct {
	userID string
	repo   domain.TradeRepository
	log    zerolog.Logger

	mu     sync.Mutex
	trades map[string]domain.Trade
	order  []string
}

// NewTradeStore creates an empty store for userID. Call Refresh to load it.
func NewTradeStore(userID string, repo domain.TradeRepository, log zerolog.Logger) *TradeStore {
	return &TradeStore{
		userID: userID,
		repo:   repo,
		log:    log.With().Str("component", "trade_store").Str("user_id", userID).Logger(),
		trades: make(map[string]domain.Trade),
	}
}

// UserID returns the owner of the store
func (s *TradeStore) UserID() string {
	return s.userID
}

// Refresh replaces the cache with the collaborator's current records
func (s *TradeStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.repo.FetchAll(ctx, s.userID)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to fetch trades")
		return persistenceError("fetch trades", err)
	}

	s.trades = make(map[string]domain.Trade, len(trades))
	s.order = make([]string, 0, len(trades))
	for _, t := range trades {
		// never expose another user's records
		if t.UserID != s.userID {
			continue
		}
		s.put(t)
	}

	s.log.Debug().Int("count", len(s.order)).Msg("Trades refreshed")
	return nil
}

// List returns the cached trades in insertion order
func (s *TradeStore) List() []domain.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Trade, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.trades[id].Clone())
	}
	return out
}

// Get returns a cached trade by id
func (s *TradeStore) Get(id string) (domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trades[id]
	if !ok {
		return domain.Trade{}, fmt.Errorf("%w: %s", domain.ErrTradeNotFound, id)
	}
	return t.Clone(), nil
}

// Create validates the fields, persists the trade and caches the stored record.
// Validation failures are returned before the collaborator is called.
func (s *TradeStore) Create(ctx context.Context, input domain.NewTradeInput) (domain.Trade, error) {
	trade, err := domain.ValidateNewTrade(input)
	if err != nil {
		return domain.Trade{}, err
	}
	trade.UserID = s.userID

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.repo.Insert(ctx, trade)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", trade.Symbol).Msg("Failed to insert trade")
		return domain.Trade{}, persistenceError("insert trade", err)
	}
	if saved.ID == "" {
		return domain.Trade{}, persistenceError("insert trade", errors.New("collaborator returned no id"))
	}

	s.put(saved)

	s.log.Debug().Str("trade_id", saved.ID).Str("symbol", saved.Symbol).Msg("Trade created")
	return saved.Clone(), nil
}

// CloseTrade records an exit on a cached trade and persists it.
// Closing an already closed trade overwrites its exit fields.
func (s *TradeStore) CloseTrade(ctx context.Context, id string, exitDate time.Time, exitPrice decimal.Decimal) (domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.trades[id]
	if !ok {
		return domain.Trade{}, fmt.Errorf("%w: %s", domain.ErrTradeNotFound, id)
	}

	closed, err := domain.RecordExit(current, exitDate, exitPrice)
	if err != nil {
		return domain.Trade{}, err
	}

	saved, err := s.repo.Replace(ctx, id, closed)
	if err != nil {
		s.log.Error().Err(err).Str("trade_id", id).Msg("Failed to replace trade")
		return domain.Trade{}, persistenceError("replace trade", err)
	}

	s.put(saved)

	s.log.Debug().
		Str("trade_id", id).
		Str("profit", closed.Exit.Profit.String()).
		Msg("Trade closed")
	return saved.Clone(), nil
}

// Remove deletes a trade remotely, then from the cache
func (s *TradeStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trades[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTradeNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("trade_id", id).Msg("Failed to delete trade")
		return persistenceError("delete trade", err)
	}

	delete(s.trades, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}

	s.log.Debug().Str("trade_id", id).Msg("Trade removed")
	return nil
}

// put caches a trade value, keeping its original position when replacing.
// Caller must hold s.mu.
func (s *TradeStore) put(t domain.Trade) {
	if _, exists := s.trades[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.trades[t.ID] = t.Clone()
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
