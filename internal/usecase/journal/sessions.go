package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// Sessions hands out one TradeStore per user.
// A store is loaded from the collaborator the first time its user is seen.
type Sessions struct {
	repo domain.TradeRepository
	log  zerolog.Logger

	mu     sync.Mutex
	stores map[string]*TradeStore
}

// NewSessions creates a session registry backed by repo
func NewSessions(repo domain.TradeRepository, log zerolog.Logger) *Sessions {
	return &Sessions{
		repo:   repo,
		log:    log,
		stores: make(map[string]*TradeStore),
	}
}

// Store returns the loaded store for userID
func (s *Sessions) Store(ctx context.Context, userID string) (*TradeStore, error) {
	if userID == "" {
		return nil, domain.ErrMissingUser
	}

	s.mu.Lock()
	store, ok := s.stores[userID]
	s.mu.Unlock()
	if ok {
		return store, nil
	}

	store = NewTradeStore(userID, s.repo, s.log)
	if err := store.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// another caller may have loaded the same user meanwhile
	if existing, ok := s.stores[userID]; ok {
		return existing, nil
	}
	s.stores[userID] = store
	return store, nil
}

// RefreshAll reloads every cached store, reconciling caches that diverged
// after a failed write. All stores are attempted; the errors are joined.
func (s *Sessions) RefreshAll(ctx context.Context) error {
	s.mu.Lock()
	stores := make([]*TradeStore, 0, len(s.stores))
	for _, store := range s.stores {
		stores = append(stores, store)
	}
	s.mu.Unlock()

	var errs []error
	for _, store := range stores {
		if err := store.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", store.UserID(), err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of cached stores
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
