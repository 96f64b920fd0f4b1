package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func TestSessions_StoreIsLoadedOncePerUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTradeRepository)
	repo.On("FetchAll", ctx, userID).Return([]domain.Trade{openTrade("t-1")}, nil).Once()

	sessions := NewSessions(repo, zerolog.Nop())

	first, err := sessions.Store(ctx, userID)
	require.NoError(t, err)
	second, err := sessions.Store(ctx, userID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, first.List(), 1)
	assert.Equal(t, 1, sessions.Len())
	repo.AssertExpectations(t)
}

func TestSessions_RequiresUserID(t *testing.T) {
	sessions := NewSessions(new(MockTradeRepository), zerolog.Nop())

	_, err := sessions.Store(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrMissingUser)
}

func TestSessions_FailedLoadIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTradeRepository)
	repo.On("FetchAll", ctx, userID).Return(nil, errors.New("down")).Once()

	sessions := NewSessions(repo, zerolog.Nop())
	_, err := sessions.Store(ctx, userID)

	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Equal(t, 0, sessions.Len())
}

func TestSessions_RefreshAll(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTradeRepository)
	repo.On("FetchAll", ctx, userID).Return([]domain.Trade{}, nil).Once()

	sessions := NewSessions(repo, zerolog.Nop())
	store, err := sessions.Store(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, store.List())

	// Remote store changed behind the cache
	repo.On("FetchAll", ctx, userID).Return([]domain.Trade{openTrade("t-7")}, nil).Once()

	require.NoError(t, sessions.RefreshAll(ctx))
	assert.Len(t, store.List(), 1)
}
