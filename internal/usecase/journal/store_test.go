package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// MockTradeRepository is a mock implementation of TradeRepository for testing
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) FetchAll(ctx context.Context, userID string) ([]domain.Trade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) Insert(ctx context.Context, trade domain.Trade) (domain.Trade, error) {
	args := m.Called(ctx, trade)
	return args.Get(0).(domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) Replace(ctx context.Context, id string, trade domain.Trade) (domain.Trade, error) {
	args := m.Called(ctx, id, trade)
	if fn, ok := args.Get(0).(func(context.Context, string, domain.Trade) domain.Trade); ok {
		return fn(ctx, id, trade), args.Error(1)
	}
	return args.Get(0).(domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const userID = "user-1"

func newTradeInput() domain.NewTradeInput {
	return domain.NewTradeInput{
		Symbol:         "AAPL",
		Action:         domain.TradeActionBuy,
		Quantity:       decimal.NewFromInt(10),
		EntryPrice:     decimal.NewFromInt(100),
		InstrumentType: domain.InstrumentStock,
		Strategy:       "Swing",
		EntryDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func openTrade(id string) domain.Trade {
	return domain.Trade{
		ID:             id,
		UserID:         userID,
		Symbol:         "AAPL",
		Action:         domain.TradeActionBuy,
		Quantity:       decimal.NewFromInt(10),
		EntryPrice:     decimal.NewFromInt(100),
		InstrumentType: domain.InstrumentStock,
		Strategy:       "Swing",
		EntryDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func loadedStore(t *testing.T, trades ...domain.Trade) (*TradeStore, *MockTradeRepository) {
	t.Helper()
	ctx := context.Background()
	repo := new(MockTradeRepository)
	repo.On("FetchAll", ctx, userID).Return(trades, nil).Once()

	store := NewTradeStore(userID, repo, zerolog.Nop())
	require.NoError(t, store.Refresh(ctx))
	return store, repo
}

func TestRefresh_LoadsOnlyOwnedTrades(t *testing.T) {
	foreign := openTrade("t-2")
	foreign.UserID = "someone-else"

	store, repo := loadedStore(t, openTrade("t-1"), foreign, openTrade("t-3"))

	trades := store.List()
	require.Len(t, trades, 2)
	assert.Equal(t, "t-1", trades[0].ID)
	assert.Equal(t, "t-3", trades[1].ID)
	repo.AssertExpectations(t)
}

func TestRefresh_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTradeRepository)
	repo.On("FetchAll", ctx, userID).Return(nil, errors.New("connection refused"))

	store := NewTradeStore(userID, repo, zerolog.Nop())
	err := store.Refresh(ctx)

	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t)

	repo.On("Insert", ctx, mock.MatchedBy(func(tr domain.Trade) bool {
		return tr.ID == "" && tr.UserID == userID && tr.Symbol == "AAPL"
	})).Return(openTrade("t-1"), nil)

	trade, err := store.Create(ctx, newTradeInput())

	require.NoError(t, err)
	assert.Equal(t, "t-1", trade.ID)
	assert.Len(t, store.List(), 1)
	repo.AssertExpectations(t)
}

func TestCreate_MissingSymbolNeverReachesCollaborator(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t)

	input := newTradeInput()
	input.Symbol = ""

	_, err := store.Create(ctx, input)

	assert.True(t, errors.Is(err, domain.ErrInvalidTrade))
	repo.AssertNotCalled(t, "Insert")
	repo.AssertNumberOfCalls(t, "Insert", 0)
	assert.Empty(t, store.List())
}

func TestCreate_PersistenceFailureLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t)

	repo.On("Insert", ctx, mock.Anything).Return(domain.Trade{}, errors.New("503 service unavailable"))

	_, err := store.Create(ctx, newTradeInput())

	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Empty(t, store.List())

	// Store remains usable after the failure
	repo.ExpectedCalls = nil
	repo.On("Insert", ctx, mock.Anything).Return(openTrade("t-9"), nil)
	_, err = store.Create(ctx, newTradeInput())
	assert.NoError(t, err)
	assert.Len(t, store.List(), 1)
}

func TestCloseTrade_Success(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t, openTrade("t-1"))
	exitDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	repo.On("Replace", ctx, "t-1", mock.MatchedBy(func(tr domain.Trade) bool {
		return tr.IsClosed() && tr.Exit.Profit.Equal(decimal.NewFromInt(200))
	})).Return(func() domain.Trade {
		closed, _ := domain.RecordExit(openTrade("t-1"), exitDate, decimal.NewFromInt(120))
		return closed
	}(), nil)

	closed, err := store.CloseTrade(ctx, "t-1", exitDate, decimal.NewFromInt(120))

	require.NoError(t, err)
	assert.True(t, closed.Exit.Profit.Equal(decimal.NewFromInt(200)))
	assert.True(t, closed.Exit.ProfitPercentage.Equal(decimal.NewFromInt(20)))

	cached, err := store.Get("t-1")
	require.NoError(t, err)
	assert.True(t, cached.IsClosed())
	repo.AssertExpectations(t)
}

func TestCloseTrade_TwiceOverwritesExit(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t, openTrade("t-1"))

	repo.On("Replace", ctx, "t-1", mock.Anything).Return(
		func(_ context.Context, _ string, tr domain.Trade) domain.Trade { return tr },
		nil,
	)

	_, err := store.CloseTrade(ctx, "t-1", time.Now(), decimal.NewFromInt(120))
	require.NoError(t, err)
	second, err := store.CloseTrade(ctx, "t-1", time.Now(), decimal.NewFromInt(90))
	require.NoError(t, err)

	assert.True(t, second.Exit.Profit.Equal(decimal.NewFromInt(-100)))
	cached, _ := store.Get("t-1")
	assert.True(t, cached.Exit.Price.Equal(decimal.NewFromInt(90)))
	assert.Len(t, store.List(), 1)
}

func TestCloseTrade_NotFound(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t)

	_, err := store.CloseTrade(ctx, "missing", time.Now(), decimal.NewFromInt(1))

	assert.True(t, errors.Is(err, domain.ErrTradeNotFound))
	repo.AssertNotCalled(t, "Replace")
}

func TestCloseTrade_InvalidExit(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t, openTrade("t-1"))

	_, err := store.CloseTrade(ctx, "t-1", time.Now(), decimal.Zero)

	assert.True(t, errors.Is(err, domain.ErrInvalidExit))
	repo.AssertNotCalled(t, "Replace")

	cached, _ := store.Get("t-1")
	assert.False(t, cached.IsClosed())
}

func TestCloseTrade_PersistenceFailureKeepsOpenTrade(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t, openTrade("t-1"))
	repo.On("Replace", ctx, "t-1", mock.Anything).Return(domain.Trade{}, errors.New("timeout"))

	_, err := store.CloseTrade(ctx, "t-1", time.Now(), decimal.NewFromInt(120))

	assert.True(t, errors.Is(err, domain.ErrPersistence))
	cached, _ := store.Get("t-1")
	assert.False(t, cached.IsClosed())
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t, openTrade("t-1"), openTrade("t-2"))
	repo.On("Delete", ctx, "t-1").Return(nil)

	err := store.Remove(ctx, "t-1")

	require.NoError(t, err)
	trades := store.List()
	require.Len(t, trades, 1)
	assert.Equal(t, "t-2", trades[0].ID)

	_, err = store.Get("t-1")
	assert.True(t, errors.Is(err, domain.ErrTradeNotFound))
}

func TestRemove_PersistenceFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	store, repo := loadedStore(t, openTrade("t-1"))
	repo.On("Delete", ctx, "t-1").Return(errors.New("boom"))

	err := store.Remove(ctx, "t-1")

	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Len(t, store.List(), 1)
}

func TestList_ReturnsIndependentValues(t *testing.T) {
	closed, err := domain.RecordExit(openTrade("t-1"), time.Now(), decimal.NewFromInt(150))
	require.NoError(t, err)
	store, _ := loadedStore(t, closed)

	listed := store.List()
	listed[0].Symbol = "MUTATED"
	listed[0].Exit.Profit = decimal.NewFromInt(-1)

	again, _ := store.Get("t-1")
	assert.Equal(t, "AAPL", again.Symbol)
	assert.True(t, again.Exit.Profit.Equal(decimal.NewFromInt(500)))
}
