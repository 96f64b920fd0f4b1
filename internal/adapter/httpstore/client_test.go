package httpstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, zerolog.New(nil).Level(zerolog.Disabled))
}

func sampleTrade() domain.Trade {
	return domain.Trade{
		UserID:         "u-1",
		Symbol:         "NVDA",
		Action:         domain.TradeActionBuy,
		Quantity:       decimal.NewFromInt(3),
		EntryPrice:     decimal.RequireFromString("880.10"),
		InstrumentType: domain.InstrumentStock,
		Strategy:       "Earnings",
		EntryDate:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchAll_CallsUserEndpoint(t *testing.T) {
	var capturedPath, capturedMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"a","userId":"u-1","date":"2024-05-20","symbol":"NVDA","action":"buy","quantity":3,"price":880.1,"type":"stock","strategy":"Earnings","notes":""}]`))
	})

	trades, err := client.FetchAll(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, capturedMethod)
	assert.Equal(t, "/api/trades/u-1", capturedPath)
	require.Len(t, trades, 1)
	assert.Equal(t, "a", trades[0].ID)
	assert.True(t, trades[0].EntryPrice.Equal(decimal.RequireFromString("880.1")))
}

func TestInsert_PostsTradeAndReturnsAssignedID(t *testing.T) {
	var received wire.Trade
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/trades", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		received.ID = "server-id"
		json.NewEncoder(w).Encode(received)
	})

	saved, err := client.Insert(context.Background(), sampleTrade())

	require.NoError(t, err)
	assert.Equal(t, "server-id", saved.ID)
	assert.Equal(t, "u-1", received.UserID)
	assert.Equal(t, "NVDA", received.Symbol)
}

func TestReplace_NotFoundMapsToDomainError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/trades/missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(wire.ErrorResponse{Error: "trade not found: missing"})
	})

	trade := sampleTrade()
	trade.ID = "missing"
	_, err := client.Replace(context.Background(), "missing", trade)

	assert.True(t, errors.Is(err, domain.ErrTradeNotFound))
}

func TestDelete_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		http.Error(w, "database is locked", http.StatusInternalServerError)
	})

	err := client.Delete(context.Background(), "t-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database is locked")
}

func TestDelete_EmptyOKBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.Delete(context.Background(), "t-1"))
}

func TestFetchAll_HonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchAll(ctx, "u-1")

	assert.Error(t, err)
}
