package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
	"github.com/simaogato/tradejournal-backend/internal/domain"
)

const tradesPath = "/api/trades"

// Client talks to the HTTP record service and implements domain.TradeRepository
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new record service client
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "record_store").Logger(),
	}
}

// FetchAll retrieves every trade owned by userID
func (c *Client) FetchAll(ctx context.Context, userID string) ([]domain.Trade, error) {
	var body []wire.Trade
	if err := c.do(ctx, http.MethodGet, tradesPath+"/"+url.PathEscape(userID), nil, &body); err != nil {
		return nil, err
	}
	return wire.ToDomainList(body)
}

// Insert stores a new trade; the service assigns its ID
func (c *Client) Insert(ctx context.Context, trade domain.Trade) (domain.Trade, error) {
	var saved wire.Trade
	if err := c.do(ctx, http.MethodPost, tradesPath, wire.FromDomain(trade), &saved); err != nil {
		return domain.Trade{}, err
	}
	return saved.ToDomain()
}

// Replace overwrites the trade with the given ID
func (c *Client) Replace(ctx context.Context, id string, trade domain.Trade) (domain.Trade, error) {
	var saved wire.Trade
	if err := c.do(ctx, http.MethodPut, tradesPath+"/"+url.PathEscape(id), wire.FromDomain(trade), &saved); err != nil {
		return domain.Trade{}, err
	}
	return saved.ToDomain()
}

// Delete removes the trade with the given ID
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, tradesPath+"/"+url.PathEscape(id), nil, nil)
}

// do performs one round trip; out may be nil when no body is expected
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("Record service call")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var errResp wire.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		msg = errResp.Error
	}

	if code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrTradeNotFound, msg)
	}
	return fmt.Errorf("record service returned %d: %s", code, msg)
}
