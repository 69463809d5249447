// Package polymarket is the REST client for the Polymarket CLOB API
// (venue B). Orders are addressed per outcome token and authenticated with
// L2 HMAC headers.
package polymarket

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

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/alanyoungcy/arbbot/internal/crypto"
	"github.com/alanyoungcy/arbbot/internal/domain"
)

// marketsPageLimit is the page size for market discovery pagination.
const marketsPageLimit = 500

// Client talks to the Polymarket CLOB REST API.
type Client struct {
	baseURL    string
	asset      string
	address    string
	auth       *crypto.HMACAuth
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds the parameters for a Polymarket client.
type Config struct {
	BaseURL        string
	Asset          string // e.g. "BTC"; hourly market questions read "BTC above $X at HH:MM UTC"
	Address        string // funder address reported in L2 auth headers
	APIKey         string
	APISecret      string // base64-encoded
	APIPassphrase  string
	RequestTimeout time.Duration
	RequestsPerSec float64
}

// NewClient creates a Polymarket CLOB client.
func NewClient(cfg Config) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		asset:   cfg.Asset,
		address: cfg.Address,
		auth: &crypto.HMACAuth{
			Key:        cfg.APIKey,
			Secret:     cfg.APISecret,
			Passphrase: cfg.APIPassphrase,
		},
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

// Name returns the venue identifier.
func (c *Client) Name() string { return "polymarket" }

// ListActiveMarkets pages through the CLOB market list and returns the active
// hourly markets for the configured asset, with their outcome tokens in book
// order (no at index 0, yes at index 1).
func (c *Client) ListActiveMarkets(ctx context.Context) ([]domain.VenueMarket, error) {
	var markets []domain.VenueMarket

	cursor := ""
	for {
		params := url.Values{}
		params.Set("limit", fmt.Sprint(marketsPageLimit))
		if cursor != "" {
			params.Set("next_cursor", cursor)
		}

		body, err := c.doRequest(ctx, http.MethodGet, "/markets?"+params.Encode(), nil, false)
		if err != nil {
			return nil, fmt.Errorf("polymarket: list markets: %w", err)
		}

		var page apiMarketsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("polymarket: decode markets: %w", err)
		}

		for _, m := range page.Data {
			if !m.Active || m.Closed {
				continue
			}
			if !strings.Contains(m.Question, c.asset+" above") || !strings.Contains(m.Question, "UTC") {
				continue
			}
			tokens := make([]string, 0, len(m.Tokens))
			for _, t := range m.Tokens {
				tokens = append(tokens, t.TokenID)
			}
			markets = append(markets, domain.VenueMarket{
				ID:            m.ConditionID,
				Title:         m.Question,
				Active:        true,
				OutcomeTokens: tokens,
			})
		}

		// "LTE=" is the CLOB's end-of-pagination sentinel (base64 "-1").
		if page.NextCursor == "" || page.NextCursor == "LTE=" {
			return markets, nil
		}
		cursor = page.NextCursor
	}
}

// GetQuote returns the best resting prices for one market (by condition ID).
// Missing book sides yield absent prices, not errors.
func (c *Client) GetQuote(ctx context.Context, marketID string) (domain.Quote, error) {
	params := url.Values{}
	params.Set("market", marketID)

	body, err := c.doRequest(ctx, http.MethodGet, "/book?"+params.Encode(), nil, false)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("polymarket: get book %s: %w", marketID, err)
	}

	var book apiMarketBook
	if err := json.Unmarshal(body, &book); err != nil {
		return domain.Quote{}, fmt.Errorf("polymarket: decode book: %w", err)
	}

	return domain.Quote{
		MarketID:  marketID,
		YesAsk:    top(book.Yes.Asks),
		YesBid:    top(book.Yes.Bids),
		NoAsk:     top(book.No.Asks),
		NoBid:     top(book.No.Bids),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// PlaceOrder submits a limit order for the outcome token in req.TokenID.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	if req.TokenID == "" {
		return domain.OrderConfirmation{}, fmt.Errorf("polymarket: %w: missing token id", domain.ErrInvalidOrder)
	}

	payload := map[string]any{
		"order": map[string]any{
			"tokenID":    req.TokenID,
			"price":      req.Price.String(),
			"size":       req.Amount.String(),
			"side":       strings.ToUpper(string(req.Side)),
			"feeRateBps": "0",
			"clientID":   uuid.New().String(),
			"maker":      c.address,
		},
		"owner":     c.address,
		"orderType": "GTC",
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/order", payload, true)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("polymarket: post order: %w", err)
	}

	var result apiOrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("polymarket: decode order result: %w", err)
	}
	if !result.Success {
		return domain.OrderConfirmation{}, fmt.Errorf("polymarket: order rejected: %s", result.ErrorMsg)
	}

	return domain.OrderConfirmation{
		OrderID:  result.OrderID,
		Venue:    c.Name(),
		Status:   result.Status,
		PlacedAt: time.Now().UTC(),
	}, nil
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody any, authenticated bool) ([]byte, error) {
	var jsonBody []byte
	if reqBody != nil {
		var err error
		jsonBody, err = json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if jsonBody != nil {
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		for k, v := range c.auth.L2Headers(c.address, method, path, string(jsonBody)) {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: %s", domain.ErrRateLimited, truncate(respBody))
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, truncate(respBody))
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, truncate(respBody))
		default:
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(respBody))
		}
	}
	return respBody, nil
}

func truncate(b []byte) string {
	const n = 256
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// Compile-time interface check.
var _ domain.VenueClient = (*Client)(nil)
