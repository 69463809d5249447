// Package limitless is the REST client for the Limitless Exchange CLOB API
// (venue A).
package limitless

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

const (
	maxAttempts    = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 8 * time.Second
)

// Client talks to the Limitless Exchange REST API. Requests are rate limited
// client-side and retried with exponential backoff on transport failures and
// 5xx responses.
type Client struct {
	baseURL    string
	asset      string
	auth       *crypto.HMACAuth
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds the parameters for a Limitless client.
type Config struct {
	BaseURL        string
	Asset          string // e.g. "BTC"; hourly market titles must mention it
	APIKey         string
	APISecret      string
	RequestTimeout time.Duration
	RequestsPerSec float64
}

// NewClient creates a Limitless client.
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
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		asset:      cfg.Asset,
		auth:       &crypto.HMACAuth{Key: cfg.APIKey, Secret: cfg.APISecret},
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

// Name returns the venue identifier.
func (c *Client) Name() string { return "limitless" }

// ListActiveMarkets returns the venue's active hourly markets for the
// configured asset. Hourly markets carry a "HH:MM UTC" settlement token in
// their titles; anything else is filtered out here rather than parsed later.
func (c *Client) ListActiveMarkets(ctx context.Context) ([]domain.VenueMarket, error) {
	params := url.Values{}
	params.Set("active", "true")

	body, err := c.doRequest(ctx, http.MethodGet, "/markets?"+params.Encode(), nil, false)
	if err != nil {
		return nil, fmt.Errorf("limitless: list markets: %w", err)
	}

	var apiMarkets []apiMarket
	if err := json.Unmarshal(body, &apiMarkets); err != nil {
		return nil, fmt.Errorf("limitless: decode markets: %w", err)
	}

	markets := make([]domain.VenueMarket, 0, len(apiMarkets))
	for _, m := range apiMarkets {
		if !m.Active || !strings.Contains(m.Title, c.asset) || !strings.Contains(m.Title, "UTC") {
			continue
		}
		markets = append(markets, domain.VenueMarket{
			ID:     m.ID,
			Title:  m.Title,
			Active: m.Active,
		})
	}
	return markets, nil
}

// GetQuote returns the best resting prices for one market. An empty book
// yields an empty Quote, not an error; errors are reserved for transport
// failures.
func (c *Client) GetQuote(ctx context.Context, marketID string) (domain.Quote, error) {
	path := fmt.Sprintf("/markets/%s/orderbook", url.PathEscape(marketID))

	body, err := c.doRequest(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("limitless: get orderbook %s: %w", marketID, err)
	}

	var book apiOrderbook
	if err := json.Unmarshal(body, &book); err != nil {
		return domain.Quote{}, fmt.Errorf("limitless: decode orderbook: %w", err)
	}

	return domain.Quote{
		MarketID:  marketID,
		YesAsk:    best(book.Yes.Asks),
		YesBid:    best(book.Yes.Bids),
		NoAsk:     best(book.No.Asks),
		NoBid:     best(book.No.Bids),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// PlaceOrder submits a limit order addressed by market ID and outcome.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	order := apiOrder{
		MarketID:      req.MarketID,
		Outcome:       string(req.Outcome),
		Side:          string(req.Side),
		Amount:        req.Amount.String(),
		Price:         req.Price.String(),
		Type:          "limit",
		ClientOrderID: uuid.New().String(),
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/orders", order, true)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("limitless: place order: %w", err)
	}

	var resp apiOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("limitless: decode order response: %w", err)
	}
	if resp.ID == "" {
		return domain.OrderConfirmation{}, fmt.Errorf("limitless: %w: response carried no order id", domain.ErrInvalidOrder)
	}

	return domain.OrderConfirmation{
		OrderID:  resp.ID,
		Venue:    c.Name(),
		Status:   resp.Status,
		PlacedAt: time.Now().UTC(),
	}, nil
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doRequest builds, signs, sends, and reads an HTTP request. Transport errors
// and 5xx responses are retried with exponential backoff; 4xx responses are
// returned immediately.
func (c *Client) doRequest(ctx context.Context, method, path string, reqBody any, authenticated bool) ([]byte, error) {
	var jsonBody []byte
	if reqBody != nil {
		var err error
		jsonBody, err = json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := c.doOnce(ctx, method, path, jsonBody, authenticated)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method, path string, jsonBody []byte, authenticated bool) (body []byte, retryable bool, err error) {
	var bodyReader io.Reader
	if jsonBody != nil {
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		for k, v := range c.auth.LimitlessHeaders(method, path, string(jsonBody)) {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if err := checkStatus(resp.StatusCode, respBody); err != nil {
		return nil, resp.StatusCode >= 500, err
	}
	return respBody, false, nil
}

// checkStatus maps non-2xx HTTP status codes to errors.
func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var e apiError
	_ = json.Unmarshal(body, &e)

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s (%s)", domain.ErrNotFound, e.Message, e.Code)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s (%s)", domain.ErrUnauthorized, e.Message, e.Code)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s (%s)", domain.ErrRateLimited, e.Message, e.Code)
	default:
		return fmt.Errorf("HTTP %d: %s (%s)", statusCode, e.Message, e.Code)
	}
}

// Compile-time interface check.
var _ domain.VenueClient = (*Client)(nil)
