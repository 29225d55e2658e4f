package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/config"
)

// MarketQuote is one market price for a leg
type MarketQuote struct {
	LegID       string          `json:"leg_id"`
	DecimalOdds decimal.Decimal `json:"decimal_odds"`
	ImpliedProb decimal.Decimal `json:"implied_prob"`
}

// quotesResponse is the odds API response envelope
type quotesResponse struct {
	Quotes []MarketQuote `json:"quotes"`
}

// Client fetches market quotes from the odds feed API
type Client struct {
	http    *RateLimitedHTTPClient
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewClient creates an odds feed client from configuration
func NewClient(cfg config.OddsFeedConfig, logger *logrus.Logger) *Client {
	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = secondsToDuration(cfg.TimeoutSeconds)
	}
	if cfg.RateLimit > 0 {
		httpCfg.RateLimit = cfg.RateLimit
	}
	if cfg.MaxRetries > 0 {
		httpCfg.MaxRetries = cfg.MaxRetries
	}

	return &Client{
		http:    NewRateLimitedHTTPClient(httpCfg, logger),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// GetMarketQuotes fetches current market prices for the given legs, keyed by
// leg ID. Legs the feed has no price for are simply absent from the result.
func (c *Client) GetMarketQuotes(ctx context.Context, legIDs []string) (map[string]MarketQuote, error) {
	if len(legIDs) == 0 {
		return map[string]MarketQuote{}, nil
	}

	endpoint := fmt.Sprintf("%s/v1/quotes?legs=%s", c.baseURL, url.QueryEscape(strings.Join(legIDs, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("odds feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds feed returned status %d", resp.StatusCode)
	}

	var payload quotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode odds feed response: %w", err)
	}

	quotes := make(map[string]MarketQuote, len(payload.Quotes))
	for _, q := range payload.Quotes {
		if q.DecimalOdds.LessThanOrEqual(decimal.NewFromInt(1)) {
			continue
		}
		quotes[q.LegID] = q
	}
	return quotes, nil
}

// Close releases the underlying HTTP client resources
func (c *Client) Close() error {
	return c.http.Close()
}
