package oddsfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/models"
)

// mockQuoteServer serves /v1/quotes with fixed prices for the listed legs.
func mockQuoteServer(t *testing.T, quotes []MarketQuote) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/quotes" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.NotEmpty(t, r.URL.Query().Get("legs"))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(quotesResponse{Quotes: quotes})
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func feedClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client := NewClient(config.OddsFeedConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
		RateLimit:      100,
		MaxRetries:     1,
	}, nil)
	t.Cleanup(func() { client.Close() })
	return client
}

func mustDecimal(t *testing.T, s string) MarketQuote {
	t.Helper()
	var q MarketQuote
	require.NoError(t, json.Unmarshal([]byte(s), &q))
	return q
}

func TestGetMarketQuotes(t *testing.T) {
	server := mockQuoteServer(t, []MarketQuote{
		mustDecimal(t, `{"leg_id":"leg-1","decimal_odds":"1.85","implied_prob":"0.54"}`),
		mustDecimal(t, `{"leg_id":"leg-2","decimal_odds":"2.10","implied_prob":"0.476"}`),
		mustDecimal(t, `{"leg_id":"leg-degenerate","decimal_odds":"1.00","implied_prob":"1.0"}`),
	})

	client := feedClient(t, server.URL)
	quotes, err := client.GetMarketQuotes(context.Background(), []string{"leg-1", "leg-2", "leg-degenerate"})
	require.NoError(t, err)

	require.Len(t, quotes, 2, "quotes at or below even odds are dropped")
	assert.Equal(t, "1.85", quotes["leg-1"].DecimalOdds.StringFixed(2))
	assert.Equal(t, "2.10", quotes["leg-2"].DecimalOdds.StringFixed(2))
	assert.NotContains(t, quotes, "leg-degenerate")
}

func TestGetMarketQuotesEmptyInput(t *testing.T) {
	client := feedClient(t, "http://localhost:1")

	quotes, err := client.GetMarketQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestGetMarketQuotesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := feedClient(t, server.URL)
	_, err := client.GetMarketQuotes(context.Background(), []string{"leg-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

type stubSource struct {
	legs []*models.Leg
	err  error
}

func (s *stubSource) GetCandidates(context.Context, models.LegFilter) ([]*models.Leg, error) {
	return s.legs, s.err
}

func TestEnrichingSourceFillsMarketOdds(t *testing.T) {
	server := mockQuoteServer(t, []MarketQuote{
		mustDecimal(t, `{"leg_id":"leg-1","decimal_odds":"1.85","implied_prob":"0.54"}`),
	})

	legs := []*models.Leg{
		{ID: "leg-1", MatchID: "m1", ConsensusProb: 0.6},
		{ID: "leg-unpriced", MatchID: "m2", ConsensusProb: 0.55},
	}
	source := NewEnrichingSource(&stubSource{legs: legs}, feedClient(t, server.URL), nil)

	pool, err := source.GetCandidates(context.Background(), models.LegFilter{})
	require.NoError(t, err)
	require.Len(t, pool, 2)

	require.NotNil(t, pool[0].DecimalOdds)
	assert.InDelta(t, 1.85, *pool[0].DecimalOdds, 1e-9)
	require.NotNil(t, pool[0].ImpliedProb)
	assert.InDelta(t, 0.54, *pool[0].ImpliedProb, 1e-9)

	assert.Nil(t, pool[1].DecimalOdds, "legs without a quote keep consensus data only")
}

func TestEnrichingSourceSwallowsFeedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	legs := []*models.Leg{{ID: "leg-1", MatchID: "m1", ConsensusProb: 0.6}}
	source := NewEnrichingSource(&stubSource{legs: legs}, feedClient(t, server.URL), nil)

	pool, err := source.GetCandidates(context.Background(), models.LegFilter{})
	require.NoError(t, err, "enrichment failures must not fail the run")
	require.Len(t, pool, 1)
	assert.Nil(t, pool[0].DecimalOdds)
}

func TestEnrichingSourcePropagatesSourceError(t *testing.T) {
	source := NewEnrichingSource(&stubSource{err: context.DeadlineExceeded}, feedClient(t, "http://localhost:1"), nil)

	_, err := source.GetCandidates(context.Background(), models.LegFilter{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
