package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"CryptoPulse/internal/model"
)

const santimentBaseURL = "https://api.santiment.net/graphql"

// SantimentClient implements OnChainProvider against the Santiment GraphQL API.
type SantimentClient struct {
	APIKey string
	Client *http.Client
}

// NewSantimentClient creates a new client with optional proxy support.
func NewSantimentClient(apiKey, proxyURL string) *SantimentClient {
	return &SantimentClient{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

type santimentSeries struct {
	TimeseriesData []struct {
		Value float64 `json:"value"`
	} `json:"timeseriesData"`
}

func (s santimentSeries) latest() (float64, bool) {
	if len(s.TimeseriesData) == 0 {
		return 0, false
	}
	return s.TimeseriesData[len(s.TimeseriesData)-1].Value, true
}

type santimentResponse struct {
	Data struct {
		MVRV            santimentSeries `json:"mvrv"`
		SocialDominance santimentSeries `json:"social_dominance"`
		ActiveAddresses santimentSeries `json:"active_addresses"`
	} `json:"data"`
}

// FetchOnChain returns the latest MVRV ratio, social dominance and daily
// active address count for the given project slug.
func (c *SantimentClient) FetchOnChain(ctx context.Context, slug string) (model.OnChainMetrics, error) {
	var m model.OnChainMetrics
	if c.APIKey == "" {
		return m, errors.New("santiment: api key not configured")
	}

	query := fmt.Sprintf(`query {
  mvrv: getMetric(metric: "mvrv_usd") {
    timeseriesData(slug: %q, from: "utc_now-2d", to: "utc_now", interval: "1d") { value }
  }
  social_dominance: getMetric(metric: "social_dominance_total") {
    timeseriesData(slug: %q, from: "utc_now-2d", to: "utc_now", interval: "1d") { value }
  }
  active_addresses: getMetric(metric: "daily_active_addresses") {
    timeseriesData(slug: %q, from: "utc_now-2d", to: "utc_now", interval: "1d") { value }
  }
}`, slug, slug, slug)

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return m, fmt.Errorf("santiment marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, santimentBaseURL, bytes.NewReader(payload))
	if err != nil {
		return m, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Apikey "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return m, fmt.Errorf("santiment fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return m, fmt.Errorf("santiment read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("santiment: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed santimentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return m, fmt.Errorf("santiment decode: %w", err)
	}

	mvrv, ok1 := parsed.Data.MVRV.latest()
	dominance, ok2 := parsed.Data.SocialDominance.latest()
	addresses, ok3 := parsed.Data.ActiveAddresses.latest()
	if !ok1 && !ok2 && !ok3 {
		return m, fmt.Errorf("santiment: no metric data for %s", slug)
	}

	m.MVRVRatio = mvrv
	m.SocialDominance = dominance
	m.DailyActiveAddresses = addresses
	m.Fetched = true
	return m, nil
}
