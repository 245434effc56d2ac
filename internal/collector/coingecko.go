package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"CryptoPulse/internal/model"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoClient implements FundamentalsProvider against the CoinGecko coins endpoint.
type CoinGeckoClient struct {
	APIKey string
	Client *http.Client
}

// NewCoinGeckoClient creates a new client with optional proxy support.
func NewCoinGeckoClient(apiKey, proxyURL string) *CoinGeckoClient {
	return &CoinGeckoClient{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

type coingeckoResponse struct {
	MarketCapRank  float64 `json:"market_cap_rank"`
	CommunityScore float64 `json:"community_score"`
	DeveloperScore float64 `json:"developer_score"`
	SentimentUp    float64 `json:"sentiment_votes_up_percentage"`
	MarketData     struct {
		CirculatingSupply float64 `json:"circulating_supply"`
		ATH               struct {
			USD float64 `json:"usd"`
		} `json:"ath"`
		TotalVolume struct {
			USD float64 `json:"usd"`
		} `json:"total_volume"`
	} `json:"market_data"`
}

// FetchFundamentals returns project-health scores and market data for the
// given CoinGecko id.
func (c *CoinGeckoClient) FetchFundamentals(ctx context.Context, id string) (model.FundamentalMetrics, error) {
	var m model.FundamentalMetrics
	if c.APIKey == "" {
		return m, errors.New("coingecko: api key not configured")
	}

	u := fmt.Sprintf("%s/coins/%s?x_cg_demo_api_key=%s", coingeckoBaseURL, id, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return m, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return m, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return m, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed coingeckoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return m, fmt.Errorf("coingecko decode: %w", err)
	}

	m.MarketCapRank = parsed.MarketCapRank
	m.CommunityScore = parsed.CommunityScore
	m.DeveloperScore = parsed.DeveloperScore
	m.SentimentUpPct = parsed.SentimentUp
	m.CirculatingSupply = parsed.MarketData.CirculatingSupply
	m.AllTimeHigh = parsed.MarketData.ATH.USD
	m.TransactionVolume = parsed.MarketData.TotalVolume.USD
	m.Fetched = true
	return m, nil
}
