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

const coinglassBaseURL = "https://open-api.coinglass.com/public/v2"

// CoinGlassClient implements DerivativesProvider against the CoinGlass
// perpetual markets endpoint, reading the Binance entry.
type CoinGlassClient struct {
	APIKey string
	Client *http.Client
}

// NewCoinGlassClient creates a new client with optional proxy support.
func NewCoinGlassClient(apiKey, proxyURL string) *CoinGlassClient {
	return &CoinGlassClient{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

type coinglassResponse struct {
	Success bool                            `json:"success"`
	Data    map[string][]coinglassExchange `json:"data"`
}

type coinglassExchange struct {
	ExchangeName string  `json:"exchangeName"`
	Rate         float64 `json:"rate"`
	OpenInterest float64 `json:"openInterest"`
	TotalVolUsd  float64 `json:"totalVolUsd"`
	LongRate     float64 `json:"longRate"`
	ShortRate    float64 `json:"shortRate"`
}

// FetchDerivatives returns funding rate, open interest, long/short ratio and
// 24h futures volume for the given symbol (e.g. "BTC").
func (c *CoinGlassClient) FetchDerivatives(ctx context.Context, symbol string) (model.DerivativesMetrics, error) {
	var m model.DerivativesMetrics
	if c.APIKey == "" {
		return m, errors.New("coinglass: api key not configured")
	}

	u := fmt.Sprintf("%s/perpetual_market?ex=Binance&symbol=%s", coinglassBaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return m, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("coinglassSecret", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return m, fmt.Errorf("coinglass fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return m, fmt.Errorf("coinglass read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("coinglass: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed coinglassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return m, fmt.Errorf("coinglass decode: %w", err)
	}
	if !parsed.Success {
		return m, errors.New("coinglass: response indicates failure")
	}

	for _, ex := range parsed.Data[symbol] {
		if ex.ExchangeName != "Binance" {
			continue
		}
		m.FundingRate = ex.Rate * 100
		m.OpenInterest = ex.OpenInterest
		m.FuturesVolume = ex.TotalVolUsd
		if ex.ShortRate > 0 {
			m.LongShortRatio = ex.LongRate / ex.ShortRate
		}
		m.Fetched = true
		return m, nil
	}
	return m, fmt.Errorf("coinglass: no Binance entry for %s", symbol)
}
