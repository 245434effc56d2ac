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

const lunarcrushBaseURL = "https://lunarcrush.com/api4/public"

// LunarCrushClient implements SocialProvider against the LunarCrush API.
type LunarCrushClient struct {
	APIKey string
	Client *http.Client
}

// NewLunarCrushClient creates a new client with optional proxy support.
func NewLunarCrushClient(apiKey, proxyURL string) *LunarCrushClient {
	return &LunarCrushClient{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

type lunarcrushResponse struct {
	Data struct {
		GalaxyScore float64 `json:"galaxy_score"`
		AltRank     float64 `json:"alt_rank"`
	} `json:"data"`
}

// FetchSocial returns the galaxy score and alt rank for the given symbol.
func (c *LunarCrushClient) FetchSocial(ctx context.Context, symbol string) (model.SocialMetrics, error) {
	var m model.SocialMetrics
	if c.APIKey == "" {
		return m, errors.New("lunarcrush: api key not configured")
	}

	u := fmt.Sprintf("%s/coins/%s/v1", lunarcrushBaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return m, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return m, fmt.Errorf("lunarcrush fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return m, fmt.Errorf("lunarcrush read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("lunarcrush: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed lunarcrushResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return m, fmt.Errorf("lunarcrush decode: %w", err)
	}

	m.GalaxyScore = parsed.Data.GalaxyScore
	m.AltRank = parsed.Data.AltRank
	m.Fetched = true
	return m, nil
}
