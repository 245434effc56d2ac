package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

const newsBaseURL = "https://newsapi.org/v2/everything"

// maxHeadlines caps how many articles feed sentiment and the analyst briefing.
const maxHeadlines = 10

// NewsAPIClient implements NewsProvider against NewsAPI.
type NewsAPIClient struct {
	APIKey string
	Client *http.Client
}

// NewNewsAPIClient creates a new client with optional proxy support.
func NewNewsAPIClient(apiKey, proxyURL string) *NewsAPIClient {
	return &NewsAPIClient{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

type newsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// FetchNews returns recent headlines for the coin's display name, newest first.
func (c *NewsAPIClient) FetchNews(ctx context.Context, coin config.Coin) ([]model.NewsItem, error) {
	if c.APIKey == "" {
		return nil, errors.New("newsapi: api key not configured")
	}

	from := time.Now().AddDate(0, 0, -3).Format(time.DateOnly)
	q := url.Values{}
	q.Set("q", coin.Name)
	q.Set("from", from)
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	q.Set("apiKey", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed newsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	items := make([]model.NewsItem, 0, maxHeadlines)
	for _, a := range parsed.Articles {
		if a.Title == "" {
			continue
		}
		items = append(items, model.NewsItem{Title: a.Title, Description: a.Description, URL: a.URL})
		if len(items) == maxHeadlines {
			break
		}
	}
	return items, nil
}
