package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// PriceFetcher retrieves daily OHLCV history for one asset.
type PriceFetcher interface {
	FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.OHLCV, error)
	Name() string
}

// DerivativesProvider retrieves futures market metrics.
type DerivativesProvider interface {
	FetchDerivatives(ctx context.Context, symbol string) (model.DerivativesMetrics, error)
}

// OnChainProvider retrieves on-chain valuation and social metrics.
type OnChainProvider interface {
	FetchOnChain(ctx context.Context, slug string) (model.OnChainMetrics, error)
}

// SocialProvider retrieves social-intelligence rankings.
type SocialProvider interface {
	FetchSocial(ctx context.Context, symbol string) (model.SocialMetrics, error)
}

// FundamentalsProvider retrieves project-health and market metrics.
type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, id string) (model.FundamentalMetrics, error)
}

// NewsProvider retrieves recent headlines for an asset.
type NewsProvider interface {
	FetchNews(ctx context.Context, coin config.Coin) ([]model.NewsItem, error)
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
