package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"CryptoPulse/internal/calculator"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// HistoryDays is the trailing price window fetched per run.
const HistoryDays = 180

// MinBars is the minimum usable history; shorter series skip the asset.
const MinBars = calculator.MinBars

// ErrInsufficientData signals that the asset has too little history for
// this run and should be skipped, not treated as a failure.
var ErrInsufficientData = errors.New("insufficient price history")

// MarketData is one asset's enriched state for the current run: the price
// series with indicators, plus per-run scalar metrics. Scalars stay scalars;
// they are never written back across the historical frame.
type MarketData struct {
	Series       model.PriceSeries
	Indicators   model.IndicatorSet
	Derivatives  model.DerivativesMetrics
	OnChain      model.OnChainMetrics
	Social       model.SocialMetrics
	Fundamentals model.FundamentalMetrics
	News         []model.NewsItem
}

// Collector orchestrates price fetching, indicator computation and the
// concurrent enrichment calls to the market-intelligence providers.
type Collector struct {
	Prices       PriceFetcher
	Derivatives  DerivativesProvider
	OnChain      OnChainProvider
	Social       SocialProvider
	Fundamentals FundamentalsProvider
	News         NewsProvider

	// ProviderTimeout bounds each enrichment call so one hung provider
	// cannot stall the run.
	ProviderTimeout time.Duration

	Log *logrus.Logger
}

// New creates a Collector with the default per-provider timeout.
func New(prices PriceFetcher, log *logrus.Logger) *Collector {
	return &Collector{
		Prices:          prices,
		ProviderTimeout: 20 * time.Second,
		Log:             log,
	}
}

// Collect produces one asset's enriched market data. Only the price-history
// fetch is fatal; every provider failure degrades to that provider's zero
// value with a warning. Provider calls run concurrently, each under its own
// timeout.
func (c *Collector) Collect(ctx context.Context, coin config.Coin) (*MarketData, error) {
	bars, err := c.Prices.FetchDailyBars(ctx, coin.Ticker, HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", coin.Ticker, err)
	}
	if len(bars) < MinBars {
		return nil, fmt.Errorf("%w: %s has %d bars, need %d", ErrInsufficientData, coin.Ticker, len(bars), MinBars)
	}

	md := &MarketData{
		Series: model.PriceSeries{Ticker: coin.Ticker, Bars: bars, FetchedAt: time.Now()},
	}

	ind, err := calculator.Compute(bars)
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", coin.Ticker, err)
	}
	md.Indicators = ind

	// Enrichment providers are independent; fan out and degrade per
	// provider. Each closure returns nil so one failure never cancels
	// the siblings.
	var g errgroup.Group

	g.Go(func() error {
		if c.Derivatives == nil {
			return nil
		}
		m, err := withTimeout(ctx, c.ProviderTimeout, func(tctx context.Context) (model.DerivativesMetrics, error) {
			return c.Derivatives.FetchDerivatives(tctx, coin.Symbol)
		})
		if err != nil {
			c.warn(coin, "derivatives", err)
			return nil
		}
		md.Derivatives = m
		return nil
	})

	g.Go(func() error {
		if c.OnChain == nil {
			return nil
		}
		m, err := withTimeout(ctx, c.ProviderTimeout, func(tctx context.Context) (model.OnChainMetrics, error) {
			return c.OnChain.FetchOnChain(tctx, coin.Slug)
		})
		if err != nil {
			c.warn(coin, "on-chain", err)
			return nil
		}
		md.OnChain = m
		return nil
	})

	g.Go(func() error {
		if c.Social == nil {
			return nil
		}
		m, err := withTimeout(ctx, c.ProviderTimeout, func(tctx context.Context) (model.SocialMetrics, error) {
			return c.Social.FetchSocial(tctx, coin.Symbol)
		})
		if err != nil {
			c.warn(coin, "social", err)
			return nil
		}
		md.Social = m
		return nil
	})

	g.Go(func() error {
		if c.Fundamentals == nil {
			return nil
		}
		m, err := withTimeout(ctx, c.ProviderTimeout, func(tctx context.Context) (model.FundamentalMetrics, error) {
			return c.Fundamentals.FetchFundamentals(tctx, coin.GeckoID)
		})
		if err != nil {
			c.warn(coin, "fundamentals", err)
			return nil
		}
		md.Fundamentals = m
		return nil
	})

	g.Go(func() error {
		if c.News == nil {
			return nil
		}
		items, err := withTimeout(ctx, c.ProviderTimeout, func(tctx context.Context) ([]model.NewsItem, error) {
			return c.News.FetchNews(tctx, coin)
		})
		if err != nil {
			c.warn(coin, "news", err)
			return nil
		}
		md.News = items
		return nil
	})

	g.Wait()
	return md, nil
}

func (c *Collector) warn(coin config.Coin, provider string, err error) {
	if c.Log != nil {
		c.Log.Warnf("%s: %s provider failed, using defaults: %v", coin.Ticker, provider, err)
	}
}

func withTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(tctx)
}
