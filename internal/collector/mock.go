package collector

import (
	"context"
	"time"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars produces a gently trending synthetic series.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Static provider stubs for tests: each returns either a fixed value or an
// injected error.

type StubDerivatives struct {
	Metrics model.DerivativesMetrics
	Err     error
}

func (s *StubDerivatives) FetchDerivatives(context.Context, string) (model.DerivativesMetrics, error) {
	return s.Metrics, s.Err
}

type StubOnChain struct {
	Metrics model.OnChainMetrics
	Err     error
}

func (s *StubOnChain) FetchOnChain(context.Context, string) (model.OnChainMetrics, error) {
	return s.Metrics, s.Err
}

type StubSocial struct {
	Metrics model.SocialMetrics
	Err     error
}

func (s *StubSocial) FetchSocial(context.Context, string) (model.SocialMetrics, error) {
	return s.Metrics, s.Err
}

type StubFundamentals struct {
	Metrics model.FundamentalMetrics
	Err     error
}

func (s *StubFundamentals) FetchFundamentals(context.Context, string) (model.FundamentalMetrics, error) {
	return s.Metrics, s.Err
}

type StubNews struct {
	Items []model.NewsItem
	Err   error
}

func (s *StubNews) FetchNews(context.Context, config.Coin) ([]model.NewsItem, error) {
	return s.Items, s.Err
}
