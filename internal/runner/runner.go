// Package runner orchestrates the daily analysis pipeline: collect, compute,
// generate, persist, notify.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/analyst"
	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/forecast"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/store"
	"CryptoPulse/internal/strategy"
)

const highForecastDays = 5

// Notifier delivers the run summary. Optional; a nil notifier disables it.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Formatter renders the run summary for the notifier.
type Formatter func(runDate string, snapshots []model.Snapshot) string

// Runner executes one full pipeline run over all configured assets.
type Runner struct {
	Coins     []config.Coin
	Collector *collector.Collector
	Analyst   *analyst.Analyst
	Strategy  *strategy.Agent
	Store     store.Store
	Notifier  Notifier
	Format    Formatter
	Log       *logrus.Logger
}

// RunDaily processes every configured asset sequentially and appends the
// resulting snapshots in one batch. A single asset failing never aborts the
// run; only a persistence failure does.
func (r *Runner) RunDaily(ctx context.Context) error {
	runDate := time.Now().UTC().Format(time.DateOnly)
	r.Log.Infof("starting daily run for %s (%d assets)", runDate, len(r.Coins))
	start := time.Now()

	snapshots := make([]model.Snapshot, 0, len(r.Coins))
	for _, coin := range r.Coins {
		snap, err := r.processCoin(ctx, runDate, coin)
		if err != nil {
			if errors.Is(err, collector.ErrInsufficientData) {
				r.Log.Warnf("%s: skipped: %v", coin.Ticker, err)
			} else {
				r.Log.Errorf("%s: failed: %v", coin.Ticker, err)
			}
			continue
		}
		snapshots = append(snapshots, *snap)
	}

	if len(snapshots) == 0 {
		r.Log.Warn("run produced no snapshots, nothing to persist")
		return nil
	}

	if err := r.Store.Append(ctx, snapshots); err != nil {
		return fmt.Errorf("persist run %s: %w", runDate, err)
	}
	r.Log.Infof("run %s complete: %d/%d assets persisted in %v",
		runDate, len(snapshots), len(r.Coins), time.Since(start).Round(time.Second))

	if r.Notifier != nil && r.Format != nil {
		if err := r.Notifier.SendWithRetry(ctx, r.Format(runDate, snapshots), 3); err != nil {
			r.Log.Errorf("run summary notification failed: %v", err)
		}
	}
	return nil
}

// processCoin runs the full per-asset pipeline and assembles the snapshot.
func (r *Runner) processCoin(ctx context.Context, runDate string, coin config.Coin) (*model.Snapshot, error) {
	md, err := r.Collector.Collect(ctx, coin)
	if err != nil {
		return nil, err
	}

	price := md.Series.LastClose()
	bars := md.Series.Bars

	trend, err := forecast.TrendForecast(bars)
	if err != nil {
		r.Log.Warnf("%s: trend forecast unavailable: %v", coin.Ticker, err)
		trend = 0
	}
	window, err := forecast.WindowForecast(bars)
	if err != nil {
		r.Log.Warnf("%s: window forecast unavailable: %v", coin.Ticker, err)
		window = 0
	}

	highJSON := "[]"
	if highs, err := forecast.TrendForecastHighs(bars, highForecastDays); err != nil {
		r.Log.Warnf("%s: high forecast unavailable: %v", coin.Ticker, err)
	} else if encoded, err := json.Marshal(highs); err == nil {
		highJSON = string(encoded)
	}

	sentiment := r.Analyst.SentimentScore(ctx, coin.Name, md.News)

	briefing := model.Briefing{
		CoinName:       coin.Name,
		ActualPrice:    price,
		TrendForecast:  trend,
		WindowForecast: window,
		RSI:            md.Indicators.RSI14,
		MACD:           md.Indicators.MACD,
		FundingRate:    md.Derivatives.FundingRate,
		OpenInterest:   md.Derivatives.OpenInterest,
		LongShortRatio: md.Derivatives.LongShortRatio,
		MVRVRatio:      md.OnChain.MVRVRatio,
		SentimentScore: sentiment,
		GalaxyScore:    md.Social.GalaxyScore,
		AllTimeHigh:    md.Fundamentals.AllTimeHigh,
		TopHeadlines:   md.News,
	}

	report := r.Analyst.DailyReport(ctx, briefing)
	rec := r.Strategy.Recommend(ctx, briefing)

	snap := &model.Snapshot{
		RunDate: runDate,
		Coin:    coin.Symbol,

		ActualPrice:    price,
		TrendForecast:  trend,
		WindowForecast: window,
		SentimentScore: sentiment,

		RSI:            md.Indicators.RSI14,
		MACD:           md.Indicators.MACD,
		AllTimeHigh:    md.Fundamentals.AllTimeHigh,
		HighForecast5D: highJSON,

		FundingRate:          md.Derivatives.FundingRate,
		OpenInterest:         md.Derivatives.OpenInterest,
		LongShortRatio:       md.Derivatives.LongShortRatio,
		FuturesVolume:        md.Derivatives.FuturesVolume,
		MVRVRatio:            md.OnChain.MVRVRatio,
		SocialDominance:      md.OnChain.SocialDominance,
		DailyActiveAddresses: md.OnChain.DailyActiveAddresses,
		GalaxyScore:          md.Social.GalaxyScore,
		AltRank:              md.Social.AltRank,
		MarketCapRank:        md.Fundamentals.MarketCapRank,
		CommunityScore:       md.Fundamentals.CommunityScore,
		DeveloperScore:       md.Fundamentals.DeveloperScore,
		SentimentUpPct:       md.Fundamentals.SentimentUpPct,
		CirculatingSupply:    md.Fundamentals.CirculatingSupply,
		TransactionVolume:    md.Fundamentals.TransactionVolume,

		AnalysisSummary:    report.Summary,
		AnalysisHypothesis: report.Hypothesis,
		AnalysisNewsLinks:  report.NewsLinks,
		ReportTitle:        report.Title,
		ReportRecap:        report.Recap,
		ReportBullish:      report.Bullish,
		ReportBearish:      report.Bearish,
		ReportHypothesis:   report.Hypothesis,

		Action:     string(rec.Action),
		EntryRange: rec.EntryRange,
		TP1:        rec.TP1,
		TP2:        rec.TP2,
		StopLoss:   rec.StopLoss,
		Confidence: rec.Confidence,
		Rationale:  rec.Rationale,
	}
	return snap, nil
}
