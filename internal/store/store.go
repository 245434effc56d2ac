// Package store persists run snapshots. Two backends share one schema and
// one column order: Postgres for deployments, SQLite for local runs and
// tests. Rows are append-only except for the two user feedback fields.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"CryptoPulse/internal/model"
)

// ErrNotFound is returned when a feedback update targets a missing row.
var ErrNotFound = errors.New("snapshot not found")

// Store is the persistence contract used by the runner and the dashboard.
type Store interface {
	// Init creates the schema if it does not exist.
	Init(ctx context.Context) error
	// Append inserts the run's snapshots in a single transaction.
	Append(ctx context.Context, snapshots []model.Snapshot) error
	// LoadAll returns every snapshot, newest run first.
	LoadAll(ctx context.Context) ([]model.Snapshot, error)
	// UpdateFeedback records a user decision and optional correction on a row.
	UpdateFeedback(ctx context.Context, id int64, feedback, correction string) error
	Close() error
}

// insertColumns is the canonical column order for inserts and scans. The id
// column is excluded; both backends auto-assign it.
var insertColumns = []string{
	"run_date", "coin",
	"actual_price", "trend_forecast", "window_forecast", "sentiment_score",
	"rsi", "macd", "all_time_high", "high_forecast_5d",
	"funding_rate", "open_interest", "long_short_ratio", "futures_volume_24h",
	"mvrv_ratio", "social_dominance", "daily_active_addresses",
	"galaxy_score", "alt_rank",
	"market_cap_rank", "community_score", "developer_score",
	"sentiment_up_pct", "circulating_supply", "transaction_volume_24h",
	"analysis_summary", "analysis_hypothesis", "analysis_news_links",
	"report_title", "report_recap", "report_bullish", "report_bearish", "report_hypothesis",
	"action", "entry_range", "tp1", "tp2", "sl", "confidence", "rationale",
	"user_feedback", "user_correction",
}

func snapshotArgs(s *model.Snapshot) []any {
	return []any{
		s.RunDate, s.Coin,
		s.ActualPrice, s.TrendForecast, s.WindowForecast, s.SentimentScore,
		s.RSI, s.MACD, s.AllTimeHigh, s.HighForecast5D,
		s.FundingRate, s.OpenInterest, s.LongShortRatio, s.FuturesVolume,
		s.MVRVRatio, s.SocialDominance, s.DailyActiveAddresses,
		s.GalaxyScore, s.AltRank,
		s.MarketCapRank, s.CommunityScore, s.DeveloperScore,
		s.SentimentUpPct, s.CirculatingSupply, s.TransactionVolume,
		s.AnalysisSummary, s.AnalysisHypothesis, s.AnalysisNewsLinks,
		s.ReportTitle, s.ReportRecap, s.ReportBullish, s.ReportBearish, s.ReportHypothesis,
		s.Action, s.EntryRange, s.TP1, s.TP2, s.StopLoss, s.Confidence, s.Rationale,
		s.UserFeedback, s.UserCorrection,
	}
}

func scanSnapshot(rows *sql.Rows) (model.Snapshot, error) {
	var s model.Snapshot
	err := rows.Scan(
		&s.ID,
		&s.RunDate, &s.Coin,
		&s.ActualPrice, &s.TrendForecast, &s.WindowForecast, &s.SentimentScore,
		&s.RSI, &s.MACD, &s.AllTimeHigh, &s.HighForecast5D,
		&s.FundingRate, &s.OpenInterest, &s.LongShortRatio, &s.FuturesVolume,
		&s.MVRVRatio, &s.SocialDominance, &s.DailyActiveAddresses,
		&s.GalaxyScore, &s.AltRank,
		&s.MarketCapRank, &s.CommunityScore, &s.DeveloperScore,
		&s.SentimentUpPct, &s.CirculatingSupply, &s.TransactionVolume,
		&s.AnalysisSummary, &s.AnalysisHypothesis, &s.AnalysisNewsLinks,
		&s.ReportTitle, &s.ReportRecap, &s.ReportBullish, &s.ReportBearish, &s.ReportHypothesis,
		&s.Action, &s.EntryRange, &s.TP1, &s.TP2, &s.StopLoss, &s.Confidence, &s.Rationale,
		&s.UserFeedback, &s.UserCorrection,
	)
	return s, err
}

// insertStmt builds the shared INSERT with backend-specific placeholders.
// numbered=true yields $1..$n for Postgres, false yields ? for SQLite.
func insertStmt(table string, numbered bool) string {
	marks := make([]string, len(insertColumns))
	for i := range marks {
		if numbered {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(insertColumns, ", "), strings.Join(marks, ", "))
}

func selectStmt(table string) string {
	return fmt.Sprintf("SELECT id, %s FROM %s ORDER BY run_date DESC, id DESC",
		strings.Join(insertColumns, ", "), table)
}

func appendTx(ctx context.Context, db *sql.DB, insert string, snapshots []model.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range snapshots {
		if _, err := stmt.ExecContext(ctx, snapshotArgs(&snapshots[i])...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot %s/%s: %w", snapshots[i].RunDate, snapshots[i].Coin, err)
		}
	}
	return tx.Commit()
}

func updateFeedback(ctx context.Context, db *sql.DB, query string, id int64, feedback, correction string) error {
	res, err := db.ExecContext(ctx, query, feedback, correction, id)
	if err != nil {
		return fmt.Errorf("update feedback for snapshot %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	return nil
}

func loadAll(ctx context.Context, db *sql.DB, query string) ([]model.Snapshot, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []model.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
