package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"CryptoPulse/internal/model"
)

const pgTable = "forecasts"

const pgSchema = `
CREATE TABLE IF NOT EXISTS forecasts (
	id SERIAL PRIMARY KEY,
	run_date TEXT NOT NULL,
	coin TEXT NOT NULL,
	actual_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	trend_forecast DOUBLE PRECISION NOT NULL DEFAULT 0,
	window_forecast DOUBLE PRECISION NOT NULL DEFAULT 0,
	sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	rsi DOUBLE PRECISION NOT NULL DEFAULT 0,
	macd DOUBLE PRECISION NOT NULL DEFAULT 0,
	all_time_high DOUBLE PRECISION NOT NULL DEFAULT 0,
	high_forecast_5d TEXT NOT NULL DEFAULT '[]',
	funding_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	open_interest DOUBLE PRECISION NOT NULL DEFAULT 0,
	long_short_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
	futures_volume_24h DOUBLE PRECISION NOT NULL DEFAULT 0,
	mvrv_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
	social_dominance DOUBLE PRECISION NOT NULL DEFAULT 0,
	daily_active_addresses DOUBLE PRECISION NOT NULL DEFAULT 0,
	galaxy_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	alt_rank DOUBLE PRECISION NOT NULL DEFAULT 0,
	market_cap_rank DOUBLE PRECISION NOT NULL DEFAULT 0,
	community_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	developer_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	sentiment_up_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
	circulating_supply DOUBLE PRECISION NOT NULL DEFAULT 0,
	transaction_volume_24h DOUBLE PRECISION NOT NULL DEFAULT 0,
	analysis_summary TEXT NOT NULL DEFAULT '',
	analysis_hypothesis TEXT NOT NULL DEFAULT '',
	analysis_news_links TEXT NOT NULL DEFAULT '[]',
	report_title TEXT NOT NULL DEFAULT '',
	report_recap TEXT NOT NULL DEFAULT '',
	report_bullish TEXT NOT NULL DEFAULT '',
	report_bearish TEXT NOT NULL DEFAULT '',
	report_hypothesis TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL DEFAULT 'HOLD',
	entry_range TEXT NOT NULL DEFAULT 'N/A',
	tp1 DOUBLE PRECISION NOT NULL DEFAULT 0,
	tp2 DOUBLE PRECISION NOT NULL DEFAULT 0,
	sl DOUBLE PRECISION NOT NULL DEFAULT 0,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	rationale TEXT NOT NULL DEFAULT '',
	user_feedback TEXT,
	user_correction TEXT
);
CREATE INDEX IF NOT EXISTS idx_forecasts_run_date ON forecasts (run_date DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_forecasts_coin ON forecasts (coin);
`

const pgUpdateFeedback = `UPDATE forecasts SET user_feedback = $1, user_correction = $2 WHERE id = $3`

// PostgresStore persists snapshots in Postgres via lib/pq.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres opens and pings the database.
func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, pgSchema); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, snapshots []model.Snapshot) error {
	return appendTx(ctx, s.db, insertStmt(pgTable, true), snapshots)
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]model.Snapshot, error) {
	return loadAll(ctx, s.db, selectStmt(pgTable))
}

func (s *PostgresStore) UpdateFeedback(ctx context.Context, id int64, feedback, correction string) error {
	return updateFeedback(ctx, s.db, pgUpdateFeedback, id, feedback, correction)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
