package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"CryptoPulse/internal/model"
)

const sqliteTable = "forecasts"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS forecasts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_date TEXT NOT NULL,
	coin TEXT NOT NULL,
	actual_price REAL NOT NULL DEFAULT 0,
	trend_forecast REAL NOT NULL DEFAULT 0,
	window_forecast REAL NOT NULL DEFAULT 0,
	sentiment_score REAL NOT NULL DEFAULT 0,
	rsi REAL NOT NULL DEFAULT 0,
	macd REAL NOT NULL DEFAULT 0,
	all_time_high REAL NOT NULL DEFAULT 0,
	high_forecast_5d TEXT NOT NULL DEFAULT '[]',
	funding_rate REAL NOT NULL DEFAULT 0,
	open_interest REAL NOT NULL DEFAULT 0,
	long_short_ratio REAL NOT NULL DEFAULT 0,
	futures_volume_24h REAL NOT NULL DEFAULT 0,
	mvrv_ratio REAL NOT NULL DEFAULT 0,
	social_dominance REAL NOT NULL DEFAULT 0,
	daily_active_addresses REAL NOT NULL DEFAULT 0,
	galaxy_score REAL NOT NULL DEFAULT 0,
	alt_rank REAL NOT NULL DEFAULT 0,
	market_cap_rank REAL NOT NULL DEFAULT 0,
	community_score REAL NOT NULL DEFAULT 0,
	developer_score REAL NOT NULL DEFAULT 0,
	sentiment_up_pct REAL NOT NULL DEFAULT 0,
	circulating_supply REAL NOT NULL DEFAULT 0,
	transaction_volume_24h REAL NOT NULL DEFAULT 0,
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
	tp1 REAL NOT NULL DEFAULT 0,
	tp2 REAL NOT NULL DEFAULT 0,
	sl REAL NOT NULL DEFAULT 0,
	confidence REAL NOT NULL DEFAULT 0,
	rationale TEXT NOT NULL DEFAULT '',
	user_feedback TEXT,
	user_correction TEXT
);
CREATE INDEX IF NOT EXISTS idx_forecasts_run_date ON forecasts (run_date DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_forecasts_coin ON forecasts (coin);
`

const sqliteUpdateFeedback = `UPDATE forecasts SET user_feedback = ?, user_correction = ? WHERE id = ?`

// SQLiteStore persists snapshots in a local SQLite file. The driver allows
// one writer at a time, so writes are serialized with a mutex.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (and creates if needed) the database file at path.
// Use ":memory:" for an ephemeral database.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable wal: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, snapshots []model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendTx(ctx, s.db, insertStmt(sqliteTable, false), snapshots)
}

func (s *SQLiteStore) LoadAll(ctx context.Context) ([]model.Snapshot, error) {
	return loadAll(ctx, s.db, selectStmt(sqliteTable))
}

func (s *SQLiteStore) UpdateFeedback(ctx context.Context, id int64, feedback, correction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateFeedback(ctx, s.db, sqliteUpdateFeedback, id, feedback, correction)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
