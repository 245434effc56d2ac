package store

import (
	"context"
	"errors"
	"testing"

	"github.com/guregu/null/v6"

	"CryptoPulse/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return s
}

func snapshot(runDate, coin string, price float64) model.Snapshot {
	return model.Snapshot{
		RunDate:        runDate,
		Coin:           coin,
		ActualPrice:    price,
		TrendForecast:  price * 1.01,
		WindowForecast: price * 1.02,
		SentimentScore: 0.3,
		RSI:            55.2,
		MACD:           12.4,
		HighForecast5D: `[{"date":"2025-06-02","value":68000}]`,
		AnalysisSummary: "summary",
		ReportTitle:     "title",
		Action:          "BUY",
		EntryRange:      "67000 - 67500",
		TP1:             69000,
		TP2:             71000,
		StopLoss:        65000,
		Confidence:      0.7,
		Rationale:       "r",
		AnalysisNewsLinks: "[]",
	}
}

func TestAppendAndLoadAll_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch1 := []model.Snapshot{
		snapshot("2025-06-01", "BTC", 67000),
		snapshot("2025-06-01", "ETH", 3500),
	}
	batch2 := []model.Snapshot{
		snapshot("2025-06-02", "BTC", 68000),
	}
	if err := s.Append(ctx, batch1); err != nil {
		t.Fatalf("append batch1: %v", err)
	}
	if err := s.Append(ctx, batch2); err != nil {
		t.Fatalf("append batch2: %v", err)
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[0].RunDate != "2025-06-02" || got[0].Coin != "BTC" {
		t.Errorf("expected newest run first, got %s/%s", got[0].RunDate, got[0].Coin)
	}
	// Same run date: later insert (higher id) first.
	if got[1].Coin != "ETH" || got[2].Coin != "BTC" {
		t.Errorf("expected ETH then BTC within 2025-06-01, got %s then %s", got[1].Coin, got[2].Coin)
	}
	if got[0].ActualPrice != 68000 {
		t.Errorf("round-trip price mismatch: %v", got[0].ActualPrice)
	}
	if got[0].HighForecast5D != `[{"date":"2025-06-02","value":68000}]` {
		t.Errorf("round-trip forecast mismatch: %q", got[0].HighForecast5D)
	}
	if got[0].UserFeedback.Valid {
		t.Error("fresh row should have null feedback")
	}
}

func TestAppend_EmptyBatchIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, nil); err != nil {
		t.Fatalf("empty append should not error: %v", err)
	}
	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

func TestUpdateFeedback_OverwritesInPlace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, []model.Snapshot{snapshot("2025-06-01", "BTC", 67000)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	id := rows[0].ID

	if err := s.UpdateFeedback(ctx, id, "Denied", "Trend looks up, not down"); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := s.UpdateFeedback(ctx, id, "Confirmed", ""); err != nil {
		t.Fatalf("second update: %v", err)
	}

	rows, err = s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("feedback must update in place, got %d rows", len(rows))
	}
	if rows[0].UserFeedback != null.StringFrom("Confirmed") {
		t.Errorf("expected Confirmed, got %v", rows[0].UserFeedback)
	}
	if rows[0].UserCorrection != null.StringFrom("") {
		t.Errorf("expected empty correction, got %v", rows[0].UserCorrection)
	}
}

func TestUpdateFeedback_MissingRow(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateFeedback(context.Background(), 999, "Confirmed", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
