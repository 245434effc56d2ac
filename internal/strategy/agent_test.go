package strategy

import (
	"context"
	"errors"
	"testing"

	"CryptoPulse/internal/logger"
	"CryptoPulse/internal/model"
)

type fakeChatter struct {
	reply string
	err   error
}

func (f *fakeChatter) ChatJSON(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func briefing() model.Briefing {
	return model.Briefing{
		CoinName:       "Bitcoin",
		ActualPrice:    67500,
		TrendForecast:  68200,
		WindowForecast: 68000,
		RSI:            62.5,
	}
}

func TestRecommend_ValidReply(t *testing.T) {
	reply := `{
		"action": "BUY",
		"entry_range": "67200 - 67800",
		"tp1": 69000,
		"tp2": 71000,
		"sl": 65800,
		"confidence": 0.72,
		"rationale": "Rising RSI with positive forecast spread."
	}`
	a := New(&fakeChatter{reply: reply}, logger.New("error"))

	rec := a.Recommend(context.Background(), briefing())
	if rec.Action != model.ActionBuy {
		t.Errorf("expected BUY, got %s", rec.Action)
	}
	if rec.TP1 != 69000 || rec.TP2 != 71000 || rec.StopLoss != 65800 {
		t.Errorf("unexpected levels: %+v", rec)
	}
	if rec.Confidence != 0.72 {
		t.Errorf("expected confidence 0.72, got %v", rec.Confidence)
	}
}

func TestRecommend_ClampsConfidence(t *testing.T) {
	a := New(&fakeChatter{reply: `{"action":"HOLD","entry_range":"N/A","tp1":0,"tp2":0,"sl":0,"confidence":1.8,"rationale":"r"}`}, logger.New("error"))
	rec := a.Recommend(context.Background(), briefing())
	if rec.Confidence != 1.0 {
		t.Errorf("expected confidence clamped to 1.0, got %v", rec.Confidence)
	}

	a = New(&fakeChatter{reply: `{"action":"SELL","entry_range":"68000 - 68500","tp1":66000,"tp2":64000,"sl":69500,"confidence":-0.2,"rationale":"r"}`}, logger.New("error"))
	rec = a.Recommend(context.Background(), briefing())
	if rec.Confidence != 0 {
		t.Errorf("expected confidence clamped to 0, got %v", rec.Confidence)
	}
	if rec.Action != model.ActionSell {
		t.Errorf("expected SELL, got %s", rec.Action)
	}
}

func TestRecommend_UnknownActionBecomesHold(t *testing.T) {
	a := New(&fakeChatter{reply: `{"action":"LONG","entry_range":"x","tp1":1,"tp2":2,"sl":3,"confidence":0.9,"rationale":"r"}`}, logger.New("error"))
	rec := a.Recommend(context.Background(), briefing())
	if rec.Action != model.ActionHold {
		t.Errorf("expected HOLD for unknown action, got %s", rec.Action)
	}
	if rec.EntryRange != "N/A" {
		t.Errorf("expected N/A entry range, got %q", rec.EntryRange)
	}
}

func TestRecommend_APIFailureGivesHold(t *testing.T) {
	a := New(&fakeChatter{err: errors.New("timeout")}, logger.New("error"))
	rec := a.Recommend(context.Background(), briefing())
	if rec.Action != model.ActionHold {
		t.Errorf("expected HOLD on API failure, got %s", rec.Action)
	}
	if rec.Rationale == "" {
		t.Error("fallback should carry an explanatory rationale")
	}
}

func TestRecommend_MalformedReplyGivesHold(t *testing.T) {
	a := New(&fakeChatter{reply: "sorry, cannot comply"}, logger.New("error"))
	rec := a.Recommend(context.Background(), briefing())
	if rec.Action != model.ActionHold {
		t.Errorf("expected HOLD on parse failure, got %s", rec.Action)
	}
	if rec.TP1 != 0 || rec.TP2 != 0 || rec.StopLoss != 0 {
		t.Errorf("fallback levels should be zero: %+v", rec)
	}
}
