package analyst

import (
	"context"
	"errors"
	"strings"
	"testing"

	"CryptoPulse/internal/logger"
	"CryptoPulse/internal/model"
)

// fakeChatter returns a canned reply or error for both chat methods.
type fakeChatter struct {
	reply string
	err   error
}

func (f *fakeChatter) Chat(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func (f *fakeChatter) ChatJSON(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func TestMatchHeadlines_ExactMatchOnly(t *testing.T) {
	headlines := []model.NewsItem{
		{Title: "A", URL: "u1"},
		{Title: "B", URL: "u2"},
	}
	got := MatchHeadlines([]string{"B", "C"}, headlines)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(got))
	}
	if got[0].Title != "B" || got[0].URL != "u2" {
		t.Errorf("expected {B u2}, got %+v", got[0])
	}
}

func TestMatchHeadlines_NoFuzzyMatch(t *testing.T) {
	headlines := []model.NewsItem{{Title: "Bitcoin rallies past 70k", URL: "u1"}}
	got := MatchHeadlines([]string{"bitcoin rallies past 70k", "Bitcoin rallies"}, headlines)
	if len(got) != 0 {
		t.Errorf("case or partial variants must not match, got %+v", got)
	}
}

func TestMatchHeadlines_PreservesSelectionOrder(t *testing.T) {
	headlines := []model.NewsItem{
		{Title: "A", URL: "u1"},
		{Title: "B", URL: "u2"},
		{Title: "C", URL: "u3"},
	}
	got := MatchHeadlines([]string{"C", "A"}, headlines)
	if len(got) != 2 || got[0].Title != "C" || got[1].Title != "A" {
		t.Errorf("expected [C A], got %+v", got)
	}
}

func TestDailyReport_ValidReply(t *testing.T) {
	reply := `{
		"title": "BTC Tests Resistance",
		"price_action_recap": "Price is consolidating below 70k.",
		"bullish_case": "**On-Chain Accumulation**: MVRV below 2.",
		"bearish_case": "**Overheated Derivatives**: funding elevated.",
		"analyst_hypothesis": "Chop likely.",
		"influential_headlines": ["B"]
	}`
	a := New(&fakeChatter{reply: reply}, logger.New("error"))

	b := model.Briefing{
		CoinName: "Bitcoin",
		TopHeadlines: []model.NewsItem{
			{Title: "A", URL: "u1"},
			{Title: "B", URL: "u2"},
		},
	}
	report := a.DailyReport(context.Background(), b)

	if report.Title != "BTC Tests Resistance" {
		t.Errorf("unexpected title: %q", report.Title)
	}
	if !strings.Contains(report.Summary, "### Bullish Case") || !strings.Contains(report.Summary, "### Bearish Case") {
		t.Errorf("summary should combine both cases: %q", report.Summary)
	}
	if !strings.Contains(report.NewsLinks, `"u2"`) || strings.Contains(report.NewsLinks, `"u1"`) {
		t.Errorf("news links should contain only matched headline URLs: %q", report.NewsLinks)
	}
}

func TestDailyReport_FencedReplyStillUsable(t *testing.T) {
	// The llm client strips fences before the analyst sees the reply; a
	// reply that is already clean JSON must parse as-is.
	reply := `{"title":"T","price_action_recap":"r","bullish_case":"b","bearish_case":"be","analyst_hypothesis":"h","influential_headlines":[]}`
	a := New(&fakeChatter{reply: reply}, logger.New("error"))
	report := a.DailyReport(context.Background(), model.Briefing{CoinName: "Bitcoin"})
	if report.Title != "T" {
		t.Errorf("unexpected title: %q", report.Title)
	}
	if report.NewsLinks != "[]" {
		t.Errorf("expected empty news links, got %q", report.NewsLinks)
	}
}

func TestDailyReport_APIFailureGivesPlaceholder(t *testing.T) {
	a := New(&fakeChatter{err: errors.New("connection refused")}, logger.New("error"))
	report := a.DailyReport(context.Background(), model.Briefing{CoinName: "Bitcoin"})
	if report.Title != "Analysis Failed" {
		t.Errorf("expected placeholder title, got %q", report.Title)
	}
	if report.NewsLinks != "[]" {
		t.Errorf("expected empty news links, got %q", report.NewsLinks)
	}
}

func TestDailyReport_MalformedReplyGivesPlaceholder(t *testing.T) {
	a := New(&fakeChatter{reply: "I cannot do that"}, logger.New("error"))
	report := a.DailyReport(context.Background(), model.Briefing{CoinName: "Bitcoin"})
	if report.Title != "Analysis Failed" {
		t.Errorf("expected placeholder title, got %q", report.Title)
	}
}

func TestSentimentScore_ParsesAndClamps(t *testing.T) {
	log := logger.New("error")
	headlines := []model.NewsItem{{Title: "A", Description: "d", URL: "u"}}

	cases := []struct {
		reply string
		want  float64
	}{
		{"0.75", 0.75},
		{"-0.4", -0.4},
		{"Score: 2.5", 1.0},
		{"-3", -1.0},
	}
	for _, tc := range cases {
		a := New(&fakeChatter{reply: tc.reply}, log)
		got := a.SentimentScore(context.Background(), "Bitcoin", headlines)
		if got != tc.want {
			t.Errorf("reply %q: expected %.2f, got %.2f", tc.reply, tc.want, got)
		}
	}
}

func TestSentimentScore_FailuresDefaultToZero(t *testing.T) {
	log := logger.New("error")
	headlines := []model.NewsItem{{Title: "A", URL: "u"}}

	a := New(&fakeChatter{err: errors.New("timeout")}, log)
	if got := a.SentimentScore(context.Background(), "Bitcoin", headlines); got != 0 {
		t.Errorf("API failure should give 0, got %.2f", got)
	}

	a = New(&fakeChatter{reply: "no number here"}, log)
	if got := a.SentimentScore(context.Background(), "Bitcoin", headlines); got != 0 {
		t.Errorf("unparseable reply should give 0, got %.2f", got)
	}

	a = New(&fakeChatter{reply: "0.9"}, log)
	if got := a.SentimentScore(context.Background(), "Bitcoin", nil); got != 0 {
		t.Errorf("no headlines should give 0, got %.2f", got)
	}
}
