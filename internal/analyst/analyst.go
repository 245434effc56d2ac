// Package analyst turns the day's computed numbers into a narrative market
// report via the chat model. All failures degrade to a well-formed
// placeholder report; the orchestrator never special-cases analyst errors.
package analyst

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/model"
)

// Chatter is the chat contract the analyst needs from the LLM client.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
	ChatJSON(ctx context.Context, system, user string) (string, error)
}

const reportSystemPrompt = `You are an expert crypto market analyst writing a daily briefing. Your tone is objective, data-driven, and insightful. Your task is to synthesize a comprehensive set of market data into a multi-part report.

You MUST provide your response in a single, valid JSON object with the following six keys:
1. "title": A compelling, news-style headline for today's analysis.
2. "price_action_recap": A 1-2 sentence summary of the recent price action, mentioning key support or resistance levels being tested.
3. "bullish_case": A markdown-formatted string. Detail the bullish signals from the provided data. For each point, start with a bolded title, cite the specific metric, and explain its positive implication.
4. "bearish_case": A markdown-formatted string. Detail the bearish signals in the same format.
5. "analyst_hypothesis": A concluding 2-3 sentence paragraph synthesizing the conflicting cases into a forward-looking hypothesis about the market's likely short-term direction.
6. "influential_headlines": An array of at most 3 headline title strings, copied verbatim from the provided top_headlines, that most influenced your analysis.`

// Analyst generates the daily narrative report.
type Analyst struct {
	llm Chatter
	log *logrus.Logger
}

// New creates an Analyst.
func New(llm Chatter, log *logrus.Logger) *Analyst {
	return &Analyst{llm: llm, log: log}
}

// reportReply mirrors the JSON object the model is instructed to return.
type reportReply struct {
	Title                string   `json:"title"`
	Recap                string   `json:"price_action_recap"`
	Bullish              string   `json:"bullish_case"`
	Bearish              string   `json:"bearish_case"`
	Hypothesis           string   `json:"analyst_hypothesis"`
	InfluentialHeadlines []string `json:"influential_headlines"`
}

// DailyReport builds the narrative report for one asset's briefing. On any
// API or parse failure it returns a placeholder report, never an error.
func (a *Analyst) DailyReport(ctx context.Context, b model.Briefing) model.Report {
	payload, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		a.log.Errorf("%s: marshal briefing: %v", b.CoinName, err)
		return fallbackReport("Briefing serialization failed.")
	}

	user := fmt.Sprintf(
		"Generate a comprehensive market analysis report for %s based on the following data.\nDirectly cite the data points in your analysis.\n\n```json\n%s\n```",
		b.CoinName, payload)

	raw, err := a.llm.ChatJSON(ctx, reportSystemPrompt, user)
	if err != nil {
		a.log.Errorf("%s: analyst model call failed: %v", b.CoinName, err)
		return fallbackReport("AI analysis could not be generated due to an API error.")
	}

	var reply reportReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		a.log.Errorf("%s: analyst reply parse failed: %v", b.CoinName, err)
		return fallbackReport("AI analysis could not be parsed.")
	}

	report := model.Report{
		Title:      reply.Title,
		Recap:      reply.Recap,
		Bullish:    reply.Bullish,
		Bearish:    reply.Bearish,
		Hypothesis: reply.Hypothesis,
	}
	if report.Title == "" {
		report.Title = "Daily Analysis"
	}
	if report.Hypothesis == "" {
		report.Hypothesis = "No hypothesis generated."
	}
	report.Summary = fmt.Sprintf("### Bullish Case\n%s\n\n### Bearish Case\n%s", reply.Bullish, reply.Bearish)

	matched := MatchHeadlines(reply.InfluentialHeadlines, b.TopHeadlines)
	links, err := json.Marshal(matched)
	if err != nil {
		links = []byte("[]")
	}
	report.NewsLinks = string(links)

	return report
}

// MatchHeadlines re-associates model-selected titles with their source URLs
// by exact string match against the original headline list, preserving the
// selection order. Titles with no exact match are dropped.
func MatchHeadlines(selected []string, headlines []model.NewsItem) []model.NewsItem {
	matched := make([]model.NewsItem, 0, len(selected))
	for _, title := range selected {
		for _, h := range headlines {
			if h.Title == title {
				matched = append(matched, model.NewsItem{Title: h.Title, URL: h.URL})
				break
			}
		}
	}
	return matched
}

func fallbackReport(reason string) model.Report {
	return model.Report{
		Title:      "Analysis Failed",
		Hypothesis: reason,
		Summary:    reason,
		NewsLinks:  "[]",
	}
}
