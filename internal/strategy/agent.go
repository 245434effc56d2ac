// Package strategy turns the day's briefing into a structured trade
// recommendation. Like the analyst, it degrades to a safe HOLD on failure
// instead of returning an error.
package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/model"
)

// Chatter is the chat contract the strategy agent needs from the LLM client.
type Chatter interface {
	ChatJSON(ctx context.Context, system, user string) (string, error)
}

const strategySystemPrompt = `You are a disciplined crypto trading strategist. Based on the market data provided, produce a concrete trade recommendation for the next 24-48 hours.

You MUST respond with a single, valid JSON object with exactly these seven keys:
1. "action": one of "BUY", "SELL", or "HOLD".
2. "entry_range": a string price range for entering the position, e.g. "67200 - 67800". Use "N/A" for HOLD.
3. "tp1": the first take-profit level as a number (0 for HOLD).
4. "tp2": the second take-profit level as a number (0 for HOLD).
5. "sl": the stop-loss level as a number (0 for HOLD).
6. "confidence": your confidence in this setup as a number between 0.0 and 1.0.
7. "rationale": a 2-3 sentence justification citing the specific data points that drove the decision.

Levels must be consistent with the action: for BUY, sl < entry < tp1 < tp2; for SELL, tp2 < tp1 < entry < sl.`

// Agent generates trade recommendations.
type Agent struct {
	llm Chatter
	log *logrus.Logger
}

// New creates an Agent.
func New(llm Chatter, log *logrus.Logger) *Agent {
	return &Agent{llm: llm, log: log}
}

// Recommend builds a trade recommendation from the briefing. On any API or
// parse failure it returns a HOLD with an explanatory rationale.
func (a *Agent) Recommend(ctx context.Context, b model.Briefing) model.Recommendation {
	payload, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		a.log.Errorf("%s: marshal briefing: %v", b.CoinName, err)
		return fallbackRecommendation()
	}

	user := fmt.Sprintf("Generate a trade recommendation for %s from this data:\n\n```json\n%s\n```", b.CoinName, payload)

	raw, err := a.llm.ChatJSON(ctx, strategySystemPrompt, user)
	if err != nil {
		a.log.Errorf("%s: strategy model call failed: %v", b.CoinName, err)
		return fallbackRecommendation()
	}

	var rec model.Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		a.log.Errorf("%s: strategy reply parse failed: %v", b.CoinName, err)
		return fallbackRecommendation()
	}

	switch rec.Action {
	case model.ActionBuy, model.ActionSell, model.ActionHold:
	default:
		a.log.Warnf("%s: strategy returned unknown action %q, downgrading to HOLD", b.CoinName, rec.Action)
		return fallbackRecommendation()
	}

	if rec.Confidence < 0 {
		rec.Confidence = 0
	}
	if rec.Confidence > 1 {
		rec.Confidence = 1
	}
	if rec.EntryRange == "" {
		rec.EntryRange = "N/A"
	}
	return rec
}

func fallbackRecommendation() model.Recommendation {
	return model.Recommendation{
		Action:     model.ActionHold,
		EntryRange: "N/A",
		Confidence: 0,
		Rationale:  "Strategy generation failed; defaulting to HOLD.",
	}
}
