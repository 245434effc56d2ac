package analyst

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"CryptoPulse/internal/model"
)

const sentimentSystemPrompt = "You are a financial sentiment analyst. Based on the following news headlines, provide a single sentiment score from -1.0 (very negative) to 1.0 (very positive) for the cryptocurrency mentioned. Respond with only the numerical score and nothing else."

var scorePattern = regexp.MustCompile(`-?\d+\.?\d*`)

// SentimentScore scores recent news sentiment for a coin in [-1, 1].
// Returns 0.0 on any failure or when there are no headlines.
func (a *Analyst) SentimentScore(ctx context.Context, coinName string, headlines []model.NewsItem) float64 {
	if len(headlines) == 0 {
		a.log.Warnf("%s: no recent headlines, sentiment defaults to 0", coinName)
		return 0.0
	}

	var sb strings.Builder
	for _, h := range headlines {
		fmt.Fprintf(&sb, "Title: %s. Desc: %s\n", h.Title, h.Description)
	}
	user := fmt.Sprintf("Analyze the sentiment for %s from these articles:\n\n%s", coinName, sb.String())

	content, err := a.llm.Chat(ctx, sentimentSystemPrompt, user)
	if err != nil {
		a.log.Errorf("%s: sentiment model call failed: %v", coinName, err)
		return 0.0
	}

	match := scorePattern.FindString(content)
	if match == "" {
		a.log.Warnf("%s: could not parse sentiment score from reply %q", coinName, content)
		return 0.0
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}
	if score > 1.0 {
		score = 1.0
	}
	if score < -1.0 {
		score = -1.0
	}
	return score
}
