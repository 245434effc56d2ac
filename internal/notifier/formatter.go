package notifier

import (
	"fmt"
	"strings"

	"CryptoPulse/internal/model"
)

// FormatRunSummary formats one day's snapshots into a Telegram message.
func FormatRunSummary(runDate string, snapshots []model.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>CryptoPulse Daily</b> | %s\n\n", runDate))

	if len(snapshots) == 0 {
		b.WriteString("No assets analyzed today.\n")
		return b.String()
	}

	for _, s := range snapshots {
		b.WriteString(fmt.Sprintf("<b>%s</b>  $%.2f\n", s.Coin, s.ActualPrice))
		b.WriteString(fmt.Sprintf("  Forecast: %.2f (trend) / %.2f (window)\n", s.TrendForecast, s.WindowForecast))
		b.WriteString(fmt.Sprintf("  RSI: %.1f | Sentiment: %+.2f\n", s.RSI, s.SentimentScore))
		b.WriteString(fmt.Sprintf("  Signal: %s (conf %.0f%%)\n", actionEmoji(s.Action), s.Confidence*100))
		if s.Action != string(model.ActionHold) && s.EntryRange != "N/A" {
			b.WriteString(fmt.Sprintf("  Entry %s | TP %.2f / %.2f | SL %.2f\n", s.EntryRange, s.TP1, s.TP2, s.StopLoss))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func actionEmoji(action string) string {
	switch model.Action(action) {
	case model.ActionBuy:
		return "🟢 BUY"
	case model.ActionSell:
		return "🔴 SELL"
	default:
		return "⚪ HOLD"
	}
}
