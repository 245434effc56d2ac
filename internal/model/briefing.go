package model

// Briefing is the flattened snapshot of the day's computed values handed to
// the narrative and strategy generators.
type Briefing struct {
	CoinName       string     `json:"coin_name"`
	ActualPrice    float64    `json:"actual_price"`
	TrendForecast  float64    `json:"trend_forecast"`
	WindowForecast float64    `json:"window_forecast"`
	RSI            float64    `json:"rsi"`
	MACD           float64    `json:"macd"`
	FundingRate    float64    `json:"funding_rate"`
	OpenInterest   float64    `json:"open_interest"`
	LongShortRatio float64    `json:"long_short_ratio"`
	MVRVRatio      float64    `json:"mvrv_ratio"`
	SentimentScore float64    `json:"sentiment_score"`
	GalaxyScore    float64    `json:"galaxy_score"`
	AllTimeHigh    float64    `json:"all_time_high"`
	TopHeadlines   []NewsItem `json:"top_headlines"`
}
