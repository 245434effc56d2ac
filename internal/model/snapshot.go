package model

import "github.com/guregu/null/v6"

// Action is the trade recommendation decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// ForecastPoint is one element of the multi-day high forecast. The canonical
// serialized form is a JSON array of these objects.
type ForecastPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// Report is the LLM-generated narrative market report.
type Report struct {
	Title      string `json:"title"`
	Recap      string `json:"price_action_recap"`
	Bullish    string `json:"bullish_case"`
	Bearish    string `json:"bearish_case"`
	Hypothesis string `json:"analyst_hypothesis"`
	// Summary combines the bullish and bearish cases for the flat DB field.
	Summary string `json:"-"`
	// NewsLinks is the serialized list of influential headlines.
	NewsLinks string `json:"-"`
}

// Recommendation is the LLM-generated structured trade setup.
type Recommendation struct {
	Action     Action  `json:"action"`
	EntryRange string  `json:"entry_range"`
	TP1        float64 `json:"tp1"`
	TP2        float64 `json:"tp2"`
	StopLoss   float64 `json:"sl"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Snapshot is one persisted row: one asset's complete state for one run
// date. Immutable after the run except for the two feedback fields.
type Snapshot struct {
	ID      int64  `json:"id"`
	RunDate string `json:"run_date"` // YYYY-MM-DD
	Coin    string `json:"coin"`

	ActualPrice    float64 `json:"actual_price"`
	TrendForecast  float64 `json:"trend_forecast"`
	WindowForecast float64 `json:"window_forecast"`
	SentimentScore float64 `json:"sentiment_score"`

	RSI            float64 `json:"rsi"`
	MACD           float64 `json:"macd"`
	AllTimeHigh    float64 `json:"all_time_high"`
	HighForecast5D string  `json:"high_forecast_5d"` // JSON []ForecastPoint

	FundingRate          float64 `json:"funding_rate"`
	OpenInterest         float64 `json:"open_interest"`
	LongShortRatio       float64 `json:"long_short_ratio"`
	FuturesVolume        float64 `json:"futures_volume_24h"`
	MVRVRatio            float64 `json:"mvrv_ratio"`
	SocialDominance      float64 `json:"social_dominance"`
	DailyActiveAddresses float64 `json:"daily_active_addresses"`
	GalaxyScore          float64 `json:"galaxy_score"`
	AltRank              float64 `json:"alt_rank"`
	MarketCapRank        float64 `json:"market_cap_rank"`
	CommunityScore       float64 `json:"community_score"`
	DeveloperScore       float64 `json:"developer_score"`
	SentimentUpPct       float64 `json:"sentiment_up_pct"`
	CirculatingSupply    float64 `json:"circulating_supply"`
	TransactionVolume    float64 `json:"transaction_volume_24h"`

	AnalysisSummary    string `json:"analysis_summary"`
	AnalysisHypothesis string `json:"analysis_hypothesis"`
	AnalysisNewsLinks  string `json:"analysis_news_links"`
	ReportTitle        string `json:"report_title"`
	ReportRecap        string `json:"report_recap"`
	ReportBullish      string `json:"report_bullish"`
	ReportBearish      string `json:"report_bearish"`
	ReportHypothesis   string `json:"report_hypothesis"`

	Action     string  `json:"action"`
	EntryRange string  `json:"entry_range"`
	TP1        float64 `json:"tp1"`
	TP2        float64 `json:"tp2"`
	StopLoss   float64 `json:"stop_loss"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`

	UserFeedback   null.String `json:"user_feedback"`
	UserCorrection null.String `json:"user_correction"`
}
