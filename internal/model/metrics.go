package model

// Provider metric groups are per-run scalars attached to the snapshot.
// They are never broadcast onto the historical price frame. Each group
// carries a Fetched flag so a failed provider is distinguishable from a
// measured zero at collection time; the persisted row still stores the
// zero default for schema compatibility.

// DerivativesMetrics holds futures market data (CoinGlass).
type DerivativesMetrics struct {
	FundingRate    float64 // percent
	OpenInterest   float64 // USD
	LongShortRatio float64
	FuturesVolume  float64 // 24h, USD
	Fetched        bool
}

// OnChainMetrics holds on-chain valuation and social data (Santiment).
type OnChainMetrics struct {
	MVRVRatio            float64
	SocialDominance      float64 // percent
	DailyActiveAddresses float64
	Fetched              bool
}

// SocialMetrics holds social-intelligence rankings (LunarCrush).
type SocialMetrics struct {
	GalaxyScore float64 // 0-100
	AltRank     float64
	Fetched     bool
}

// FundamentalMetrics holds project-health and market data (CoinGecko).
type FundamentalMetrics struct {
	MarketCapRank     float64
	CommunityScore    float64
	DeveloperScore    float64
	SentimentUpPct    float64
	CirculatingSupply float64
	AllTimeHigh       float64
	TransactionVolume float64 // 24h, USD
	Fetched           bool
}
