package model

// IndicatorSet holds the latest value of each technical indicator computed
// from the trailing price window. Window sizes are fixed constants.
type IndicatorSet struct {
	SMA20      float64
	EMA20      float64
	RSI14      float64
	MACD       float64
	MACDSignal float64
	BBHigh     float64
	BBLow      float64
	StochK     float64
	StochD     float64
	OBV        float64
	IchimokuA  float64
	IchimokuB  float64
}
