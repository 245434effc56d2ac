package calculator

import (
	"fmt"

	"CryptoPulse/internal/model"
)

// MinBars is the minimum series length required to compute the full
// indicator set (bounded by the Ichimoku senkou window plus MACD warm-up).
const MinBars = 61

// Compute calculates the full indicator set over the given bar series.
func Compute(bars []model.OHLCV) (model.IndicatorSet, error) {
	var ind model.IndicatorSet
	if len(bars) < MinBars {
		return ind, fmt.Errorf("need at least %d bars, got %d", MinBars, len(bars))
	}
	closes := extractCloses(bars)

	var err error
	if ind.SMA20, err = CalculateSMA(closes, 20); err != nil {
		return ind, fmt.Errorf("sma: %w", err)
	}
	if ind.EMA20, err = CalculateEMA(closes, 20); err != nil {
		return ind, fmt.Errorf("ema: %w", err)
	}
	if ind.RSI14, err = CalculateRSI(bars, 14); err != nil {
		return ind, fmt.Errorf("rsi: %w", err)
	}
	if ind.MACD, ind.MACDSignal, err = CalculateMACD(closes); err != nil {
		return ind, fmt.Errorf("macd: %w", err)
	}
	if ind.BBHigh, ind.BBLow, err = CalculateBollinger(closes); err != nil {
		return ind, fmt.Errorf("bollinger: %w", err)
	}
	if ind.StochK, ind.StochD, err = CalculateStochastic(bars); err != nil {
		return ind, fmt.Errorf("stochastic: %w", err)
	}
	if ind.OBV, err = CalculateOBV(bars); err != nil {
		return ind, fmt.Errorf("obv: %w", err)
	}
	if ind.IchimokuA, ind.IchimokuB, err = CalculateIchimoku(bars); err != nil {
		return ind, fmt.Errorf("ichimoku: %w", err)
	}
	return ind, nil
}
