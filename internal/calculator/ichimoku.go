package calculator

import (
	"errors"

	"CryptoPulse/internal/model"
)

// CalculateIchimoku computes the senkou span A and B cloud lines at the
// latest bar, using the standard 9/26/52 windows (unshifted).
func CalculateIchimoku(bars []model.OHLCV) (spanA, spanB float64, err error) {
	const (
		tenkanWindow = 9
		kijunWindow  = 26
		senkouWindow = 52
	)
	if len(bars) < senkouWindow {
		return 0, 0, errors.New("not enough data for Ichimoku calculation")
	}

	midpoint := func(window int) float64 {
		start := len(bars) - window
		high := bars[start].High
		low := bars[start].Low
		for i := start + 1; i < len(bars); i++ {
			if bars[i].High > high {
				high = bars[i].High
			}
			if bars[i].Low < low {
				low = bars[i].Low
			}
		}
		return (high + low) / 2.0
	}

	tenkan := midpoint(tenkanWindow)
	kijun := midpoint(kijunWindow)
	spanA = (tenkan + kijun) / 2.0
	spanB = midpoint(senkouWindow)
	return spanA, spanB, nil
}
