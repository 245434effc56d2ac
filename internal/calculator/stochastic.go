package calculator

import (
	"errors"

	"CryptoPulse/internal/model"
)

// CalculateStochastic computes the 14-period stochastic oscillator %K and
// its 3-period SMA signal %D.
func CalculateStochastic(bars []model.OHLCV) (k, d float64, err error) {
	const (
		window = 14
		smooth = 3
	)
	if len(bars) < window+smooth-1 {
		return 0, 0, errors.New("not enough data for stochastic calculation")
	}

	kAt := func(end int) float64 {
		high := bars[end].High
		low := bars[end].Low
		for i := end - window + 1; i <= end; i++ {
			if bars[i].High > high {
				high = bars[i].High
			}
			if bars[i].Low < low {
				low = bars[i].Low
			}
		}
		if high == low {
			return 50.0
		}
		return 100.0 * (bars[end].Close - low) / (high - low)
	}

	last := len(bars) - 1
	k = kAt(last)
	sum := 0.0
	for i := last - smooth + 1; i <= last; i++ {
		sum += kAt(i)
	}
	return k, sum / float64(smooth), nil
}
