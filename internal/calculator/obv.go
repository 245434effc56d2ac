package calculator

import (
	"errors"

	"CryptoPulse/internal/model"
)

// CalculateOBV computes the on-balance volume accumulator over the full series.
func CalculateOBV(bars []model.OHLCV) (float64, error) {
	if len(bars) < 2 {
		return 0, errors.New("not enough data for OBV calculation")
	}
	obv := 0.0
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
	}
	return obv, nil
}
