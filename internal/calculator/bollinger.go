package calculator

import (
	"errors"
	"math"
)

// CalculateBollinger computes the 20-period, 2-sigma Bollinger band pair.
func CalculateBollinger(prices []float64) (high, low float64, err error) {
	const (
		window = 20
		dev    = 2.0
	)
	if len(prices) < window {
		return 0, 0, errors.New("not enough data for Bollinger calculation")
	}

	mid, err := CalculateSMA(prices, window)
	if err != nil {
		return 0, 0, err
	}

	variance := 0.0
	for i := len(prices) - window; i < len(prices); i++ {
		d := prices[i] - mid
		variance += d * d
	}
	sigma := math.Sqrt(variance / float64(window))

	return mid + dev*sigma, mid - dev*sigma, nil
}
