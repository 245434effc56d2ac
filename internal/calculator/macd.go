package calculator

import "errors"

// CalculateMACD computes the MACD(12,26) line and its 9-period signal line.
func CalculateMACD(prices []float64) (macd, signal float64, err error) {
	const (
		fast       = 12
		slow       = 26
		signalSpan = 9
	)
	if len(prices) < slow+signalSpan {
		return 0, 0, errors.New("not enough data for MACD calculation")
	}

	fastSeries, err := emaSeries(prices, fast)
	if err != nil {
		return 0, 0, err
	}
	slowSeries, err := emaSeries(prices, slow)
	if err != nil {
		return 0, 0, err
	}

	// MACD line is defined from the point the slow EMA exists.
	macdLine := make([]float64, 0, len(prices)-slow+1)
	for i := slow - 1; i < len(prices); i++ {
		macdLine = append(macdLine, fastSeries[i]-slowSeries[i])
	}

	signalSeries, err := emaSeries(macdLine, signalSpan)
	if err != nil {
		return 0, 0, err
	}
	return macdLine[len(macdLine)-1], signalSeries[len(signalSeries)-1], nil
}
