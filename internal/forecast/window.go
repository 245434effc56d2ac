package forecast

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"CryptoPulse/internal/model"
)

const (
	// lookBack is the trailing window the lag regression trains on.
	lookBack = 60
	// lags is the number of autoregressive features per sample.
	lags = 5
	// WindowMinBars is the minimum history for the windowed forecaster:
	// lookBack transitions require one extra bar.
	WindowMinBars = lookBack + 1
)

// WindowForecast returns an independent next-day closing-price estimate
// from a lagged-feature linear regression fit over the last 60 bars.
// Fewer than 61 bars yields ErrNoForecast.
func WindowForecast(bars []model.OHLCV) (float64, error) {
	if len(bars) < WindowMinBars {
		return 0, ErrNoForecast
	}

	closes := make([]float64, WindowMinBars)
	for i, b := range bars[len(bars)-WindowMinBars:] {
		closes[i] = b.Close
	}

	// Min-max scale the window so the fit is conditioned the same way
	// regardless of price magnitude.
	lo, hi := closes[0], closes[0]
	for _, c := range closes {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	if hi == lo {
		// Flat series: the only defensible estimate is the last close.
		return closes[len(closes)-1], nil
	}
	scaled := make([]float64, len(closes))
	for i, c := range closes {
		scaled[i] = (c - lo) / (hi - lo)
	}

	// Training samples: predict scaled[t] from the previous `lags` values.
	n := len(scaled) - lags
	x := mat.NewDense(n, lags+1, nil)
	y := mat.NewVecDense(n, nil)
	for row := 0; row < n; row++ {
		t := row + lags
		x.Set(row, 0, 1) // intercept
		for j := 0; j < lags; j++ {
			x.Set(row, j+1, scaled[t-1-j])
		}
		y.SetVec(row, scaled[t])
	}

	var qr mat.QR
	qr.Factorize(x)
	theta := mat.NewVecDense(lags+1, nil)
	if err := qr.SolveVecTo(theta, false, y); err != nil {
		return 0, ErrNoForecast
	}

	pred := theta.AtVec(0)
	for j := 0; j < lags; j++ {
		pred += theta.AtVec(j+1) * scaled[len(scaled)-1-j]
	}
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return 0, ErrNoForecast
	}

	return pred*(hi-lo) + lo, nil
}
