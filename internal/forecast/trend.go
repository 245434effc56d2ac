// Package forecast provides stateless price forecasters. Every function
// refits from scratch on each call; there is no persisted model state.
package forecast

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"CryptoPulse/internal/model"
)

// ErrNoForecast is the "no result" sentinel: the series is too short or the
// fit degenerated. Callers substitute a schema default before persistence.
var ErrNoForecast = errors.New("no forecast available")

// trendMinBars is the minimum history for the trend fit.
const trendMinBars = 10

// TrendForecast returns a next-day closing-price point estimate from a
// least-squares trend over the full series.
func TrendForecast(bars []model.OHLCV) (float64, error) {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return fitAndPredict(closes, 1)
}

// TrendForecastHighs returns point estimates of the daily high for the next
// `periods` days, dated from the day after the last bar.
func TrendForecastHighs(bars []model.OHLCV, periods int) ([]model.ForecastPoint, error) {
	if len(bars) < trendMinBars {
		return nil, ErrNoForecast
	}
	highs := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
	}

	lastDay := bars[len(bars)-1].Time
	points := make([]model.ForecastPoint, 0, periods)
	for step := 1; step <= periods; step++ {
		v, err := fitAndPredict(highs, step)
		if err != nil {
			return nil, err
		}
		points = append(points, model.ForecastPoint{
			Date:  lastDay.AddDate(0, 0, step).Format(time.DateOnly),
			Value: v,
		})
	}
	return points, nil
}

// fitAndPredict fits y = alpha + beta*x over the series and extrapolates
// `steps` past the end.
func fitAndPredict(ys []float64, steps int) (float64, error) {
	if len(ys) < trendMinBars {
		return 0, ErrNoForecast
	}
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	pred := alpha + beta*float64(len(ys)-1+steps)
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return 0, ErrNoForecast
	}
	return pred, nil
}
