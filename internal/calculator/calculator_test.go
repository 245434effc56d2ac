package calculator

import (
	"math"
	"testing"
	"time"

	"CryptoPulse/internal/model"
)

func makeBars(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   base.AddDate(0, 0, i),
			Open:   c * 0.999,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}
	return bars
}

func trendingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	return closes
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	sma, err := CalculateSMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sma != 4 {
		t.Errorf("expected SMA 4, got %.4f", sma)
	}

	if _, err := CalculateSMA(prices, 10); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := CalculateSMA(prices, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateEMA_ConstantSeries(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 42
	}
	ema, err := CalculateEMA(prices, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ema-42) > 1e-9 {
		t.Errorf("EMA of constant series should be the constant, got %.6f", ema)
	}
}

func TestCalculateRSI_Extremes(t *testing.T) {
	up := makeBars(trendingCloses(40))
	rsi, err := CalculateRSI(up, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("strictly rising series should give RSI 100, got %.2f", rsi)
	}

	short := makeBars(trendingCloses(10))
	rsi, err = CalculateRSI(short, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50 {
		t.Errorf("insufficient data should default to 50, got %.2f", rsi)
	}
}

func TestCalculateBollinger_BracketsSMA(t *testing.T) {
	closes := trendingCloses(61)
	high, low, err := CalculateBollinger(closes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mid, _ := CalculateSMA(closes, 20)
	if !(low < mid && mid < high) {
		t.Errorf("expected low < mid < high, got %.2f / %.2f / %.2f", low, mid, high)
	}
}

func TestCalculateOBV_Directional(t *testing.T) {
	up := makeBars(trendingCloses(10))
	obv, err := CalculateOBV(up)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obv <= 0 {
		t.Errorf("rising series should accumulate positive OBV, got %.2f", obv)
	}
}

func TestCompute_FullSet(t *testing.T) {
	bars := makeBars(trendingCloses(61))
	ind, err := Compute(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := []float64{
		ind.SMA20, ind.EMA20, ind.RSI14, ind.MACD, ind.MACDSignal,
		ind.BBHigh, ind.BBLow, ind.StochK, ind.StochD, ind.OBV,
		ind.IchimokuA, ind.IchimokuB,
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("indicator %d is not finite: %v", i, v)
		}
	}
	if ind.MACD <= 0 {
		t.Errorf("rising series should have positive MACD, got %.4f", ind.MACD)
	}
}

func TestCompute_InsufficientData(t *testing.T) {
	bars := makeBars(trendingCloses(30))
	if _, err := Compute(bars); err == nil {
		t.Error("expected error for series shorter than MinBars")
	}
}
