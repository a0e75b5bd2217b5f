package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rising(n int, start float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSMA(t *testing.T) {
	assert.Equal(t, 0.0, SMA([]float64{1, 2}, 3), "short window defaults to 0")
	assert.InDelta(t, 4.0, SMA([]float64{1, 3, 4, 5}, 3), 1e-9)
	assert.InDelta(t, 100.0, SMA(flat(20, 100), 20), 1e-9)
}

func TestEMA(t *testing.T) {
	assert.Equal(t, 0.0, EMA(rising(5, 100), 9), "short window defaults to 0")

	// Seed equals the SMA of the first period samples.
	vals := []float64{2, 4, 6}
	assert.InDelta(t, 4.0, EMA(vals, 3), 1e-9)

	// One extra sample moves the seed by (price-ema)*2/(p+1).
	vals = []float64{2, 4, 6, 8}
	assert.InDelta(t, 4.0+(8.0-4.0)*0.5, EMA(vals, 3), 1e-9)

	// Flat series stays pinned at the level.
	assert.InDelta(t, 100.0, EMA(flat(40, 100), 12), 1e-9)
}

func TestRSIInsufficientData(t *testing.T) {
	assert.Equal(t, 50.0, RSI(rising(14, 100), 14), "needs period+1 samples")
}

func TestRSIFlatSeriesIsExactly50(t *testing.T) {
	assert.Equal(t, 50.0, RSI(flat(30, 100), 14))
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 103, 108, 107, 110, 109, 112, 111, 115, 114, 118, 117, 120}
	rsi := RSI(closes, 14)
	require.GreaterOrEqual(t, rsi, 0.0)
	require.LessOrEqual(t, rsi, 100.0)
}

func TestRSIAllGainsIs100(t *testing.T) {
	assert.Equal(t, 100.0, RSI(rising(20, 100), 14))
}

func TestMACDInsufficientData(t *testing.T) {
	m := MACD(rising(25, 100))
	assert.Zero(t, m.MACD)
	assert.Zero(t, m.Signal)
	assert.Zero(t, m.Histogram)
}

func TestMACDSignalLineUsesLast26Closes(t *testing.T) {
	closes := rising(60, 100)
	m := MACD(closes)

	// The signal line is an EMA(9) over the trailing 26 closes, not a
	// smoothed EMA of the MACD line. Pinned: strategies are calibrated
	// against this computation.
	assert.InDelta(t, EMA(closes[len(closes)-26:], 9), m.Signal, 1e-9)
	assert.InDelta(t, EMA(closes, 12)-EMA(closes, 26), m.MACD, 1e-9)
	assert.InDelta(t, m.MACD-m.Signal, m.Histogram, 1e-9)
	assert.Positive(t, m.MACD, "rising series has a positive MACD line")
}

func TestBollinger(t *testing.T) {
	bb := Bollinger(rising(10, 100), 20)
	assert.Zero(t, bb.Middle, "short window defaults to zeros")

	bb = Bollinger(flat(20, 100), 20)
	assert.InDelta(t, 100.0, bb.Middle, 1e-9)
	assert.InDelta(t, 100.0, bb.Upper, 1e-9, "zero deviation collapses the bands")
	assert.InDelta(t, 100.0, bb.Lower, 1e-9)

	// Population standard deviation of 1..20 is sqrt(33.25).
	bb = Bollinger(rising(20, 1), 20)
	want := 2 * math.Sqrt(33.25)
	assert.InDelta(t, 10.5+want, bb.Upper, 1e-9)
	assert.InDelta(t, 10.5-want, bb.Lower, 1e-9)
}

func TestStochasticDefaults(t *testing.T) {
	assert.Equal(t, 50.0, Stochastic(rising(5, 100), rising(5, 101), rising(5, 99), 14), "short window")
	assert.Equal(t, 50.0, Stochastic(flat(14, 100), flat(14, 100), flat(14, 100), 14), "flat range never divides by zero")
}

func TestStochasticBounds(t *testing.T) {
	closes := rising(20, 100)
	highs := rising(20, 101)
	lows := rising(20, 99)
	k := Stochastic(closes, highs, lows, 14)
	require.GreaterOrEqual(t, k, 0.0)
	require.LessOrEqual(t, k, 100.0)
	assert.Greater(t, k, 80.0, "close at the top of a rising range")
}

func TestCCI(t *testing.T) {
	assert.Zero(t, CCI(rising(10, 100), rising(10, 101), rising(10, 99), 20), "short window")
	assert.Zero(t, CCI(flat(20, 100), flat(20, 100), flat(20, 100), 20), "zero mean deviation")

	cci := CCI(rising(30, 100), rising(30, 101), rising(30, 99), 20)
	assert.Positive(t, cci, "typical price above its SMA in an uptrend")
}

func TestATR(t *testing.T) {
	assert.Zero(t, ATR(rising(10, 101), rising(10, 99), rising(10, 100), 14), "short window")

	// Rising 1-per-bar series with high=close+1, low=close-1: every true
	// range is max(2, 2, 1) = 2.
	closes := rising(30, 100)
	highs := rising(30, 101)
	lows := rising(30, 99)
	assert.InDelta(t, 2.0, ATR(highs, lows, closes, 14), 1e-9)
}

func TestHighestLowest(t *testing.T) {
	vals := []float64{3, 9, 1, 7, 5}
	assert.Equal(t, 9.0, HighestHigh(vals, 5))
	assert.Equal(t, 1.0, LowestLow(vals, 5))
	assert.Equal(t, 7.0, HighestHigh(vals, 2))
	assert.Equal(t, 5.0, LowestLow(vals, 2))
	assert.Zero(t, HighestHigh(vals, 6))
}

func TestVWAP(t *testing.T) {
	assert.Zero(t, VWAP(rising(20, 100), rising(20, 101), rising(20, 99), flat(20, 0), 20), "zero volume")

	closes := flat(20, 100)
	vwap := VWAP(closes, closes, closes, flat(20, 5), 20)
	assert.InDelta(t, 100.0, vwap, 1e-9)
}
