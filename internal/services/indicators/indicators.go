// Package indicators computes technical indicators over chronological price
// arrays. Every function is pure: it takes read-only windows plus a period
// and returns a neutral default when the window is too short. No function
// here ever returns an error or produces NaN/Inf; division guards resolve to
// the documented defaults.
package indicators

import (
	"math"

	"TradePulse/internal/domain/models"
)

// SMA returns the arithmetic mean of the last period samples, or 0 when
// fewer samples are available.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// EMA returns the exponential moving average seeded with the SMA of the
// first period samples, or 0 when fewer samples are available.
func EMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	ema := 0.0
	for _, v := range values[:period] {
		ema += v
	}
	ema /= float64(period)

	k := 2.0 / float64(period+1)
	for _, v := range values[period:] {
		ema = (v-ema)*k + ema
	}
	return ema
}

// RSI returns the Relative Strength Index over the last period price
// changes. Gains and losses are derived from successive differences across
// the whole series and simple-averaged over the last period entries (no
// Wilder smoothing). A series with fewer than period+1 samples yields the
// neutral 50; so does a flat window (zero gains and zero losses).
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50
	}

	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains = append(gains, d)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -d)
		}
	}

	avgGain := 0.0
	avgLoss := 0.0
	for _, g := range gains[len(gains)-period:] {
		avgGain += g
	}
	for _, l := range losses[len(losses)-period:] {
		avgLoss += l
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD returns the MACD line (EMA12 - EMA26), the signal line and the
// histogram. The signal line is an EMA(9) over only the last 26 closes —
// a deliberate simplification kept for compatibility with the strategy
// thresholds calibrated against it. Returns all zeros below 26 samples.
func MACD(closes []float64) models.MACDResult {
	if len(closes) < 26 {
		return models.MACDResult{}
	}
	macd := EMA(closes, 12) - EMA(closes, 26)
	signal := EMA(closes[len(closes)-26:], 9)
	return models.MACDResult{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}
}

// Bollinger returns the SMA(period) envelope at ±2 population standard
// deviations, or all zeros below period samples.
func Bollinger(closes []float64, period int) models.BollingerBands {
	if period <= 0 || len(closes) < period {
		return models.BollingerBands{}
	}
	middle := SMA(closes, period)

	variance := 0.0
	for _, v := range closes[len(closes)-period:] {
		d := v - middle
		variance += d * d
	}
	variance /= float64(period)
	band := 2 * math.Sqrt(variance)

	return models.BollingerBands{
		Upper:  middle + band,
		Middle: middle,
		Lower:  middle - band,
	}
}

// Stochastic returns %K: the position of the last close within the
// high/low range of the last period bars, in percent. A short window or a
// flat range (highest high equals lowest low) yields the neutral 50.
func Stochastic(closes, highs, lows []float64, period int) float64 {
	if period <= 0 || len(closes) < period || len(highs) < period || len(lows) < period {
		return 50
	}
	hh := HighestHigh(highs, period)
	ll := LowestLow(lows, period)
	if hh == ll {
		return 50
	}
	return (closes[len(closes)-1] - ll) / (hh - ll) * 100
}

// CCI returns the Commodity Channel Index over the last period bars using
// typical price (close+high+low)/3 and mean absolute deviation. A zero mean
// deviation or a short window yields 0.
func CCI(closes, highs, lows []float64, period int) float64 {
	if period <= 0 || len(closes) < period || len(highs) < period || len(lows) < period {
		return 0
	}

	tp := make([]float64, period)
	for i := 0; i < period; i++ {
		j := len(closes) - period + i
		tp[i] = (closes[j] + highs[len(highs)-period+i] + lows[len(lows)-period+i]) / 3
	}

	sma := 0.0
	for _, v := range tp {
		sma += v
	}
	sma /= float64(period)

	meanDev := 0.0
	for _, v := range tp {
		meanDev += math.Abs(v - sma)
	}
	meanDev /= float64(period)

	if meanDev == 0 {
		return 0
	}
	return (tp[period-1] - sma) / (0.015 * meanDev)
}

// ATR returns the Average True Range: the SMA over the last period true
// ranges, where true range is max(high-low, |high-prevClose|, |low-prevClose|).
// Yields 0 when fewer than period true ranges exist.
func ATR(highs, lows, closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period || len(highs) < period || len(lows) < period {
		return 0
	}

	n := len(closes)
	trs := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		tr := highs[i] - lows[i]
		if d := math.Abs(highs[i] - closes[i-1]); d > tr {
			tr = d
		}
		if d := math.Abs(lows[i] - closes[i-1]); d > tr {
			tr = d
		}
		trs = append(trs, tr)
	}
	if len(trs) < period {
		return 0
	}
	return SMA(trs, period)
}

// HighestHigh returns the maximum of the last period samples, or 0 when the
// window is shorter than period.
func HighestHigh(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	hh := values[len(values)-period]
	for _, v := range values[len(values)-period:] {
		if v > hh {
			hh = v
		}
	}
	return hh
}

// LowestLow returns the minimum of the last period samples, or 0 when the
// window is shorter than period.
func LowestLow(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	ll := values[len(values)-period]
	for _, v := range values[len(values)-period:] {
		if v < ll {
			ll = v
		}
	}
	return ll
}

// VWAP returns the volume-weighted average price over the last period bars
// using typical price, or 0 when volume sums to zero or the window is short.
func VWAP(closes, highs, lows, volumes []float64, period int) float64 {
	if period <= 0 || len(closes) < period || len(highs) < period ||
		len(lows) < period || len(volumes) < period {
		return 0
	}
	pv := 0.0
	vol := 0.0
	for i := 0; i < period; i++ {
		j := len(closes) - period + i
		tp := (closes[j] + highs[len(highs)-period+i] + lows[len(lows)-period+i]) / 3
		pv += tp * volumes[len(volumes)-period+i]
		vol += volumes[len(volumes)-period+i]
	}
	if vol == 0 {
		return 0
	}
	return pv / vol
}
