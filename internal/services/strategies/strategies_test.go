package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradePulse/internal/domain/models"
)

func findStrategy(t *testing.T, name string) Descriptor {
	t.Helper()
	for _, d := range Catalog() {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("strategy %q not in catalog", name)
	return Descriptor{}
}

func TestMovingAverageCrossOnRisingSeries(t *testing.T) {
	// 60 strictly increasing closes (100..159) with high=close+1, low=close-1.
	s := risingSeries(60)
	sig := findStrategy(t, "Moving Average Cross").Evaluate(s)

	assert.Equal(t, models.ActionBuy, sig.Action)
	assert.InDelta(t, 0.75, sig.Confidence, 1e-9, "two conditions at 0.8 each, capped at 0.75")
	assert.Equal(t, 159.0, sig.Price)
	assert.Less(t, sig.StopLoss, sig.Price)
	assert.Greater(t, sig.TakeProfit, sig.Price)
	assert.Equal(t, 3, sig.Leverage)
}

func TestRSIStrategiesHoldOnFlatSeries(t *testing.T) {
	// 30 identical closes: zero gains and zero losses pin RSI to exactly 50,
	// which classifies as HOLD everywhere.
	s := flatSeries(30, 100)
	for _, name := range []string{"Multi-Timeframe RSI", "Stochastic Reversal", "Double Confirmation"} {
		sig := findStrategy(t, name).Evaluate(s)
		assert.Equal(t, models.ActionHold, sig.Action, name)
		assert.Zero(t, sig.Confidence, name)
	}
}

func TestMACDStrategyGuardsBelow26Bars(t *testing.T) {
	s := risingSeries(25)
	sig := findStrategy(t, "MACD Trend Following").Evaluate(s)

	assert.Equal(t, models.ActionHold, sig.Action)
	assert.Zero(t, sig.Confidence)
	assert.Zero(t, sig.StopLoss)
	assert.Zero(t, sig.TakeProfit)
	assert.Equal(t, 1, sig.Leverage)
	assert.Equal(t, "N/A", sig.Duration)
	assert.Contains(t, sig.Reason, "requires at least 26 bars")
}

func TestIchimokuGuardsBelow52Bars(t *testing.T) {
	sig := findStrategy(t, "Ichimoku Cloud").Evaluate(risingSeries(51))
	assert.Equal(t, models.ActionHold, sig.Action)
	assert.Contains(t, sig.Reason, "requires at least 52 bars")
}

func TestTrendStrategiesAgreeOnStrongUptrend(t *testing.T) {
	s := risingSeries(120)
	for _, name := range []string{
		"Moving Average Cross",
		"MACD Trend Following",
		"EMA Ribbon",
		"Trend Strength SMA",
		"Market Structure",
		"Ichimoku Cloud",
		"Price Action Momentum",
	} {
		sig := findStrategy(t, name).Evaluate(s)
		assert.Equal(t, models.ActionBuy, sig.Action, name)
		assert.Positive(t, sig.Confidence, name)
	}
}

func TestOverboughtOscillatorsFadeTheUptrend(t *testing.T) {
	// RSI pinned at 100 and stochastic >80 on a monotone rise: the
	// mean-reversion family leans SELL while trend followers lean BUY.
	s := risingSeries(120)
	for _, name := range []string{"Multi-Timeframe RSI", "Stochastic Reversal"} {
		sig := findStrategy(t, name).Evaluate(s)
		assert.Equal(t, models.ActionSell, sig.Action, name)
	}
}

func TestATRBreakoutLevelsFromATR(t *testing.T) {
	// Force a breakout: flat range then a final bar well above it.
	s := flatSeries(30, 100)
	n := len(s.Close)
	s.Close[n-1] = 110
	s.High[n-1] = 111
	s.Low[n-1] = 99

	sig := findStrategy(t, "ATR Breakout").Evaluate(s)
	require.Equal(t, models.ActionBuy, sig.Action)
	assert.InDelta(t, 0.85, sig.Confidence, 1e-9)
	assert.Less(t, sig.StopLoss, sig.Price)
	assert.Greater(t, sig.TakeProfit, sig.Price)
	assert.Equal(t, 4, sig.Leverage)
}

func TestVWAPDeviationWithoutVolumeHolds(t *testing.T) {
	s := risingSeries(40)
	for i := range s.Volume {
		s.Volume[i] = 0
	}
	sig := findStrategy(t, "VWAP Deviation").Evaluate(s)
	assert.Equal(t, models.ActionHold, sig.Action)
	assert.Contains(t, sig.Reason, "no volume data")
}

func TestStrategyCapsAreRespected(t *testing.T) {
	// No strategy may exceed its confidence cap on any input.
	caps := map[string]float64{
		"Moving Average Cross": 0.75,
		"MACD Trend Following": 0.85,
		"Composite Momentum":   0.95,
		"Multi-Timeframe RSI":  0.8,
	}
	for _, series := range []models.Series{risingSeries(120), flatSeries(60, 100)} {
		for name, limit := range caps {
			sig := findStrategy(t, name).Evaluate(series)
			assert.LessOrEqual(t, sig.Confidence, limit, name)
		}
	}
}
