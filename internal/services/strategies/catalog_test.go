package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradePulse/internal/domain/models"
)

func risingSeries(n int) models.Series {
	s := models.Series{Symbol: "BTCUSDT"}
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		s.Close = append(s.Close, c)
		s.High = append(s.High, c+1)
		s.Low = append(s.Low, c-1)
		s.Volume = append(s.Volume, 1000+float64(i))
	}
	return s
}

func flatSeries(n int, price float64) models.Series {
	s := models.Series{Symbol: "BTCUSDT"}
	for i := 0; i < n; i++ {
		s.Close = append(s.Close, price)
		s.High = append(s.High, price)
		s.Low = append(s.Low, price)
		s.Volume = append(s.Volume, 1000)
	}
	return s
}

func TestCatalogSizeAndOrderAreFrozen(t *testing.T) {
	require.Len(t, Catalog(), Count)
	names := Names()
	require.Len(t, names, Count)

	// Spot-pin the positional contract: consumers zip results against this
	// list by index, so these must never move.
	assert.Equal(t, "Moving Average Cross", names[0])
	assert.Equal(t, "MACD Trend Following", names[1])
	assert.Equal(t, "Composite Momentum", names[22])
	assert.Equal(t, "Elliott Wave", names[23])
	assert.Equal(t, "Liquidation Heatmap", names[57])
}

func TestAllSignalsMatchesNamesPositionally(t *testing.T) {
	s := risingSeries(120)
	signals := AllSignals(s)
	require.Len(t, signals, Count)
	for i, sig := range signals {
		assert.Equal(t, s.Symbol, sig.Symbol, "signal %d (%s)", i, Names()[i])
	}
}

func TestHoldImpliesZeroConfidence(t *testing.T) {
	for _, series := range []models.Series{risingSeries(120), flatSeries(60, 100), risingSeries(5)} {
		for i, sig := range AllSignals(series) {
			if sig.Action == models.ActionHold {
				assert.Zero(t, sig.Confidence, "strategy %s", Names()[i])
			} else {
				assert.Positive(t, sig.Confidence, "strategy %s", Names()[i])
			}
		}
	}
}

func TestLevelsSitOnCorrectSideOfEntry(t *testing.T) {
	for _, series := range []models.Series{risingSeries(120), flatSeries(60, 100)} {
		for i, sig := range AllSignals(series) {
			name := Names()[i]
			switch sig.Action {
			case models.ActionBuy:
				assert.Less(t, sig.StopLoss, sig.Price, "%s stop", name)
				assert.Greater(t, sig.TakeProfit, sig.Price, "%s target", name)
			case models.ActionSell:
				assert.Greater(t, sig.StopLoss, sig.Price, "%s stop", name)
				assert.Less(t, sig.TakeProfit, sig.Price, "%s target", name)
			default:
				assert.Zero(t, sig.StopLoss, "%s stop", name)
				assert.Zero(t, sig.TakeProfit, "%s target", name)
			}
		}
	}
}

func TestInsufficientDataGuard(t *testing.T) {
	short := risingSeries(5)
	for i, d := range Catalog() {
		if d.Requires != "" {
			continue
		}
		sig := d.Evaluate(short)
		assert.Equal(t, models.ActionHold, sig.Action, "strategy %d", i)
		assert.Zero(t, sig.Confidence)
		assert.Zero(t, sig.StopLoss)
		assert.Zero(t, sig.TakeProfit)
		assert.Equal(t, 1, sig.Leverage)
		assert.Equal(t, "N/A", sig.Duration)
		assert.Contains(t, sig.Reason, d.Name)
		assert.Contains(t, sig.Reason, "requires at least")
	}
}

func TestCapabilityStubsAlwaysHold(t *testing.T) {
	series := risingSeries(200)
	stubs := 0
	for _, d := range Catalog() {
		if d.Requires == "" {
			continue
		}
		stubs++
		sig := d.Evaluate(series)
		assert.Equal(t, models.ActionHold, sig.Action, d.Name)
		assert.Zero(t, sig.Confidence, d.Name)
		assert.Zero(t, sig.StopLoss, d.Name)
		assert.Zero(t, sig.TakeProfit, d.Name)
		assert.Equal(t, 1, sig.Leverage, d.Name)
		assert.Equal(t, "N/A", sig.Duration, d.Name)
		assert.Equal(t, d.Name+" requires "+d.Requires, sig.Reason)
	}
	assert.Equal(t, 35, stubs)
}

func TestElliottWaveStubContract(t *testing.T) {
	var elliott Descriptor
	for _, d := range Catalog() {
		if d.Name == "Elliott Wave" {
			elliott = d
			break
		}
	}
	require.NotEmpty(t, elliott.Name)

	for _, series := range []models.Series{risingSeries(60), flatSeries(30, 100), risingSeries(5)} {
		sig := elliott.Evaluate(series)
		assert.Equal(t, models.ActionHold, sig.Action)
		assert.Zero(t, sig.Confidence)
		assert.Equal(t, "Elliott Wave requires chart pattern recognition", sig.Reason)
	}
}
