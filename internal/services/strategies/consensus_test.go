package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradePulse/internal/domain/models"
)

func sigs(actions ...models.Action) []models.TradeSignal {
	out := make([]models.TradeSignal, len(actions))
	for i, a := range actions {
		out[i] = models.TradeSignal{Action: a}
		if a != models.ActionHold {
			out[i].Confidence = 0.8
		}
	}
	return out
}

func TestConsensusAllHold(t *testing.T) {
	all := make([]models.TradeSignal, Count)
	for i := range all {
		all[i] = models.TradeSignal{Action: models.ActionHold}
	}
	c := Consensus("BTCUSDT", 100, all)

	assert.Equal(t, models.ActionHold, c.Action)
	assert.Zero(t, c.Confidence)
	assert.Equal(t, "No clear consensus across strategies", c.Reason)
	assert.Zero(t, c.StopLoss)
	assert.Zero(t, c.TakeProfit)
	assert.Equal(t, 1, c.Leverage)
}

func TestConsensusTieBreaksToSell(t *testing.T) {
	// Equal buy/sell counts resolve to SELL: the aggregation only checks
	// for a buy majority. Pinned as a regression test.
	c := Consensus("BTCUSDT", 100, sigs(models.ActionBuy, models.ActionSell))
	assert.Equal(t, models.ActionSell, c.Action)
	assert.InDelta(t, 0.8*0.5, c.Confidence, 1e-9)
	assert.Equal(t, "Consensus: 1/2 strategies agree", c.Reason)
}

func TestConsensusBuyMajority(t *testing.T) {
	c := Consensus("ETHUSDT", 200, sigs(
		models.ActionBuy, models.ActionBuy, models.ActionBuy,
		models.ActionSell, models.ActionHold, models.ActionHold,
	))

	require.Equal(t, models.ActionBuy, c.Action)
	// avg confidence 0.8 over 4 non-HOLD, discounted by 3/4 agreement.
	assert.InDelta(t, 0.8*0.75, c.Confidence, 1e-9)
	assert.Equal(t, "Consensus: 3/4 strategies agree", c.Reason)
	assert.InDelta(t, 200*0.98, c.StopLoss, 1e-9)
	assert.InDelta(t, 200*1.03, c.TakeProfit, 1e-9)
	assert.Equal(t, 3, c.Leverage)
	assert.Equal(t, "15m-4h", c.Duration)
}

func TestConsensusSellMajorityLevels(t *testing.T) {
	c := Consensus("BTCUSDT", 100, sigs(models.ActionSell, models.ActionSell, models.ActionBuy))

	require.Equal(t, models.ActionSell, c.Action)
	assert.InDelta(t, 100*1.02, c.StopLoss, 1e-9)
	assert.InDelta(t, 100*0.97, c.TakeProfit, 1e-9)
}

func TestConsensusConfidenceAveragesAllNonHold(t *testing.T) {
	in := []models.TradeSignal{
		{Action: models.ActionBuy, Confidence: 0.9},
		{Action: models.ActionBuy, Confidence: 0.6},
		{Action: models.ActionSell, Confidence: 0.3},
	}
	c := Consensus("BTCUSDT", 100, in)

	require.Equal(t, models.ActionBuy, c.Action)
	// Mean over all three non-HOLD confidences, discounted by 2/3.
	assert.InDelta(t, (0.9+0.6+0.3)/3*(2.0/3.0), c.Confidence, 1e-9)
}

func TestEvaluateEndToEnd(t *testing.T) {
	s := risingSeries(120)
	bulk, consensus := Evaluate(s)

	require.Len(t, bulk.Signals, Count)
	require.Equal(t, Names(), bulk.Names)
	assert.Equal(t, s.Symbol, consensus.Symbol)
	assert.Equal(t, s.LastClose(), consensus.Price)
	assert.NotEqual(t, "", consensus.Reason)

	// A monotone rise always produces at least the trend-following BUY
	// votes, so the consensus is never the all-HOLD guard.
	assert.NotEqual(t, models.ActionHold, consensus.Action)
}
