package strategies

import (
	"fmt"
	"time"

	"TradePulse/internal/domain/models"
)

// Consensus reduces the catalog's signals to one decision. HOLD outputs are
// discarded; the remaining BUY/SELL votes are tallied and equal counts
// resolve to SELL (the comparison only checks for a buy majority — a pinned
// tie-break rule, not incidental behavior). Confidence is the mean of the
// non-HOLD confidences discounted by how lopsided the vote is.
func Consensus(symbol string, price float64, signals []models.TradeSignal) models.TradeSignal {
	buyCount, sellCount := 0, 0
	nonHold := 0
	confSum := 0.0
	for _, sig := range signals {
		if sig.Action == models.ActionHold {
			continue
		}
		nonHold++
		confSum += sig.Confidence
		if sig.Action == models.ActionBuy {
			buyCount++
		} else {
			sellCount++
		}
	}

	if nonHold == 0 {
		return holdSignal(symbol, price, "No clear consensus across strategies")
	}

	action := models.ActionSell
	winning := sellCount
	if buyCount > sellCount {
		action = models.ActionBuy
		winning = buyCount
	}

	avgConf := confSum / float64(nonHold)
	confidence := avgConf * (float64(winning) / float64(nonHold))

	stop, target := percentLevels(price, action, 0.02, 0.03)
	return models.TradeSignal{
		Symbol:     symbol,
		Action:     action,
		Confidence: confidence,
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   "15m-4h",
		Reason:     fmt.Sprintf("Consensus: %d/%d strategies agree", winning, nonHold),
		StopLoss:   stop,
		TakeProfit: target,
		Leverage:   3,
	}
}

// Evaluate runs the full catalog and the consensus over one series.
func Evaluate(s models.Series) (models.StrategySignals, models.TradeSignal) {
	signals := AllSignals(s)
	consensus := Consensus(s.Symbol, s.LastClose(), signals)
	return models.StrategySignals{
		Symbol:    s.Symbol,
		Names:     Names(),
		Signals:   signals,
		Timestamp: time.Now(),
	}, consensus
}
