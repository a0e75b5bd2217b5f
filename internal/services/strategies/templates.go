package strategies

import (
	"fmt"
	"time"

	"TradePulse/internal/domain/models"
)

// vote accumulates per-condition BUY/SELL votes and a bounded confidence
// contribution for one strategy evaluation. Each condition that fires adds
// its weight (a classifier strength or a fixed constant) to the accumulator.
type vote struct {
	buy  int
	sell int
	acc  float64
}

func (v *vote) buyIf(cond bool, weight float64) {
	if cond {
		v.buy++
		v.acc += weight
	}
}

func (v *vote) sellIf(cond bool, weight float64) {
	if cond {
		v.sell++
		v.acc += weight
	}
}

// add counts a classifier result as a vote weighted by its strength.
func (v *vote) add(res models.IndicatorResult) {
	switch res.Classification {
	case models.ActionBuy:
		v.buy++
		v.acc += res.Strength
	case models.ActionSell:
		v.sell++
		v.acc += res.Strength
	}
}

// action resolves the majority vote; equal counts (including zero votes)
// resolve to HOLD at the strategy level.
func (v *vote) action() models.Action {
	switch {
	case v.buy > v.sell:
		return models.ActionBuy
	case v.sell > v.buy:
		return models.ActionSell
	default:
		return models.ActionHold
	}
}

// confidence divides the accumulator by the number of conditions the
// strategy considered and caps the result. Caps and divisors are fixed per
// strategy and are part of its calibration.
func (v *vote) confidence(conditions int, limit float64) float64 {
	if conditions <= 0 {
		return 0
	}
	c := v.acc / float64(conditions)
	if c > limit {
		c = limit
	}
	return c
}

// profile fixes a strategy's risk parameters: percentage stop/target offsets
// from entry, position leverage, and the holding-duration label.
type profile struct {
	stopPct   float64
	targetPct float64
	leverage  int
	duration  string
}

// signal assembles the final TradeSignal from a resolved vote. HOLD carries
// zero confidence and no levels.
func (v *vote) signal(s models.Series, conditions int, limit float64, p profile, reason string) models.TradeSignal {
	act := v.action()
	price := s.LastClose()
	if act == models.ActionHold {
		return holdSignal(s.Symbol, price, reason)
	}
	sl, tp := percentLevels(price, act, p.stopPct, p.targetPct)
	return models.TradeSignal{
		Symbol:     s.Symbol,
		Action:     act,
		Confidence: v.confidence(conditions, limit),
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   p.duration,
		Reason:     reason,
		StopLoss:   sl,
		TakeProfit: tp,
		Leverage:   p.leverage,
	}
}

// percentLevels places the stop and target on the correct side of entry for
// the given action.
func percentLevels(price float64, act models.Action, stopPct, targetPct float64) (stop, target float64) {
	if act == models.ActionSell {
		return price * (1 + stopPct), price * (1 - targetPct)
	}
	return price * (1 - stopPct), price * (1 + targetPct)
}

// sideLevel returns level when it sits on the correct side of entry for the
// action, otherwise the percentage fallback. Used where a strategy derives
// levels from a computed structure (band edge, pivot, swing extreme) that can
// end up on the wrong side of the current price.
func sideLevel(price, level float64, act models.Action, below bool, fallbackPct float64) float64 {
	wantBelow := below
	if act == models.ActionSell {
		wantBelow = !below
	}
	if level > 0 && ((wantBelow && level < price) || (!wantBelow && level > price)) {
		return level
	}
	if wantBelow {
		return price * (1 - fallbackPct)
	}
	return price * (1 + fallbackPct)
}

// holdSignal is the neutral outcome of a strategy that found no edge.
func holdSignal(symbol string, price float64, reason string) models.TradeSignal {
	return models.TradeSignal{
		Symbol:    symbol,
		Action:    models.ActionHold,
		Price:     price,
		Timestamp: time.Now(),
		Duration:  "N/A",
		Reason:    reason,
		Leverage:  1,
	}
}

// guardSignal is the short-circuit result for insufficient input data.
func guardSignal(symbol string, price float64, name string, minBars int) models.TradeSignal {
	return holdSignal(symbol, price, fmt.Sprintf("%s requires at least %d bars", name, minBars))
}
