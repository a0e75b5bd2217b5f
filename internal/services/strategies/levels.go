package strategies

import (
	"math"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicators"
)

// pivotPointBounce trades classic floor-trader pivots computed from the
// previous bar, entering bounces off S1/R1 with levels at the pivot grid.
func pivotPointBounce(s models.Series) models.TradeSignal {
	n := s.Len()
	price := s.LastClose()

	pivot := (s.High[n-2] + s.Low[n-2] + s.Close[n-2]) / 3
	r1 := 2*pivot - s.Low[n-2]
	s1 := 2*pivot - s.High[n-2]

	var v vote
	v.buyIf(near(price, s1, 0.005), 0.8)
	v.sellIf(near(price, r1, 0.005), 0.8)
	v.buyIf(price > pivot, 0.6)
	v.sellIf(price < pivot, 0.6)

	act := v.action()
	if act == models.ActionHold {
		return holdSignal(s.Symbol, price, "price between pivot levels")
	}

	return models.TradeSignal{
		Symbol:     s.Symbol,
		Action:     act,
		Confidence: v.confidence(2, 0.8),
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   "1h-4h",
		Reason:     "pivot point bounce",
		StopLoss:   sideLevel(price, s1, act, true, 0.015),
		TakeProfit: sideLevel(price, r1, act, false, 0.03),
		Leverage:   2,
	}
}

// fibonacciRetracement buys pullbacks into the 38.2/61.8 zones of the last
// 30-bar swing in an uptrend, and fades rallies into them in a downtrend.
func fibonacciRetracement(s models.Series) models.TradeSignal {
	n := s.Len()
	price := s.LastClose()
	hh := indicators.HighestHigh(s.High, 30)
	ll := indicators.LowestLow(s.Low, 30)
	swing := hh - ll
	if swing <= 0 {
		return holdSignal(s.Symbol, price, "no price swing to retrace")
	}

	uptrend := s.Close[n-1] > s.Close[n-30]
	fib382 := hh - 0.382*swing
	fib618 := hh - 0.618*swing

	var v vote
	v.buyIf(uptrend && near(price, fib618, 0.01), 0.85)
	v.buyIf(uptrend && near(price, fib382, 0.01), 0.65)
	v.sellIf(!uptrend && near(price, fib382, 0.01), 0.85)
	v.sellIf(!uptrend && near(price, fib618, 0.01), 0.65)

	act := v.action()
	if act == models.ActionHold {
		return holdSignal(s.Symbol, price, "price outside retracement zones")
	}

	return models.TradeSignal{
		Symbol:     s.Symbol,
		Action:     act,
		Confidence: v.confidence(2, 0.8),
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   "1h-1d",
		Reason:     "Fibonacci retracement zone",
		StopLoss:   sideLevel(price, ll, act, true, 0.02),
		TakeProfit: sideLevel(price, hh, act, false, 0.04),
		Leverage:   2,
	}
}

// supportResistanceBounce enters near the 30-bar extremes with RSI
// agreement, targeting the opposite side of the range.
func supportResistanceBounce(s models.Series) models.TradeSignal {
	price := s.LastClose()
	support := indicators.LowestLow(s.Low, 30)
	resistance := indicators.HighestHigh(s.High, 30)

	var v vote
	v.buyIf(support > 0 && price <= support*1.015, 0.8)
	v.sellIf(resistance > 0 && price >= resistance*0.985, 0.8)
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 14)))

	act := v.action()
	if act == models.ActionHold {
		return holdSignal(s.Symbol, price, "price away from range extremes")
	}

	return models.TradeSignal{
		Symbol:     s.Symbol,
		Action:     act,
		Confidence: v.confidence(2, 0.75),
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   "1h-4h",
		Reason:     "support/resistance bounce",
		StopLoss:   sideLevel(price, support*0.98, act, true, 0.02),
		TakeProfit: sideLevel(price, resistance, act, false, 0.035),
		Leverage:   2,
	}
}

// near reports whether a is within tol (relative) of b.
func near(a, b, tol float64) bool {
	if b == 0 {
		return false
	}
	return math.Abs(a-b)/math.Abs(b) <= tol
}
