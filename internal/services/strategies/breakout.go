package strategies

import (
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicators"
)

// atrBreakout enters when the last close clears the prior 14-bar range and
// derives its levels from ATR multiples (1.5x stop, 2.5x target).
func atrBreakout(s models.Series) models.TradeSignal {
	n := s.Len()
	price := s.LastClose()
	atr := indicators.ATR(s.High, s.Low, s.Close, 14)

	// Range of the bars before the breakout candle.
	priorHigh := indicators.HighestHigh(s.High[:n-1], 14)
	priorLow := indicators.LowestLow(s.Low[:n-1], 14)

	var v vote
	v.buyIf(price > priorHigh, 0.85)
	v.sellIf(price < priorLow, 0.85)

	act := v.action()
	if act == models.ActionHold {
		return holdSignal(s.Symbol, price, "no range breakout")
	}

	stop, target := percentLevels(price, act, 0.015, 0.035)
	if atr > 0 {
		if act == models.ActionBuy {
			stop, target = price-1.5*atr, price+2.5*atr
		} else {
			stop, target = price+1.5*atr, price-2.5*atr
		}
	}

	return models.TradeSignal{
		Symbol:     s.Symbol,
		Action:     act,
		Confidence: v.confidence(1, 0.85),
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   "15m-1h",
		Reason:     "ATR range breakout",
		StopLoss:   stop,
		TakeProfit: target,
		Leverage:   4,
	}
}

// channelBreakout trades the 20-bar Donchian channel, with the channel-half
// position as the secondary condition.
func channelBreakout(s models.Series) models.TradeSignal {
	n := s.Len()
	price := s.LastClose()
	hh := indicators.HighestHigh(s.High[:n-1], 20)
	ll := indicators.LowestLow(s.Low[:n-1], 20)
	mid := (hh + ll) / 2

	var v vote
	v.buyIf(price > hh, 0.8)
	v.sellIf(price < ll, 0.8)
	v.buyIf(price > mid, 0.6)
	v.sellIf(price < mid, 0.6)

	return v.signal(s, 2, 0.8,
		profile{stopPct: 0.02, targetPct: 0.04, leverage: 3, duration: "1h-4h"},
		"Donchian channel breakout")
}

// volatilitySqueeze waits for a narrow Bollinger envelope and follows the
// side of the middle band the price resolves to.
func volatilitySqueeze(s models.Series) models.TradeSignal {
	bb := indicators.Bollinger(s.Close, 20)
	price := s.LastClose()

	squeezed := false
	if bb.Middle != 0 {
		squeezed = (bb.Upper-bb.Lower)/bb.Middle < 0.04
	}

	var v vote
	v.buyIf(squeezed && price > bb.Middle, 0.75)
	v.sellIf(squeezed && price < bb.Middle, 0.75)

	return v.signal(s, 1, 0.75,
		profile{stopPct: 0.015, targetPct: 0.04, leverage: 4, duration: "15m-2h"},
		"volatility squeeze resolution")
}

// momentumSurge catches fast 5-bar moves while RSI still has room.
func momentumSurge(s models.Series) models.TradeSignal {
	n := s.Len()
	price := s.LastClose()
	rsi := indicators.RSI(s.Close, 14)

	roc := 0.0
	if s.Close[n-6] != 0 {
		roc = price/s.Close[n-6] - 1
	}

	var v vote
	v.buyIf(roc > 0.03, 0.8)
	v.sellIf(roc < -0.03, 0.8)
	v.buyIf(roc > 0 && rsi >= 50 && rsi <= 70, 0.6)
	v.sellIf(roc < 0 && rsi >= 30 && rsi <= 50, 0.6)

	return v.signal(s, 2, 0.7,
		profile{stopPct: 0.015, targetPct: 0.035, leverage: 4, duration: "15m-1h"},
		"5-bar momentum surge")
}
