package strategies

import (
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicators"
)

// bollingerMeanReversion fades closes outside the Bollinger envelope with
// RSI and stochastic agreement. Targets the middle band; stop is a
// percentage offset since the band edge sits on the entry side.
func bollingerMeanReversion(s models.Series) models.TradeSignal {
	bb := indicators.Bollinger(s.Close, 20)
	price := s.LastClose()

	var v vote
	v.buyIf(price < bb.Lower, 0.8)
	v.sellIf(price > bb.Upper, 0.8)
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 14)))
	v.add(indicators.ClassifyStochastic(indicators.Stochastic(s.Close, s.High, s.Low, 14)))

	act := v.action()
	if act == models.ActionHold {
		return holdSignal(s.Symbol, price, "price inside Bollinger envelope")
	}

	return models.TradeSignal{
		Symbol:     s.Symbol,
		Action:     act,
		Confidence: v.confidence(3, 0.9),
		Price:      price,
		Timestamp:  time.Now(),
		Duration:   "15m-1h",
		Reason:     "Bollinger band mean reversion",
		StopLoss:   sideLevel(price, 0, act, true, 0.02),
		TakeProfit: sideLevel(price, bb.Middle, act, false, 0.03),
		Leverage:   2,
	}
}

// multiTimeframeRSI requires agreement across the 7/14/21 RSI lookbacks.
func multiTimeframeRSI(s models.Series) models.TradeSignal {
	var v vote
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 7)))
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 14)))
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 21)))

	return v.signal(s, 3, 0.8,
		profile{stopPct: 0.015, targetPct: 0.03, leverage: 2, duration: "30m-2h"},
		"multi-timeframe RSI agreement")
}

// stochasticReversal pairs the %K extremes with RSI confirmation.
func stochasticReversal(s models.Series) models.TradeSignal {
	var v vote
	v.add(indicators.ClassifyStochastic(indicators.Stochastic(s.Close, s.High, s.Low, 14)))
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 14)))

	return v.signal(s, 2, 0.8,
		profile{stopPct: 0.015, targetPct: 0.035, leverage: 3, duration: "15m-1h"},
		"stochastic oversold/overbought reversal")
}

// cciExtremes trades CCI beyond ±100 with extra weight past ±200.
func cciExtremes(s models.Series) models.TradeSignal {
	cci := indicators.CCI(s.Close, s.High, s.Low, 20)

	var v vote
	v.buyIf(cci < -100, 0.7)
	v.buyIf(cci < -200, 0.9)
	v.sellIf(cci > 100, 0.7)
	v.sellIf(cci > 200, 0.9)

	return v.signal(s, 2, 0.75,
		profile{stopPct: 0.015, targetPct: 0.03, leverage: 3, duration: "15m-2h"},
		"CCI extreme readings")
}

// meanReversionScalper fades stretched distance from the SMA(14) with the
// stochastic as the timing trigger. Tightest levels and the highest
// leverage in the catalog.
func meanReversionScalper(s models.Series) models.TradeSignal {
	sma := indicators.SMA(s.Close, 14)
	price := s.LastClose()

	dist := 0.0
	if sma != 0 {
		dist = (price - sma) / sma
	}

	var v vote
	v.buyIf(dist < -0.02, 0.8)
	v.sellIf(dist > 0.02, 0.8)
	v.add(indicators.ClassifyStochastic(indicators.Stochastic(s.Close, s.High, s.Low, 14)))

	return v.signal(s, 2, 0.85,
		profile{stopPct: 0.01, targetPct: 0.02, leverage: 5, duration: "5m-15m"},
		"stretched distance from SMA(14)")
}

// doubleConfirmation only acts when RSI and the MACD line direction agree.
func doubleConfirmation(s models.Series) models.TradeSignal {
	m := indicators.MACD(s.Close)

	var v vote
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 14)))
	v.buyIf(m.MACD > 0, 0.75)
	v.sellIf(m.MACD < 0, 0.75)

	return v.signal(s, 2, 0.9,
		profile{stopPct: 0.02, targetPct: 0.04, leverage: 3, duration: "1h-4h"},
		"RSI and MACD double confirmation")
}
