package strategies

import (
	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicators"
)

// movingAverageCross trades the EMA(9)/EMA(21) crossover with the price
// sitting on the fast side as confirmation.
func movingAverageCross(s models.Series) models.TradeSignal {
	ema9 := indicators.EMA(s.Close, 9)
	ema21 := indicators.EMA(s.Close, 21)
	price := s.LastClose()

	var v vote
	v.buyIf(ema9 > ema21, 0.8)
	v.sellIf(ema9 < ema21, 0.8)
	v.buyIf(price > ema9, 0.8)
	v.sellIf(price < ema9, 0.8)

	return v.signal(s, 2, 0.75,
		profile{stopPct: 0.02, targetPct: 0.04, leverage: 3, duration: "1h-4h"},
		"EMA 9/21 crossover")
}

// macdTrendFollowing rides the MACD line sign with the price relative to the
// slow EMA as the trend filter. The signal line is intentionally not used as
// a crossover trigger here; it is on a different scale than the MACD line.
func macdTrendFollowing(s models.Series) models.TradeSignal {
	m := indicators.MACD(s.Close)
	ema26 := indicators.EMA(s.Close, 26)
	price := s.LastClose()

	var v vote
	v.buyIf(m.MACD > 0, 0.75)
	v.sellIf(m.MACD < 0, 0.75)
	v.buyIf(price > ema26, 0.7)
	v.sellIf(price < ema26, 0.7)

	return v.signal(s, 2, 0.85,
		profile{stopPct: 0.02, targetPct: 0.05, leverage: 3, duration: "1h-6h"},
		"MACD trend direction")
}

// emaRibbon votes on the alignment of the 8/13/21/34 EMA stack.
func emaRibbon(s models.Series) models.TradeSignal {
	e8 := indicators.EMA(s.Close, 8)
	e13 := indicators.EMA(s.Close, 13)
	e21 := indicators.EMA(s.Close, 21)
	e34 := indicators.EMA(s.Close, 34)

	var v vote
	v.buyIf(e8 > e13, 0.8)
	v.sellIf(e8 < e13, 0.8)
	v.buyIf(e13 > e21, 0.8)
	v.sellIf(e13 < e21, 0.8)
	v.buyIf(e21 > e34, 0.8)
	v.sellIf(e21 < e34, 0.8)

	return v.signal(s, 3, 0.8,
		profile{stopPct: 0.02, targetPct: 0.045, leverage: 3, duration: "1h-4h"},
		"EMA ribbon alignment")
}

// trendStrengthSMA is the slow swing filter: SMA(20) against SMA(50).
func trendStrengthSMA(s models.Series) models.TradeSignal {
	sma20 := indicators.SMA(s.Close, 20)
	sma50 := indicators.SMA(s.Close, 50)
	price := s.LastClose()

	var v vote
	v.buyIf(sma20 > sma50, 0.7)
	v.sellIf(sma20 < sma50, 0.7)
	v.buyIf(price > sma20, 0.65)
	v.sellIf(price < sma20, 0.65)

	return v.signal(s, 2, 0.7,
		profile{stopPct: 0.03, targetPct: 0.06, leverage: 1, duration: "1d+"},
		"SMA 20/50 trend strength")
}

// marketStructure reads the long SMAs for the higher-timeframe bias.
func marketStructure(s models.Series) models.TradeSignal {
	sma50 := indicators.SMA(s.Close, 50)
	sma100 := indicators.SMA(s.Close, 100)
	price := s.LastClose()

	var v vote
	v.buyIf(price > sma50 && price > sma100, 0.7)
	v.sellIf(price < sma50 && price < sma100, 0.7)
	v.buyIf(sma50 > sma100, 0.7)
	v.sellIf(sma50 < sma100, 0.7)

	return v.signal(s, 2, 0.7,
		profile{stopPct: 0.03, targetPct: 0.06, leverage: 1, duration: "4h-1d"},
		"long SMA market structure")
}

// ichimokuCloud positions the price against the cloud built from the
// standard 9/26/52 conversion, base and span windows.
func ichimokuCloud(s models.Series) models.TradeSignal {
	tenkan := (indicators.HighestHigh(s.High, 9) + indicators.LowestLow(s.Low, 9)) / 2
	kijun := (indicators.HighestHigh(s.High, 26) + indicators.LowestLow(s.Low, 26)) / 2
	spanA := (tenkan + kijun) / 2
	spanB := (indicators.HighestHigh(s.High, 52) + indicators.LowestLow(s.Low, 52)) / 2
	price := s.LastClose()

	cloudTop := spanA
	cloudBottom := spanB
	if spanB > spanA {
		cloudTop, cloudBottom = spanB, spanA
	}

	var v vote
	v.buyIf(price > cloudTop, 0.8)
	v.sellIf(price < cloudBottom, 0.8)
	v.buyIf(tenkan > kijun, 0.75)
	v.sellIf(tenkan < kijun, 0.75)

	return v.signal(s, 2, 0.85,
		profile{stopPct: 0.025, targetPct: 0.05, leverage: 2, duration: "4h-1d"},
		"Ichimoku cloud position")
}

// priceActionMomentum counts short streaks of directional closes.
func priceActionMomentum(s models.Series) models.TradeSignal {
	n := s.Len()
	up, down := 0, 0
	for i := n - 3; i < n; i++ {
		if s.Close[i] > s.Close[i-1] {
			up++
		} else if s.Close[i] < s.Close[i-1] {
			down++
		}
	}
	price := s.LastClose()

	var v vote
	v.buyIf(up == 3, 0.7)
	v.sellIf(down == 3, 0.7)
	v.buyIf(price > s.Close[n-6], 0.7)
	v.sellIf(price < s.Close[n-6], 0.7)

	return v.signal(s, 2, 0.7,
		profile{stopPct: 0.01, targetPct: 0.03, leverage: 4, duration: "5m-30m"},
		"short-term price action streak")
}
