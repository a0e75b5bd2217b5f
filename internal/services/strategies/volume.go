package strategies

import (
	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicators"
)

// vwapDeviation fades stretched deviation from the 20-bar VWAP, with a
// volume spike as the secondary condition. Degrades to HOLD when the series
// carries no volume.
func vwapDeviation(s models.Series) models.TradeSignal {
	price := s.LastClose()
	vwap := indicators.VWAP(s.Close, s.High, s.Low, s.Volume, 20)
	if vwap == 0 {
		return holdSignal(s.Symbol, price, "no volume data for VWAP")
	}

	dev := (price - vwap) / vwap
	volSpike := false
	if avg := indicators.SMA(s.Volume, 20); avg > 0 && len(s.Volume) > 0 {
		volSpike = s.Volume[len(s.Volume)-1] > 1.2*avg
	}

	var v vote
	v.buyIf(dev < -0.02, 0.8)
	v.sellIf(dev > 0.02, 0.8)
	v.buyIf(dev < -0.02 && volSpike, 0.6)
	v.sellIf(dev > 0.02 && volSpike, 0.6)

	return v.signal(s, 2, 0.75,
		profile{stopPct: 0.015, targetPct: 0.03, leverage: 2, duration: "30m-2h"},
		"VWAP deviation")
}

// volumeConfirmationTrend follows the SMA(20) trend only when recent volume
// expands against its average.
func volumeConfirmationTrend(s models.Series) models.TradeSignal {
	price := s.LastClose()
	sma20 := indicators.SMA(s.Close, 20)

	volRatio := 0.0
	if avg := indicators.SMA(s.Volume, 20); avg > 0 && len(s.Volume) > 0 {
		volRatio = s.Volume[len(s.Volume)-1] / avg
	}

	var v vote
	v.buyIf(price > sma20, 0.6)
	v.sellIf(price < sma20, 0.6)
	v.buyIf(price > sma20 && volRatio > 1.5, 0.85)
	v.sellIf(price < sma20 && volRatio > 1.5, 0.85)

	return v.signal(s, 2, 0.8,
		profile{stopPct: 0.02, targetPct: 0.04, leverage: 3, duration: "1h-4h"},
		"volume-confirmed trend")
}

// compositeMomentum is the widest vote in the catalog: RSI, stochastic,
// MACD direction and CCI extremes together.
func compositeMomentum(s models.Series) models.TradeSignal {
	m := indicators.MACD(s.Close)
	cci := indicators.CCI(s.Close, s.High, s.Low, 20)

	var v vote
	v.add(indicators.ClassifyRSI(indicators.RSI(s.Close, 14)))
	v.add(indicators.ClassifyStochastic(indicators.Stochastic(s.Close, s.High, s.Low, 14)))
	v.buyIf(m.MACD > 0, 0.75)
	v.sellIf(m.MACD < 0, 0.75)
	v.buyIf(cci < -100, 0.7)
	v.sellIf(cci > 100, 0.7)

	return v.signal(s, 4, 0.95,
		profile{stopPct: 0.02, targetPct: 0.045, leverage: 3, duration: "30m-4h"},
		"composite momentum vote")
}
