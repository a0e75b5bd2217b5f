package indicators

import "TradePulse/internal/domain/models"

// ClassifyRSI maps an RSI value to a discrete action with a linear strength
// toward the nearer extreme: below 30 is a BUY, above 70 a SELL.
func ClassifyRSI(rsi float64) models.IndicatorResult {
	switch {
	case rsi < 30:
		return models.IndicatorResult{
			Value:          rsi,
			Classification: models.ActionBuy,
			Strength:       (30 - rsi) / 30,
		}
	case rsi > 70:
		return models.IndicatorResult{
			Value:          rsi,
			Classification: models.ActionSell,
			Strength:       (rsi - 70) / 30,
		}
	default:
		return models.IndicatorResult{Value: rsi, Classification: models.ActionHold}
	}
}

// ClassifyStochastic maps a %K value to a discrete action with a linear
// strength, using the 20/80 oversold/overbought thresholds.
func ClassifyStochastic(k float64) models.IndicatorResult {
	switch {
	case k < 20:
		return models.IndicatorResult{
			Value:          k,
			Classification: models.ActionBuy,
			Strength:       (20 - k) / 20,
		}
	case k > 80:
		return models.IndicatorResult{
			Value:          k,
			Classification: models.ActionSell,
			Strength:       (k - 80) / 20,
		}
	default:
		return models.IndicatorResult{Value: k, Classification: models.ActionHold}
	}
}
