// Package strategies holds the fixed catalog of trading strategies and the
// consensus aggregation over their outputs. The catalog order and the
// parallel name list are a frozen public contract: consumers zip signal
// lists against Names() positionally, so entries must never be reordered,
// renamed or removed.
package strategies

import "TradePulse/internal/domain/models"

// Descriptor is one catalog entry. Requires is non-empty for capability
// stubs: strategies whose data source (pattern recognition, trained models,
// social or on-chain feeds) is not available to this core and which
// deterministically return the HOLD guard until one is wired.
type Descriptor struct {
	Name     string
	MinBars  int
	Requires string
	evaluate func(models.Series) models.TradeSignal
}

// Evaluate runs the strategy against the series. Input shorter than MinBars
// short-circuits to the HOLD guard; no partial computation is attempted.
func (d Descriptor) Evaluate(s models.Series) models.TradeSignal {
	if d.Requires != "" {
		return holdSignal(s.Symbol, s.LastClose(), d.Name+" requires "+d.Requires)
	}
	if s.Len() < d.MinBars {
		return guardSignal(s.Symbol, s.LastClose(), d.Name, d.MinBars)
	}
	return d.evaluate(s)
}

// catalog is built once; every entry is a pure closure, so the shared slice
// is safe for concurrent evaluation.
var catalog = buildCatalog()

func buildCatalog() []Descriptor {
	c := []Descriptor{
		{Name: "Moving Average Cross", MinBars: 21, evaluate: movingAverageCross},
		{Name: "MACD Trend Following", MinBars: 26, evaluate: macdTrendFollowing},
		{Name: "EMA Ribbon", MinBars: 34, evaluate: emaRibbon},
		{Name: "Trend Strength SMA", MinBars: 50, evaluate: trendStrengthSMA},
		{Name: "Market Structure", MinBars: 100, evaluate: marketStructure},
		{Name: "Ichimoku Cloud", MinBars: 52, evaluate: ichimokuCloud},
		{Name: "Price Action Momentum", MinBars: 10, evaluate: priceActionMomentum},
		{Name: "Bollinger Mean Reversion", MinBars: 20, evaluate: bollingerMeanReversion},
		{Name: "Multi-Timeframe RSI", MinBars: 22, evaluate: multiTimeframeRSI},
		{Name: "Stochastic Reversal", MinBars: 15, evaluate: stochasticReversal},
		{Name: "CCI Extremes", MinBars: 20, evaluate: cciExtremes},
		{Name: "Mean Reversion Scalper", MinBars: 15, evaluate: meanReversionScalper},
		{Name: "Double Confirmation", MinBars: 26, evaluate: doubleConfirmation},
		{Name: "ATR Breakout", MinBars: 16, evaluate: atrBreakout},
		{Name: "Channel Breakout", MinBars: 21, evaluate: channelBreakout},
		{Name: "Volatility Squeeze", MinBars: 20, evaluate: volatilitySqueeze},
		{Name: "Momentum Surge", MinBars: 15, evaluate: momentumSurge},
		{Name: "Pivot Point Bounce", MinBars: 20, evaluate: pivotPointBounce},
		{Name: "Fibonacci Retracement", MinBars: 30, evaluate: fibonacciRetracement},
		{Name: "Support Resistance Bounce", MinBars: 30, evaluate: supportResistanceBounce},
		{Name: "VWAP Deviation", MinBars: 20, evaluate: vwapDeviation},
		{Name: "Volume Confirmation Trend", MinBars: 20, evaluate: volumeConfirmationTrend},
		{Name: "Composite Momentum", MinBars: 26, evaluate: compositeMomentum},
	}

	// Capability stubs: pattern-recognition, model-driven and external-feed
	// families. Kept as first-class entries so the index<->name mapping
	// stays stable once a data source is wired in.
	for _, st := range []struct{ name, requires string }{
		{"Elliott Wave", "chart pattern recognition"},
		{"Gartley Pattern", "harmonic pattern recognition"},
		{"Butterfly Pattern", "harmonic pattern recognition"},
		{"Bat Pattern", "harmonic pattern recognition"},
		{"Crab Pattern", "harmonic pattern recognition"},
		{"Cypher Pattern", "harmonic pattern recognition"},
		{"Harmonic ABCD", "harmonic pattern recognition"},
		{"Three Drives Pattern", "harmonic pattern recognition"},
		{"Wolfe Waves", "chart pattern recognition"},
		{"Head and Shoulders", "chart pattern recognition"},
		{"Double Top Bottom", "chart pattern recognition"},
		{"Triangle Breakout", "chart pattern recognition"},
		{"Cup and Handle", "chart pattern recognition"},
		{"Flag Pattern", "chart pattern recognition"},
		{"Wedge Pattern", "chart pattern recognition"},
		{"Neural Network Forecast", "a trained forecasting model"},
		{"ML Ensemble", "a trained model ensemble"},
		{"Deep Learning Trend", "a trained forecasting model"},
		{"LSTM Price Prediction", "a trained forecasting model"},
		{"Gradient Boosting Alpha", "a trained forecasting model"},
		{"Random Forest Classifier", "a trained classification model"},
		{"Reinforcement Learning Agent", "a trained policy model"},
		{"AI Pattern Scanner", "a trained pattern model"},
		{"Social Sentiment", "social sentiment data"},
		{"News Sentiment", "news sentiment data"},
		{"Twitter Momentum", "social media data"},
		{"Fear Greed Index", "market sentiment index data"},
		{"Whale Tracking", "on-chain whale transaction data"},
		{"On-Chain Flow", "on-chain metrics data"},
		{"Exchange Netflow", "exchange flow data"},
		{"Smart Money Index", "institutional flow data"},
		{"Options Flow", "options market data"},
		{"Open Interest Divergence", "derivatives open interest data"},
		{"Funding Rate Arbitrage", "funding rate data"},
		{"Liquidation Heatmap", "liquidation map data"},
	} {
		c = append(c, Descriptor{Name: st.name, Requires: st.requires})
	}
	return c
}

// Count is the fixed catalog size.
const Count = 58

// Catalog returns the ordered strategy descriptors.
func Catalog() []Descriptor { return catalog }

// Names returns the ordered strategy name list, positionally matched to the
// results of AllSignals.
func Names() []string {
	names := make([]string, len(catalog))
	for i, d := range catalog {
		names[i] = d.Name
	}
	return names
}

// AllSignals evaluates every catalog entry against one series, in catalog
// order. It always returns exactly Count signals.
func AllSignals(s models.Series) []models.TradeSignal {
	out := make([]models.TradeSignal, len(catalog))
	for i, d := range catalog {
		out[i] = d.Evaluate(s)
	}
	return out
}
