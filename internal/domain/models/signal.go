package models

import "time"

// Action is the closed three-way trade decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// IndicatorResult pairs a raw indicator value with its classification and a
// normalized strength in [0,1] toward the nearer extreme.
type IndicatorResult struct {
	Value          float64
	Classification Action
	Strength       float64
}

// MACDResult holds the MACD line, the signal line and their difference.
// The signal line here is an EMA(9) over the last 26 closes, not a smoothed
// EMA of the MACD line; downstream strategies are calibrated against that.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// BollingerBands is the SMA(20) volatility envelope.
type BollingerBands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// TradeSignal is one strategy's recommendation for a symbol.
// Invariant: Action == ActionHold implies Confidence == 0.
// StopLoss/TakeProfit are 0 when the strategy cannot compute levels,
// otherwise stop sits below entry and target above for a BUY, inverted
// for a SELL.
type TradeSignal struct {
	Symbol     string    `json:"symbol"`
	Action     Action    `json:"action"`
	Confidence float64   `json:"confidence"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
	Duration   string    `json:"duration"`
	Reason     string    `json:"reason"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	Leverage   int       `json:"leverage"`
}

// StrategySignals is the bulk evaluation result: exactly one signal per
// catalog entry, positionally matched to the catalog's name list.
type StrategySignals struct {
	Symbol    string        `json:"symbol"`
	Names     []string      `json:"names"`
	Signals   []TradeSignal `json:"signals"`
	Timestamp time.Time     `json:"timestamp"`
}
