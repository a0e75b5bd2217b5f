package models

import "time"

// Candle represents one OHLCV record as stored and served per timeframe.
type Candle struct {
	Bucket time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is the immutable input of one evaluation run: four index-aligned
// chronological arrays plus the symbol they belong to. Callers own alignment;
// the analysis core only length-checks.
type Series struct {
	Symbol string
	Close  []float64
	High   []float64
	Low    []float64
	Volume []float64
}

// SeriesFromCandles flattens chronological candles into an evaluation Series.
func SeriesFromCandles(symbol string, candles []Candle) Series {
	s := Series{
		Symbol: symbol,
		Close:  make([]float64, 0, len(candles)),
		High:   make([]float64, 0, len(candles)),
		Low:    make([]float64, 0, len(candles)),
		Volume: make([]float64, 0, len(candles)),
	}
	for _, c := range candles {
		s.Close = append(s.Close, c.Close)
		s.High = append(s.High, c.High)
		s.Low = append(s.Low, c.Low)
		s.Volume = append(s.Volume, c.Volume)
	}
	return s
}

// Len returns the number of close samples in the series.
func (s Series) Len() int { return len(s.Close) }

// LastClose returns the most recent close, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s.Close) == 0 {
		return 0
	}
	return s.Close[len(s.Close)-1]
}
