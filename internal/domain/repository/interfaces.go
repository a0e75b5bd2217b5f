package repository

import (
	"context"

	"TradePulse/internal/domain/models"
)

// MarketStream delivers live ticks from an exchange WebSocket feed.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Tick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// MarketData fetches recent OHLCV candles from an exchange REST API.
type MarketData interface {
	FetchKlines(ctx context.Context, symbol string, tf Timeframe, limit int) ([]models.Candle, error)
}

// SignalPublisher pushes evaluated consensus signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, sig *models.TradeSignal) error
	Close() error
}

// SignalHistory persists consensus evaluations for later inspection.
type SignalHistory interface {
	Insert(ctx context.Context, sig *models.TradeSignal) error
}

// Metrics records operational measurements of the scan pipeline.
type Metrics interface {
	RecordScan(symbol string, action string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
