package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	applogger "TradePulse/pkg/logger"
)

// candleMessage is the wire form of one ingested candle.
type candleMessage struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Bucket    int64   `json:"bucket"` // unix seconds
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// CandleIngest consumes candle messages from Kafka and persists them,
// keeping the store's history warm for scan fallbacks.
type CandleIngest struct {
	store domrepo.CandleStore
	l     *applogger.Logger
}

func NewCandleIngest(store domrepo.CandleStore, l *applogger.Logger) *CandleIngest {
	return &CandleIngest{store: store, l: l}
}

// Handle decodes and stores one message. It is shaped as a
// kafka.HandlerFunc; decode failures are permanent and not retried.
func (u *CandleIngest) Handle(ctx context.Context, _, value []byte) error {
	var msg candleMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		u.l.Warn("candle message dropped", applogger.Error(err))
		return nil
	}
	if msg.Symbol == "" || msg.Bucket <= 0 {
		u.l.Warn("candle message missing symbol or bucket")
		return nil
	}

	tf := domrepo.NormalizeTimeframe(msg.Timeframe)
	candle := models.Candle{
		Bucket: time.Unix(msg.Bucket, 0).UTC(),
		Symbol: msg.Symbol,
		Open:   msg.Open,
		High:   msg.High,
		Low:    msg.Low,
		Close:  msg.Close,
		Volume: msg.Volume,
	}

	if err := u.store.StoreCandles(ctx, []models.Candle{candle}, tf); err != nil {
		return fmt.Errorf("ingest candle %s: %w", msg.Symbol, err)
	}
	return nil
}
