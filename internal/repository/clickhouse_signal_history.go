package repository

import (
	"context"
	"database/sql"
	"fmt"

	"TradePulse/internal/domain/models"
	pkgch "TradePulse/pkg/clickhouse"
	applogger "TradePulse/pkg/logger"
)

// CHSignalHistory persists consensus signals to ClickHouse.
type CHSignalHistory struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHSignalHistory(ch *pkgch.Client, l *applogger.Logger) *CHSignalHistory {
	return &CHSignalHistory{db: ch.DB(), l: l}
}

// SignalSchema returns idempotent DDL for the signal history table.
func SignalSchema() []string {
	return []string{`
        CREATE TABLE IF NOT EXISTS signals (
            ts          DateTime,
            symbol      LowCardinality(String),
            action      LowCardinality(String),
            confidence  Float64,
            price       Float64,
            stop_loss   Float64,
            take_profit Float64,
            leverage    UInt8,
            duration    String,
            reason      String
        ) ENGINE = MergeTree
        ORDER BY (symbol, ts)
    `}
}

func (s *CHSignalHistory) Insert(ctx context.Context, sig *models.TradeSignal) error {
	const q = `
        INSERT INTO signals
            (ts, symbol, action, confidence, price, stop_loss, take_profit, leverage, duration, reason)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, q,
		sig.Timestamp,
		sig.Symbol,
		string(sig.Action),
		sig.Confidence,
		sig.Price,
		sig.StopLoss,
		sig.TakeProfit,
		uint8(sig.Leverage),
		sig.Duration,
		sig.Reason,
	)
	if err != nil {
		s.l.Error("signal insert failed",
			applogger.String("symbol", sig.Symbol),
			applogger.Error(err),
		)
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}
