package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	"TradePulse/internal/services/strategies"
	"TradePulse/pkg/cache"
	applogger "TradePulse/pkg/logger"
)

// ScanResult bundles the per-strategy breakdown with the consensus.
type ScanResult struct {
	Strategies models.StrategySignals `json:"strategies"`
	Consensus  models.TradeSignal     `json:"consensus"`
}

// ScanOption configures SignalScanUseCase.
type ScanOption func(*SignalScanUseCase)

// WithCandleCount sets how many candles feed one evaluation.
func WithCandleCount(n int) ScanOption {
	return func(uc *SignalScanUseCase) {
		if n > 0 {
			uc.candleCount = n
		}
	}
}

// WithScanTimeout caps one symbol's scan.
func WithScanTimeout(d time.Duration) ScanOption {
	return func(uc *SignalScanUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

// WithScanWorkers bounds multi-symbol fan-out.
func WithScanWorkers(n int) ScanOption {
	return func(uc *SignalScanUseCase) {
		if n > 0 {
			uc.workers = n
		}
	}
}

// WithCacheTTL sets how long a consensus result is served from cache.
func WithCacheTTL(d time.Duration) ScanOption {
	return func(uc *SignalScanUseCase) { uc.cacheTTL = d }
}

// SignalScanUseCase runs the strategy catalog over live candles and fans
// the consensus out to Kafka, ClickHouse and the cache.
type SignalScanUseCase struct {
	market    domrepo.MarketData
	store     domrepo.CandleStore
	publisher domrepo.SignalPublisher
	history   domrepo.SignalHistory
	cache     cache.Store
	metrics   domrepo.Metrics
	l         *applogger.Logger

	candleCount int
	timeout     time.Duration
	workers     int
	cacheTTL    time.Duration
}

// NewSignalScanUseCase wires the scan pipeline. publisher, history, store
// and cache may be nil; the scan then skips the corresponding step.
func NewSignalScanUseCase(
	market domrepo.MarketData,
	store domrepo.CandleStore,
	publisher domrepo.SignalPublisher,
	history domrepo.SignalHistory,
	c cache.Store,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	opts ...ScanOption,
) *SignalScanUseCase {
	uc := &SignalScanUseCase{
		market:      market,
		store:       store,
		publisher:   publisher,
		history:     history,
		cache:       c,
		metrics:     metrics,
		l:           l,
		candleCount: 200,
		timeout:     10 * time.Second,
		workers:     4,
		cacheTTL:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Scan evaluates every strategy for one symbol and returns the breakdown
// plus the consensus signal.
func (uc *SignalScanUseCase) Scan(ctx context.Context, symbol string, tf domrepo.Timeframe) (*ScanResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	tf = domrepo.NormalizeTimeframe(string(tf))

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	cacheKey := cache.Key("scan", symbol, tf)
	if uc.cache != nil && uc.cacheTTL > 0 {
		var cached ScanResult
		if err := uc.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	start := time.Now()
	candles, err := uc.loadCandles(ctx, symbol, tf)
	if err != nil {
		uc.metrics.RecordError("scan_candles")
		return nil, err
	}

	series := models.SeriesFromCandles(symbol, candles)
	breakdown, consensus := strategies.Evaluate(series)
	result := &ScanResult{Strategies: breakdown, Consensus: consensus}

	uc.metrics.RecordScan(symbol, string(consensus.Action))
	if price := series.LastClose(); price > 0 {
		uc.metrics.RecordLastPrice(symbol, price)
	}
	uc.metrics.RecordLatency("scan", time.Since(start).Seconds())

	uc.l.Info("scan complete",
		applogger.String("symbol", symbol),
		applogger.String("timeframe", string(tf)),
		applogger.String("action", string(consensus.Action)),
		applogger.Float64("confidence", consensus.Confidence),
		applogger.Duration("took", time.Since(start)),
	)

	uc.fanOut(ctx, &consensus)

	if uc.cache != nil && uc.cacheTTL > 0 {
		if err := uc.cache.Set(ctx, cacheKey, result, uc.cacheTTL); err != nil {
			uc.l.Warn("scan cache set failed", applogger.Error(err))
		}
	}

	return result, nil
}

// loadCandles prefers the live exchange API and falls back to stored
// history when the exchange is unreachable. Fresh candles are persisted
// best-effort for later fallbacks.
func (uc *SignalScanUseCase) loadCandles(ctx context.Context, symbol string, tf domrepo.Timeframe) ([]models.Candle, error) {
	candles, err := uc.market.FetchKlines(ctx, symbol, tf, uc.candleCount)
	if err == nil {
		if uc.store != nil {
			if serr := uc.store.StoreCandles(ctx, candles, tf); serr != nil {
				uc.l.Warn("candle persist failed",
					applogger.String("symbol", symbol),
					applogger.Error(serr),
				)
			}
		}
		return candles, nil
	}

	uc.l.Warn("exchange fetch failed, falling back to store",
		applogger.String("symbol", symbol),
		applogger.Error(err),
	)
	uc.metrics.RecordError("exchange_fetch")

	if uc.store == nil {
		return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
	}
	stored, serr := uc.store.GetLatestNCandles(ctx, symbol, uc.candleCount, tf)
	if serr != nil {
		return nil, fmt.Errorf("fetch klines %s: %w (store fallback: %v)", symbol, err, serr)
	}
	return stored, nil
}

// fanOut publishes and persists the consensus. Failures are logged and
// counted but never fail the scan.
func (uc *SignalScanUseCase) fanOut(ctx context.Context, consensus *models.TradeSignal) {
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, consensus); err != nil {
			uc.metrics.RecordError("signal_publish")
		}
	}
	if uc.history != nil {
		if err := uc.history.Insert(ctx, consensus); err != nil {
			uc.metrics.RecordError("signal_history")
		}
	}
}

// ScanSymbols evaluates many symbols concurrently with a bounded worker
// pool. Per-symbol errors are reported in the Errors map; one symbol's
// failure never blocks the rest.
func (uc *SignalScanUseCase) ScanSymbols(ctx context.Context, symbols []string, tf domrepo.Timeframe) *MultiScanResult {
	res := &MultiScanResult{
		Results:   make(map[string]*ScanResult, len(symbols)),
		Errors:    make(map[string]string),
		Timestamp: time.Now(),
	}

	type item struct {
		symbol string
		result *ScanResult
		err    error
	}

	jobs := make(chan string)
	out := make(chan item, len(symbols))
	var wg sync.WaitGroup

	workers := uc.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				r, err := uc.Scan(ctx, symbol, tf)
				out <- item{symbol: symbol, result: r, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, s := range symbols {
			select {
			case <-ctx.Done():
				return
			case jobs <- s:
			}
		}
	}()

	go func() { wg.Wait(); close(out) }()

	for it := range out {
		if it.err != nil {
			res.Errors[it.symbol] = it.err.Error()
			continue
		}
		res.Results[it.symbol] = it.result
	}
	return res
}

// MultiScanResult maps each scanned symbol to its result or error.
type MultiScanResult struct {
	Results   map[string]*ScanResult `json:"results"`
	Errors    map[string]string      `json:"errors,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
