package usecase

import (
	"context"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	mid "TradePulse/internal/middleware"
	"TradePulse/pkg/cache"
	applogger "TradePulse/pkg/logger"
)

// TickProcessor keeps the latest observed price per symbol warm: it
// updates the last-price gauge and caches the tick for API reads.
type TickProcessor struct {
	cache    cache.Store
	metrics  domrepo.Metrics
	cacheTTL time.Duration
}

func NewTickProcessor(c cache.Store, metrics domrepo.Metrics) *TickProcessor {
	return &TickProcessor{cache: c, metrics: metrics, cacheTTL: 5 * time.Minute}
}

func (p *TickProcessor) Process(ctx context.Context, t *models.Tick) error {
	p.metrics.RecordLastPrice(t.Symbol, t.Price)
	if p.cache == nil {
		return nil
	}
	return p.cache.Set(ctx, cache.Key("tick", t.Symbol), t, p.cacheTTL)
}

// LatestTick returns the most recent cached tick for symbol.
func (p *TickProcessor) LatestTick(ctx context.Context, symbol string) (*models.Tick, error) {
	if p.cache == nil {
		return nil, cache.ErrMiss
	}
	var t models.Tick
	if err := p.cache.Get(ctx, cache.Key("tick", symbol), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TickCollector owns the exchange stream lifecycle: connect, subscribe,
// consume, reconnect on read errors.
type TickCollector struct {
	stream  domrepo.MarketStream
	pipe    *mid.TickPipeline
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewTickCollector(stream domrepo.MarketStream, pipe *mid.TickPipeline, metrics domrepo.Metrics, l *applogger.Logger) *TickCollector {
	return &TickCollector{stream: stream, pipe: pipe, metrics: metrics, l: l}
}

// IsConnected reports stream state.
func (c *TickCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

// Start connects, subscribes and begins consuming in the background.
func (c *TickCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	c.pipe.Start(ctx)

	ticks, errs := c.stream.Read(ctx)
	go c.consume(ctx, ticks, errs)
	return nil
}

func (c *TickCollector) consume(ctx context.Context, ticks <-chan *models.Tick, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			if err == nil {
				continue
			}
			c.metrics.RecordError("stream_read")
			c.l.Warn("stream read error, reconnecting", applogger.Error(err))
			if rerr := c.stream.Reconnect(ctx); rerr != nil {
				c.l.Error("stream reconnect failed", applogger.Error(rerr))
				return
			}
			ticks, errs = c.stream.Read(ctx)
		case t := <-ticks:
			if t == nil {
				continue
			}
			if err := c.pipe.Process(ctx, t); err != nil {
				c.l.Debug("tick dropped", applogger.String("symbol", t.Symbol), applogger.Error(err))
			}
		}
	}
}

// Shutdown stops the pipeline and closes the stream.
func (c *TickCollector) Shutdown(_ context.Context) error {
	c.pipe.Stop()
	return c.stream.Close()
}
