package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
)

// TickProc is the downstream the pipeline feeds.
type TickProc interface {
	Process(ctx context.Context, t *models.Tick) error
}

// TickPipeline sits between the exchange stream and tick processing.
// It validates, throttles per symbol, and buffers when the downstream
// errors so a slow consumer does not stall the read loop.
type TickPipeline struct {
	proc    TickProc
	metrics domrepo.Metrics

	maxRPS  int
	buf     chan *models.Tick
	stop    chan struct{}
	started bool
	mu      sync.Mutex

	lastAccepted map[string]time.Time
}

// PipelineOption configures TickPipeline.
type PipelineOption func(*TickPipeline)

// WithMaxRPS caps accepted ticks per second per symbol.
func WithMaxRPS(n int) PipelineOption {
	return func(p *TickPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the retry buffer capacity.
func WithBufferSize(n int) PipelineOption {
	return func(p *TickPipeline) {
		if n > 0 {
			p.buf = make(chan *models.Tick, n)
		}
	}
}

// NewTickPipeline creates a pipeline in front of proc.
func NewTickPipeline(proc TickProc, metrics domrepo.Metrics, opts ...PipelineOption) *TickPipeline {
	p := &TickPipeline{
		proc:         proc,
		metrics:      metrics,
		maxRPS:       20,
		buf:          make(chan *models.Tick, 1000),
		stop:         make(chan struct{}),
		lastAccepted: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the background drain of the retry buffer.
func (p *TickPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.drain(ctx)
}

func (p *TickPipeline) drain(ctx context.Context) {
	backoff := 50 * time.Millisecond
	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case t := <-p.buf:
			if t == nil {
				continue
			}
			if err := p.proc.Process(ctx, t); err != nil {
				p.metrics.RecordError("pipeline_flush")
				if backoff < 2*time.Second {
					backoff *= 2
				}
				time.Sleep(backoff)
				select {
				case p.buf <- t:
				default:
					p.metrics.RecordError("pipeline_drop")
				}
				continue
			}
			backoff = 50 * time.Millisecond
		}
	}
}

// Stop halts the background drain.
func (p *TickPipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.started = false
	close(p.stop)
}

// Process validates and throttles one tick, then forwards it. On a
// downstream error the tick is parked in the retry buffer.
func (p *TickPipeline) Process(ctx context.Context, t *models.Tick) error {
	if err := validateTick(t); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}

	if !p.accept(t.Symbol, time.Now()) {
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	if err := p.proc.Process(ctx, t); err != nil {
		p.metrics.RecordError("pipeline_process")
		select {
		case p.buf <- t:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("tick downstream: %w", err)
	}
	return nil
}

func validateTick(t *models.Tick) error {
	if t == nil {
		return fmt.Errorf("tick nil")
	}
	if t.Symbol == "" {
		return fmt.Errorf("symbol empty")
	}
	if t.At.IsZero() {
		return fmt.Errorf("timestamp missing")
	}
	if t.Price <= 0 || t.Volume < 0 {
		return fmt.Errorf("invalid price/volume")
	}
	return nil
}

func (p *TickPipeline) accept(symbol string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	last := p.lastAccepted[symbol]
	if !last.IsZero() && now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastAccepted[symbol] = now
	return true
}
