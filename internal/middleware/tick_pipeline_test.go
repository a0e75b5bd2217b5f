package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"TradePulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProc struct {
	mu    sync.Mutex
	seen  []*models.Tick
	fail  bool
	calls int
}

func (p *recordingProc) Process(_ context.Context, t *models.Tick) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fail {
		return errors.New("downstream unavailable")
	}
	p.seen = append(p.seen, t)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordScan(string, string)       {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordLastPrice(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)   {}

func tick(symbol string, price float64) *models.Tick {
	return &models.Tick{Symbol: symbol, Price: price, Volume: 1, At: time.Now()}
}

func TestPipelineForwardsValidTicks(t *testing.T) {
	proc := &recordingProc{}
	p := NewTickPipeline(proc, nopMetrics{})

	require.NoError(t, p.Process(context.Background(), tick("BTCUSDT", 100)))
	assert.Len(t, proc.seen, 1)
}

func TestPipelineRejectsInvalidTicks(t *testing.T) {
	proc := &recordingProc{}
	p := NewTickPipeline(proc, nopMetrics{})
	ctx := context.Background()

	assert.Error(t, p.Process(ctx, nil))
	assert.Error(t, p.Process(ctx, &models.Tick{Price: 1, At: time.Now()}))
	assert.Error(t, p.Process(ctx, &models.Tick{Symbol: "X", Price: 0, At: time.Now()}))
	assert.Error(t, p.Process(ctx, &models.Tick{Symbol: "X", Price: 1}))
	assert.Empty(t, proc.seen)
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &recordingProc{}
	p := NewTickPipeline(proc, nopMetrics{}, WithMaxRPS(1))
	ctx := context.Background()

	require.NoError(t, p.Process(ctx, tick("BTCUSDT", 100)))
	require.NoError(t, p.Process(ctx, tick("BTCUSDT", 101)))
	// other symbols have their own budget
	require.NoError(t, p.Process(ctx, tick("ETHUSDT", 10)))

	assert.Len(t, proc.seen, 2)
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &recordingProc{fail: true}
	p := NewTickPipeline(proc, nopMetrics{}, WithBufferSize(4))

	err := p.Process(context.Background(), tick("BTCUSDT", 100))
	assert.Error(t, err)
	assert.Equal(t, 1, proc.calls)
	assert.Len(t, p.buf, 1)
}

func TestPipelineDrainRecovers(t *testing.T) {
	proc := &recordingProc{fail: true}
	p := NewTickPipeline(proc, nopMetrics{}, WithBufferSize(4))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	_ = p.Process(ctx, tick("BTCUSDT", 100))

	proc.mu.Lock()
	proc.fail = false
	proc.mu.Unlock()

	require.Eventually(t, func() bool {
		proc.mu.Lock()
		defer proc.mu.Unlock()
		return len(proc.seen) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
