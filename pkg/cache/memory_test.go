package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	if err := m.Set(ctx, "k", payload{Name: "a", Score: 1.5}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := m.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a" || got.Score != 1.5 {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestMemoryMiss(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	var v string
	if err := m.Get(context.Background(), "absent", &v); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	var v string
	if err := m.Get(ctx, "k", &v); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestMemoryEviction(t *testing.T) {
	m := NewMemory(WithMaxEntries(2))
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "a", 1, time.Minute)
	_ = m.Set(ctx, "b", 2, time.Minute)
	_ = m.Set(ctx, "c", 3, time.Minute)

	count := 0
	for _, k := range []string{"a", "b", "c"} {
		if ok, _ := m.Exists(ctx, k); ok {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 entries after eviction, got %d", count)
	}
}

func TestMemoryTryLock(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	ok, err := m.TryLock(ctx, "lock", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected lock acquired, ok=%v err=%v", ok, err)
	}
	ok, _ = m.TryLock(ctx, "lock", time.Minute)
	if ok {
		t.Fatalf("expected second lock to fail")
	}
	if err := m.Unlock(ctx, "lock"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	ok, _ = m.TryLock(ctx, "lock", time.Minute)
	if !ok {
		t.Fatalf("expected relock after unlock")
	}
}

func TestKey(t *testing.T) {
	if got := Key("scan", "BTCUSDT", "15m"); got != "scan:BTCUSDT:15m" {
		t.Fatalf("unexpected key %q", got)
	}
}
