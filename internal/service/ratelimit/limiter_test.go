package ratelimit

import (
	"testing"
	"time"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("expected token %d to be available", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatalf("expected bucket to be empty")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 100) {
		t.Fatalf("expected first token")
	}
	if l.Allow("k", 1, 100) {
		t.Fatalf("expected empty bucket right after drain")
	}
	time.Sleep(50 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatalf("expected refill after sleep")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("expected token for a")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("expected token for b")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("a should be drained")
	}
}
