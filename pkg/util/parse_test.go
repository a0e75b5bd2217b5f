package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-06-01T12:00:00Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default on garbage, got %d", got)
	}
}

func TestTimeframeDuration(t *testing.T) {
	if TimeframeDuration("4h") != 4*time.Hour {
		t.Fatalf("unexpected 4h duration")
	}
	if TimeframeDuration("bogus") != 15*time.Minute {
		t.Fatalf("expected 15m fallback")
	}
}

func TestAlignRange(t *testing.T) {
	from := time.Date(2025, 6, 1, 12, 7, 30, 0, time.UTC)
	to := time.Date(2025, 6, 1, 13, 52, 0, 0, time.UTC)
	af, at := AlignRange(from, to, "15m")
	if af.Minute() != 0 || at.Minute() != 45 {
		t.Fatalf("unexpected alignment %v %v", af, at)
	}
}
