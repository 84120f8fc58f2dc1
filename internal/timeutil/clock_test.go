package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}
	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() without tick moved to %v", got)
	}

	clock.Advance(5 * time.Second)
	if got := clock.Since(start); got != 5*time.Second {
		t.Errorf("Since() = %v, want 5s", got)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if got := clock.Now(); !got.Equal(later) {
		t.Errorf("after Set, Now() = %v, want %v", got, later)
	}
}

func TestTickingClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewTickingClock(start, 250*time.Millisecond)

	first := clock.Now()
	second := clock.Now()
	if !first.Equal(start) {
		t.Errorf("first Now() = %v, want %v", first, start)
	}
	if d := second.Sub(first); d != 250*time.Millisecond {
		t.Errorf("tick = %v, want 250ms", d)
	}
	if d := clock.Since(first); d != 500*time.Millisecond {
		t.Errorf("Since(first) = %v, want 500ms", d)
	}
}
