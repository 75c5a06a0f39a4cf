package session

import (
	"fmt"
	"time"
)

// Timer is a countdown driven by explicit ticks rather than a wall clock, so
// callers can advance it from a frame loop or from tests.
type Timer struct {
	remaining time.Duration
	running   bool
}

func (t *Timer) Set(d time.Duration) { t.remaining = max(d, 0) }

func (t *Timer) Add(d time.Duration) { t.remaining = max(t.remaining+d, 0) }

func (t *Timer) Run() { t.running = true }

func (t *Timer) Pause() { t.running = false }

// Resume restarts a paused timer unless it has already run out.
func (t *Timer) Resume() {
	if t.remaining > 0 {
		t.running = true
	}
}

func (t *Timer) Running() bool { return t.running }

func (t *Timer) Remaining() time.Duration { return t.remaining }

// Tick advances the countdown by dt and reports whether this tick ran it out.
func (t *Timer) Tick(dt time.Duration) bool {
	if !t.running {
		return false
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
		return true
	}
	return false
}

// String formats the remaining time as "MM : SS", truncating fractions.
func (t *Timer) String() string {
	secs := int(t.remaining / time.Second)
	return fmt.Sprintf("%02d : %02d", secs/60, secs%60)
}
