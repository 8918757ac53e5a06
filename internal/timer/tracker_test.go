package timer

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestStartPauseResumeEnd(t *testing.T) {
	clock := newFakeClock()
	tr := NewWithClock(clock.now)

	if err := tr.Start("skill-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Run 10 minutes, pause.
	clock.advance(10 * time.Minute)
	if err := tr.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if got := tr.Elapsed(); got != 600 {
		t.Errorf("Elapsed after first segment = %d, want 600", got)
	}

	// Pause gap does not accumulate.
	clock.advance(30 * time.Minute)
	if got := tr.Elapsed(); got != 600 {
		t.Errorf("Elapsed while paused = %d, want 600", got)
	}

	// Resume, run 5 more minutes, end.
	if err := tr.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	clock.advance(5 * time.Minute)

	final, endTime, err := tr.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if final.ElapsedSeconds != 900 {
		t.Errorf("final ElapsedSeconds = %d, want 900", final.ElapsedSeconds)
	}
	if endTime != clock.t.UnixMilli() {
		t.Errorf("endTime = %d, want %d", endTime, clock.t.UnixMilli())
	}
	if len(final.Intervals) != 2 {
		t.Fatalf("interval count = %d, want 2", len(final.Intervals))
	}
	for i, iv := range final.Intervals {
		if !iv.Closed() {
			t.Errorf("interval %d still open after End", i)
		}
	}

	// Slot is free again.
	if _, ok := tr.Active(); ok {
		t.Error("Active reports a timer after End")
	}
	if err := tr.Start("skill-2"); err != nil {
		t.Errorf("Start after End failed: %v", err)
	}
}

func TestElapsedWhileRunning(t *testing.T) {
	clock := newFakeClock()
	tr := NewWithClock(clock.now)

	if err := tr.Start("skill-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	prev := int64(-1)
	for i := 0; i < 5; i++ {
		clock.advance(time.Second)
		got := tr.Elapsed()
		if got <= prev {
			t.Fatalf("Elapsed not monotonic: %d after %d", got, prev)
		}
		prev = got
	}
	if prev != 5 {
		t.Errorf("Elapsed after 5s = %d, want 5", prev)
	}
}

func TestContractViolations(t *testing.T) {
	clock := newFakeClock()
	tr := NewWithClock(clock.now)

	if err := tr.Pause(); !errors.Is(err, ErrNoActiveTimer) {
		t.Errorf("Pause on empty slot = %v, want ErrNoActiveTimer", err)
	}
	if err := tr.Resume(); !errors.Is(err, ErrNoActiveTimer) {
		t.Errorf("Resume on empty slot = %v, want ErrNoActiveTimer", err)
	}
	if _, _, err := tr.End(); !errors.Is(err, ErrNoActiveTimer) {
		t.Errorf("End on empty slot = %v, want ErrNoActiveTimer", err)
	}

	if err := tr.Start("skill-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := tr.Start("skill-2"); !errors.Is(err, ErrTimerActive) {
		t.Errorf("second Start = %v, want ErrTimerActive", err)
	}
	if err := tr.Resume(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Resume while running = %v, want ErrAlreadyRunning", err)
	}

	if err := tr.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if err := tr.Pause(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Pause = %v, want ErrNotRunning", err)
	}

	// Failed calls must not have mutated state.
	state, ok := tr.Active()
	if !ok {
		t.Fatal("timer lost after contract violations")
	}
	if state.SkillID != "skill-1" || state.IsRunning {
		t.Errorf("state mutated by failed calls: %+v", state)
	}
}

func TestEndWhilePaused(t *testing.T) {
	clock := newFakeClock()
	tr := NewWithClock(clock.now)

	if err := tr.Start("skill-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	clock.advance(2 * time.Minute)
	if err := tr.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	clock.advance(8 * time.Minute)

	final, _, err := tr.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if final.ElapsedSeconds != 120 {
		t.Errorf("ElapsedSeconds = %d, want 120 (pause gap must not count)", final.ElapsedSeconds)
	}
}

func TestRestore(t *testing.T) {
	clock := newFakeClock()
	tr := NewWithClock(clock.now)
	if err := tr.Start("skill-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	clock.advance(time.Minute)
	if err := tr.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	state, _ := tr.Active()

	// A fresh tracker picks the session up where it left off.
	tr2 := NewWithClock(clock.now)
	if err := tr2.Restore(state); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := tr2.Elapsed(); got != 60 {
		t.Errorf("Elapsed after restore = %d, want 60", got)
	}
	if err := tr2.Restore(state); !errors.Is(err, ErrTimerActive) {
		t.Errorf("Restore into occupied slot = %v, want ErrTimerActive", err)
	}

	// The snapshot is a copy; mutating it does not reach the tracker.
	state.SkillID = "mutated"
	restored, _ := tr2.Active()
	if restored.SkillID != "skill-1" {
		t.Errorf("tracker state shared with snapshot: %q", restored.SkillID)
	}
}
