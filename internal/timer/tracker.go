package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/skilltrack/internal/logger"
	"github.com/julianstephens/skilltrack/internal/models"
)

// Caller-contract violations. The tracker never mutates state when one of
// these is returned; callers that drive the tracker correctly never see them.
var (
	// ErrTimerActive is returned when Start is called while a timer exists.
	ErrTimerActive = errors.New("a timer is already active")
	// ErrNoActiveTimer is returned when an operation requires a timer and none exists.
	ErrNoActiveTimer = errors.New("no active timer")
	// ErrNotRunning is returned when Pause is called on an already-paused timer.
	ErrNotRunning = errors.New("timer is not running")
	// ErrAlreadyRunning is returned when Resume is called on a running timer.
	ErrAlreadyRunning = errors.New("timer is already running")
)

// Tracker owns the single active-timer slot. All operations serialize on one
// mutex, so concurrent Start calls race for the slot and the loser gets
// ErrTimerActive rather than clobbering the winner's state.
type Tracker struct {
	mu     sync.Mutex
	active *models.ActiveTimer
	now    func() time.Time
}

// New creates a tracker using the wall clock.
func New() *Tracker {
	return NewWithClock(time.Now)
}

// NewWithClock creates a tracker with an injected time source.
func NewWithClock(now func() time.Time) *Tracker {
	return &Tracker{now: now}
}

func (t *Tracker) nowMillis() int64 {
	return t.now().UnixMilli()
}

// Start begins a new timer session for the given skill. The timer starts in
// the running state with one open interval.
func (t *Tracker) Start(skillID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		logger.Warn("Start called with a timer already active", "skill", t.active.SkillID)
		return ErrTimerActive
	}

	now := t.nowMillis()
	t.active = &models.ActiveTimer{
		SkillID:        skillID,
		StartTime:      now,
		ElapsedSeconds: 0,
		IsRunning:      true,
		Intervals:      []models.TimeInterval{{Start: now}},
	}
	logger.Debug("Timer started", "skill", skillID, "start", now)
	return nil
}

// Pause stops the clock without ending the session. The elapsed seconds of
// the current run segment are banked and the open interval is closed.
func (t *Tracker) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logger.Warn("Pause called with no active timer")
		return ErrNoActiveTimer
	}
	if !t.active.IsRunning {
		logger.Warn("Pause called on an already-paused timer", "skill", t.active.SkillID)
		return ErrNotRunning
	}

	now := t.nowMillis()
	t.active.ElapsedSeconds += (now - t.active.StartTime) / 1000
	t.active.IsRunning = false
	t.closeOpenInterval(now)
	logger.Debug("Timer paused", "skill", t.active.SkillID, "elapsed", t.active.ElapsedSeconds)
	return nil
}

// Resume restarts a paused timer, opening a new interval.
func (t *Tracker) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logger.Warn("Resume called with no active timer")
		return ErrNoActiveTimer
	}
	if t.active.IsRunning {
		logger.Warn("Resume called on a running timer", "skill", t.active.SkillID)
		return ErrAlreadyRunning
	}

	now := t.nowMillis()
	t.active.StartTime = now
	t.active.IsRunning = true
	t.active.Intervals = append(t.active.Intervals, models.TimeInterval{Start: now})
	logger.Debug("Timer resumed", "skill", t.active.SkillID)
	return nil
}

// Elapsed returns the total active seconds of the current session: the banked
// closed-interval sum, plus the current run segment while running. It is a
// pure query, safe to poll every second for a live display. Returns 0 when no
// timer exists.
func (t *Tracker) Elapsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return 0
	}
	if !t.active.IsRunning {
		return t.active.ElapsedSeconds
	}
	return t.active.ElapsedSeconds + (t.nowMillis()-t.active.StartTime)/1000
}

// Active returns a snapshot of the current timer state, if any. The snapshot
// is a copy; mutating it does not reach into the tracker.
func (t *Tracker) Active() (models.ActiveTimer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return models.ActiveTimer{}, false
	}
	return t.snapshot(), true
}

// End finalizes the session. A running timer is implicitly paused first (the
// final segment is banked and the open interval closed), then the finished
// snapshot is returned and the slot is cleared. The returned end time is the
// moment End was invoked.
func (t *Tracker) End() (models.ActiveTimer, int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logger.Warn("End called with no active timer")
		return models.ActiveTimer{}, 0, ErrNoActiveTimer
	}

	now := t.nowMillis()
	if t.active.IsRunning {
		t.active.ElapsedSeconds += (now - t.active.StartTime) / 1000
		t.active.IsRunning = false
		t.closeOpenInterval(now)
	}

	final := t.snapshot()
	t.active = nil
	logger.Debug("Timer ended", "skill", final.SkillID, "elapsed", final.ElapsedSeconds)
	return final, now, nil
}

// Restore loads a previously persisted timer into the slot, e.g. when a CLI
// invocation picks up the session a prior invocation started. It fails with
// ErrTimerActive if the slot is occupied.
func (t *Tracker) Restore(state models.ActiveTimer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return ErrTimerActive
	}
	st := state
	st.Intervals = append([]models.TimeInterval(nil), state.Intervals...)
	t.active = &st
	return nil
}

// closeOpenInterval sets the end of the last interval if it is still open.
// Callers hold the mutex.
func (t *Tracker) closeOpenInterval(end int64) {
	n := len(t.active.Intervals)
	if n == 0 {
		return
	}
	last := &t.active.Intervals[n-1]
	if last.End == nil {
		e := end
		last.End = &e
	}
}

// snapshot copies the active timer. Callers hold the mutex.
func (t *Tracker) snapshot() models.ActiveTimer {
	st := *t.active
	st.Intervals = append([]models.TimeInterval(nil), t.active.Intervals...)
	return st
}
