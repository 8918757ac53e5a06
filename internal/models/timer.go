package models

// TimeInterval is one contiguous active span within a timer session.
// Timestamps are epoch milliseconds. End is nil while the interval is open;
// at most one interval per timer is open at a time.
type TimeInterval struct {
	Start int64  `json:"start"`
	End   *int64 `json:"end,omitempty"`
}

// Closed reports whether the interval has been ended.
func (i TimeInterval) Closed() bool {
	return i.End != nil
}

// ActiveTimer is the ephemeral state of the single running timer. StartTime
// is the start of the current run segment (reset on resume), not of the whole
// session. ElapsedSeconds sums only closed intervals; the open interval is
// added at query time.
type ActiveTimer struct {
	SkillID        string         `json:"skill_id"`
	StartTime      int64          `json:"start_time"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	IsRunning      bool           `json:"is_running"`
	Intervals      []TimeInterval `json:"intervals"`
}

// SessionStart returns the earliest interval start, or 0 if the timer has no
// intervals (which a well-formed timer never does).
func (t ActiveTimer) SessionStart() int64 {
	var min int64
	for i, iv := range t.Intervals {
		if i == 0 || iv.Start < min {
			min = iv.Start
		}
	}
	return min
}
