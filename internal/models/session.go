package models

// Session is the immutable record of one timer run, pause gaps included.
// TotalHours is the wall-clock span from the first interval start to the
// moment the timer was ended, rounded to two decimals. The active-only
// elapsed seconds are recoverable from Intervals but are not what gets
// logged; see the finalizer for the distinction.
type Session struct {
	ID         string         `json:"id"`
	SkillID    string         `json:"skill_id"`
	Date       string         `json:"date"` // YYYY-MM-DD, calendar day of session start
	StartTime  int64          `json:"start_time"`
	EndTime    int64          `json:"end_time"`
	TotalHours float64        `json:"total_hours"`
	Notes      string         `json:"notes,omitempty"`
	Intervals  []TimeInterval `json:"intervals"`
}

// Entry is a flattened hours-on-a-date record, the unit goal and analytics
// math consumes. It is either the projection of a Session or a manually
// created log line. Hours are clamped to [0, 24] on creation.
type Entry struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"` // YYYY-MM-DD
	SkillID string  `json:"skill_id"`
	Hours   float64 `json:"hours"`
	Notes   string  `json:"notes,omitempty"`
}

// ClampHours restricts an hours value to the [0, 24] range an entry allows.
func ClampHours(hours float64) float64 {
	if hours < 0 {
		return 0
	}
	if hours > 24 {
		return 24
	}
	return hours
}
