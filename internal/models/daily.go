package models

import "time"

// DailyTask is a to-do item scoped to the calendar day it was created on.
// Tasks from prior days drop out of the today view by date comparison; they
// are never deleted for aging out.
type DailyTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DailyTaskLog is the durable per-date snapshot the streak calculator reads.
// One log exists per calendar date; saving again on the same day overwrites
// the snapshot in place.
type DailyTaskLog struct {
	ID             string      `json:"id"`
	Date           string      `json:"date"` // YYYY-MM-DD
	Tasks          []DailyTask `json:"tasks"`
	CompletionRate float64     `json:"completion_rate"` // 0-100
}
