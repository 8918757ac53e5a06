package models

import "time"

// Goal is a target (total hours plus a daily pace) tied to a skill and a
// deadline. Goals are never auto-deleted when the deadline passes; expiry is
// a derived display state. SecondChance marks a goal revived with a new
// deadline after its original one passed.
type Goal struct {
	ID             string    `json:"id"`
	SkillID        string    `json:"skill_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TargetHours    float64   `json:"target_hours"`
	DailyTarget    float64   `json:"daily_target"`
	Deadline       string    `json:"deadline"` // YYYY-MM-DD
	Completed      bool      `json:"completed"`
	CompletionNote string    `json:"completion_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	SecondChance   bool      `json:"second_chance,omitempty"`
}
