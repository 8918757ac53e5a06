package models

import "github.com/julianstephens/skilltrack/internal/constants"

// Skill is a user-defined category of tracked activity.
type Skill struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Priority constants.Priority `json:"priority"`
}
