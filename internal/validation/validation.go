package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
)

// NormalizeSkillName trims and camelCases a skill name ("Deep Work" becomes
// "deepWork"), matching how skills are keyed for duplicate detection.
func NormalizeSkillName(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			r, size := utf8.DecodeRuneInString(w)
			w = string(unicode.ToUpper(r)) + w[size:]
		}
		b.WriteString(w)
	}
	return b.String()
}

// ValidateSkillName checks that a skill name is non-empty after normalization.
func ValidateSkillName(name string) error {
	if NormalizeSkillName(name) == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	return nil
}

// ValidateGoal checks the invariants a goal must be created with: positive
// targets and a well-formed deadline. Progress math relies on TargetHours
// being positive.
func ValidateGoal(goal models.Goal) error {
	if strings.TrimSpace(goal.Title) == "" {
		return fmt.Errorf("goal title cannot be empty")
	}
	if goal.SkillID == "" {
		return fmt.Errorf("goal must reference a skill")
	}
	if goal.TargetHours <= 0 {
		return fmt.Errorf("target hours must be greater than zero")
	}
	if goal.DailyTarget <= 0 {
		return fmt.Errorf("daily target must be greater than zero")
	}
	if !utils.ValidateDateFormat(goal.Deadline) {
		return fmt.Errorf("invalid deadline %q (expected YYYY-MM-DD)", goal.Deadline)
	}
	return nil
}

// ValidateEntry checks a manual entry's shape. Hours outside [0, 24] are not
// an error; they are clamped on creation.
func ValidateEntry(entry models.Entry) error {
	if entry.SkillID == "" {
		return fmt.Errorf("entry must reference a skill")
	}
	if !utils.ValidateDateFormat(entry.Date) {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", entry.Date)
	}
	return nil
}

// ValidateTaskTitle checks that a daily task has a title.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	return nil
}
