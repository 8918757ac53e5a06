package analytics

import (
	"time"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
)

// Goal math is pure recompute-on-read over the full entry history. Entry
// volumes are personal-scale, so nothing here is incrementally maintained;
// every function is a side-effect-free function of (goal, entries, today).

// GoalEntries returns the entries that count toward a goal: same skill, and
// dated no earlier than the goal's creation day. The date floor keeps hours
// logged before a goal existed from inflating its progress.
func GoalEntries(goal models.Goal, entries []models.Entry, loc *time.Location) []models.Entry {
	floor := creationFloor(goal, loc)

	var matched []models.Entry
	for _, e := range entries {
		if e.SkillID != goal.SkillID {
			continue
		}
		if floor != "" && e.Date < floor {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// Progress returns the goal's cumulative progress percentage, capped at 100.
// A goal with a non-positive target (which validation rejects at creation)
// reports 0 rather than dividing by zero.
func Progress(goal models.Goal, entries []models.Entry, loc *time.Location) float64 {
	if goal.TargetHours <= 0 {
		return 0
	}
	total := sumHours(GoalEntries(goal, entries, loc))
	progress := total / goal.TargetHours * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// RemainingHours returns how many hours are still needed to reach the target.
// Negative when the target has been exceeded.
func RemainingHours(goal models.Goal, entries []models.Entry, loc *time.Location) float64 {
	return goal.TargetHours - sumHours(GoalEntries(goal, entries, loc))
}

// TodayHours sums the goal's entries dated today.
func TodayHours(goal models.Goal, entries []models.Entry, today string, loc *time.Location) float64 {
	var total float64
	for _, e := range GoalEntries(goal, entries, loc) {
		if e.Date == today {
			total += e.Hours
		}
	}
	return total
}

// DailyStatus classifies today's hours against the goal's daily target:
// excellent at 120% of target or more, completed at 100%, close at 70%,
// behind below that.
func DailyStatus(goal models.Goal, entries []models.Entry, today string, loc *time.Location) constants.DailyStatus {
	hours := TodayHours(goal, entries, today, loc)

	switch {
	case hours >= goal.DailyTarget*constants.DailyExcellentRatio:
		return constants.DailyStatusExcellent
	case hours >= goal.DailyTarget:
		return constants.DailyStatusCompleted
	case hours >= goal.DailyTarget*constants.DailyCloseRatio:
		return constants.DailyStatusClose
	default:
		return constants.DailyStatusBehind
	}
}

// Status derives the goal's lifecycle state. A goal whose deadline has passed
// without being marked completed is pending regardless of progress; expiry is
// display state, not a lifecycle transition.
func Status(goal models.Goal, entries []models.Entry, today string, loc *time.Location) constants.GoalStatus {
	if goal.Deadline <= today && !goal.Completed {
		return constants.GoalStatusPending
	}
	if goal.Completed {
		return constants.GoalStatusCompleted
	}
	if Progress(goal, entries, loc) > 0 {
		return constants.GoalStatusInProgress
	}
	return constants.GoalStatusPending
}

// CanComplete reports whether the goal has reached its full target.
func CanComplete(goal models.Goal, entries []models.Entry, loc *time.Location) bool {
	return Progress(goal, entries, loc) >= 100
}

func creationFloor(goal models.Goal, loc *time.Location) string {
	if goal.CreatedAt.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return utils.LocalDateString(goal.CreatedAt.In(loc))
}

func sumHours(entries []models.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}
