package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
)

func testGoal() models.Goal {
	return models.Goal{
		ID:          "g1",
		SkillID:     "s1",
		Title:       "Learn guitar",
		TargetHours: 100,
		DailyTarget: 10,
		Deadline:    "2025-12-31",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func entry(skillID, date string, hours float64) models.Entry {
	return models.Entry{ID: date + skillID, SkillID: skillID, Date: date, Hours: hours}
}

func TestGoalEntriesDateFloor(t *testing.T) {
	goal := testGoal()
	entries := []models.Entry{
		entry("s1", "2025-02-28", 5), // before the goal existed
		entry("s1", "2025-03-01", 3), // creation day counts
		entry("s1", "2025-03-02", 2),
		entry("s2", "2025-03-02", 9), // different skill
	}

	matched := GoalEntries(goal, entries, time.UTC)
	if len(matched) != 2 {
		t.Fatalf("matched %d entries, want 2", len(matched))
	}
	for _, e := range matched {
		if e.Date < "2025-03-01" || e.SkillID != "s1" {
			t.Errorf("unexpected entry matched: %+v", e)
		}
	}
}

func TestProgress(t *testing.T) {
	goal := testGoal()

	tests := []struct {
		name    string
		entries []models.Entry
		want    float64
	}{
		{"no entries", nil, 0},
		{"partial", []models.Entry{entry("s1", "2025-03-02", 25)}, 25},
		{"exactly done", []models.Entry{entry("s1", "2025-03-02", 100)}, 100},
		{"capped at 100", []models.Entry{entry("s1", "2025-03-02", 250)}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(goal, tt.entries, time.UTC); got != tt.want {
				t.Errorf("Progress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressZeroTarget(t *testing.T) {
	goal := testGoal()
	goal.TargetHours = 0
	entries := []models.Entry{entry("s1", "2025-03-02", 10)}
	if got := Progress(goal, entries, time.UTC); got != 0 {
		t.Errorf("Progress with zero target = %v, want 0", got)
	}
}

func TestDailyStatusThresholds(t *testing.T) {
	goal := testGoal() // DailyTarget 10

	tests := []struct {
		hours float64
		want  constants.DailyStatus
	}{
		{12.0, constants.DailyStatusExcellent},
		{10.0, constants.DailyStatusCompleted},
		{11.99, constants.DailyStatusCompleted},
		{7.0, constants.DailyStatusClose},
		{6.99, constants.DailyStatusBehind},
		{0, constants.DailyStatusBehind},
	}
	for _, tt := range tests {
		entries := []models.Entry{entry("s1", "2025-03-05", tt.hours)}
		if got := DailyStatus(goal, entries, "2025-03-05", time.UTC); got != tt.want {
			t.Errorf("DailyStatus(%v hours) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestTodayHoursIgnoresOtherDays(t *testing.T) {
	goal := testGoal()
	entries := []models.Entry{
		entry("s1", "2025-03-04", 4),
		entry("s1", "2025-03-05", 2),
		entry("s1", "2025-03-05", 3),
	}
	if got := TodayHours(goal, entries, "2025-03-05", time.UTC); got != 5 {
		t.Errorf("TodayHours = %v, want 5", got)
	}
}

func TestStatus(t *testing.T) {
	goal := testGoal()
	today := "2025-06-01"

	if got := Status(goal, nil, today, time.UTC); got != constants.GoalStatusPending {
		t.Errorf("status with no progress = %v, want pending", got)
	}

	inProgress := []models.Entry{entry("s1", "2025-03-05", 10)}
	if got := Status(goal, inProgress, today, time.UTC); got != constants.GoalStatusInProgress {
		t.Errorf("status with progress = %v, want in-progress", got)
	}

	goal.Completed = true
	if got := Status(goal, inProgress, today, time.UTC); got != constants.GoalStatusCompleted {
		t.Errorf("status completed = %v, want completed", got)
	}

	// A passed deadline without completion is pending, whatever the progress.
	expired := testGoal()
	expired.Deadline = "2025-05-01"
	if got := Status(expired, inProgress, today, time.UTC); got != constants.GoalStatusPending {
		t.Errorf("status past deadline = %v, want pending", got)
	}
}

func TestRemainingAndCanComplete(t *testing.T) {
	goal := testGoal()
	entries := []models.Entry{entry("s1", "2025-03-05", 60)}

	if got := RemainingHours(goal, entries, time.UTC); got != 40 {
		t.Errorf("RemainingHours = %v, want 40", got)
	}
	if CanComplete(goal, entries, time.UTC) {
		t.Error("CanComplete true at 60%")
	}

	entries = append(entries, entry("s1", "2025-03-06", 40))
	if !CanComplete(goal, entries, time.UTC) {
		t.Error("CanComplete false at 100%")
	}
}
