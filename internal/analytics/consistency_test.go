package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/skilltrack/internal/models"
)

func log(date string, rate float64) models.DailyTaskLog {
	return models.DailyTaskLog{ID: "log-" + date, Date: date, CompletionRate: rate}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Errorf("CompletionRate(nil) = %v, want 0", got)
	}

	tasks := []models.DailyTask{
		{ID: "1", Completed: true},
		{ID: "2", Completed: true},
		{ID: "3", Completed: true},
		{ID: "4", Completed: false},
	}
	if got := CompletionRate(tasks); got != 75 {
		t.Errorf("CompletionRate = %v, want 75", got)
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		logs []models.DailyTaskLog
		want int
	}{
		{"no logs", nil, 0},
		{
			"unbroken run",
			[]models.DailyTaskLog{log("2025-03-01", 90), log("2025-03-02", 85), log("2025-03-03", 100)},
			3,
		},
		{
			"threshold is inclusive",
			[]models.DailyTaskLog{log("2025-03-03", 80)},
			1,
		},
		{
			"broken in the middle",
			[]models.DailyTaskLog{log("2025-03-01", 90), log("2025-03-02", 10), log("2025-03-03", 95)},
			1,
		},
		{
			"latest day below threshold kills the streak",
			[]models.DailyTaskLog{log("2025-03-01", 90), log("2025-03-02", 95), log("2025-03-03", 50)},
			0,
		},
		{
			"order independent",
			[]models.DailyTaskLog{log("2025-03-03", 100), log("2025-03-01", 90), log("2025-03-02", 85)},
			3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.logs); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRollingAverage(t *testing.T) {
	logs := []models.DailyTaskLog{
		log("2025-03-01", 40),
		log("2025-03-02", 60),
		log("2025-03-03", 80),
		log("2025-03-04", 100),
	}

	if got := RollingAverage(nil, 7); got != 0 {
		t.Errorf("RollingAverage(nil) = %v, want 0", got)
	}
	// n larger than the history averages everything.
	if got := RollingAverage(logs, 7); got != 70 {
		t.Errorf("RollingAverage(all) = %v, want 70", got)
	}
	// Most recent two by date, regardless of slice order.
	if got := RollingAverage(logs, 2); got != 90 {
		t.Errorf("RollingAverage(2) = %v, want 90", got)
	}
	if got := RollingAverage(logs, 0); got != 0 {
		t.Errorf("RollingAverage(0) = %v, want 0", got)
	}
	if got := RollingAverage(logs, -1); got != 0 {
		t.Errorf("RollingAverage(-1) = %v, want 0", got)
	}
}

func TestTodayTasks(t *testing.T) {
	loc := time.UTC
	today := "2025-03-10"
	tasks := []models.DailyTask{
		{ID: "old", CreatedAt: time.Date(2025, 3, 9, 23, 0, 0, 0, loc)},
		{ID: "now", CreatedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, loc)},
		{ID: "late", CreatedAt: time.Date(2025, 3, 10, 23, 59, 0, 0, loc)},
	}

	got := TodayTasks(tasks, today, loc)
	if len(got) != 2 {
		t.Fatalf("TodayTasks returned %d tasks, want 2", len(got))
	}
	for _, task := range got {
		if task.ID == "old" {
			t.Error("yesterday's task included in today view")
		}
	}
}

func TestSortTasks(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	done1 := base.Add(3 * time.Hour)
	done2 := base.Add(1 * time.Hour)

	tasks := []models.DailyTask{
		{ID: "b-done", Completed: true, CreatedAt: base, CompletedAt: &done1},
		{ID: "a-open", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "a-done", Completed: true, CreatedAt: base, CompletedAt: &done2},
		{ID: "b-open", CreatedAt: base.Add(time.Minute)},
	}

	got := SortTasks(tasks)
	wantOrder := []string{"b-open", "a-open", "a-done", "b-done"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d = %s, want %s (full: %v)", i, got[i].ID, want, ids(got))
		}
	}
}

func ids(tasks []models.DailyTask) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSnapshotLog(t *testing.T) {
	tasks := []models.DailyTask{
		{ID: "1", Completed: true},
		{ID: "2", Completed: false},
	}

	snap := SnapshotLog(tasks, "2025-03-10")
	if snap.ID == "" {
		t.Error("snapshot has no ID")
	}
	if snap.Date != "2025-03-10" {
		t.Errorf("snapshot date = %q", snap.Date)
	}
	if snap.CompletionRate != 50 {
		t.Errorf("snapshot rate = %v, want 50", snap.CompletionRate)
	}
	if len(snap.Tasks) != 2 {
		t.Errorf("snapshot has %d tasks, want 2", len(snap.Tasks))
	}

	// The snapshot owns its task slice.
	tasks[0].ID = "mutated"
	if snap.Tasks[0].ID != "1" {
		t.Error("snapshot shares task slice with caller")
	}
}

func TestRecentLogs(t *testing.T) {
	logs := []models.DailyTaskLog{
		log("2025-03-01", 40),
		log("2025-03-03", 80),
		log("2025-03-02", 60),
	}

	got := RecentLogs(logs, 2)
	if len(got) != 2 {
		t.Fatalf("RecentLogs returned %d, want 2", len(got))
	}
	if got[0].Date != "2025-03-03" || got[1].Date != "2025-03-02" {
		t.Errorf("RecentLogs order wrong: %s, %s", got[0].Date, got[1].Date)
	}
}

func TestRecentLogsNonPositiveLimit(t *testing.T) {
	logs := []models.DailyTaskLog{
		log("2025-03-01", 40),
		log("2025-03-02", 60),
	}

	if got := RecentLogs(logs, 0); len(got) != 0 {
		t.Errorf("RecentLogs(0) returned %d logs, want 0", len(got))
	}
	if got := RecentLogs(logs, -1); len(got) != 0 {
		t.Errorf("RecentLogs(-1) returned %d logs, want 0", len(got))
	}
}
