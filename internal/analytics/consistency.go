package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
)

// CompletionRate returns the percentage of completed tasks in the snapshot.
// An empty snapshot is 0%, never NaN.
func CompletionRate(tasks []models.DailyTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// TodayTasks filters a task collection down to those created today in the
// given location. Prior days' tasks age out of the view by date comparison;
// they are not deleted.
func TodayTasks(tasks []models.DailyTask, today string, loc *time.Location) []models.DailyTask {
	if loc == nil {
		loc = time.Local
	}
	var out []models.DailyTask
	for _, t := range tasks {
		if utils.LocalDateString(t.CreatedAt.In(loc)) == today {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks orders a day's tasks for display: unchecked first by creation
// time, then checked by completion time.
func SortTasks(tasks []models.DailyTask) []models.DailyTask {
	out := append([]models.DailyTask(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if !a.Completed {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return completedAt(a).Before(completedAt(b))
	})
	return out
}

func completedAt(t models.DailyTask) time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return time.Time{}
}

// SnapshotLog builds the daily log record for a day's tasks. The caller
// upserts it keyed by date; the generated ID only survives for a first
// insert, repeated saves on the same day overwrite the snapshot in place.
func SnapshotLog(tasks []models.DailyTask, date string) models.DailyTaskLog {
	return models.DailyTaskLog{
		ID:             uuid.New().String(),
		Date:           date,
		Tasks:          append([]models.DailyTask(nil), tasks...),
		CompletionRate: CompletionRate(tasks),
	}
}

// Streak counts consecutive days at or above the streak threshold, walking
// backward from the most recent log and stopping at the first miss. The
// streak is anchored to now: if the latest day is below threshold the streak
// is 0 no matter how strong earlier runs were.
func Streak(logs []models.DailyTaskLog) int {
	sorted := sortByDateDesc(logs)

	streak := 0
	for _, l := range sorted {
		if l.CompletionRate < constants.StreakThreshold {
			break
		}
		streak++
	}
	return streak
}

// RollingAverage averages the completion rate over the n most recent logs.
// Recency is by log date; gaps in logging are skipped, not counted as 0%.
// Returns 0 when there are no logs.
func RollingAverage(logs []models.DailyTaskLog, n int) float64 {
	if n <= 0 {
		return 0
	}
	sorted := sortByDateDesc(logs)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	if len(sorted) == 0 {
		return 0
	}
	var sum float64
	for _, l := range sorted {
		sum += l.CompletionRate
	}
	return sum / float64(len(sorted))
}

// RecentLogs returns up to limit logs, most recent first, for history views.
// A non-positive limit yields no logs.
func RecentLogs(logs []models.DailyTaskLog, limit int) []models.DailyTaskLog {
	if limit <= 0 {
		return []models.DailyTaskLog{}
	}
	sorted := sortByDateDesc(logs)
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

func sortByDateDesc(logs []models.DailyTaskLog) []models.DailyTaskLog {
	out := append([]models.DailyTaskLog(nil), logs...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
