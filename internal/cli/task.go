package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/skilltrack/internal/analytics"
	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
	"github.com/julianstephens/skilltrack/internal/validation"
)

type TaskCmd struct {
	Add     TaskAddCmd     `cmd:"" help:"Add a task for today."`
	List    TaskListCmd    `cmd:"" help:"List today's tasks."`
	Done    TaskDoneCmd    `cmd:"" help:"Mark a task done."`
	Undo    TaskUndoCmd    `cmd:"" help:"Mark a task not done."`
	Edit    TaskEditCmd    `cmd:"" help:"Edit a task."`
	Delete  TaskDeleteCmd  `cmd:"" help:"Delete a task."`
	Log     TaskLogCmd     `cmd:"" help:"Snapshot today's tasks into the daily log."`
	Stats   TaskStatsCmd   `cmd:"" help:"Show streak and rolling averages."`
	History TaskHistoryCmd `cmd:"" help:"Show recent daily logs."`
}

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `help:"Task description."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := validation.ValidateTaskTitle(c.Title); err != nil {
		return err
	}
	task := models.DailyTask{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   time.Now(),
	}
	if err := ctx.Store.AddDailyTask(task); err != nil {
		return err
	}
	fmt.Printf("Task %q added.\n", task.Title)
	return nil
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	tasks, err := todayTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks for today.")
		return nil
	}

	for _, t := range analytics.SortTasks(tasks) {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", mark, t.ID[:8], t.Title)
		if t.Description != "" {
			line += "  " + t.Description
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%.0f%% complete\n", analytics.CompletionRate(tasks))
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID (prefix allowed)."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	return setTaskCompleted(ctx, c.ID, true)
}

type TaskUndoCmd struct {
	ID string `arg:"" help:"Task ID (prefix allowed)."`
}

func (c *TaskUndoCmd) Run(ctx *Context) error {
	return setTaskCompleted(ctx, c.ID, false)
}

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task ID (prefix allowed)."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	task, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.Title != nil {
		if err := validation.ValidateTaskTitle(*c.Title); err != nil {
			return err
		}
		task.Title = *c.Title
	}
	if c.Description != nil {
		task.Description = *c.Description
	}
	if err := ctx.Store.UpdateDailyTask(task); err != nil {
		return err
	}
	fmt.Println("Task updated.")
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID (prefix allowed)."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	task, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteDailyTask(task.ID); err != nil {
		return err
	}
	fmt.Println("Task deleted.")
	return nil
}

type TaskLogCmd struct{}

func (c *TaskLogCmd) Run(ctx *Context) error {
	tasks, err := todayTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks to log for today")
	}

	log := analytics.SnapshotLog(tasks, ctx.Today())
	if err := ctx.Store.UpsertDailyLog(log); err != nil {
		return err
	}
	fmt.Printf("Logged %d tasks for %s (%.0f%% complete)\n", len(log.Tasks), log.Date, log.CompletionRate)
	return nil
}

type TaskStatsCmd struct{}

func (c *TaskStatsCmd) Run(ctx *Context) error {
	logs, err := ctx.Store.GetAllDailyLogs()
	if err != nil {
		return err
	}

	fmt.Printf("Streak:          %d days\n", analytics.Streak(logs))
	fmt.Printf("7-day average:   %.1f%%\n", analytics.RollingAverage(logs, constants.RollingWeekDays))
	fmt.Printf("30-day average:  %.1f%%\n", analytics.RollingAverage(logs, constants.RollingMonthDays))
	return nil
}

type TaskHistoryCmd struct {
	Limit int `short:"l" default:"30" help:"Number of days to show."`
}

func (c *TaskHistoryCmd) Run(ctx *Context) error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	logs, err := ctx.Store.GetAllDailyLogs()
	if err != nil {
		return err
	}
	recent := analytics.RecentLogs(logs, c.Limit)
	if len(recent) == 0 {
		fmt.Println("No daily logs yet.")
		return nil
	}

	for _, l := range recent {
		done := 0
		for _, t := range l.Tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Printf("%s  %3.0f%%  (%d/%d tasks)\n", l.Date, l.CompletionRate, done, len(l.Tasks))
	}
	return nil
}

func todayTasks(ctx *Context) ([]models.DailyTask, error) {
	tasks, err := ctx.Store.GetAllDailyTasks()
	if err != nil {
		return nil, err
	}
	return analytics.TodayTasks(tasks, ctx.Today(), ctx.Location()), nil
}

func setTaskCompleted(ctx *Context, ref string, completed bool) error {
	task, err := resolveTask(ctx, ref)
	if err != nil {
		return err
	}
	task.Completed = completed
	if completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	if err := ctx.Store.UpdateDailyTask(task); err != nil {
		return err
	}
	if completed {
		fmt.Printf("Task %q done.\n", task.Title)
	} else {
		fmt.Printf("Task %q reopened.\n", task.Title)
	}
	return nil
}

// resolveTask accepts a full task ID or a unique prefix of today's tasks.
func resolveTask(ctx *Context, ref string) (models.DailyTask, error) {
	if task, err := ctx.Store.GetDailyTask(ref); err == nil {
		return task, nil
	}

	tasks, err := todayTasks(ctx)
	if err != nil {
		return models.DailyTask{}, err
	}

	var match *models.DailyTask
	for i, t := range tasks {
		if len(ref) > 0 && len(t.ID) >= len(ref) && t.ID[:len(ref)] == ref {
			if match != nil {
				return models.DailyTask{}, fmt.Errorf("task ID prefix %q is ambiguous", ref)
			}
			match = &tasks[i]
		}
	}
	if match == nil {
		return models.DailyTask{}, fmt.Errorf("task %q: %w", ref, storage.ErrNotFound)
	}
	return *match, nil
}
