package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/skilltrack/internal/analytics"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
	"github.com/julianstephens/skilltrack/internal/validation"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Create a goal for a skill."`
	List     GoalListCmd     `cmd:"" help:"List goals with progress."`
	Edit     GoalEditCmd     `cmd:"" help:"Edit a goal."`
	Complete GoalCompleteCmd `cmd:"" help:"Mark a goal completed."`
	Continue GoalContinueCmd `cmd:"" help:"Revive an expired goal with a new deadline."`
	Reopen   GoalReopenCmd   `cmd:"" help:"Reopen a completed goal."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Skill       string  `arg:"" help:"Skill name or ID."`
	Title       string  `arg:"" help:"Goal title."`
	Target      float64 `short:"t" required:"" help:"Total target hours."`
	Daily       float64 `short:"y" required:"" help:"Daily target hours."`
	Deadline    string  `short:"d" required:"" help:"Deadline (YYYY-MM-DD)."`
	Description string  `help:"Goal description."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	skill, err := ctx.ResolveSkill(c.Skill)
	if err != nil {
		return err
	}

	goal := models.Goal{
		ID:          uuid.New().String(),
		SkillID:     skill.ID,
		Title:       c.Title,
		Description: c.Description,
		TargetHours: c.Target,
		DailyTarget: c.Daily,
		Deadline:    c.Deadline,
		CreatedAt:   time.Now(),
	}
	if err := validation.ValidateGoal(goal); err != nil {
		return err
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Goal %q created for %s (%s by %s)\n", goal.Title, skill.Name, utils.FormatHours(goal.TargetHours), goal.Deadline)
	return nil
}

type GoalListCmd struct {
	All bool `short:"a" help:"Include completed goals."`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return err
	}

	loc := ctx.Location()
	today := ctx.Today()

	shown := 0
	for _, g := range goals {
		if g.Completed && !c.All {
			continue
		}
		shown++

		progress := analytics.Progress(g, entries, loc)
		status := analytics.Status(g, entries, today, loc)
		daily := analytics.DailyStatus(g, entries, today, loc)

		fmt.Printf("%s  [%s]\n", g.Title, status)
		fmt.Printf("  progress: %.0f%%  remaining: %s  today: %s (%s)  deadline: %s\n",
			progress,
			utils.FormatHours(analytics.RemainingHours(g, entries, loc)),
			utils.FormatHours(analytics.TodayHours(g, entries, today, loc)),
			daily,
			g.Deadline)
	}
	if shown == 0 {
		fmt.Println("No goals found.")
	}
	return nil
}

type GoalEditCmd struct {
	ID          string   `arg:"" help:"Goal ID."`
	Title       *string  `help:"New title."`
	Target      *float64 `short:"t" help:"New total target hours."`
	Daily       *float64 `short:"y" help:"New daily target hours."`
	Deadline    *string  `short:"d" help:"New deadline (YYYY-MM-DD)."`
	Description *string  `help:"New description."`
}

func (c *GoalEditCmd) Run(ctx *Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return err
	}

	if c.Title != nil {
		goal.Title = *c.Title
	}
	if c.Target != nil {
		goal.TargetHours = *c.Target
	}
	if c.Daily != nil {
		goal.DailyTarget = *c.Daily
	}
	if c.Deadline != nil {
		goal.Deadline = *c.Deadline
	}
	if c.Description != nil {
		goal.Description = *c.Description
	}

	if err := validation.ValidateGoal(goal); err != nil {
		return err
	}
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}
	fmt.Println("Goal updated.")
	return nil
}

type GoalCompleteCmd struct {
	ID   string `arg:"" help:"Goal ID."`
	Note string `short:"n" help:"Completion note."`
}

func (c *GoalCompleteCmd) Run(ctx *Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return err
	}

	loc := ctx.Location()
	if !analytics.CanComplete(goal, entries, loc) {
		remaining := analytics.RemainingHours(goal, entries, loc)
		return fmt.Errorf("goal is not at 100%%; %s remaining", utils.FormatHours(remaining))
	}

	goal.Completed = true
	goal.CompletionNote = c.Note
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}
	fmt.Printf("Goal %q completed.\n", goal.Title)
	return nil
}

type GoalContinueCmd struct {
	ID       string `arg:"" help:"Goal ID."`
	Deadline string `arg:"" help:"New deadline (YYYY-MM-DD)."`
}

func (c *GoalContinueCmd) Run(ctx *Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return err
	}
	if goal.Completed {
		return fmt.Errorf("goal is already completed")
	}
	if !utils.ValidateDateFormat(c.Deadline) {
		return fmt.Errorf("deadline must be in YYYY-MM-DD format")
	}
	if c.Deadline <= ctx.Today() {
		return fmt.Errorf("new deadline must be in the future")
	}

	goal.Deadline = c.Deadline
	goal.SecondChance = true
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}
	fmt.Printf("Goal %q continued until %s.\n", goal.Title, goal.Deadline)
	return nil
}

type GoalReopenCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalReopenCmd) Run(ctx *Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return err
	}
	if !goal.Completed {
		return fmt.Errorf("goal is not completed")
	}

	goal.Completed = false
	goal.CompletionNote = ""
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}
	fmt.Printf("Goal %q reopened.\n", goal.Title)
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteGoal(c.ID); err != nil {
		return err
	}
	fmt.Println("Goal deleted.")
	return nil
}
