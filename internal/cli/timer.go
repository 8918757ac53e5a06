package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
	"github.com/julianstephens/skilltrack/internal/timer"
	"github.com/julianstephens/skilltrack/internal/tui"
	"github.com/julianstephens/skilltrack/internal/utils"
)

type TimerCmd struct {
	Start  TimerStartCmd  `cmd:"" help:"Start a timer for a skill."`
	Pause  TimerPauseCmd  `cmd:"" help:"Pause the running timer."`
	Resume TimerResumeCmd `cmd:"" help:"Resume the paused timer."`
	Status TimerStatusCmd `cmd:"" help:"Show the active timer."`
	End    TimerEndCmd    `cmd:"" help:"End the session and log it."`
	Watch  TimerWatchCmd  `cmd:"" help:"Live timer display."`
}

// restoreTracker loads the persisted timer state into a fresh tracker.
// Returns ErrNoActiveTimer when the slot is empty.
func restoreTracker(ctx *Context) (*timer.Tracker, error) {
	state, found, err := ctx.Store.GetActiveTimer()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, timer.ErrNoActiveTimer
	}

	t := timer.New()
	if err := t.Restore(state); err != nil {
		return nil, err
	}
	return t, nil
}

type TimerStartCmd struct {
	Skill string `arg:"" help:"Skill name or ID."`
}

func (c *TimerStartCmd) Run(ctx *Context) error {
	skill, err := ctx.ResolveSkill(c.Skill)
	if err != nil {
		return err
	}

	t := timer.New()
	if err := t.Start(skill.ID); err != nil {
		return err
	}
	state, _ := t.Active()

	// The slot claim is the arbiter: if another invocation started a timer
	// first, nothing is stored here and the conflict surfaces to the user.
	if err := ctx.Store.ClaimActiveTimer(state); err != nil {
		if errors.Is(err, storage.ErrTimerSlotTaken) {
			return fmt.Errorf("a timer is already active; end or pause it first")
		}
		return err
	}

	fmt.Printf("Timer started for %s\n", skill.Name)
	return nil
}

type TimerPauseCmd struct{}

func (c *TimerPauseCmd) Run(ctx *Context) error {
	t, err := restoreTracker(ctx)
	if err != nil {
		return err
	}

	if err := t.Pause(); err != nil {
		if errors.Is(err, timer.ErrNotRunning) {
			return fmt.Errorf("timer is already paused")
		}
		return err
	}

	state, _ := t.Active()
	if err := ctx.Store.UpdateActiveTimer(state); err != nil {
		return err
	}

	fmt.Printf("Timer paused at %s\n", utils.FormatClock(t.Elapsed()))
	return nil
}

type TimerResumeCmd struct{}

func (c *TimerResumeCmd) Run(ctx *Context) error {
	t, err := restoreTracker(ctx)
	if err != nil {
		return err
	}

	if err := t.Resume(); err != nil {
		if errors.Is(err, timer.ErrAlreadyRunning) {
			return fmt.Errorf("timer is already running")
		}
		return err
	}

	state, _ := t.Active()
	if err := ctx.Store.UpdateActiveTimer(state); err != nil {
		return err
	}

	fmt.Println("Timer resumed")
	return nil
}

type TimerStatusCmd struct{}

func (c *TimerStatusCmd) Run(ctx *Context) error {
	t, err := restoreTracker(ctx)
	if errors.Is(err, timer.ErrNoActiveTimer) {
		fmt.Println("No active timer.")
		return nil
	}
	if err != nil {
		return err
	}

	state, _ := t.Active()
	skillName := state.SkillID
	if skill, err := ctx.Store.GetSkill(state.SkillID); err == nil {
		skillName = skill.Name
	}

	status := "paused"
	if state.IsRunning {
		status = "running"
	}
	fmt.Printf("%s  %s  (%s)\n", skillName, utils.FormatClock(t.Elapsed()), status)
	return nil
}

type TimerEndCmd struct {
	Notes  string `short:"n" help:"Session notes."`
	NoNote bool   `help:"Skip the notes prompt."`
}

func (c *TimerEndCmd) Run(ctx *Context) error {
	t, err := restoreTracker(ctx)
	if err != nil {
		return err
	}

	notes := c.Notes
	if notes == "" && !c.NoNote {
		prompt := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Session notes").
				Description("What did you work on? (optional)").
				Value(&notes),
		))
		if err := prompt.Run(); err != nil {
			// A cancelled prompt still ends the session, just without notes.
			notes = ""
		}
	}

	final, endTime, err := t.End()
	if err != nil {
		return err
	}
	session, entry := timer.Finalize(final, endTime, notes, ctx.Location())

	// Session and entry land together or not at all. On failure the slot is
	// left in place so the user can retry the end; a finished session is
	// never discarded because of a transient storage failure.
	if err := ctx.Store.FinalizeSession(session, entry); err != nil {
		return fmt.Errorf("failed to log session (timer kept, retry 'timer end'): %w", err)
	}
	if err := ctx.Store.ClearActiveTimer(); err != nil {
		return err
	}

	fmt.Printf("Session logged: %s on %s (%s active)\n",
		utils.FormatHours(session.TotalHours), session.Date, utils.FormatClock(final.ElapsedSeconds))
	return nil
}

type TimerWatchCmd struct{}

func (c *TimerWatchCmd) Run(ctx *Context) error {
	state, found, err := ctx.Store.GetActiveTimer()
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("No active timer.")
		return nil
	}

	skillName := state.SkillID
	if skill, err := ctx.Store.GetSkill(state.SkillID); err == nil {
		skillName = skill.Name
	}

	return tui.RunWatch(tui.WatchConfig{
		SkillName: skillName,
		State:     stateCopy(state),
	})
}

func stateCopy(state models.ActiveTimer) models.ActiveTimer {
	st := state
	st.Intervals = append([]models.TimeInterval(nil), state.Intervals...)
	return st
}
