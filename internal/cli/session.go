package cli

import (
	"fmt"

	"github.com/julianstephens/skilltrack/internal/utils"
)

type SessionCmd struct {
	List SessionListCmd `cmd:"" help:"List recorded sessions."`
	Note SessionNoteCmd `cmd:"" help:"Set the notes on a session."`
}

type SessionListCmd struct {
	Limit int `short:"l" default:"20" help:"Number of sessions to show."`
}

func (c *SessionListCmd) Run(ctx *Context) error {
	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}

	names := map[string]string{}
	if skills, err := ctx.Store.GetAllSkills(); err == nil {
		for _, s := range skills {
			names[s.ID] = s.Name
		}
	}

	loc := ctx.Location()
	shown := 0
	for _, s := range sessions {
		if shown >= c.Limit {
			break
		}
		shown++

		name := names[s.SkillID]
		if name == "" {
			name = s.SkillID
		}
		line := fmt.Sprintf("%s  %s  %-24s %s to %s  %8s",
			s.ID[:8], s.Date, name,
			utils.MillisToTime(s.StartTime).In(loc).Format("15:04"),
			utils.MillisToTime(s.EndTime).In(loc).Format("15:04"),
			utils.FormatHours(s.TotalHours))
		if s.Notes != "" {
			line += "  " + s.Notes
		}
		fmt.Println(line)
	}
	return nil
}

type SessionNoteCmd struct {
	ID    string `arg:"" help:"Session ID."`
	Notes string `arg:"" help:"Notes text."`
}

func (c *SessionNoteCmd) Run(ctx *Context) error {
	if _, err := ctx.Store.GetSession(c.ID); err != nil {
		return err
	}
	if err := ctx.Store.SetSessionNotes(c.ID, c.Notes); err != nil {
		return err
	}
	fmt.Println("Session notes updated.")
	return nil
}
