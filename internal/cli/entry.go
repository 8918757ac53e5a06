package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
	"github.com/julianstephens/skilltrack/internal/validation"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Log hours manually."`
	List   EntryListCmd   `cmd:"" help:"List entries."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete an entry."`
}

type EntryAddCmd struct {
	Skill string  `arg:"" help:"Skill name or ID."`
	Hours float64 `arg:"" help:"Hours to log (clamped to 0-24)."`
	Date  string  `short:"d" help:"Date (YYYY-MM-DD, default today)."`
	Notes string  `short:"n" help:"Entry notes."`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	skill, err := ctx.ResolveSkill(c.Skill)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = ctx.Today()
	}

	entry := models.Entry{
		ID:      uuid.New().String(),
		Date:    date,
		SkillID: skill.ID,
		Hours:   models.ClampHours(c.Hours),
		Notes:   c.Notes,
	}
	if err := validation.ValidateEntry(entry); err != nil {
		return err
	}
	if err := ctx.Store.AddEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Logged %s of %s on %s\n", utils.FormatHours(entry.Hours), skill.Name, entry.Date)
	return nil
}

type EntryListCmd struct {
	Skill string `short:"s" help:"Filter by skill name or ID."`
}

func (c *EntryListCmd) Run(ctx *Context) error {
	var (
		entries []models.Entry
		err     error
	)
	if c.Skill != "" {
		skill, rerr := ctx.ResolveSkill(c.Skill)
		if rerr != nil {
			return rerr
		}
		entries, err = ctx.Store.GetEntriesForSkill(skill.ID)
	} else {
		entries, err = ctx.Store.GetAllEntries()
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	names := map[string]string{}
	if skills, err := ctx.Store.GetAllSkills(); err == nil {
		for _, s := range skills {
			names[s.ID] = s.Name
		}
	}

	for _, e := range entries {
		name := names[e.SkillID]
		if name == "" {
			name = e.SkillID
		}
		line := fmt.Sprintf("%s  %-24s %8s", e.Date, name, utils.FormatHours(e.Hours))
		if e.Notes != "" {
			line += "  " + e.Notes
		}
		fmt.Println(line)
	}
	return nil
}

type EntryDeleteCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteEntry(c.ID); err != nil {
		return err
	}
	fmt.Println("Entry deleted.")
	return nil
}
