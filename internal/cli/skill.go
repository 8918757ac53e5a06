package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
	"github.com/julianstephens/skilltrack/internal/validation"
)

type SkillCmd struct {
	Add    SkillAddCmd    `cmd:"" help:"Add a new skill."`
	List   SkillListCmd   `cmd:"" help:"List skills."`
	Rename SkillRenameCmd `cmd:"" help:"Rename a skill."`
	Delete SkillDeleteCmd `cmd:"" help:"Delete a skill and its entries."`
}

type SkillAddCmd struct {
	Name     string `arg:"" help:"Skill name."`
	Priority string `short:"p" help:"Priority (low|medium|high)." default:"medium" enum:"low,medium,high"`
}

func (c *SkillAddCmd) Run(ctx *Context) error {
	if err := validation.ValidateSkillName(c.Name); err != nil {
		return err
	}
	name := validation.NormalizeSkillName(c.Name)

	// Duplicate names are rejected, case-insensitively.
	if _, err := ctx.Store.GetSkillByName(name); err == nil {
		return fmt.Errorf("skill %q already exists", name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	skill := models.Skill{
		ID:       uuid.New().String(),
		Name:     name,
		Priority: constants.Priority(c.Priority),
	}
	if err := ctx.Store.AddSkill(skill); err != nil {
		return err
	}

	fmt.Printf("Added skill: %s (%s priority)\n", skill.Name, skill.Priority)
	return nil
}

type SkillListCmd struct{}

func (c *SkillListCmd) Run(ctx *Context) error {
	skills, err := ctx.Store.GetAllSkills()
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		fmt.Println("No skills yet. Add one with 'skilltrack skill add'.")
		return nil
	}

	for _, s := range skills {
		fmt.Printf("%-24s %s\n", s.Name, s.Priority)
	}
	return nil
}

type SkillRenameCmd struct {
	Skill string `arg:"" help:"Skill name or ID."`
	Name  string `arg:"" help:"New name."`
}

func (c *SkillRenameCmd) Run(ctx *Context) error {
	skill, err := ctx.ResolveSkill(c.Skill)
	if err != nil {
		return err
	}
	if err := validation.ValidateSkillName(c.Name); err != nil {
		return err
	}

	skill.Name = validation.NormalizeSkillName(c.Name)
	if err := ctx.Store.UpdateSkill(skill); err != nil {
		return err
	}

	fmt.Printf("Renamed skill to %s\n", skill.Name)
	return nil
}

type SkillDeleteCmd struct {
	Skill string `arg:"" help:"Skill name or ID."`
}

func (c *SkillDeleteCmd) Run(ctx *Context) error {
	skill, err := ctx.ResolveSkill(c.Skill)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteSkill(skill.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted skill %s and its entries\n", skill.Name)
	return nil
}
