package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/skilltrack/internal/analytics"
	"github.com/julianstephens/skilltrack/internal/utils"
)

type StatsCmd struct {
	Range string `short:"r" default:"weekly" enum:"daily,weekly,monthly,custom" help:"Date range."`
	Start string `help:"Custom range start (YYYY-MM-DD)."`
	End   string `help:"Custom range end (YYYY-MM-DD)."`
	Skill string `short:"s" help:"Filter by skill name or ID."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if c.Range == string(analytics.RangeCustom) {
		if c.Start == "" || c.End == "" {
			return fmt.Errorf("custom range requires --start and --end")
		}
		if !utils.ValidateDateFormat(c.Start) || !utils.ValidateDateFormat(c.End) {
			return fmt.Errorf("custom range dates must be in YYYY-MM-DD format")
		}
	}

	skillID := ""
	if c.Skill != "" {
		skill, err := ctx.ResolveSkill(c.Skill)
		if err != nil {
			return err
		}
		skillID = skill.ID
	}

	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return err
	}
	skills, err := ctx.Store.GetAllSkills()
	if err != nil {
		return err
	}

	now := time.Now().In(ctx.Location())
	start, end := analytics.ResolveRange(analytics.DateRange(c.Range), now, c.Start, c.End)
	filtered := analytics.FilterEntries(entries, start, end, skillID)

	fmt.Printf("Stats %s to %s\n", start, end)
	fmt.Printf("Total: %s\n", utils.FormatHours(analytics.TotalHours(filtered)))

	bySkill := analytics.HoursBySkill(skills, filtered)
	if len(bySkill) > 0 {
		fmt.Println("\nBy skill:")
		for _, row := range bySkill {
			fmt.Printf("  %-24s %8s\n", row.Name, utils.FormatHours(row.Hours))
		}
	}

	byDate := analytics.HoursByDate(filtered, start, end)
	if len(byDate) > 0 && len(byDate) <= 31 {
		fmt.Println("\nBy day:")
		max := 0.0
		for _, row := range byDate {
			if row.Hours > max {
				max = row.Hours
			}
		}
		for _, row := range byDate {
			bar := ""
			if max > 0 {
				bar = strings.Repeat("█", int(row.Hours/max*20+0.5))
			}
			fmt.Printf("  %s  %6s  %s\n", row.Date, utils.FormatHours(row.Hours), bar)
		}
	}
	return nil
}
