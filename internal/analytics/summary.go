package analytics

import (
	"sort"
	"time"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
)

// DateRange selects the window aggregate views cover.
type DateRange string

const (
	RangeDaily   DateRange = "daily"
	RangeWeekly  DateRange = "weekly"
	RangeMonthly DateRange = "monthly"
	RangeCustom  DateRange = "custom"
)

// SkillHours is one row of the hours-by-skill breakdown.
type SkillHours struct {
	Name  string
	Hours float64
}

// DateHours is one row of the hours-by-date series.
type DateHours struct {
	Date  string
	Hours float64
}

// ResolveRange converts a named range into inclusive start/end dates relative
// to now. For RangeCustom the provided dates are used, falling back to the
// monthly window when either is empty.
func ResolveRange(r DateRange, now time.Time, customStart, customEnd string) (string, string) {
	today := utils.LocalDateString(now)
	switch r {
	case RangeDaily:
		return today, today
	case RangeWeekly:
		return utils.LocalDateString(now.AddDate(0, 0, -7)), today
	case RangeCustom:
		if customStart != "" && customEnd != "" {
			return customStart, customEnd
		}
		fallthrough
	default:
		return utils.LocalDateString(now.AddDate(0, 0, -30)), today
	}
}

// FilterEntries keeps entries within [start, end] (inclusive, YYYY-MM-DD
// string comparison) and matching the skill filter; an empty skillID means
// all skills.
func FilterEntries(entries []models.Entry, start, end, skillID string) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.Date < start || e.Date > end {
			continue
		}
		if skillID != "" && e.SkillID != skillID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TotalHours sums the hours of all entries.
func TotalHours(entries []models.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

// HoursBySkill aggregates entry hours per skill name, most-practiced first.
// Entries for unknown skills bucket under "Unknown".
func HoursBySkill(skills []models.Skill, entries []models.Entry) []SkillHours {
	names := make(map[string]string, len(skills))
	for _, s := range skills {
		names[s.ID] = s.Name
	}

	totals := make(map[string]float64)
	for _, e := range entries {
		name, ok := names[e.SkillID]
		if !ok {
			name = "Unknown"
		}
		totals[name] += e.Hours
	}

	out := make([]SkillHours, 0, len(totals))
	for name, hours := range totals {
		out = append(out, SkillHours{Name: name, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HoursByDate produces one row per calendar day from start through end
// (inclusive), zero-filling days with no entries so charts have a continuous
// axis.
func HoursByDate(entries []models.Entry, start, end string) []DateHours {
	startT, err := utils.ParseDate(start)
	if err != nil {
		return nil
	}
	endT, err := utils.ParseDate(end)
	if err != nil {
		return nil
	}

	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.Date] += e.Hours
	}

	var out []DateHours
	for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
		date := utils.LocalDateString(d)
		out = append(out, DateHours{Date: date, Hours: totals[date]})
	}
	return out
}
