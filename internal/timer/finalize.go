package timer

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
)

// Finalize reduces a finished timer snapshot into one Session and one Entry
// carrying the same derived hours.
//
// TotalHours is the wall-clock span from the earliest interval start to the
// end timestamp, pause gaps included; the active-only ElapsedSeconds the
// tracker accumulates is kept on the session's intervals but is not what gets
// logged. Changing this to sum active intervals would silently shrink every
// paused session's logged hours, so the span calculation is kept as the
// compatible behavior.
//
// The session date is the calendar day of the session start in the given
// location, never a UTC slice of the timestamp.
func Finalize(state models.ActiveTimer, endTime int64, notes string, loc *time.Location) (models.Session, models.Entry) {
	if loc == nil {
		loc = time.Local
	}

	sessionStart := state.SessionStart()
	totalHours := roundHours(float64(endTime-sessionStart) / 3600000.0)
	date := utils.DateOfMillis(sessionStart, loc)

	session := models.Session{
		ID:         uuid.New().String(),
		SkillID:    state.SkillID,
		Date:       date,
		StartTime:  sessionStart,
		EndTime:    endTime,
		TotalHours: totalHours,
		Notes:      notes,
		Intervals:  state.Intervals,
	}

	entryNotes := notes
	if entryNotes == "" {
		entryNotes = constants.DefaultSessionNote
	}
	entry := models.Entry{
		ID:      uuid.New().String(),
		Date:    date,
		SkillID: state.SkillID,
		Hours:   totalHours,
		Notes:   entryNotes,
	}

	return session, entry
}

// roundHours rounds to two decimal places, matching how logged hours are
// stored and displayed.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
