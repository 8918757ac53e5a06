package constants

const (
	AppName            = "skilltrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/skilltrack/skilltrack.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the display format for elapsed timer values (HH:MM:SS)
	ClockFormat = "15:04:05"
)

// Timer-derived record defaults.
const (
	// DefaultSessionNote is attached to an entry produced by ending a timer
	// without an explicit note.
	DefaultSessionNote = "Timer session"

	// MaxEntryHours caps a single entry; hours outside [0, MaxEntryHours]
	// are clamped on creation.
	MaxEntryHours = 24.0
)

// Goal progress thresholds. The daily ratios classify today's hours against
// the goal's daily target.
const (
	DailyExcellentRatio = 1.2
	DailyCloseRatio     = 0.7
)

// Consistency thresholds.
const (
	// StreakThreshold is the minimum completion rate (percent) for a day to
	// extend a consistency streak.
	StreakThreshold = 80.0

	// RollingWeekDays and RollingMonthDays are the window sizes for the
	// consistency averages shown in task stats.
	RollingWeekDays  = 7
	RollingMonthDays = 30

	// HistoryLogLimit bounds how many daily logs the history view shows.
	HistoryLogLimit = 30
)

// GoalStatus is the derived lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusPending    GoalStatus = "pending"
	GoalStatusInProgress GoalStatus = "in-progress"
	GoalStatusCompleted  GoalStatus = "completed"
)

// DailyStatus classifies today's logged hours against a goal's daily target.
type DailyStatus string

const (
	DailyStatusExcellent DailyStatus = "excellent"
	DailyStatusCompleted DailyStatus = "completed"
	DailyStatusClose     DailyStatus = "close"
	DailyStatusBehind    DailyStatus = "behind"
)

// Priority ranks a skill.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)
