package storage

import (
	"errors"

	"github.com/julianstephens/skilltrack/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrTimerSlotTaken is returned when claiming the active-timer slot while
	// another timer holds it. Concurrent starts race for the slot; the loser
	// gets this conflict instead of overwriting the winner's state.
	ErrTimerSlotTaken = errors.New("an active timer already exists")
)

// Provider is the persistence boundary. Create operations are transactional:
// on failure nothing is stored and the caller may retry; an optimistic
// insert is never left half-applied.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Skills
	AddSkill(models.Skill) error
	GetSkill(id string) (models.Skill, error)
	GetSkillByName(name string) (models.Skill, error)
	GetAllSkills() ([]models.Skill, error)
	UpdateSkill(models.Skill) error
	// DeleteSkill removes a skill and all of its entries.
	DeleteSkill(id string) error

	// Entries
	AddEntry(models.Entry) error
	GetAllEntries() ([]models.Entry, error)
	GetEntriesForSkill(skillID string) ([]models.Entry, error)
	DeleteEntry(id string) error

	// Sessions
	GetSession(id string) (models.Session, error)
	GetAllSessions() ([]models.Session, error)
	SetSessionNotes(id string, notes string) error
	// FinalizeSession stores a finished timer's session and entry in one
	// transaction; the two never disagree on hours and neither exists
	// without the other.
	FinalizeSession(models.Session, models.Entry) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetAllGoals() ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error

	// Daily tasks
	AddDailyTask(models.DailyTask) error
	GetDailyTask(id string) (models.DailyTask, error)
	GetAllDailyTasks() ([]models.DailyTask, error)
	UpdateDailyTask(models.DailyTask) error
	DeleteDailyTask(id string) error

	// Daily logs
	// UpsertDailyLog is keyed by date: a second save on the same day
	// overwrites the snapshot in place and keeps the original log ID.
	UpsertDailyLog(models.DailyTaskLog) error
	GetDailyLog(date string) (models.DailyTaskLog, error)
	GetAllDailyLogs() ([]models.DailyTaskLog, error)

	// Active timer (single slot)
	// ClaimActiveTimer inserts the timer into the single slot, failing with
	// ErrTimerSlotTaken when it is occupied.
	ClaimActiveTimer(models.ActiveTimer) error
	UpdateActiveTimer(models.ActiveTimer) error
	GetActiveTimer() (models.ActiveTimer, bool, error)
	ClearActiveTimer() error

	// Utils
	GetConfigPath() string
}
