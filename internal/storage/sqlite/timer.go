package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

// ClaimActiveTimer inserts into the single-row slot. The fixed primary key
// turns concurrent starts into an insert race: exactly one wins, the rest get
// ErrTimerSlotTaken.
func (s *Store) ClaimActiveTimer(t models.ActiveTimer) error {
	intervals, err := json.Marshal(t.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO active_timer (slot, skill_id, start_time, elapsed_seconds, is_running, intervals)
		VALUES (1, ?, ?, ?, ?, ?)`,
		t.SkillID, t.StartTime, t.ElapsedSeconds, boolToInt(t.IsRunning), string(intervals))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrTimerSlotTaken
		}
		return fmt.Errorf("failed to claim timer slot: %w", err)
	}
	return nil
}

func (s *Store) UpdateActiveTimer(t models.ActiveTimer) error {
	intervals, err := json.Marshal(t.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE active_timer SET skill_id = ?, start_time = ?, elapsed_seconds = ?, is_running = ?, intervals = ?
		WHERE slot = 1`,
		t.SkillID, t.StartTime, t.ElapsedSeconds, boolToInt(t.IsRunning), string(intervals))
	if err != nil {
		return fmt.Errorf("failed to update active timer: %w", err)
	}
	return requireRow(res)
}

func (s *Store) GetActiveTimer() (models.ActiveTimer, bool, error) {
	row := s.db.QueryRow(`
		SELECT skill_id, start_time, elapsed_seconds, is_running, intervals
		FROM active_timer WHERE slot = 1`)

	var t models.ActiveTimer
	var isRunning int
	var intervals string
	err := row.Scan(&t.SkillID, &t.StartTime, &t.ElapsedSeconds, &isRunning, &intervals)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ActiveTimer{}, false, nil
	}
	if err != nil {
		return models.ActiveTimer{}, false, err
	}

	t.IsRunning = isRunning != 0
	if err := json.Unmarshal([]byte(intervals), &t.Intervals); err != nil {
		return models.ActiveTimer{}, false, fmt.Errorf("failed to decode intervals: %w", err)
	}
	return t, true, nil
}

func (s *Store) ClearActiveTimer() error {
	_, err := s.db.Exec("DELETE FROM active_timer WHERE slot = 1")
	if err != nil {
		return fmt.Errorf("failed to clear active timer: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces constraint failures as formatted errors
	// rather than typed ones.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
