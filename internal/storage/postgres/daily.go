package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

func (s *Store) AddDailyTask(task models.DailyTask) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_tasks (id, title, description, completed, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		task.ID, task.Title, task.Description, task.Completed,
		task.CreatedAt.Format(time.RFC3339), timePtrToNull(task.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to add daily task: %w", err)
	}
	return nil
}

func (s *Store) GetDailyTask(id string) (models.DailyTask, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, completed, created_at, completed_at
		FROM daily_tasks WHERE id = $1`, id)

	t, err := scanDailyTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyTask{}, storage.ErrNotFound
	}
	return t, err
}

func (s *Store) GetAllDailyTasks() ([]models.DailyTask, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, completed, created_at, completed_at
		FROM daily_tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.DailyTask{}
	for rows.Next() {
		t, err := scanDailyTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanDailyTask(scan func(...any) error) (models.DailyTask, error) {
	var t models.DailyTask
	var createdAt string
	var completedAt sql.NullString
	err := scan(&t.ID, &t.Title, &t.Description, &t.Completed, &createdAt, &completedAt)
	if err != nil {
		return models.DailyTask{}, err
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DailyTask{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if completedAt.Valid {
		ct, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.DailyTask{}, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		t.CompletedAt = &ct
	}
	return t, nil
}

func (s *Store) UpdateDailyTask(task models.DailyTask) error {
	res, err := s.db.Exec(`
		UPDATE daily_tasks SET title = $1, description = $2, completed = $3, completed_at = $4
		WHERE id = $5`,
		task.Title, task.Description, task.Completed, timePtrToNull(task.CompletedAt), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update daily task: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteDailyTask(id string) error {
	res, err := s.db.Exec("DELETE FROM daily_tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete daily task: %w", err)
	}
	return requireRow(res)
}

func (s *Store) UpsertDailyLog(log models.DailyTaskLog) error {
	tasks, err := json.Marshal(log.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode task snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_logs (id, date, tasks, completion_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET tasks = EXCLUDED.tasks, completion_rate = EXCLUDED.completion_rate`,
		log.ID, log.Date, string(tasks), log.CompletionRate)
	if err != nil {
		return fmt.Errorf("failed to upsert daily log: %w", err)
	}
	return nil
}

func (s *Store) GetDailyLog(date string) (models.DailyTaskLog, error) {
	row := s.db.QueryRow(
		"SELECT id, date, tasks, completion_rate FROM daily_logs WHERE date = $1", date)

	l, err := scanDailyLog(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyTaskLog{}, storage.ErrNotFound
	}
	return l, err
}

func (s *Store) GetAllDailyLogs() ([]models.DailyTaskLog, error) {
	rows, err := s.db.Query("SELECT id, date, tasks, completion_rate FROM daily_logs ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.DailyTaskLog{}
	for rows.Next() {
		l, err := scanDailyLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanDailyLog(scan func(...any) error) (models.DailyTaskLog, error) {
	var l models.DailyTaskLog
	var tasks []byte
	if err := scan(&l.ID, &l.Date, &tasks, &l.CompletionRate); err != nil {
		return models.DailyTaskLog{}, err
	}
	if err := json.Unmarshal(tasks, &l.Tasks); err != nil {
		return models.DailyTaskLog{}, fmt.Errorf("failed to decode task snapshot: %w", err)
	}
	return l, nil
}

func (s *Store) ClaimActiveTimer(t models.ActiveTimer) error {
	intervals, err := json.Marshal(t.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO active_timer (slot, skill_id, start_time, elapsed_seconds, is_running, intervals)
		VALUES (1, $1, $2, $3, $4, $5)`,
		t.SkillID, t.StartTime, t.ElapsedSeconds, t.IsRunning, string(intervals))
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
		UPDATE active_timer SET skill_id = $1, start_time = $2, elapsed_seconds = $3, is_running = $4, intervals = $5
		WHERE slot = 1`,
		t.SkillID, t.StartTime, t.ElapsedSeconds, t.IsRunning, string(intervals))
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
	var intervals []byte
	err := row.Scan(&t.SkillID, &t.StartTime, &t.ElapsedSeconds, &t.IsRunning, &intervals)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ActiveTimer{}, false, nil
	}
	if err != nil {
		return models.ActiveTimer{}, false, err
	}
	if err := json.Unmarshal(intervals, &t.Intervals); err != nil {
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

func timePtrToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}
