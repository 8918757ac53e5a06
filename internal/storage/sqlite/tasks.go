package sqlite

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
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, boolToInt(task.Completed),
		task.CreatedAt.Format(time.RFC3339), timePtrToNull(task.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to add daily task: %w", err)
	}
	return nil
}

func (s *Store) GetDailyTask(id string) (models.DailyTask, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, completed, created_at, completed_at
		FROM daily_tasks WHERE id = ?`, id)

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
	var completed int
	var createdAt string
	var completedAt sql.NullString
	err := scan(&t.ID, &t.Title, &t.Description, &completed, &createdAt, &completedAt)
	if err != nil {
		return models.DailyTask{}, err
	}

	t.Completed = completed != 0
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
		UPDATE daily_tasks SET title = ?, description = ?, completed = ?, completed_at = ?
		WHERE id = ?`,
		task.Title, task.Description, boolToInt(task.Completed),
		timePtrToNull(task.CompletedAt), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update daily task: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteDailyTask(id string) error {
	res, err := s.db.Exec("DELETE FROM daily_tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete daily task: %w", err)
	}
	return requireRow(res)
}

// UpsertDailyLog overwrites today's snapshot in place when a log for the date
// already exists, keeping its original ID; repeated saves on one day never
// produce a second row.
func (s *Store) UpsertDailyLog(log models.DailyTaskLog) error {
	tasks, err := json.Marshal(log.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode task snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_logs (id, date, tasks, completion_rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET tasks = excluded.tasks, completion_rate = excluded.completion_rate`,
		log.ID, log.Date, string(tasks), log.CompletionRate)
	if err != nil {
		return fmt.Errorf("failed to upsert daily log: %w", err)
	}
	return nil
}

func (s *Store) GetDailyLog(date string) (models.DailyTaskLog, error) {
	row := s.db.QueryRow(
		"SELECT id, date, tasks, completion_rate FROM daily_logs WHERE date = ?", date)

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
	var tasks string
	if err := scan(&l.ID, &l.Date, &tasks, &l.CompletionRate); err != nil {
		return models.DailyTaskLog{}, err
	}
	if err := json.Unmarshal([]byte(tasks), &l.Tasks); err != nil {
		return models.DailyTaskLog{}, fmt.Errorf("failed to decode task snapshot: %w", err)
	}
	return l, nil
}

func timePtrToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}
