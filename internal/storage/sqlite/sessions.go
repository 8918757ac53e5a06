package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

// FinalizeSession stores the session and its entry projection atomically.
// The timer's end either produces both records or neither; a failure leaves
// nothing behind for the caller to clean up before retrying.
func (s *Store) FinalizeSession(session models.Session, entry models.Entry) error {
	intervals, err := json.Marshal(session.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (id, skill_id, date, start_time, end_time, total_hours, notes, intervals)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.SkillID, session.Date, session.StartTime, session.EndTime,
		session.TotalHours, session.Notes, string(intervals))
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO entries (id, date, skill_id, hours, notes) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.Date, entry.SkillID, entry.Hours, entry.Notes)
	if err != nil {
		return fmt.Errorf("failed to store session entry: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, skill_id, date, start_time, end_time, total_hours, notes, intervals
		FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, storage.ErrNotFound
	}
	return sess, err
}

func (s *Store) GetAllSessions() ([]models.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, skill_id, date, start_time, end_time, total_hours, notes, intervals
		FROM sessions ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func scanSession(scan func(...any) error) (models.Session, error) {
	var sess models.Session
	var intervals string
	err := scan(&sess.ID, &sess.SkillID, &sess.Date, &sess.StartTime, &sess.EndTime,
		&sess.TotalHours, &sess.Notes, &intervals)
	if err != nil {
		return models.Session{}, err
	}
	if err := json.Unmarshal([]byte(intervals), &sess.Intervals); err != nil {
		return models.Session{}, fmt.Errorf("failed to decode intervals: %w", err)
	}
	return sess, nil
}

func (s *Store) SetSessionNotes(id string, notes string) error {
	res, err := s.db.Exec("UPDATE sessions SET notes = ? WHERE id = ?", notes, id)
	if err != nil {
		return fmt.Errorf("failed to update session notes: %w", err)
	}
	return requireRow(res)
}
