package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

func (s *Store) AddSkill(skill models.Skill) error {
	_, err := s.db.Exec(
		"INSERT INTO skills (id, name, priority) VALUES ($1, $2, $3)",
		skill.ID, skill.Name, string(skill.Priority))
	if err != nil {
		return fmt.Errorf("failed to add skill: %w", err)
	}
	return nil
}

func (s *Store) GetSkill(id string) (models.Skill, error) {
	return s.scanSkillRow(s.db.QueryRow(
		"SELECT id, name, priority FROM skills WHERE id = $1", id))
}

func (s *Store) GetSkillByName(name string) (models.Skill, error) {
	return s.scanSkillRow(s.db.QueryRow(
		"SELECT id, name, priority FROM skills WHERE LOWER(name) = LOWER($1)", name))
}

func (s *Store) scanSkillRow(row *sql.Row) (models.Skill, error) {
	var sk models.Skill
	var priority string
	err := row.Scan(&sk.ID, &sk.Name, &priority)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Skill{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Skill{}, err
	}
	sk.Priority = constants.Priority(priority)
	return sk, nil
}

func (s *Store) GetAllSkills() ([]models.Skill, error) {
	rows, err := s.db.Query("SELECT id, name, priority FROM skills ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var sk models.Skill
		var priority string
		if err := rows.Scan(&sk.ID, &sk.Name, &priority); err != nil {
			return nil, err
		}
		sk.Priority = constants.Priority(priority)
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (s *Store) UpdateSkill(skill models.Skill) error {
	res, err := s.db.Exec(
		"UPDATE skills SET name = $1, priority = $2 WHERE id = $3",
		skill.Name, string(skill.Priority), skill.ID)
	if err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteSkill(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE skill_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete skill entries: %w", err)
	}
	res, err := tx.Exec("DELETE FROM skills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) AddEntry(entry models.Entry) error {
	entry.Hours = models.ClampHours(entry.Hours)
	_, err := s.db.Exec(
		"INSERT INTO entries (id, date, skill_id, hours, notes) VALUES ($1, $2, $3, $4, $5)",
		entry.ID, entry.Date, entry.SkillID, entry.Hours, entry.Notes)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	return nil
}

func (s *Store) GetAllEntries() ([]models.Entry, error) {
	return s.queryEntries("SELECT id, date, skill_id, hours, notes FROM entries ORDER BY date")
}

func (s *Store) GetEntriesForSkill(skillID string) ([]models.Entry, error) {
	return s.queryEntries(
		"SELECT id, date, skill_id, hours, notes FROM entries WHERE skill_id = $1 ORDER BY date", skillID)
}

func (s *Store) queryEntries(query string, args ...any) ([]models.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.SkillID, &e.Hours, &e.Notes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireRow(res)
}

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID, session.SkillID, session.Date, session.StartTime, session.EndTime,
		session.TotalHours, session.Notes, string(intervals))
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO entries (id, date, skill_id, hours, notes) VALUES ($1, $2, $3, $4, $5)",
		entry.ID, entry.Date, entry.SkillID, entry.Hours, entry.Notes)
	if err != nil {
		return fmt.Errorf("failed to store session entry: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, skill_id, date, start_time, end_time, total_hours, notes, intervals
		FROM sessions WHERE id = $1`, id)

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
	var intervals []byte
	err := scan(&sess.ID, &sess.SkillID, &sess.Date, &sess.StartTime, &sess.EndTime,
		&sess.TotalHours, &sess.Notes, &intervals)
	if err != nil {
		return models.Session{}, err
	}
	if err := json.Unmarshal(intervals, &sess.Intervals); err != nil {
		return models.Session{}, fmt.Errorf("failed to decode intervals: %w", err)
	}
	return sess, nil
}

func (s *Store) SetSessionNotes(id string, notes string) error {
	res, err := s.db.Exec("UPDATE sessions SET notes = $1 WHERE id = $2", notes, id)
	if err != nil {
		return fmt.Errorf("failed to update session notes: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// isUniqueViolation checks for the Postgres unique_violation error code.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
