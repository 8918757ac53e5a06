package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

func (s *Store) AddEntry(entry models.Entry) error {
	// Hours are clamped on creation; the [0,24] invariant holds for every
	// stored row regardless of what the caller passed.
	entry.Hours = models.ClampHours(entry.Hours)

	_, err := s.db.Exec(
		"INSERT INTO entries (id, date, skill_id, hours, notes) VALUES (?, ?, ?, ?, ?)",
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
		"SELECT id, date, skill_id, hours, notes FROM entries WHERE skill_id = ? ORDER BY date", skillID)
}

func (s *Store) queryEntries(query string, args ...any) ([]models.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (models.Entry, error) {
	var e models.Entry
	if err := rows.Scan(&e.ID, &e.Date, &e.SkillID, &e.Hours, &e.Notes); err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-row result into ErrNotFound.
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
