package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/skilltrack/internal/constants"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

func priorityFromString(s string) constants.Priority {
	switch constants.Priority(s) {
	case constants.PriorityLow, constants.PriorityMedium, constants.PriorityHigh:
		return constants.Priority(s)
	default:
		return constants.PriorityMedium
	}
}

func (s *Store) AddSkill(skill models.Skill) error {
	_, err := s.db.Exec(
		"INSERT INTO skills (id, name, priority) VALUES (?, ?, ?)",
		skill.ID, skill.Name, string(skill.Priority))
	if err != nil {
		return fmt.Errorf("failed to add skill: %w", err)
	}
	return nil
}

func (s *Store) GetSkill(id string) (models.Skill, error) {
	row := s.db.QueryRow("SELECT id, name, priority FROM skills WHERE id = ?", id)
	return scanSkill(row)
}

func (s *Store) GetSkillByName(name string) (models.Skill, error) {
	row := s.db.QueryRow("SELECT id, name, priority FROM skills WHERE name = ? COLLATE NOCASE", name)
	return scanSkill(row)
}

func scanSkill(row *sql.Row) (models.Skill, error) {
	var sk models.Skill
	var priority string
	err := row.Scan(&sk.ID, &sk.Name, &priority)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Skill{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Skill{}, err
	}
	sk.Priority = priorityFromString(priority)
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
		sk.Priority = priorityFromString(priority)
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (s *Store) UpdateSkill(skill models.Skill) error {
	res, err := s.db.Exec(
		"UPDATE skills SET name = ?, priority = ? WHERE id = ?",
		skill.Name, string(skill.Priority), skill.ID)
	if err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	return requireRow(res)
}

// DeleteSkill removes the skill and all of its entries in one transaction.
func (s *Store) DeleteSkill(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE skill_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete skill entries: %w", err)
	}
	res, err := tx.Exec("DELETE FROM skills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	return tx.Commit()
}
