package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

func (s *Store) AddGoal(goal models.Goal) error {
	_, err := s.db.Exec(`
		INSERT INTO goals (id, skill_id, title, description, target_hours, daily_target,
			deadline, completed, completion_note, created_at, second_chance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		goal.ID, goal.SkillID, goal.Title, goal.Description, goal.TargetHours, goal.DailyTarget,
		goal.Deadline, goal.Completed, goal.CompletionNote,
		goal.CreatedAt.Format(time.RFC3339), goal.SecondChance)
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow(`
		SELECT id, skill_id, title, description, target_hours, daily_target,
			deadline, completed, completion_note, created_at, second_chance
		FROM goals WHERE id = $1`, id)

	g, err := scanGoal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, storage.ErrNotFound
	}
	return g, err
}

func (s *Store) GetAllGoals() ([]models.Goal, error) {
	rows, err := s.db.Query(`
		SELECT id, skill_id, title, description, target_hours, daily_target,
			deadline, completed, completion_note, created_at, second_chance
		FROM goals ORDER BY deadline`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func scanGoal(scan func(...any) error) (models.Goal, error) {
	var g models.Goal
	var createdAt string
	err := scan(&g.ID, &g.SkillID, &g.Title, &g.Description, &g.TargetHours, &g.DailyTarget,
		&g.Deadline, &g.Completed, &g.CompletionNote, &createdAt, &g.SecondChance)
	if err != nil {
		return models.Goal{}, err
	}
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return g, nil
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	res, err := s.db.Exec(`
		UPDATE goals SET skill_id = $1, title = $2, description = $3, target_hours = $4,
			daily_target = $5, deadline = $6, completed = $7, completion_note = $8, second_chance = $9
		WHERE id = $10`,
		goal.SkillID, goal.Title, goal.Description, goal.TargetHours, goal.DailyTarget,
		goal.Deadline, goal.Completed, goal.CompletionNote, goal.SecondChance, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteGoal(id string) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireRow(res)
}
