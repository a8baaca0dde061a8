package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage"
)

// CreateGoal creates a savings goal
func (s *Storage) CreateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, name, target, saved, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.Target,
		goal.Saved,
		goal.Deadline,
		goal.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	return nil
}

// ListGoals returns all goals of a user
func (s *Storage) ListGoals(ctx context.Context, userID string) ([]*models.Goal, error) {
	query := `
		SELECT id, user_id, name, target, saved, deadline, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal

	for rows.Next() {
		goal := &models.Goal{}
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Name,
			&goal.Target,
			&goal.Saved,
			&goal.Deadline,
			&goal.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return goals, nil
}

// GetGoal retrieves a single goal owned by the user
func (s *Storage) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	query := `
		SELECT id, user_id, name, target, saved, deadline, created_at
		FROM goals
		WHERE id = ? AND user_id = ?
	`

	goal := &models.Goal{}

	err := s.db.QueryRowContext(ctx, query, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.Target,
		&goal.Saved,
		&goal.Deadline,
		&goal.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

// UpdateGoal updates goal progress and target
func (s *Storage) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = ?, target = ?, saved = ?, deadline = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		goal.Name,
		goal.Target,
		goal.Saved,
		goal.Deadline,
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrGoalNotFound
	}

	return nil
}
