package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage"
)

// CreateCategory creates a new category for a user
func (s *Storage) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, kind, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.UserID,
		category.Name,
		category.Kind,
		category.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// ListCategories returns all categories of a user ordered by name
func (s *Storage) ListCategories(ctx context.Context, userID string) ([]*models.Category, error) {
	query := `
		SELECT id, user_id, name, kind, created_at
		FROM categories
		WHERE user_id = ?
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.Kind,
			&category.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves a single category owned by the user
func (s *Storage) GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, kind, created_at
		FROM categories
		WHERE id = ? AND user_id = ?
	`

	category := &models.Category{}

	err := s.db.QueryRowContext(ctx, query, categoryID, userID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Kind,
		&category.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category if nothing references it
func (s *Storage) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	// Категорию нельзя удалять, пока на нее ссылаются транзакции или бюджеты
	var refs int

	checkQuery := `
		SELECT
			(SELECT COUNT(*) FROM transactions WHERE category_id = ? AND user_id = ?) +
			(SELECT COUNT(*) FROM budgets WHERE category_id = ? AND user_id = ?)
	`

	err := s.db.QueryRowContext(ctx, checkQuery, categoryID, userID, categoryID, userID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}

	if refs > 0 {
		return storage.ErrCategoryInUse
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`,
		categoryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCategoryNotFound
	}

	return nil
}
