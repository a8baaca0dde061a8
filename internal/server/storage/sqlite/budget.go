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

// CreateBudget creates a monthly budget for a category
func (s *Storage) CreateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category_id, month, limit_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		budget.ID,
		budget.UserID,
		budget.CategoryID,
		budget.Month,
		budget.Limit,
		budget.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrBudgetAlreadyExists
		}
		return fmt.Errorf("failed to insert budget: %w", err)
	}

	return nil
}

// ListBudgets returns budgets for a month with expense totals per category.
// Учитываются только расходы (kind = 'expense') за месяц бюджета.
func (s *Storage) ListBudgets(ctx context.Context, userID, month string) ([]*storage.BudgetWithSpent, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount, b.created_at,
		       c.name,
		       COALESCE((
		           SELECT SUM(t.amount) FROM transactions t
		           WHERE t.user_id = b.user_id
		             AND t.category_id = b.category_id
		             AND t.kind = 'expense'
		             AND t.tx_date LIKE b.month || '-%'
		       ), 0)
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = ? AND b.month = ?
		ORDER BY c.name
	`

	rows, err := s.db.QueryContext(ctx, query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*storage.BudgetWithSpent

	for rows.Next() {
		item := &storage.BudgetWithSpent{}
		if err := rows.Scan(
			&item.Budget.ID,
			&item.Budget.UserID,
			&item.Budget.CategoryID,
			&item.Budget.Month,
			&item.Budget.Limit,
			&item.Budget.CreatedAt,
			&item.Category,
			&item.Spent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return budgets, nil
}

// UpdateBudgetLimit changes the limit of an existing budget
func (s *Storage) UpdateBudgetLimit(ctx context.Context, userID, budgetID string, limit int64) (*storage.BudgetWithSpent, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET limit_amount = ? WHERE id = ? AND user_id = ?`,
		limit, budgetID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return nil, storage.ErrBudgetNotFound
	}

	return s.getBudget(ctx, userID, budgetID)
}

// getBudget возвращает один бюджет вместе с потраченной суммой
func (s *Storage) getBudget(ctx context.Context, userID, budgetID string) (*storage.BudgetWithSpent, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount, b.created_at,
		       c.name,
		       COALESCE((
		           SELECT SUM(t.amount) FROM transactions t
		           WHERE t.user_id = b.user_id
		             AND t.category_id = b.category_id
		             AND t.kind = 'expense'
		             AND t.tx_date LIKE b.month || '-%'
		       ), 0)
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = ? AND b.user_id = ?
	`

	item := &storage.BudgetWithSpent{}

	err := s.db.QueryRowContext(ctx, query, budgetID, userID).Scan(
		&item.Budget.ID,
		&item.Budget.UserID,
		&item.Budget.CategoryID,
		&item.Budget.Month,
		&item.Budget.Limit,
		&item.Budget.CreatedAt,
		&item.Category,
		&item.Spent,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return item, nil
}

// DeleteBudget removes a budget
func (s *Storage) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`,
		budgetID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrBudgetNotFound
	}

	return nil
}
