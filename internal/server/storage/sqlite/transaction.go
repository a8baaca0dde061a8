package sqlite

import (
	"context"
	"fmt"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage"
)

// CreateTransaction creates a new transaction
func (s *Storage) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, kind, amount, note, tx_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.CategoryID,
		tx.Kind,
		tx.Amount,
		tx.Note,
		tx.Date,
		tx.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ListTransactions returns user transactions matching the filter
func (s *Storage) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	// Запрос собирается из необязательных условий фильтра
	query := `
		SELECT id, user_id, category_id, kind, amount, note, tx_date, created_at
		FROM transactions
		WHERE user_id = ?
	`
	args := []any{userID}

	if filter.Month != "" {
		query += ` AND tx_date LIKE ?`
		args = append(args, filter.Month+"-%")
	}

	if filter.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, filter.CategoryID)
	}

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, filter.Kind)
	}

	switch filter.Sort {
	case "amount":
		query += ` ORDER BY amount DESC, tx_date DESC`
	default:
		query += ` ORDER BY tx_date DESC, created_at DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction

	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.CategoryID,
			&tx.Kind,
			&tx.Amount,
			&tx.Note,
			&tx.Date,
			&tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return transactions, nil
}

// DeleteTransaction removes a transaction
func (s *Storage) DeleteTransaction(ctx context.Context, userID, txID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`,
		txID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTransactionNotFound
	}

	return nil
}

// Summary aggregates monthly totals per category
func (s *Storage) Summary(ctx context.Context, userID, month string) ([]*storage.SummaryRow, error) {
	query := `
		SELECT t.category_id, c.name, t.kind, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.tx_date LIKE ?
		GROUP BY t.category_id, c.name, t.kind
		ORDER BY SUM(t.amount) DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, month+"-%")
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	defer rows.Close()

	var summary []*storage.SummaryRow

	for rows.Next() {
		row := &storage.SummaryRow{}
		if err := rows.Scan(
			&row.CategoryID,
			&row.Category,
			&row.Kind,
			&row.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary = append(summary, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return summary, nil
}
