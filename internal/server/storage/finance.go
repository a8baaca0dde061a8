package storage

import (
	"context"

	"github.com/vmaslov/moneykeeper/internal/models"
)

// TransactionFilter задает параметры выборки транзакций пользователя.
// Пустые поля не фильтруют.
type TransactionFilter struct {
	Month      string // YYYY-MM
	CategoryID string
	Kind       string
	Sort       string // "date" (по умолчанию) или "amount"
}

// BudgetWithSpent — бюджет вместе с суммой расходов за его месяц
type BudgetWithSpent struct {
	Budget   models.Budget
	Category string // denormalized название категории
	Spent    int64
}

// SummaryRow — агрегат по одной категории за месяц
type SummaryRow struct {
	CategoryID string
	Category   string
	Kind       string
	Total      int64
}

// CategoryStorage defines interface for category persistence
type CategoryStorage interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error)

	// DeleteCategory removes a category.
	// Returns ErrCategoryInUse if transactions or budgets reference it.
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// BudgetStorage defines interface for budget persistence
type BudgetStorage interface {
	CreateBudget(ctx context.Context, budget *models.Budget) error

	// ListBudgets returns budgets for a month together with spent totals
	ListBudgets(ctx context.Context, userID, month string) ([]*BudgetWithSpent, error)

	UpdateBudgetLimit(ctx context.Context, userID, budgetID string, limit int64) (*BudgetWithSpent, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// TransactionStorage defines interface for transaction persistence
type TransactionStorage interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, txID string) error

	// Summary aggregates transactions by category for a month
	Summary(ctx context.Context, userID, month string) ([]*SummaryRow, error)
}

// GoalStorage defines interface for savings goal persistence
type GoalStorage interface {
	CreateGoal(ctx context.Context, goal *models.Goal) error
	ListGoals(ctx context.Context, userID string) ([]*models.Goal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error)
	UpdateGoal(ctx context.Context, goal *models.Goal) error
}
