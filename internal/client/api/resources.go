package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vmaslov/moneykeeper/pkg/api"
)

// ListCategories возвращает категории пользователя
func (c *Client) ListCategories(ctx context.Context) ([]api.Category, error) {
	var resp []api.Category
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/categories", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list categories request failed: %w", err)
	}
	return resp, nil
}

// CreateCategory создает новую категорию
func (c *Client) CreateCategory(ctx context.Context, req api.CreateCategoryRequest) (*api.Category, error) {
	var resp api.Category
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/categories", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create category request failed: %w", err)
	}
	return &resp, nil
}

// DeleteCategory удаляет категорию по ID
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/categories/%s", id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete category request failed: %w", err)
	}
	return nil
}

// ListBudgets возвращает бюджеты за месяц (YYYY-MM)
func (c *Client) ListBudgets(ctx context.Context, month string) ([]api.Budget, error) {
	path := "/api/v1/budgets"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}

	var resp []api.Budget
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list budgets request failed: %w", err)
	}
	return resp, nil
}

// CreateBudget создает месячный бюджет по категории
func (c *Client) CreateBudget(ctx context.Context, req api.CreateBudgetRequest) (*api.Budget, error) {
	var resp api.Budget
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/budgets", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create budget request failed: %w", err)
	}
	return &resp, nil
}

// UpdateBudget изменяет лимит бюджета
func (c *Client) UpdateBudget(ctx context.Context, id string, req api.UpdateBudgetRequest) (*api.Budget, error) {
	path := fmt.Sprintf("/api/v1/budgets/%s", id)

	var resp api.Budget
	err := c.doRequest(ctx, http.MethodPatch, path, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update budget request failed: %w", err)
	}
	return &resp, nil
}

// DeleteBudget удаляет бюджет по ID
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/budgets/%s", id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete budget request failed: %w", err)
	}
	return nil
}

// ListTransactions возвращает транзакции с учетом фильтра
func (c *Client) ListTransactions(ctx context.Context, filter api.TransactionFilter) (*api.TransactionList, error) {
	query := url.Values{}
	if filter.Month != "" {
		query.Set("month", filter.Month)
	}
	if filter.CategoryID != "" {
		query.Set("category_id", filter.CategoryID)
	}
	if filter.Kind != "" {
		query.Set("kind", filter.Kind)
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}

	path := "/api/v1/transactions"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp api.TransactionList
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list transactions request failed: %w", err)
	}
	return &resp, nil
}

// CreateTransaction создает транзакцию
func (c *Client) CreateTransaction(ctx context.Context, req api.CreateTransactionRequest) (*api.Transaction, error) {
	var resp api.Transaction
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/transactions", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create transaction request failed: %w", err)
	}
	return &resp, nil
}

// DeleteTransaction удаляет транзакцию по ID
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/transactions/%s", id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete transaction request failed: %w", err)
	}
	return nil
}

// ListGoals возвращает цели накопления
func (c *Client) ListGoals(ctx context.Context) ([]api.Goal, error) {
	var resp []api.Goal
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/goals", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list goals request failed: %w", err)
	}
	return resp, nil
}

// CreateGoal создает цель накопления
func (c *Client) CreateGoal(ctx context.Context, req api.CreateGoalRequest) (*api.Goal, error) {
	var resp api.Goal
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/goals", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create goal request failed: %w", err)
	}
	return &resp, nil
}

// UpdateGoal изменяет цель (пополнение, новая целевая сумма)
func (c *Client) UpdateGoal(ctx context.Context, id string, req api.UpdateGoalRequest) (*api.Goal, error) {
	path := fmt.Sprintf("/api/v1/goals/%s", id)

	var resp api.Goal
	err := c.doRequest(ctx, http.MethodPatch, path, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update goal request failed: %w", err)
	}
	return &resp, nil
}

// GetSummary возвращает месячный отчет по категориям
func (c *Client) GetSummary(ctx context.Context, month string) (*api.SummaryReport, error) {
	path := "/api/v1/reports/summary"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}

	var resp api.SummaryReport
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	return &resp, nil
}
