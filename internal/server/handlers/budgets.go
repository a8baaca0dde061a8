package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

// ListBudgets обрабатывает GET /api/v1/budgets?month=YYYY-MM
func (h *FinanceHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		// По умолчанию текущий месяц
		month = time.Now().Format("2006-01")
	}
	if !monthRe.MatchString(month) {
		h.sendError(w, "month must be in YYYY-MM format", http.StatusBadRequest)
		return
	}

	budgets, err := h.storage.ListBudgets(ctx, userID, month)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budgets", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Budget, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, budgetResponse(b))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// CreateBudget обрабатывает POST /api/v1/budgets
func (h *FinanceHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req api.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CategoryID == "" {
		h.sendError(w, "category_id is required", http.StatusBadRequest)
		return
	}
	if !monthRe.MatchString(req.Month) {
		h.sendError(w, "month must be in YYYY-MM format", http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		h.sendError(w, "limit must be positive", http.StatusBadRequest)
		return
	}

	// Бюджет можно создать только для существующей категории расходов
	category, err := h.storage.GetCategory(ctx, userID, req.CategoryID)
	if err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			h.sendError(w, "category not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get category", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if category.Kind != models.KindExpense {
		h.sendError(w, "budgets can only be set for expense categories", http.StatusBadRequest)
		return
	}

	budget := &models.Budget{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Limit:      req.Limit,
		CreatedAt:  time.Now(),
	}

	if err := h.storage.CreateBudget(ctx, budget); err != nil {
		if errors.Is(err, storage.ErrBudgetAlreadyExists) {
			h.sendError(w, "budget for this category and month already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create budget", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "budget created",
		slog.String("user_id", userID),
		slog.String("budget_id", budget.ID),
		slog.String("month", budget.Month))

	resp := api.Budget{
		ID:         budget.ID,
		CategoryID: budget.CategoryID,
		Category:   category.Name,
		Month:      budget.Month,
		Limit:      budget.Limit,
		Spent:      0,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// UpdateBudget обрабатывает PATCH /api/v1/budgets/{id}
func (h *FinanceHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	budgetID := r.PathValue("id")
	if budgetID == "" {
		h.sendError(w, "budget id is required", http.StatusBadRequest)
		return
	}

	var req api.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Limit <= 0 {
		h.sendError(w, "limit must be positive", http.StatusBadRequest)
		return
	}

	updated, err := h.storage.UpdateBudgetLimit(ctx, userID, budgetID, req.Limit)
	if err != nil {
		if errors.Is(err, storage.ErrBudgetNotFound) {
			h.sendError(w, "budget not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update budget", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, budgetResponse(updated), http.StatusOK)
}

// DeleteBudget обрабатывает DELETE /api/v1/budgets/{id}
func (h *FinanceHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	budgetID := r.PathValue("id")
	if budgetID == "" {
		h.sendError(w, "budget id is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteBudget(ctx, userID, budgetID); err != nil {
		if errors.Is(err, storage.ErrBudgetNotFound) {
			h.sendError(w, "budget not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete budget", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// budgetResponse собирает API представление бюджета
func budgetResponse(b *storage.BudgetWithSpent) api.Budget {
	return api.Budget{
		ID:         b.Budget.ID,
		CategoryID: b.Budget.CategoryID,
		Category:   b.Category,
		Month:      b.Budget.Month,
		Limit:      b.Budget.Limit,
		Spent:      b.Spent,
	}
}
