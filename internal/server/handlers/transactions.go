package handlers

import (
	"context"
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

// ListTransactions обрабатывает GET /api/v1/transactions
// Параметры запроса: month, category_id, kind, sort
func (h *FinanceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := storage.TransactionFilter{
		Month:      q.Get("month"),
		CategoryID: q.Get("category_id"),
		Kind:       q.Get("kind"),
		Sort:       q.Get("sort"),
	}

	if filter.Month != "" && !monthRe.MatchString(filter.Month) {
		h.sendError(w, "month must be in YYYY-MM format", http.StatusBadRequest)
		return
	}
	if filter.Kind != "" && !models.ValidKind(filter.Kind) {
		h.sendError(w, "kind must be 'expense' or 'income'", http.StatusBadRequest)
		return
	}

	transactions, err := h.storage.ListTransactions(ctx, userID, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list transactions", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Денормализуем названия категорий для ответа
	names, err := h.categoryNames(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]api.Transaction, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, api.Transaction{
			ID:         t.ID,
			CategoryID: t.CategoryID,
			Category:   names[t.CategoryID],
			Kind:       t.Kind,
			Amount:     t.Amount,
			Note:       t.Note,
			Date:       t.Date,
		})
	}

	resp := api.TransactionList{
		Transactions: items,
		Total:        len(items),
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// CreateTransaction обрабатывает POST /api/v1/transactions
func (h *FinanceHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req api.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CategoryID == "" {
		h.sendError(w, "category_id is required", http.StatusBadRequest)
		return
	}
	if !models.ValidKind(req.Kind) {
		h.sendError(w, "kind must be 'expense' or 'income'", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		h.sendError(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if !dateRe.MatchString(req.Date) {
		h.sendError(w, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

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

	// Вид транзакции должен совпадать с видом категории
	if category.Kind != req.Kind {
		h.sendError(w, "transaction kind does not match category kind", http.StatusBadRequest)
		return
	}

	tx := &models.Transaction{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Kind:       req.Kind,
		Amount:     req.Amount,
		Note:       req.Note,
		Date:       req.Date,
		CreatedAt:  time.Now(),
	}

	if err := h.storage.CreateTransaction(ctx, tx); err != nil {
		h.logger.ErrorContext(ctx, "failed to create transaction", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "transaction created",
		slog.String("user_id", userID),
		slog.String("transaction_id", tx.ID),
		slog.Int64("amount", tx.Amount))

	resp := api.Transaction{
		ID:         tx.ID,
		CategoryID: tx.CategoryID,
		Category:   category.Name,
		Kind:       tx.Kind,
		Amount:     tx.Amount,
		Note:       tx.Note,
		Date:       tx.Date,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// DeleteTransaction обрабатывает DELETE /api/v1/transactions/{id}
func (h *FinanceHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	txID := r.PathValue("id")
	if txID == "" {
		h.sendError(w, "transaction id is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteTransaction(ctx, userID, txID); err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			h.sendError(w, "transaction not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete transaction", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// categoryNames возвращает карту category_id -> название
func (h *FinanceHandler) categoryNames(ctx context.Context, userID string) (map[string]string, error) {
	categories, err := h.storage.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
