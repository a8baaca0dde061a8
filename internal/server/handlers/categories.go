package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

// ListCategories обрабатывает GET /api/v1/categories
func (h *FinanceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	categories, err := h.storage.ListCategories(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, api.Category{
			ID:   c.ID,
			Name: c.Name,
			Kind: c.Kind,
		})
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// CreateCategory обрабатывает POST /api/v1/categories
func (h *FinanceHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req api.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.sendError(w, "name is required", http.StatusBadRequest)
		return
	}
	if !models.ValidKind(req.Kind) {
		h.sendError(w, "kind must be 'expense' or 'income'", http.StatusBadRequest)
		return
	}

	category := &models.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Kind:      req.Kind,
		CreatedAt: time.Now(),
	}

	if err := h.storage.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrCategoryAlreadyExists) {
			h.sendError(w, "category already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create category", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "category created",
		slog.String("user_id", userID),
		slog.String("category_id", category.ID))

	resp := api.Category{
		ID:   category.ID,
		Name: category.Name,
		Kind: category.Kind,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// DeleteCategory обрабатывает DELETE /api/v1/categories/{id}
func (h *FinanceHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	categoryID := r.PathValue("id")
	if categoryID == "" {
		h.sendError(w, "category id is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteCategory(ctx, userID, categoryID); err != nil {
		switch {
		case errors.Is(err, storage.ErrCategoryNotFound):
			h.sendError(w, "category not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrCategoryInUse):
			h.sendError(w, "category has transactions or budgets", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to delete category", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
