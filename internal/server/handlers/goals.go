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

// ListGoals обрабатывает GET /api/v1/goals
func (h *FinanceHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	goals, err := h.storage.ListGoals(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list goals", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Goal, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, goalResponse(g))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// CreateGoal обрабатывает POST /api/v1/goals
func (h *FinanceHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req api.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.sendError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Target <= 0 {
		h.sendError(w, "target must be positive", http.StatusBadRequest)
		return
	}
	if req.Deadline != "" && !dateRe.MatchString(req.Deadline) {
		h.sendError(w, "deadline must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	goal := &models.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Target:    req.Target,
		Saved:     0,
		Deadline:  req.Deadline,
		CreatedAt: time.Now(),
	}

	if err := h.storage.CreateGoal(ctx, goal); err != nil {
		h.logger.ErrorContext(ctx, "failed to create goal", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "goal created",
		slog.String("user_id", userID),
		slog.String("goal_id", goal.ID))

	h.sendJSON(w, goalResponse(goal), http.StatusCreated)
}

// UpdateGoal обрабатывает PATCH /api/v1/goals/{id}
// Изменяет накопленную и/или целевую сумму. nil-поля не изменяются.
func (h *FinanceHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	goalID := r.PathValue("id")
	if goalID == "" {
		h.sendError(w, "goal id is required", http.StatusBadRequest)
		return
	}

	var req api.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.storage.GetGoal(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, storage.ErrGoalNotFound) {
			h.sendError(w, "goal not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get goal", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Saved != nil {
		if *req.Saved < 0 {
			h.sendError(w, "saved must not be negative", http.StatusBadRequest)
			return
		}
		goal.Saved = *req.Saved
	}
	if req.Target != nil {
		if *req.Target <= 0 {
			h.sendError(w, "target must be positive", http.StatusBadRequest)
			return
		}
		goal.Target = *req.Target
	}

	if err := h.storage.UpdateGoal(ctx, goal); err != nil {
		if errors.Is(err, storage.ErrGoalNotFound) {
			h.sendError(w, "goal not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update goal", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, goalResponse(goal), http.StatusOK)
}

// goalResponse собирает API представление цели
func goalResponse(g *models.Goal) api.Goal {
	return api.Goal{
		ID:       g.ID,
		Name:     g.Name,
		Target:   g.Target,
		Saved:    g.Saved,
		Deadline: g.Deadline,
	}
}
