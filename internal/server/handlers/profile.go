package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vmaslov/moneykeeper/internal/server/storage"
	"github.com/vmaslov/moneykeeper/internal/validation"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

// ProfileHandler обрабатывает запросы к профилю пользователя
type ProfileHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewProfileHandler создает новый handler для профиля
func NewProfileHandler(logger *slog.Logger, userStorage storage.UserStorage) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// GetProfile обрабатывает GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Currency:  user.Currency,
		AvatarURL: user.AvatarURL,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// UpdateProfile обрабатывает PATCH /api/v1/profile
// Частичное обновление: nil-поля запроса не изменяются
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode profile request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Currency != nil {
		if err := validation.ValidateCurrency(*req.Currency); err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		user.Currency = *req.Currency
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := h.userStorage.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.sendError(w, "email already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile updated", slog.String("user_id", userID))

	resp := api.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Currency:  user.Currency,
		AvatarURL: user.AvatarURL,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

func (h *ProfileHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *ProfileHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
