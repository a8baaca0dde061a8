package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/vmaslov/moneykeeper/internal/server/storage"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// FinanceStorage объединяет хранилища финансовых сущностей
type FinanceStorage interface {
	storage.CategoryStorage
	storage.BudgetStorage
	storage.TransactionStorage
	storage.GoalStorage
}

// FinanceHandler обрабатывает запросы к категориям, бюджетам,
// транзакциям, целям и отчетам. Все запросы требуют аутентификации:
// user_id берется из контекста, установленного AuthMiddleware.
type FinanceHandler struct {
	logger  *slog.Logger
	storage FinanceStorage
}

// NewFinanceHandler создает новый handler для финансовых сущностей
func NewFinanceHandler(logger *slog.Logger, storage FinanceStorage) *FinanceHandler {
	return &FinanceHandler{
		logger:  logger,
		storage: storage,
	}
}

// userID извлекает user_id из контекста, отправляя 401 при отсутствии
func (h *FinanceHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func (h *FinanceHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *FinanceHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
