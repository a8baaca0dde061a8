package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

// Summary обрабатывает GET /api/v1/reports/summary?month=YYYY-MM
// Возвращает агрегаты по категориям за месяц и итоговые суммы
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if !monthRe.MatchString(month) {
		h.sendError(w, "month must be in YYYY-MM format", http.StatusBadRequest)
		return
	}

	rows, err := h.storage.Summary(ctx, userID, month)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build summary", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SummaryReport{
		Month: month,
		Rows:  make([]api.SummaryRow, 0, len(rows)),
	}

	for _, row := range rows {
		switch row.Kind {
		case models.KindExpense:
			resp.TotalExpense += row.Total
		case models.KindIncome:
			resp.TotalIncome += row.Total
		}
		resp.Rows = append(resp.Rows, api.SummaryRow{
			CategoryID: row.CategoryID,
			Category:   row.Category,
			Kind:       row.Kind,
			Total:      row.Total,
		})
	}

	h.sendJSON(w, resp, http.StatusOK)
}
