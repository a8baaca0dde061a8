package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage/sqlite"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

// Тесты finance handler'ов идут через реальное SQLite хранилище в памяти:
// проверяется и маппинг HTTP, и SQL под ним.

func setupFinanceHandler(t *testing.T) *FinanceHandler {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	// Владелец всех сущностей в тестах: внешние ключи требуют реальной
	// строки в users
	err = store.CreateUser(context.Background(), &models.User{
		ID:           "user123",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Currency:     "USD",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	return NewFinanceHandler(setupTestLogger(), store)
}

// authedRequest создает запрос с user_id в контексте (как после AuthMiddleware)
func authedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	ctx := context.WithValue(req.Context(), UserIDKey, "user123")
	ctx = context.WithValue(ctx, UsernameKey, "alice")
	return req.WithContext(ctx)
}

func createCategory(t *testing.T, h *FinanceHandler, name, kind string) api.Category {
	t.Helper()

	w := httptest.NewRecorder()
	h.CreateCategory(w, authedRequest(t, http.MethodPost, "/api/v1/categories", api.CreateCategoryRequest{
		Name: name,
		Kind: kind,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var category api.Category
	require.NoError(t, json.NewDecoder(w.Body).Decode(&category))
	return category
}

func createTransaction(t *testing.T, h *FinanceHandler, categoryID, kind string, amount int64, date string) api.Transaction {
	t.Helper()

	w := httptest.NewRecorder()
	h.CreateTransaction(w, authedRequest(t, http.MethodPost, "/api/v1/transactions", api.CreateTransactionRequest{
		CategoryID: categoryID,
		Kind:       kind,
		Amount:     amount,
		Date:       date,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var tx api.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tx))
	return tx
}

func TestFinanceHandler_Categories(t *testing.T) {
	h := setupFinanceHandler(t)

	created := createCategory(t, h, "Groceries", "expense")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Groceries", created.Name)

	// Список
	w := httptest.NewRecorder()
	h.ListCategories(w, authedRequest(t, http.MethodGet, "/api/v1/categories", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var categories []api.Category
	require.NoError(t, json.NewDecoder(w.Body).Decode(&categories))
	require.Len(t, categories, 1)
	assert.Equal(t, created.ID, categories[0].ID)

	// Duplicate
	w = httptest.NewRecorder()
	h.CreateCategory(w, authedRequest(t, http.MethodPost, "/api/v1/categories", api.CreateCategoryRequest{
		Name: "Groceries",
		Kind: "expense",
	}))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFinanceHandler_CreateCategory_InvalidKind(t *testing.T) {
	h := setupFinanceHandler(t)

	w := httptest.NewRecorder()
	h.CreateCategory(w, authedRequest(t, http.MethodPost, "/api/v1/categories", api.CreateCategoryRequest{
		Name: "Groceries",
		Kind: "spending",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinanceHandler_Unauthenticated(t *testing.T) {
	h := setupFinanceHandler(t)

	// Запрос без user_id в контексте (middleware не отработал)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	w := httptest.NewRecorder()
	h.ListCategories(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFinanceHandler_DeleteCategory_InUse(t *testing.T) {
	h := setupFinanceHandler(t)

	category := createCategory(t, h, "Groceries", "expense")
	createTransaction(t, h, category.ID, "expense", 4250, "2025-08-15")

	req := authedRequest(t, http.MethodDelete, "/api/v1/categories/"+category.ID, nil)
	req.SetPathValue("id", category.ID)

	w := httptest.NewRecorder()
	h.DeleteCategory(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFinanceHandler_Budgets(t *testing.T) {
	h := setupFinanceHandler(t)

	category := createCategory(t, h, "Groceries", "expense")

	// Создание бюджета
	w := httptest.NewRecorder()
	h.CreateBudget(w, authedRequest(t, http.MethodPost, "/api/v1/budgets", api.CreateBudgetRequest{
		CategoryID: category.ID,
		Month:      "2025-08",
		Limit:      50000,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var budget api.Budget
	require.NoError(t, json.NewDecoder(w.Body).Decode(&budget))
	assert.Equal(t, "Groceries", budget.Category)
	assert.Equal(t, int64(0), budget.Spent)

	// Расход попадает в Spent
	createTransaction(t, h, category.ID, "expense", 15000, "2025-08-10")

	w = httptest.NewRecorder()
	h.ListBudgets(w, authedRequest(t, http.MethodGet, "/api/v1/budgets?month=2025-08", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var budgets []api.Budget
	require.NoError(t, json.NewDecoder(w.Body).Decode(&budgets))
	require.Len(t, budgets, 1)
	assert.Equal(t, int64(15000), budgets[0].Spent)
	assert.Equal(t, int64(50000), budgets[0].Limit)

	// Изменение лимита
	req := authedRequest(t, http.MethodPatch, "/api/v1/budgets/"+budget.ID, api.UpdateBudgetRequest{Limit: 60000})
	req.SetPathValue("id", budget.ID)
	w = httptest.NewRecorder()
	h.UpdateBudget(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated api.Budget
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, int64(60000), updated.Limit)
	assert.Equal(t, int64(15000), updated.Spent)
}

func TestFinanceHandler_CreateBudget_IncomeCategory(t *testing.T) {
	h := setupFinanceHandler(t)

	salary := createCategory(t, h, "Salary", "income")

	w := httptest.NewRecorder()
	h.CreateBudget(w, authedRequest(t, http.MethodPost, "/api/v1/budgets", api.CreateBudgetRequest{
		CategoryID: salary.ID,
		Month:      "2025-08",
		Limit:      1000,
	}))

	// Бюджеты только для категорий расходов
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinanceHandler_CreateTransaction_KindMismatch(t *testing.T) {
	h := setupFinanceHandler(t)

	groceries := createCategory(t, h, "Groceries", "expense")

	w := httptest.NewRecorder()
	h.CreateTransaction(w, authedRequest(t, http.MethodPost, "/api/v1/transactions", api.CreateTransactionRequest{
		CategoryID: groceries.ID,
		Kind:       "income",
		Amount:     100,
		Date:       "2025-08-01",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinanceHandler_ListTransactions(t *testing.T) {
	h := setupFinanceHandler(t)

	groceries := createCategory(t, h, "Groceries", "expense")
	salary := createCategory(t, h, "Salary", "income")

	createTransaction(t, h, groceries.ID, "expense", 4250, "2025-08-15")
	createTransaction(t, h, salary.ID, "income", 300000, "2025-08-01")
	createTransaction(t, h, groceries.ID, "expense", 9999, "2025-07-31")

	w := httptest.NewRecorder()
	h.ListTransactions(w, authedRequest(t, http.MethodGet, "/api/v1/transactions?month=2025-08", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list api.TransactionList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Equal(t, 2, list.Total)

	// Названия категорий денормализованы в ответ
	for _, tx := range list.Transactions {
		assert.NotEmpty(t, tx.Category)
	}
}

func TestFinanceHandler_Summary(t *testing.T) {
	h := setupFinanceHandler(t)

	groceries := createCategory(t, h, "Groceries", "expense")
	salary := createCategory(t, h, "Salary", "income")

	createTransaction(t, h, groceries.ID, "expense", 15000, "2025-08-10")
	createTransaction(t, h, salary.ID, "income", 300000, "2025-08-05")

	w := httptest.NewRecorder()
	h.Summary(w, authedRequest(t, http.MethodGet, "/api/v1/reports/summary?month=2025-08", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var report api.SummaryReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))

	assert.Equal(t, "2025-08", report.Month)
	assert.Equal(t, int64(15000), report.TotalExpense)
	assert.Equal(t, int64(300000), report.TotalIncome)
	assert.Len(t, report.Rows, 2)
}

func TestFinanceHandler_Goals(t *testing.T) {
	h := setupFinanceHandler(t)

	// Создание цели
	w := httptest.NewRecorder()
	h.CreateGoal(w, authedRequest(t, http.MethodPost, "/api/v1/goals", api.CreateGoalRequest{
		Name:   "Vacation",
		Target: 100000,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var goal api.Goal
	require.NoError(t, json.NewDecoder(w.Body).Decode(&goal))
	assert.Equal(t, int64(0), goal.Saved)

	// Пополнение
	saved := int64(25000)
	req := authedRequest(t, http.MethodPatch, "/api/v1/goals/"+goal.ID, api.UpdateGoalRequest{Saved: &saved})
	req.SetPathValue("id", goal.ID)
	w = httptest.NewRecorder()
	h.UpdateGoal(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated api.Goal
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, int64(25000), updated.Saved)

	// Отрицательное значение отклоняется
	negative := int64(-1)
	req = authedRequest(t, http.MethodPatch, "/api/v1/goals/"+goal.ID, api.UpdateGoalRequest{Saved: &negative})
	req.SetPathValue("id", goal.ID)
	w = httptest.NewRecorder()
	h.UpdateGoal(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
