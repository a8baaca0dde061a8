package api

// Category представляет категорию расходов/доходов
type Category struct {
	ID   string `json:"id"`   // UUID категории
	Name string `json:"name"` // название категории
	Kind string `json:"kind"` // "expense" или "income"
}

// CreateCategoryRequest представляет запрос на создание категории
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Budget представляет месячный лимит расходов по категории
type Budget struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Category   string `json:"category,omitempty"` // denormalized название категории
	Month      string `json:"month"`              // формат YYYY-MM
	Limit      int64  `json:"limit"`              // лимит в минорных единицах валюты
	Spent      int64  `json:"spent"`              // потрачено за месяц (вычисляется сервером)
}

// CreateBudgetRequest представляет запрос на создание бюджета
type CreateBudgetRequest struct {
	CategoryID string `json:"category_id"`
	Month      string `json:"month"`
	Limit      int64  `json:"limit"`
}

// UpdateBudgetRequest представляет изменение лимита бюджета
type UpdateBudgetRequest struct {
	Limit int64 `json:"limit"`
}

// Transaction представляет расход или доход
type Transaction struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Category   string `json:"category,omitempty"`
	Kind       string `json:"kind"`   // "expense" или "income"
	Amount     int64  `json:"amount"` // сумма в минорных единицах, всегда > 0
	Note       string `json:"note,omitempty"`
	Date       string `json:"date"` // формат YYYY-MM-DD
}

// CreateTransactionRequest представляет запрос на создание транзакции
type CreateTransactionRequest struct {
	CategoryID string `json:"category_id"`
	Kind       string `json:"kind"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note,omitempty"`
	Date       string `json:"date"`
}

// TransactionFilter задает параметры выборки транзакций.
// Пустые поля не участвуют в фильтрации.
type TransactionFilter struct {
	Month      string // YYYY-MM
	CategoryID string
	Kind       string // "expense" или "income"
	Sort       string // "date" (по умолчанию) или "amount"
}

// TransactionList представляет страницу транзакций
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}

// Goal представляет цель накопления
type Goal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Target   int64  `json:"target"`             // целевая сумма в минорных единицах
	Saved    int64  `json:"saved"`              // накоплено
	Deadline string `json:"deadline,omitempty"` // формат YYYY-MM-DD
}

// CreateGoalRequest представляет запрос на создание цели
type CreateGoalRequest struct {
	Name     string `json:"name"`
	Target   int64  `json:"target"`
	Deadline string `json:"deadline,omitempty"`
}

// UpdateGoalRequest представляет пополнение/изменение цели.
// nil-поля не изменяются.
type UpdateGoalRequest struct {
	Saved  *int64 `json:"saved,omitempty"`
	Target *int64 `json:"target,omitempty"`
}

// SummaryRow представляет строку месячного отчета по категории
type SummaryRow struct {
	CategoryID string `json:"category_id"`
	Category   string `json:"category"`
	Kind       string `json:"kind"`
	Total      int64  `json:"total"`
}

// SummaryReport представляет месячный отчет о расходах и доходах
type SummaryReport struct {
	Month        string       `json:"month"` // YYYY-MM
	TotalExpense int64        `json:"total_expense"`
	TotalIncome  int64        `json:"total_income"`
	Rows         []SummaryRow `json:"rows"`
}
