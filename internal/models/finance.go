package models

import "time"

// Виды записей. Транзакция и категория всегда относятся к одному из них.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// ValidKind проверяет, что kind имеет одно из допустимых значений
func ValidKind(kind string) bool {
	return kind == KindExpense || kind == KindIncome
}

// Category представляет категорию расходов или доходов пользователя
type Category struct {
	ID        string    `json:"id"`      // UUID категории
	UserID    string    `json:"user_id"` // владелец
	Name      string    `json:"name"`
	Kind      string    `json:"kind"` // KindExpense или KindIncome
	CreatedAt time.Time `json:"created_at"`
}

// Budget представляет месячный лимит расходов по категории.
// Все суммы хранятся в минорных единицах валюты (копейки, центы).
type Budget struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Month      string    `json:"month"` // YYYY-MM
	Limit      int64     `json:"limit"`
	CreatedAt  time.Time `json:"created_at"`
}

// Transaction представляет расход или доход
type Transaction struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Kind       string    `json:"kind"`
	Amount     int64     `json:"amount"` // всегда > 0, знак определяется kind
	Note       string    `json:"note"`
	Date       string    `json:"date"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
}

// Goal представляет цель накопления
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Target    int64     `json:"target"`
	Saved     int64     `json:"saved"`
	Deadline  string    `json:"deadline"` // YYYY-MM-DD, пустая строка если не задан
	CreatedAt time.Time `json:"created_at"`
}
