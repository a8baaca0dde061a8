package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrCategoryNotFound indicates that category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryInUse indicates that category has transactions or budgets attached
	ErrCategoryInUse = errors.New("category is in use")

	// ErrCategoryAlreadyExists indicates a category with this name already exists
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrBudgetNotFound indicates that budget was not found
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists indicates a budget for this category and month already exists
	ErrBudgetAlreadyExists = errors.New("budget already exists")

	// ErrTransactionNotFound indicates that transaction was not found
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrGoalNotFound indicates that goal was not found
	ErrGoalNotFound = errors.New("goal not found")
)
