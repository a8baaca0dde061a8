package storage

import (
	"context"
	"time"

	"github.com/vmaslov/moneykeeper/internal/models"
)

// UserStorage defines interface for user persistence
type UserStorage interface {
	// CreateUser creates a new user
	// Returns ErrUserAlreadyExists if username or email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile updates mutable profile fields (email, fullname, currency, avatar)
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
