package storage

import (
	"context"
	"time"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage defines interface for storing session data on client.
// Implementations must persist the record durably so that a process restart
// rehydrates the session without re-login.
type SessionStorage interface {
	// SaveSession stores the full session record, replacing any previous one.
	// Both tokens and the profile cache are written in a single call so that
	// readers never observe a mix of old and new credentials.
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves the stored session record.
	// Returns ErrSessionNotFound if no session exists.
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the stored session (logout).
	// Deleting an absent session is not an error.
	DeleteSession(ctx context.Context) error

	// IsAuthenticated reports whether a non-expired session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SessionData represents the client session: credential pair plus the cached
// user profile, so the UI can render account info without a network round trip.
// Инвариант: access и refresh токены записываются и удаляются только вместе.
type SessionData struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullname,omitempty"`
	Currency     string `json:"currency,omitempty"`
	AvatarURL    string `json:"avatar,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix time истечения access token
}

// Expired reports whether the access token expiry has passed
func (s *SessionData) Expired(now time.Time) bool {
	return now.Unix() >= s.ExpiresAt
}
