package session

import "errors"

// Ошибки жизненного цикла сессии
var (
	// ErrNotAuthenticated indicates that no session exists locally
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoRefreshToken indicates that the stored session has no refresh
	// token. Эквивалентно "not authenticated": обновлять нечего.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrRefreshRejected indicates that the server rejected the refresh token
	// (expired or revoked). The session cannot be recovered.
	ErrRefreshRejected = errors.New("refresh token rejected by server")

	// ErrMalformedToken indicates that the access token could not be decoded
	ErrMalformedToken = errors.New("malformed access token")
)
