package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTerminalAuth indicates that a request was rejected with 401 after the
// token pair had already been refreshed, or that the refresh itself failed.
// Получив эту ошибку, вызывающий код должен считать сессию завершенной.
var ErrTerminalAuth = errors.New("authentication failed")

// StatusError represents a non-2xx response from the server
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is a 401 response
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusUnauthorized
	}
	return false
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusNotFound
	}
	return false
}
