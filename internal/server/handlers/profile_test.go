package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

func setupProfileHandler(t *testing.T) (*ProfileHandler, *mockUserStorage) {
	t.Helper()

	userStorage := &mockUserStorage{
		users: map[string]*models.User{
			"alice": {
				ID:       "user123",
				Username: "alice",
				Email:    "alice@example.com",
				FullName: "Alice Smith",
				Currency: "EUR",
			},
		},
	}
	return NewProfileHandler(setupTestLogger(), userStorage), userStorage
}

func TestProfileHandler_GetProfile(t *testing.T) {
	h, _ := setupProfileHandler(t)

	req := authedRequest(t, http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	h.GetProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ProfileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "user123", resp.UserID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "EUR", resp.Currency)
}

func TestProfileHandler_GetProfile_Unauthenticated(t *testing.T) {
	h, _ := setupProfileHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	h.GetProfile(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	h, userStorage := setupProfileHandler(t)

	email := "new@example.com"
	currency := "USD"
	req := authedRequest(t, http.MethodPatch, "/api/v1/profile", api.UpdateProfileRequest{
		Email:    &email,
		Currency: &currency,
	})

	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ProfileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, "USD", resp.Currency)
	// Неуказанные поля не меняются
	assert.Equal(t, "Alice Smith", resp.FullName)

	assert.Equal(t, "new@example.com", userStorage.users["alice"].Email)
}

func TestProfileHandler_UpdateProfile_InvalidEmail(t *testing.T) {
	h, userStorage := setupProfileHandler(t)

	email := "not-an-email"
	req := authedRequest(t, http.MethodPatch, "/api/v1/profile", api.UpdateProfileRequest{
		Email: &email,
	})

	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "alice@example.com", userStorage.users["alice"].Email)
}

func TestProfileHandler_UpdateProfile_InvalidCurrency(t *testing.T) {
	h, _ := setupProfileHandler(t)

	currency := "dollars"
	req := authedRequest(t, http.MethodPatch, "/api/v1/profile", api.UpdateProfileRequest{
		Currency: &currency,
	})

	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
