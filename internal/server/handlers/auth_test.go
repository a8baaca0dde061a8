package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmaslov/moneykeeper/internal/models"
	"github.com/vmaslov/moneykeeper/internal/server/storage"
	"github.com/vmaslov/moneykeeper/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[string]*models.User // username -> User
	createError  error
	getUserError error
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateProfile(ctx context.Context, user *models.User) error {
	for username, existing := range m.users {
		if existing.ID == user.ID {
			m.users[username] = user
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	return nil
}

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens        map[string]*models.RefreshToken // token -> RefreshToken
	saveError     error
	savedTokens   []*models.RefreshToken
	deletedTokens []string
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.tokens[token.Token] = token
	m.savedTokens = append(m.savedTokens, token)
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.tokens[token]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return rt, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, token)
	m.deletedTokens = append(m.deletedTokens, token)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	count := 0
	for token, rt := range m.tokens {
		if rt.UserID == userID {
			delete(m.tokens, token)
			m.deletedTokens = append(m.deletedTokens, token)
			count++
		}
	}
	return count, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	return 0, nil
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
}

func newTestAuthHandler(userStorage *mockUserStorage, tokenStorage *mockTokenStorage) *AuthHandler {
	return NewAuthHandler(setupTestLogger(), userStorage, tokenStorage, testJWTConfig())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func postJSON(t *testing.T, path string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	req := postJSON(t, "/api/v1/auth/register", api.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
		Currency: "EUR",
	})

	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.NotEmpty(t, response.UserID)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "testuser", response.Username)
	assert.Equal(t, "EUR", response.Currency)

	// Пользователь создан, пароль хеширован
	user, err := userStorage.GetUserByUsername(context.Background(), "testuser")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	// Refresh token сохранен
	require.Len(t, tokenStorage.savedTokens, 1)
	assert.Equal(t, response.RefreshToken, tokenStorage.savedTokens[0].Token)
}

func TestAuthHandler_Register_InvalidInput(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	tests := []struct {
		name    string
		request api.RegisterRequest
	}{
		{"short username", api.RegisterRequest{Username: "ab", Email: "a@b.com", Password: "password123"}},
		{"invalid email", api.RegisterRequest{Username: "testuser", Email: "not-an-email", Password: "password123"}},
		{"short password", api.RegisterRequest{Username: "testuser", Email: "a@b.com", Password: "short"}},
		{"invalid currency", api.RegisterRequest{Username: "testuser", Email: "a@b.com", Password: "password123", Currency: "dollars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Register(w, postJSON(t, "/api/v1/auth/register", tt.request))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	userStorage := &mockUserStorage{
		users: map[string]*models.User{
			"existing": {ID: "user1", Username: "existing", Email: "e@example.com"},
		},
	}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	w := httptest.NewRecorder()
	handler.Register(w, postJSON(t, "/api/v1/auth/register", api.RegisterRequest{
		Username: "existing",
		Email:    "new@example.com",
		Password: "password123",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	userStorage := &mockUserStorage{
		users: map[string]*models.User{
			"alice": {
				ID:           "user1",
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: hashPassword(t, "password123"),
				Currency:     "USD",
			},
		},
	}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	w := httptest.NewRecorder()
	handler.Login(w, postJSON(t, "/api/v1/auth/login", api.LoginRequest{
		Username: "alice",
		Password: "password123",
	}))

	assert.Equal(t, http.StatusOK, w.Code)

	var response api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, "user1", response.UserID)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), response.ExpiresIn)
	assert.Equal(t, "alice@example.com", response.Email)

	// Access token валиден и содержит claims пользователя
	claims, err := ValidateAccessToken(testJWTConfig(), response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	userStorage := &mockUserStorage{
		users: map[string]*models.User{
			"alice": {
				ID:           "user1",
				Username:     "alice",
				PasswordHash: hashPassword(t, "password123"),
			},
		},
	}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	tests := []struct {
		name    string
		request api.LoginRequest
	}{
		{"wrong password", api.LoginRequest{Username: "alice", Password: "wrongpassword"}},
		{"unknown user", api.LoginRequest{Username: "nobody99", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, postJSON(t, "/api/v1/auth/login", tt.request))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	userStorage := &mockUserStorage{
		users: map[string]*models.User{
			"alice": {ID: "user1", Username: "alice", Email: "alice@example.com"},
		},
	}
	tokenStorage := &mockTokenStorage{
		tokens: map[string]*models.RefreshToken{
			"old-refresh": {
				Token:     "old-refresh",
				UserID:    "user1",
				ExpiresAt: time.Now().Add(time.Hour),
				CreatedAt: time.Now(),
			},
		},
	}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	w := httptest.NewRecorder()
	handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: "old-refresh",
	}))

	assert.Equal(t, http.StatusOK, w.Code)

	var response api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.NotEqual(t, "old-refresh", response.RefreshToken)

	// Ротация: старый токен отозван, новый сохранен
	assert.Contains(t, tokenStorage.deletedTokens, "old-refresh")
	_, err := tokenStorage.GetRefreshToken(context.Background(), response.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	w := httptest.NewRecorder()
	handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: "unknown-token",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_ExpiredToken(t *testing.T) {
	userStorage := &mockUserStorage{
		users: map[string]*models.User{
			"alice": {ID: "user1", Username: "alice"},
		},
	}
	tokenStorage := &mockTokenStorage{
		tokens: map[string]*models.RefreshToken{
			"expired-refresh": {
				Token:     "expired-refresh",
				UserID:    "user1",
				ExpiresAt: time.Now().Add(-time.Hour),
			},
		},
	}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	w := httptest.NewRecorder()
	handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: "expired-refresh",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	w := httptest.NewRecorder()
	handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{
		tokens: map[string]*models.RefreshToken{
			"r1": {Token: "r1", UserID: "user1", ExpiresAt: time.Now().Add(time.Hour)},
			"r2": {Token: "r2", UserID: "user1", ExpiresAt: time.Now().Add(time.Hour)},
			"r3": {Token: "r3", UserID: "other", ExpiresAt: time.Now().Add(time.Hour)},
		},
	}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	accessToken, _, err := GenerateAccessToken(testJWTConfig(), "user1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	// Удалены только токены пользователя
	assert.Len(t, tokenStorage.tokens, 1)
	_, err = tokenStorage.GetRefreshToken(context.Background(), "r3")
	assert.NoError(t, err)
}

func TestAuthHandler_Logout_MissingHeader(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)

	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout_InvalidToken(t *testing.T) {
	userStorage := &mockUserStorage{users: make(map[string]*models.User)}
	tokenStorage := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	handler := newTestAuthHandler(userStorage, tokenStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
