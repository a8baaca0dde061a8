package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vmaslov/moneykeeper/pkg/api"
)

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doPublicRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doPublicRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов.
// Запрос идет мимо аутентифицированного пайплайна: 401 здесь означает
// отозванный refresh token, а не повод для еще одного refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	req := api.RefreshRequest{RefreshToken: refreshToken}

	var resp api.TokenResponse
	err := c.doPublicRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout уведомляет сервер о выходе (отзывает refresh токены пользователя).
// Заголовок передается явно: к моменту вызова локальная сессия может быть
// уже удалена.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	url := c.baseURL + "/api/v1/auth/logout"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Message: "logout rejected"}
	}

	return nil
}

// GetProfile возвращает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/profile", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile частично обновляет профиль текущего пользователя
func (c *Client) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	err := c.doRequest(ctx, http.MethodPatch, "/api/v1/profile", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}
