package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	clientapi "github.com/vmaslov/moneykeeper/internal/client/api"
	"github.com/vmaslov/moneykeeper/internal/client/storage"
	"github.com/vmaslov/moneykeeper/internal/validation"
	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

//go:generate moq -out api_mock.go . APIClient

// APIClient defines the auth endpoints the session manager depends on.
// Реализуется api.Client; интерфейс объявлен здесь, чтобы manager
// тестировался без HTTP.
type APIClient interface {
	// Register регистрирует нового пользователя и возвращает пару токенов
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.TokenResponse, error)

	// Login выполняет аутентификацию пользователя
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)

	// Refresh обменивает refresh token на новую пару токенов
	Refresh(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error)

	// Logout отзывает refresh токены пользователя на сервере
	Logout(ctx context.Context, accessToken string) error
}

// Manager — единственный владелец клиентской сессии: пара токенов плюс
// кешированный профиль. Все потребители (HTTP пайплайн, monitor, CLI)
// получают manager явно при сборке приложения.
type Manager struct {
	apiClient  APIClient
	store      storage.SessionStorage
	onTeardown func()
	group      singleflight.Group
}

// Compile-time check that Manager implements the request pipeline contract
var _ clientapi.SessionSource = (*Manager)(nil)

// NewManager создает новый session manager
func NewManager(apiClient APIClient, store storage.SessionStorage) *Manager {
	return &Manager{
		apiClient: apiClient,
		store:     store,
	}
}

// OnTeardown registers a callback fired when the session is destroyed by an
// auth failure. Презентационный слой использует его, чтобы предложить
// пользователю войти заново.
func (m *Manager) OnTeardown(fn func()) {
	m.onTeardown = fn
}

// Login выполняет аутентификацию и сохраняет сессию
func (m *Manager) Login(ctx context.Context, username, password string) (*storage.SessionData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := m.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return m.saveTokenResponse(ctx, resp)
}

// Register регистрирует нового пользователя и сразу сохраняет сессию
// (сервер возвращает пару токенов, как и при login)
func (m *Manager) Register(ctx context.Context, req pkgapi.RegisterRequest) (*storage.SessionData, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if req.Currency != "" {
		if err := validation.ValidateCurrency(req.Currency); err != nil {
			return nil, fmt.Errorf("invalid currency: %w", err)
		}
	}

	resp, err := m.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return m.saveTokenResponse(ctx, resp)
}

// Logout выполняет выход из системы.
// Удаляет локальные данные сессии и уведомляет сервер (best effort).
// Повторный logout при отсутствии сессии — no-op, не ошибка.
func (m *Manager) Logout(ctx context.Context) error {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	// Пытаемся уведомить сервер; недоступность сервера не мешает
	// локальному выходу
	if logoutErr := m.apiClient.Logout(ctx, session.AccessToken); logoutErr != nil {
		slog.Warn("failed to logout on server", "error", logoutErr)
	}

	if err := m.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}

	return nil
}

// IsAuthenticated проверяет наличие действующей сессии
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	return m.store.IsAuthenticated(ctx)
}

// User возвращает кешированный профиль без обращения к сети
func (m *Manager) User(ctx context.Context) (*storage.SessionData, error) {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// SetUser обновляет кешированный профиль после успешного изменения профиля
// на сервере. Токены не трогает.
func (m *Manager) SetUser(ctx context.Context, profile *pkgapi.ProfileResponse) error {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.Username = profile.Username
	session.Email = profile.Email
	session.FullName = profile.FullName
	session.Currency = profile.Currency
	session.AvatarURL = profile.AvatarURL

	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// AccessToken возвращает текущий access token или "" при отсутствии сессии.
// Часть контракта api.SessionSource: пайплайн читает хранилище перед каждым
// запросом, поэтому set/clear видны немедленно.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return session.AccessToken, nil
}

// RefreshAccessToken обменивает refresh token на новую пару и возвращает
// новый access token. Одновременные вызовы (401 пайплайна и фоновый monitor)
// схлопываются в один сетевой запрос: второй вызывающий ждет результат
// первого вместо того, чтобы перетирать его токены своими.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	token, err, _ := m.group.Do("refresh", func() (interface{}, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// refresh выполняет сам обмен. При любой ошибке токены в хранилище
// не изменяются — частичной записи пары не бывает.
func (m *Manager) refresh(ctx context.Context) (string, error) {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return "", ErrNoRefreshToken
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	if session.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}

	resp, err := m.apiClient.Refresh(ctx, session.RefreshToken)
	if err != nil {
		var statusErr *clientapi.StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden) {
			return "", fmt.Errorf("%w: %v", ErrRefreshRejected, err)
		}
		return "", fmt.Errorf("refresh failed: %w", err)
	}

	saved, err := m.saveTokenResponse(ctx, resp)
	if err != nil {
		return "", err
	}

	return saved.AccessToken, nil
}

// HandleAuthFailure выполняет полный teardown сессии после фатальной ошибки
// аутентификации. Идемпотентен: при отсутствии сессии ничего не делает.
func (m *Manager) HandleAuthFailure(ctx context.Context) error {
	_, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := m.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if m.onTeardown != nil {
		m.onTeardown()
	}

	return nil
}

// saveTokenResponse атомарно сохраняет пару токенов вместе с профилем.
// Единственная точка записи токенов: любой писатель пишет полную
// согласованную пару.
func (m *Manager) saveTokenResponse(ctx context.Context, resp *pkgapi.TokenResponse) (*storage.SessionData, error) {
	session := &storage.SessionData{
		UserID:       resp.UserID,
		Username:     resp.Username,
		Email:        resp.Email,
		FullName:     resp.FullName,
		Currency:     resp.Currency,
		AvatarURL:    resp.AvatarURL,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + resp.ExpiresIn,
	}

	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}
