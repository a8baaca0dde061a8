package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"`           // уникальный username
	Email    string `json:"email"`              // email пользователя
	Password string `json:"password"`           // пароль (хешируется на сервере)
	FullName string `json:"fullname,omitempty"` // отображаемое имя
	Currency string `json:"currency,omitempty"` // валюта по умолчанию (ISO 4217)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest представляет запрос на обновление пары токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse представляет ответ с токенами доступа и профилем пользователя.
// Один и тот же формат возвращают login, register и refresh, чтобы клиент
// мог атомарно сохранить пару токенов вместе с кешем профиля.
type TokenResponse struct {
	UserID       string `json:"user_id"`      // UUID пользователя
	AccessToken  string `json:"access_token"` // JWT access token
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullname,omitempty"`
	Currency     string `json:"currency,omitempty"`
	AvatarURL    string `json:"avatar,omitempty"`
}

// ProfileResponse представляет профиль пользователя
type ProfileResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullname,omitempty"`
	Currency  string `json:"currency,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
}

// UpdateProfileRequest представляет частичное обновление профиля.
// nil-поля не изменяются.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty"`
	FullName  *string `json:"fullname,omitempty"`
	Currency  *string `json:"currency,omitempty"`
	AvatarURL *string `json:"avatar,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
