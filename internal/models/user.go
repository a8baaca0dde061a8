package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string     `json:"id"`            // UUID пользователя
	Username     string     `json:"username"`      // уникальный username
	Email        string     `json:"email"`         // email пользователя
	PasswordHash string     `json:"password_hash"` // bcrypt хеш пароля
	FullName     string     `json:"fullname"`      // отображаемое имя
	Currency     string     `json:"currency"`      // валюта по умолчанию (ISO 4217)
	AvatarURL    string     `json:"avatar"`        // URL аватара
	CreatedAt    time.Time  `json:"created_at"`    // время создания
	LastLogin    *time.Time `json:"last_login"`    // время последнего входа
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	Token     string    `json:"token"`      // значение токена
	UserID    string    `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
