package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims представляет claims access token'а, которые читает клиент
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the access token payload without verifying the
// signature. Подпись проверяет только сервер — у клиента нет секрета,
// ему нужен лишь срок действия для проактивного refresh.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// IsExpired reports whether the token is expired or will expire within skew.
// Нечитаемый токен или токен без exp считается истекшим: лишний refresh
// безопаснее запроса с невалидным credential.
func IsExpired(token string, skew time.Duration) bool {
	claims, err := ParseClaims(token)
	if err != nil {
		return true
	}

	if claims.ExpiresAt == nil {
		return true
	}

	return !time.Now().Before(claims.ExpiresAt.Time.Add(-skew))
}
