package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern — упрощенная проверка формата email.
// Полная валидация по RFC 5322 не нужна: сервер все равно не подтверждает адрес.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CurrencyPattern определяет формат кода валюты по ISO 4217 (три заглавные буквы)
var CurrencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > 254 {
		return fmt.Errorf("email is too long")
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidateCurrency проверяет код валюты (ISO 4217, например USD, EUR, RUB)
func ValidateCurrency(currency string) error {
	if currency == "" {
		return fmt.Errorf("currency cannot be empty")
	}

	if !CurrencyPattern.MatchString(currency) {
		return fmt.Errorf("currency must be a three-letter ISO 4217 code")
	}

	return nil
}
