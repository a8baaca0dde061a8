package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию сервера, собираемую из переменных окружения
type Config struct {
	Addr            string        // адрес HTTP сервера
	DBPath          string        // путь к файлу SQLite
	JWTSecret       string        // секрет для подписи access tokens
	AccessTokenTTL  time.Duration // время жизни access token
	RefreshTokenTTL time.Duration // время жизни refresh token
	AuthRateLimit   int           // запросов на IP за окно для auth эндпоинтов
	AuthRateWindow  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string // debug, info, warn, error
}

// Load читает конфигурацию из окружения.
// JWT секрет обязателен, остальные поля имеют значения по умолчанию.
func Load() (*Config, error) {
	secret := os.Getenv("MONEYKEEPER_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("MONEYKEEPER_JWT_SECRET is required")
	}

	cfg := &Config{
		Addr:            getEnv("MONEYKEEPER_ADDR", ":8080"),
		DBPath:          getEnv("MONEYKEEPER_DB_PATH", "moneykeeper.db"),
		JWTSecret:       secret,
		AccessTokenTTL:  getEnvDuration("MONEYKEEPER_ACCESS_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("MONEYKEEPER_REFRESH_TTL", 720*time.Hour),
		AuthRateLimit:   getEnvInt("MONEYKEEPER_AUTH_RATE_LIMIT", 10),
		AuthRateWindow:  getEnvDuration("MONEYKEEPER_AUTH_RATE_WINDOW", time.Minute),
		ShutdownTimeout: getEnvDuration("MONEYKEEPER_SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("MONEYKEEPER_LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
