package session

import (
	"context"
	"log/slog"
	"time"
)

// Интервалы по умолчанию: проверка раз в 4 минуты, refresh за 5 минут
// до истечения access token'а.
const (
	DefaultCheckInterval = 4 * time.Minute
	DefaultExpirySkew    = 5 * time.Minute
)

// refresher — часть Manager, нужная фоновому монитору
type refresher interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshAccessToken(ctx context.Context) (string, error)
	HandleAuthFailure(ctx context.Context) error
}

// Monitor проактивно обновляет токены до истечения срока, чтобы обычные
// запросы почти никогда не попадали на реактивный 401-путь.
type Monitor struct {
	logger   *slog.Logger
	session  refresher
	interval time.Duration
	skew     time.Duration
}

// NewMonitor создает новый monitor. Нулевые interval/skew заменяются
// значениями по умолчанию.
func NewMonitor(logger *slog.Logger, session refresher, interval, skew time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	if skew <= 0 {
		skew = DefaultExpirySkew
	}
	return &Monitor{
		logger:   logger,
		session:  session,
		interval: interval,
		skew:     skew,
	}
}

// Run запускает цикл проверки и блокируется до отмены контекста.
// Первая проверка выполняется сразу: долго простаивавший клиент
// догоняет истекший токен, не дожидаясь первого тика.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check выполняет одну проверку: если access token истек или истечет в
// пределах skew — обновляет пару. Ошибка refresh на этом пути фатальна
// для сессии: выполняется полный teardown.
func (m *Monitor) Check(ctx context.Context) {
	token, err := m.session.AccessToken(ctx)
	if err != nil {
		m.logger.Error("failed to read access token", "error", err)
		return
	}
	if token == "" {
		// Сессии нет — нечего обновлять
		return
	}

	if !IsExpired(token, m.skew) {
		return
	}

	m.logger.Debug("access token expiring, refreshing proactively")

	if _, err := m.session.RefreshAccessToken(ctx); err != nil {
		m.logger.Error("proactive token refresh failed", "error", err)
		if err := m.session.HandleAuthFailure(ctx); err != nil {
			m.logger.Error("session teardown failed", "error", err)
		}
		return
	}

	m.logger.Debug("access token refreshed")
}
