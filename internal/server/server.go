package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vmaslov/moneykeeper/internal/server/handlers"
	"github.com/vmaslov/moneykeeper/internal/server/middleware"
)

// Config содержит настройки HTTP сервера
type Config struct {
	Addr            string
	Version         string
	JWT             handlers.JWTConfig
	AuthRateLimit   int           // запросов на IP за окно
	AuthRateWindow  time.Duration // окно rate limit для auth эндпоинтов
	ShutdownTimeout time.Duration
}

// Deps содержит зависимости сервера
type Deps struct {
	Logger  *slog.Logger
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Finance *handlers.FinanceHandler
	Health  *handlers.HealthHandler
}

// Server инкапсулирует http.Server с роутингом и graceful shutdown
type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// New собирает роутер и создает сервер
func New(cfg Config, deps Deps) *Server {
	mux := http.NewServeMux()

	// Public эндпоинты (без JWT)
	mux.HandleFunc("GET /api/v1/health", deps.Health.Health)

	authLimit := middleware.RateLimitMiddleware(cfg.AuthRateLimit, cfg.AuthRateWindow, deps.Logger)
	mux.Handle("POST /api/v1/auth/register", authLimit(http.HandlerFunc(deps.Auth.Register)))
	mux.Handle("POST /api/v1/auth/login", authLimit(http.HandlerFunc(deps.Auth.Login)))
	mux.Handle("POST /api/v1/auth/refresh", authLimit(http.HandlerFunc(deps.Auth.Refresh)))
	mux.HandleFunc("POST /api/v1/auth/logout", deps.Auth.Logout)

	// Protected эндпоинты (JWT обязателен)
	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/v1/profile", deps.Profile.GetProfile)
	protected.HandleFunc("PATCH /api/v1/profile", deps.Profile.UpdateProfile)

	protected.HandleFunc("GET /api/v1/categories", deps.Finance.ListCategories)
	protected.HandleFunc("POST /api/v1/categories", deps.Finance.CreateCategory)
	protected.HandleFunc("DELETE /api/v1/categories/{id}", deps.Finance.DeleteCategory)

	protected.HandleFunc("GET /api/v1/budgets", deps.Finance.ListBudgets)
	protected.HandleFunc("POST /api/v1/budgets", deps.Finance.CreateBudget)
	protected.HandleFunc("PATCH /api/v1/budgets/{id}", deps.Finance.UpdateBudget)
	protected.HandleFunc("DELETE /api/v1/budgets/{id}", deps.Finance.DeleteBudget)

	protected.HandleFunc("GET /api/v1/transactions", deps.Finance.ListTransactions)
	protected.HandleFunc("POST /api/v1/transactions", deps.Finance.CreateTransaction)
	protected.HandleFunc("DELETE /api/v1/transactions/{id}", deps.Finance.DeleteTransaction)

	protected.HandleFunc("GET /api/v1/goals", deps.Finance.ListGoals)
	protected.HandleFunc("POST /api/v1/goals", deps.Finance.CreateGoal)
	protected.HandleFunc("PATCH /api/v1/goals/{id}", deps.Finance.UpdateGoal)

	protected.HandleFunc("GET /api/v1/reports/summary", deps.Finance.Summary)

	authMw := middleware.AuthMiddleware(deps.Logger, cfg.JWT)
	mux.Handle("/api/v1/", authMw(protected))

	// Общая цепочка: recovery -> logging -> router
	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(deps.Logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(deps.Logger)(handler)

	return &Server{
		logger: deps.Logger,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run запускает сервер и блокируется до отмены контекста,
// после чего выполняет graceful shutdown
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", slog.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
