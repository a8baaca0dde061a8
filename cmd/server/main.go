package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vmaslov/moneykeeper/internal/server"
	"github.com/vmaslov/moneykeeper/internal/server/config"
	"github.com/vmaslov/moneykeeper/internal/server/handlers"
	"github.com/vmaslov/moneykeeper/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Контекст, отменяемый по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище: SQLite с миграциями
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer store.Close()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	srv := server.New(
		server.Config{
			Addr:           cfg.Addr,
			Version:        Version,
			JWT:            jwtConfig,
			AuthRateLimit:  cfg.AuthRateLimit,
			AuthRateWindow: cfg.AuthRateWindow,
		},
		server.Deps{
			Logger:  logger,
			Auth:    handlers.NewAuthHandler(logger, store, store, jwtConfig),
			Profile: handlers.NewProfileHandler(logger, store),
			Finance: handlers.NewFinanceHandler(logger, store),
			Health:  handlers.NewHealthHandler(logger, Version),
		},
	)

	logger.Info("starting moneykeeper server",
		slog.String("version", Version),
		slog.String("addr", cfg.Addr))

	return srv.Run(ctx, cfg.ShutdownTimeout)
}

// newLogger создает slog логгер с уровнем из конфигурации
func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	}))
}

func printVersion() {
	fmt.Printf("MoneyKeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
