package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	clientapi "github.com/vmaslov/moneykeeper/internal/client/api"
	"github.com/vmaslov/moneykeeper/internal/client/cli"
	"github.com/vmaslov/moneykeeper/internal/client/iocli"
	"github.com/vmaslov/moneykeeper/internal/client/session"
	"github.com/vmaslov/moneykeeper/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "moneykeeper-client.db", "Path to local session database")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	// Контекст отменяется по Ctrl+C: команда watch завершается штатно,
	// in-flight запросы прерываются
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем локальное хранилище сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	io := iocli.NewStdio()

	// Собираем пайплайн: API клиент <-> session manager связаны явно
	apiClient := clientapi.NewClient(*serverURL)
	sessionManager := session.NewManager(apiClient, boltStorage)
	apiClient.SetSessionSource(sessionManager)

	sessionManager.OnTeardown(func() {
		io.Println()
		io.Println("Your session has expired. Please sign in again: moneykeeper login")
	})

	monitor := session.NewMonitor(slog.Default(), sessionManager, 0, 0)

	// Одна немедленная проверка перед командой: если access token на грани
	// истечения, обновляем его до того, как команда пойдет в сеть
	switch command {
	case "login", "register", "logout", "status":
		// Команды жизненного цикла сессии работают без проактивного refresh
	default:
		monitor.Check(ctx)
	}

	app := cli.New(io, apiClient, sessionManager, monitor)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("MoneyKeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
