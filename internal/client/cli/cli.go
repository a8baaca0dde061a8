package cli

import (
	"context"
	"fmt"

	clientapi "github.com/vmaslov/moneykeeper/internal/client/api"
	"github.com/vmaslov/moneykeeper/internal/client/iocli"
	"github.com/vmaslov/moneykeeper/internal/client/session"
)

// Cli связывает команды с API клиентом и менеджером сессии
type Cli struct {
	io        iocli.IO
	apiClient *clientapi.Client
	session   *session.Manager
	monitor   *session.Monitor
}

// New создает новый CLI
func New(io iocli.IO, apiClient *clientapi.Client, sessionManager *session.Manager, monitor *session.Monitor) *Cli {
	return &Cli{
		io:        io,
		apiClient: apiClient,
		session:   sessionManager,
		monitor:   monitor,
	}
}

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "categories":
		return c.runCategories(ctx, args)
	case "budgets":
		return c.runBudgets(ctx, args)
	case "tx":
		return c.runTransactions(ctx, args)
	case "goals":
		return c.runGoals(ctx, args)
	case "report":
		return c.runReport(ctx, args)
	case "watch":
		return c.runWatch(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage() {
	fmt.Println("MoneyKeeper Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  moneykeeper [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version    Show version information")
	fmt.Println("  --server URL Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH    Path to local session database (default: moneykeeper-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                      Register new account")
	fmt.Println("  login                         Login to server")
	fmt.Println("  logout                        Logout and delete local session")
	fmt.Println("  status                        Show authentication status")
	fmt.Println("  profile [set FIELD VALUE]     Show or update profile (email, fullname, currency, avatar)")
	fmt.Println("  categories [add NAME KIND]    List or add categories (kind: expense|income)")
	fmt.Println("  categories rm ID              Delete category")
	fmt.Println("  budgets [--month YYYY-MM]     List budgets")
	fmt.Println("  budgets add CATEGORY_ID MONTH LIMIT")
	fmt.Println("  budgets rm ID                 Delete budget")
	fmt.Println("  tx [--month YYYY-MM] [--category ID] [--kind expense|income]")
	fmt.Println("  tx add CATEGORY_ID KIND AMOUNT DATE [NOTE]")
	fmt.Println("  tx rm ID                      Delete transaction")
	fmt.Println("  goals [add NAME TARGET [DEADLINE]]")
	fmt.Println("  goals save ID AMOUNT          Add to a goal's saved amount")
	fmt.Println("  report [--month YYYY-MM]      Monthly summary by category")
	fmt.Println("  watch                         Keep session fresh in foreground (Ctrl+C to stop)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  moneykeeper register")
	fmt.Println("  moneykeeper login")
	fmt.Println("  moneykeeper categories add Groceries expense")
	fmt.Println("  moneykeeper tx add b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 expense 42.50 2025-08-30 \"weekly shopping\"")
	fmt.Println("  moneykeeper report --month 2025-08")
	fmt.Println("  moneykeeper --server https://example.com login")
}
