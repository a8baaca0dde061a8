package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

func (c *Cli) runTransactions(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			if len(args) < 5 || len(args) > 6 {
				return fmt.Errorf("usage: tx add CATEGORY_ID KIND AMOUNT DATE [NOTE]")
			}
			note := ""
			if len(args) == 6 {
				note = args[5]
			}
			return c.addTransaction(ctx, args[1], args[2], args[3], args[4], note)
		case "rm":
			if len(args) != 2 {
				return fmt.Errorf("usage: tx rm ID")
			}
			return c.removeTransaction(ctx, args[1])
		}
	}

	flags, err := parseListFlags(args)
	if err != nil {
		return err
	}

	filter := pkgapi.TransactionFilter{
		Month:      flags["month"],
		CategoryID: flags["category"],
		Kind:       flags["kind"],
		Sort:       flags["sort"],
	}
	if filter.Month == "" {
		filter.Month = currentMonth()
	}

	return c.listTransactions(ctx, filter)
}

func (c *Cli) listTransactions(ctx context.Context, filter pkgapi.TransactionFilter) error {
	list, err := c.apiClient.ListTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if list.Total == 0 {
		c.io.Printf("No transactions for %s.\n", filter.Month)
		return nil
	}

	user, err := c.session.User(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.io.Printf("=== Transactions for %s (%d) ===\n", filter.Month, list.Total)
	for _, tx := range list.Transactions {
		amount := tx.Amount
		if tx.Kind == "expense" {
			amount = -amount
		}
		c.io.Printf("%-36s  %s  %-20s %12s  %s\n",
			tx.ID, tx.Date, tx.Category, formatAmount(amount, user.Currency), tx.Note)
	}

	return nil
}

func (c *Cli) addTransaction(ctx context.Context, categoryID, kind, amountStr, date, note string) error {
	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}

	tx, err := c.apiClient.CreateTransaction(ctx, pkgapi.CreateTransactionRequest{
		CategoryID: categoryID,
		Kind:       kind,
		Amount:     amount,
		Note:       note,
		Date:       date,
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	c.io.Printf("✓ Transaction recorded: %s %s on %s\n", tx.Kind, formatAmount(tx.Amount, ""), tx.Date)
	return nil
}

func (c *Cli) removeTransaction(ctx context.Context, id string) error {
	if err := c.apiClient.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	c.io.Println("✓ Transaction deleted.")
	return nil
}
