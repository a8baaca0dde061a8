package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

func (c *Cli) runBudgets(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			if len(args) != 4 {
				return fmt.Errorf("usage: budgets add CATEGORY_ID MONTH LIMIT")
			}
			return c.addBudget(ctx, args[1], args[2], args[3])
		case "rm":
			if len(args) != 2 {
				return fmt.Errorf("usage: budgets rm ID")
			}
			return c.removeBudget(ctx, args[1])
		}
	}

	flags, err := parseListFlags(args)
	if err != nil {
		return err
	}

	month := flags["month"]
	if month == "" {
		month = currentMonth()
	}

	return c.listBudgets(ctx, month)
}

func (c *Cli) listBudgets(ctx context.Context, month string) error {
	budgets, err := c.apiClient.ListBudgets(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to list budgets: %w", err)
	}

	if len(budgets) == 0 {
		c.io.Printf("No budgets for %s.\n", month)
		return nil
	}

	user, err := c.session.User(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.io.Printf("=== Budgets for %s ===\n", month)
	for _, b := range budgets {
		marker := ""
		if b.Spent > b.Limit {
			marker = "  ⚠️ over budget"
		}
		c.io.Printf("%-36s  %-20s %s / %s%s\n",
			b.ID, b.Category,
			formatAmount(b.Spent, ""), formatAmount(b.Limit, user.Currency),
			marker)
	}

	return nil
}

func (c *Cli) addBudget(ctx context.Context, categoryID, month, limitStr string) error {
	limit, err := parseAmount(limitStr)
	if err != nil {
		return err
	}

	budget, err := c.apiClient.CreateBudget(ctx, pkgapi.CreateBudgetRequest{
		CategoryID: categoryID,
		Month:      month,
		Limit:      limit,
	})
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	c.io.Printf("✓ Budget created: %s, %s, limit %s\n", budget.Category, budget.Month, formatAmount(budget.Limit, ""))
	return nil
}

func (c *Cli) removeBudget(ctx context.Context, id string) error {
	if err := c.apiClient.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	c.io.Println("✓ Budget deleted.")
	return nil
}
