package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runReport(ctx context.Context, args []string) error {
	flags, err := parseListFlags(args)
	if err != nil {
		return err
	}

	month := flags["month"]
	if month == "" {
		month = currentMonth()
	}

	report, err := c.apiClient.GetSummary(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	user, err := c.session.User(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.io.Printf("=== Summary for %s ===\n", report.Month)
	c.io.Println()

	for _, row := range report.Rows {
		c.io.Printf("%-8s %-24s %12s\n", row.Kind, row.Category, formatAmount(row.Total, ""))
	}

	c.io.Println()
	c.io.Printf("Total income:  %s\n", formatAmount(report.TotalIncome, user.Currency))
	c.io.Printf("Total expense: %s\n", formatAmount(report.TotalExpense, user.Currency))
	c.io.Printf("Net:           %s\n", formatAmount(report.TotalIncome-report.TotalExpense, user.Currency))

	return nil
}
