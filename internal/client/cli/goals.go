package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

func (c *Cli) runGoals(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.listGoals(ctx)
	}

	switch args[0] {
	case "add":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("usage: goals add NAME TARGET [DEADLINE]")
		}
		deadline := ""
		if len(args) == 4 {
			deadline = args[3]
		}
		return c.addGoal(ctx, args[1], args[2], deadline)
	case "save":
		if len(args) != 3 {
			return fmt.Errorf("usage: goals save ID AMOUNT")
		}
		return c.saveToGoal(ctx, args[1], args[2])
	default:
		return fmt.Errorf("unknown goals subcommand: %s", args[0])
	}
}

func (c *Cli) listGoals(ctx context.Context) error {
	goals, err := c.apiClient.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	if len(goals) == 0 {
		c.io.Println("No goals yet. Add one with 'moneykeeper goals add NAME TARGET'.")
		return nil
	}

	user, err := c.session.User(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.io.Println("=== Goals ===")
	for _, g := range goals {
		progress := int64(0)
		if g.Target > 0 {
			progress = g.Saved * 100 / g.Target
		}
		line := fmt.Sprintf("%-36s  %-20s %s / %s (%d%%)",
			g.ID, g.Name, formatAmount(g.Saved, ""), formatAmount(g.Target, user.Currency), progress)
		if g.Deadline != "" {
			line += "  by " + g.Deadline
		}
		c.io.Println(line)
	}

	return nil
}

func (c *Cli) addGoal(ctx context.Context, name, targetStr, deadline string) error {
	target, err := parseAmount(targetStr)
	if err != nil {
		return err
	}

	goal, err := c.apiClient.CreateGoal(ctx, pkgapi.CreateGoalRequest{
		Name:     name,
		Target:   target,
		Deadline: deadline,
	})
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	c.io.Printf("✓ Goal created: %s, target %s\n", goal.Name, formatAmount(goal.Target, ""))
	return nil
}

func (c *Cli) saveToGoal(ctx context.Context, id, amountStr string) error {
	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}

	// Читаем текущее состояние, чтобы прибавить к накопленному
	goals, err := c.apiClient.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	var current *pkgapi.Goal
	for i := range goals {
		if goals[i].ID == id {
			current = &goals[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("goal not found: %s", id)
	}

	newSaved := current.Saved + amount
	goal, err := c.apiClient.UpdateGoal(ctx, id, pkgapi.UpdateGoalRequest{Saved: &newSaved})
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	c.io.Printf("✓ Saved %s to %s (now %s of %s)\n",
		formatAmount(amount, ""), goal.Name, formatAmount(goal.Saved, ""), formatAmount(goal.Target, ""))
	return nil
}
