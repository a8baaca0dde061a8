package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

func (c *Cli) runCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.listCategories(ctx)
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			return fmt.Errorf("usage: categories add NAME KIND")
		}
		return c.addCategory(ctx, args[1], args[2])
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: categories rm ID")
		}
		return c.removeCategory(ctx, args[1])
	default:
		return fmt.Errorf("unknown categories subcommand: %s", args[0])
	}
}

func (c *Cli) listCategories(ctx context.Context) error {
	categories, err := c.apiClient.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		c.io.Println("No categories yet. Add one with 'moneykeeper categories add NAME KIND'.")
		return nil
	}

	c.io.Println("=== Categories ===")
	for _, cat := range categories {
		c.io.Printf("%-36s  %-8s %s\n", cat.ID, cat.Kind, cat.Name)
	}

	return nil
}

func (c *Cli) addCategory(ctx context.Context, name, kind string) error {
	cat, err := c.apiClient.CreateCategory(ctx, pkgapi.CreateCategoryRequest{
		Name: name,
		Kind: kind,
	})
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	c.io.Printf("✓ Category created: %s (%s)\n", cat.Name, cat.ID)
	return nil
}

func (c *Cli) removeCategory(ctx context.Context, id string) error {
	if err := c.apiClient.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	c.io.Println("✓ Category deleted.")
	return nil
}
