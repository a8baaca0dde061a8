package cli

import (
	"context"
	"fmt"
)

// runWatch держит сессию свежей в foreground: монитор проверяет срок
// действия access token'а и проактивно обновляет пару. Завершается по
// Ctrl+C (отмена контекста).
func (c *Cli) runWatch(ctx context.Context) error {
	isAuth, err := c.session.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}
	if !isAuth {
		return fmt.Errorf("not authenticated. Please run 'moneykeeper login' first")
	}

	c.io.Println("Watching session, press Ctrl+C to stop...")
	c.monitor.Run(ctx)

	return nil
}
