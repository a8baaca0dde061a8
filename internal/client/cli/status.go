package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vmaslov/moneykeeper/internal/client/session"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	isAuth, err := c.session.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'moneykeeper login' to authenticate.")
		return nil
	}

	user, err := c.session.User(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	expiresAt := time.Unix(user.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Email: %s\n", user.Email)
	if user.FullName != "" {
		c.io.Printf("Full name: %s\n", user.FullName)
	}
	if user.Currency != "" {
		c.io.Printf("Currency: %s\n", user.Currency)
	}
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		if session.IsExpired(user.AccessToken, session.DefaultExpirySkew) {
			c.io.Println("Token will be refreshed on the next request.")
		}
	} else {
		c.io.Println("⚠️  Token has expired. It will be refreshed on the next request.")
	}

	return nil
}
