package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Register ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	fullName, err := c.io.ReadInput("Full name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read full name: %w", err)
	}

	currency, err := c.io.ReadInput("Currency [USD]: ")
	if err != nil {
		return fmt.Errorf("failed to read currency: %w", err)
	}
	if currency == "" {
		currency = "USD"
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Creating account...")

	result, err := c.session.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		FullName: fullName,
		Currency: currency,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Println()
	c.io.Println("You are now logged in.")

	return nil
}
