package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/vmaslov/moneykeeper/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showProfile(ctx)
	}

	if args[0] != "set" || len(args) != 3 {
		return fmt.Errorf("usage: profile [set FIELD VALUE]")
	}

	return c.updateProfile(ctx, args[1], args[2])
}

func (c *Cli) showProfile(ctx context.Context) error {
	profile, err := c.apiClient.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	c.io.Println("=== Profile ===")
	c.io.Printf("Username:  %s\n", profile.Username)
	c.io.Printf("Email:     %s\n", profile.Email)
	if profile.FullName != "" {
		c.io.Printf("Full name: %s\n", profile.FullName)
	}
	if profile.Currency != "" {
		c.io.Printf("Currency:  %s\n", profile.Currency)
	}
	if profile.AvatarURL != "" {
		c.io.Printf("Avatar:    %s\n", profile.AvatarURL)
	}

	return nil
}

func (c *Cli) updateProfile(ctx context.Context, field, value string) error {
	req := pkgapi.UpdateProfileRequest{}

	switch field {
	case "email":
		req.Email = &value
	case "fullname":
		req.FullName = &value
	case "currency":
		req.Currency = &value
	case "avatar":
		req.AvatarURL = &value
	default:
		return fmt.Errorf("unknown profile field: %s (use email, fullname, currency or avatar)", field)
	}

	profile, err := c.apiClient.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	// Обновляем локальный кеш профиля, чтобы status/login экраны
	// показывали новые данные без повторного запроса
	if err := c.session.SetUser(ctx, profile); err != nil {
		return fmt.Errorf("failed to update cached profile: %w", err)
	}

	c.io.Println("✓ Profile updated.")
	return nil
}
