package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseAmount преобразует сумму вида "42.50" в минорные единицы (4250).
// Допускается не больше двух знаков после точки.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}

	whole, frac, found := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || major < 0 {
		return 0, fmt.Errorf("invalid amount: %s", s)
	}

	var minor int64
	if found {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount: %s (use up to two decimal places)", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || minor < 0 {
			return 0, fmt.Errorf("invalid amount: %s", s)
		}
	}

	return major*100 + minor, nil
}

// formatAmount форматирует минорные единицы в строку вида "42.50 USD"
func formatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	if currency == "" {
		return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency)
}

// currentMonth возвращает текущий месяц в формате YYYY-MM
func currentMonth() string {
	return time.Now().Format("2006-01")
}

// parseListFlags разбирает простые флаги вида --month 2025-08 из хвоста
// аргументов команды
func parseListFlags(args []string) (map[string]string, error) {
	flags := make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("unexpected argument: %s", arg)
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags[strings.TrimPrefix(arg, "--")] = args[i+1]
		i++
	}
	return flags, nil
}
