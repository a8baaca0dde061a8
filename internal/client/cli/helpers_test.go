package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"whole number", "42", 4200, false},
		{"two decimals", "42.50", 4250, false},
		{"one decimal", "42.5", 4250, false},
		{"zero", "0", 0, false},
		{"cents only", ".99", 99, false},
		{"with spaces", " 10.00 ", 1000, false},
		{"empty", "", 0, true},
		{"three decimals", "42.505", 0, true},
		{"negative", "-5", 0, true},
		{"not a number", "abc", 0, true},
		{"trailing dot", "42.", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "42.50 USD", formatAmount(4250, "USD"))
	assert.Equal(t, "0.99 EUR", formatAmount(99, "EUR"))
	assert.Equal(t, "1000.00 RUB", formatAmount(100000, "RUB"))
	assert.Equal(t, "-5.25 USD", formatAmount(-525, "USD"))
	assert.Equal(t, "7.00", formatAmount(700, ""))
}

func TestParseListFlags(t *testing.T) {
	flags, err := parseListFlags([]string{"--month", "2025-08", "--kind", "expense"})
	require.NoError(t, err)
	assert.Equal(t, "2025-08", flags["month"])
	assert.Equal(t, "expense", flags["kind"])

	_, err = parseListFlags([]string{"month", "2025-08"})
	assert.Error(t, err)

	_, err = parseListFlags([]string{"--month"})
	assert.Error(t, err)

	flags, err = parseListFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, flags)
}
