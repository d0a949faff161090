package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierAmount(t *testing.T) {
	tests := []struct {
		size     int
		expected string
	}{
		{5, "3150.00"},
		{10, "5500.00"},
		{20, "9200.00"},
	}

	for _, tt := range tests {
		amount, err := TierAmount(tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, amount.StringFixed(2), "size %d", tt.size)
	}

	t.Run("Unsupported size", func(t *testing.T) {
		for _, size := range []int{0, 7, 15, 40} {
			_, err := TierAmount(size)
			assert.ErrorIs(t, err, ErrUnsupportedHouseSize)
		}
	})
}

func TestDueDate(t *testing.T) {
	p := DefaultBillingPolicy()
	now := time.Date(2026, 3, 21, 14, 30, 5, 0, time.UTC)

	due := p.DueDate(now)
	assert.Equal(t, time.Date(2026, 3, 9, 14, 30, 5, 0, time.UTC), due)
}

func TestPenalty(t *testing.T) {
	p := DefaultBillingPolicy()
	due := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	t.Run("Exactly at due date", func(t *testing.T) {
		assert.True(t, p.Penalty(due, due).IsZero())
	})

	t.Run("Before due date", func(t *testing.T) {
		assert.True(t, p.Penalty(due, due.Add(-time.Hour)).IsZero())
	})

	t.Run("One second late counts a day", func(t *testing.T) {
		assert.Equal(t, "97.30", p.Penalty(due, due.Add(time.Second)).StringFixed(2))
	})

	t.Run("Exactly two days late", func(t *testing.T) {
		assert.Equal(t, "194.60", p.Penalty(due, due.Add(48*time.Hour)).StringFixed(2))
	})

	t.Run("Two days and a bit", func(t *testing.T) {
		assert.Equal(t, "291.90", p.Penalty(due, due.Add(48*time.Hour+time.Minute)).StringFixed(2))
	})

	t.Run("Custom rate", func(t *testing.T) {
		custom := BillingPolicy{DueDay: 9, DailyPenalty: decimal.NewFromInt(50)}
		assert.Equal(t, "150.00", custom.Penalty(due, due.Add(72*time.Hour)).StringFixed(2))
	})
}

func TestParseBillingMonth(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		start, err := ParseBillingMonth("2026-02", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseBillingMonth("2026/02", time.UTC)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid billing month format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseBillingMonth("2026-13", time.UTC)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})
}
