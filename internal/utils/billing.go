package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedHouseSize = errors.New("unsupported house size")

// tariff maps house size in marla to the base monthly charge and its multiplier.
var tariff = map[int]struct {
	base       int64
	multiplier string
}{
	5:  {3000, "1.05"},
	10: {5000, "1.10"},
	20: {8000, "1.15"},
}

// SupportedHouseSizes lists the marla sizes that have a tariff.
func SupportedHouseSizes() []int {
	return []int{5, 10, 20}
}

// BillingPolicy holds the due day and the overdue charge per started day.
type BillingPolicy struct {
	DueDay       int
	DailyPenalty decimal.Decimal
}

func DefaultBillingPolicy() BillingPolicy {
	return BillingPolicy{DueDay: 9, DailyPenalty: decimal.RequireFromString("97.3")}
}

// TierAmount returns the monthly charge per utility for a house of the given size.
func TierAmount(marlaSize int) (decimal.Decimal, error) {
	t, ok := tariff[marlaSize]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d marla", ErrUnsupportedHouseSize, marlaSize)
	}
	return decimal.NewFromInt(t.base).Mul(decimal.RequireFromString(t.multiplier)).Round(2), nil
}

// DueDate returns the due date of the month containing now, keeping now's time of day.
func (p BillingPolicy) DueDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), p.DueDay,
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}

// OverdueDays counts started 24h periods after due. Zero when paid on or before due.
func OverdueDays(due, now time.Time) int64 {
	if !now.After(due) {
		return 0
	}
	elapsed := now.Sub(due)
	days := int64(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Penalty is the late charge for paying at now a bill due at due.
func (p BillingPolicy) Penalty(due, now time.Time) decimal.Decimal {
	return p.DailyPenalty.Mul(decimal.NewFromInt(OverdueDays(due, now))).Round(2)
}

// ParseBillingMonth validates a 'YYYY-MM' key and returns the first instant of that month in loc.
func ParseBillingMonth(month string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(month, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return time.Time{}, fmt.Errorf("invalid billing month format, expected yyyy-mm")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year: %v", err)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month: %v", err)
	}
	if m < 1 || m > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	return time.Date(year, time.Month(m), 1, 0, 0, 0, 0, loc), nil
}
