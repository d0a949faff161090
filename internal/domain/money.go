package domain

import "github.com/shopspring/decimal"

func init() {
	// Money is exchanged with clients as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money rounds an amount to two fractional digits.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
