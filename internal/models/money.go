package models

import "github.com/shopspring/decimal"

func init() {
	// Stored collections and API payloads carry prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Display renders an amount the way every screen shows money: two decimals.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
