package domain

import "github.com/shopspring/decimal"

// Prices are rounded to cents the moment they are computed, not at print
// time, so repeated arithmetic never accumulates sub-cent drift.

func RoundCents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// FormatCurrency renders an amount for humans: two decimals, dollar prefix.
func FormatCurrency(d decimal.Decimal) string { return "$" + d.StringFixed(2) }
