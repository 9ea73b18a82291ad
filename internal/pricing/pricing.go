// Package pricing computes subtotals, the burger pair bundle, discount
// codes, loyalty redemption value and tax.
package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"burger-pos/internal/catalog"
	"burger-pos/internal/domain"
)

var (
	taxRate    = decimal.RequireFromString("0.10")
	pairBundle = decimal.RequireFromString("10.00")

	// RedeemValue is the flat discount bought with RedeemPoints points.
	RedeemValue = decimal.RequireFromString("5.00")
)

// RedeemPoints is the exact point cost of one loyalty redemption.
const RedeemPoints = 100

// DiscountCode is the only recognized code, matched case-insensitively.
const DiscountCode = "DISCOUNT10"

var discountCodeRate = decimal.RequireFromString("0.10")

// burgerUnitPrices expands every burger-category line into one price per
// unit, ascending. Pairing cheapest-first wastes the least discount on
// pairs that already land under the bundle price.
func burgerUnitPrices(entries []domain.CartEntry, cat *catalog.Catalog) []decimal.Decimal {
	var prices []decimal.Decimal
	for _, e := range entries {
		if !cat.IsBurger(e.Name) {
			continue
		}
		for i := 0; i < e.Quantity; i++ {
			prices = append(prices, e.UnitPrice)
		}
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) })
	return prices
}

// PairSavings bundles burger units two at a time, cheapest first, each
// pair flattened to $10.00 when its natural price exceeds that. An odd
// leftover unit earns nothing.
func PairSavings(entries []domain.CartEntry, cat *catalog.Catalog) decimal.Decimal {
	prices := burgerUnitPrices(entries, cat)
	savings := decimal.Zero
	for i := 0; i+1 < len(prices); i += 2 {
		over := prices[i].Add(prices[i+1]).Sub(pairBundle)
		if over.IsPositive() {
			savings = savings.Add(over)
		}
	}
	return domain.RoundCents(savings)
}

// ApplyBundles returns the bundle-adjusted subtotal and the savings taken
// off it. The bundle only triggers with two or more burger units.
func ApplyBundles(subtotal decimal.Decimal, entries []domain.CartEntry, cat *catalog.Catalog) (decimal.Decimal, decimal.Decimal) {
	if len(burgerUnitPrices(entries, cat)) < 2 {
		return subtotal, decimal.Zero
	}
	savings := PairSavings(entries, cat)
	return subtotal.Sub(savings), savings
}

// CodeDiscount values a discount code against the bundle-adjusted
// subtotal. An empty code is no code; an unknown code is worth zero and
// reported as ErrInvalidDiscountCode, which the caller treats as
// non-fatal.
func CodeDiscount(subtotal decimal.Decimal, code string) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, nil
	}
	if !strings.EqualFold(code, DiscountCode) {
		return decimal.Zero, domain.ErrInvalidDiscountCode
	}
	return domain.RoundCents(subtotal.Mul(discountCodeRate)), nil
}

// Tax is flat 10% of the bundle-adjusted subtotal, independent of any
// discounts: total = subtotal - discount + tax.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return domain.RoundCents(subtotal.Mul(taxRate))
}
