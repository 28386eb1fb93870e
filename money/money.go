// Package money renders decimal amounts the way the catalog report prints them.
package money

import (
	"github.com/shopspring/decimal"
)

// Format renders d at its own scale: 1200 prints as "1200", 1320.0 as
// "1320.0" and 1.65 as "1.65". Products keep the combined scale of their
// factors, so 1200 * 1.1 prints with one decimal place.
func Format(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Fixed renders d rounded half away from zero to places decimal places.
func Fixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// Dollars prefixes Format(d) with a dollar sign.
func Dollars(d decimal.Decimal) string {
	return "$" + Format(d)
}

// Parse reads a decimal literal, keeping its written scale.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
