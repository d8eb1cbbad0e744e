package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Pricing policy for the storefront.
const (
	TaxRate               = 0.08
	ShippingFee           = 5.99
	FreeShippingThreshold = 100.00
)

var usd = message.NewPrinter(language.AmericanEnglish)

// DiscountedPrice applies a percentage discount to a unit price. A zero or
// absent discount leaves the price unchanged.
func DiscountedPrice(price, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return price
	}
	return price * (1 - discountPercent/100)
}

// FormatPrice renders an amount as a localized USD string, e.g. "$1,299.99".
func FormatPrice(amount float64) string {
	return usd.Sprintf("$%.2f", amount)
}

// Round2 rounds a monetary amount to 2 decimal places. Applied at the point
// values are stored or displayed, never mid-formula.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RatingStars buckets a 0..5 rating into full, half and empty stars for the
// catalog grid.
func RatingStars(rating float64) (full, half, empty int) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full = int(rating)
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	empty = 5 - full - half
	return full, half, empty
}
