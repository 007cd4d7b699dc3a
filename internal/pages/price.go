package pages

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// totalTolerance is the absolute difference allowed when comparing totals
const totalTolerance = 0.01

// ParsePrice extracts the digits of a displayed price and reads them as a
// base-10 number. "Rs. 500" yields 500. Text without digits yields 0.
func ParsePrice(text string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseQuantity reads a displayed quantity, defaulting to 1
func parseQuantity(text string) int {
	text = strings.TrimFunc(text, unicode.IsSpace)
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 1
	}
	return n
}

// Reconcile computes the expected cart total from unit prices and
// quantities and reports whether it matches the displayed total.
func Reconcile(items []CartItem, displayed float64) (expected float64, ok bool) {
	for _, item := range items {
		expected += ParsePrice(item.Price) * float64(item.Quantity)
	}
	return expected, math.Abs(expected-displayed) < totalTolerance
}
