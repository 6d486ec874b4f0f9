// Package textutil holds the string and validation helpers scenarios use to
// compare what the page shows with what they expect.
package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	priceNumber = regexp.MustCompile(`[\d,]+\.?\d*`)
	whitespace  = regexp.MustCompile(`\s+`)

	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ukPostcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9]{1,2}[A-Z]?\s?[0-9][A-Z]{2}$`)
	phonePattern      = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// ExtractPrice returns the first amount in s, e.g. 1234.5 for "£1,234.50".
// Text without a number reads as zero.
func ExtractPrice(s string) float64 {
	m := priceNumber.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatPrice renders price with two decimals after currency, which
// defaults to "£"
func FormatPrice(price float64, currency ...string) string {
	symbol := "£"
	if len(currency) > 0 {
		symbol = currency[0]
	}
	return fmt.Sprintf("%s%.2f", symbol, price)
}

// FormatMinor renders an amount in minor units, e.g. 12000 as "£120.00"
func FormatMinor(amount int64, currency ...string) string {
	return FormatPrice(float64(amount)/100, currency...)
}

// NormalizeText trims, lowercases and collapses runs of whitespace
func NormalizeText(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// RandomString returns n random letters and digits
func RandomString(n int) string {
	if n <= 0 {
		n = 8
	}
	return gofakeit.Password(true, true, true, false, false, n)
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsValidUKPostcode(s string) bool {
	return ukPostcodePattern.MatchString(strings.TrimSpace(s))
}

func IsValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidPriceRange reports whether low is not negative and high is not
// below low
func IsValidPriceRange(low, high float64) bool {
	return low >= 0 && high >= low
}
