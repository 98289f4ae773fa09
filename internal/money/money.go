// Package money holds the currency-input text transform and BRL helpers.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ToCurrency normalizes free-form numeric input into a currency string with
// two decimal places: digits are extracted (a leading minus survives), padded
// to at least three, leading zeros of the integer part are trimmed and the
// separator is inserted two digits from the end. The transform is idempotent
// on its own output.
//
//	ToCurrency("1234", ",") == "12,34"
//	ToCurrency("5", ",")    == "0,05"
//	ToCurrency("", ",")     == "0,00"
func ToCurrency(value, separator string) string {
	digits := digitsOf(value)
	digits = padDigits(digits)
	return addSeparator(digits, separator)
}

// digitsOf strips everything but digits, keeping one leading minus sign.
func digitsOf(value string) string {
	var b strings.Builder
	neg := strings.HasPrefix(strings.TrimSpace(value), "-")
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func padDigits(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	for len(digits) < 3 {
		digits = "0" + digits
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func addSeparator(digits, separator string) string {
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	cut := len(digits) - 2
	whole := strings.TrimLeft(digits[:cut], "0")
	if whole == "" {
		whole = "0"
	}
	out := whole + separator + digits[cut:]
	if neg {
		return "-" + out
	}
	return out
}

// ParseBRL converts a comma-separated currency string ("12,34") into a
// decimal amount.
func ParseBRL(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return d, nil
}

// FormatBRL renders an amount the way the storefront displays prices:
// "R$ 1.234,56" with dot thousand separators and a comma decimal mark.
func FormatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)
	out := "R$ " + strings.Join(groups, ".") + "," + cents
	if neg {
		return "-" + out
	}
	return out
}
