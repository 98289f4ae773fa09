package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCurrency(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want string
	}{
		{"", "0,00"},
		{"5", "0,05"},
		{"50", "0,50"},
		{"500", "5,00"},
		{"1234", "12,34"},
		{"001234", "12,34"},
		{"123456", "1234,56"},
		{"-5", "-0,05"},
		{"-1234", "-12,34"},
		{"R$ 12,34", "12,34"},
		{"abc", "0,00"},
	}
	for _, c := range cases {
		if got := ToCurrency(c.in, ","); got != c.want {
			t.Fatalf("ToCurrency(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToCurrency_IdempotentOnOwnOutput(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "5", "1234", "999", "-42", "123456789"} {
		once := ToCurrency(in, ",")
		twice := ToCurrency(once, ",")
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestToCurrency_DotSeparator(t *testing.T) {
	t.Parallel()
	if got := ToCurrency("1234", "."); got != "12.34" {
		t.Fatalf("got %q", got)
	}
}

func TestParseBRL(t *testing.T) {
	t.Parallel()
	d, err := ParseBRL("12,34")
	if err != nil || !d.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("ParseBRL: %v %v", d, err)
	}
	if _, err := ParseBRL("not-money"); err == nil {
		t.Fatalf("want error for junk input")
	}
}

func TestFormatBRL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"12.34", "R$ 12,34"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.8", "R$ 1.234.567,80"},
		{"-12.3", "-R$ 12,30"},
	}
	for _, c := range cases {
		if got := FormatBRL(decimal.RequireFromString(c.in)); got != c.want {
			t.Fatalf("FormatBRL(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}
