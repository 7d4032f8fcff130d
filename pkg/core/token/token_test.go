package token

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		amount   float64
		currency string
	}{
		{"$1.5M", 1500000, "USD"},
		{"(100K)", -100000, ""},
		{"€2,500.50", 2500.50, "EUR"},
		{"2.500,50", 2500.50, ""},
		{"1,200,000", 1200000, ""},
		{"£3.2b", 3200000000, "GBP"},
		{"¥950", 950, "JPY"},
		{"₹12,00,000", 1200000, "INR"},
		{"($45,000)", -45000, "USD"},
		{"-3,500", -3500, ""},
		{"(-2K)", 2000, ""},
		{"300000", 300000, ""},
		{"0", 0, ""},
		{"  750.25  ", 750.25, ""},
	}

	for _, tc := range tests {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tc.input, err)
			continue
		}
		if math.Abs(got.Amount-tc.amount) > 1e-9 {
			t.Errorf("Parse(%q): amount = %v, want %v", tc.input, got.Amount, tc.amount)
		}
		if got.Currency != tc.currency {
			t.Errorf("Parse(%q): currency = %q, want %q", tc.input, got.Currency, tc.currency)
		}
	}
}

func TestParseNotNumeric(t *testing.T) {
	for _, input := range []string{"", "abc", "N/A", "-", "—", "$", "()", "(TBD)", "..", "K"} {
		if _, err := Parse(input); err != ErrNotNumeric {
			t.Errorf("Parse(%q): error = %v, want ErrNotNumeric", input, err)
		}
	}
}

func TestParseSuffixRequiresAdjacency(t *testing.T) {
	// "5 K" has a space between literal and suffix, so K is not a multiplier
	// and the trailing letter makes the token non-numeric.
	if _, err := Parse("5 K"); err != ErrNotNumeric {
		t.Errorf("Parse(\"5 K\"): error = %v, want ErrNotNumeric", err)
	}
}
