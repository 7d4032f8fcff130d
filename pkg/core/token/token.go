// Package token converts a single text fragment from a financial statement
// into a signed numeric value. It tolerates the formatting noise that shows
// up in small-business P&L exports: currency symbols, K/M/B suffixes,
// accounting-style parenthesized negatives, and both US and EU digit grouping.
package token

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when no digit survives symbol and
// parenthesis stripping.
var ErrNotNumeric = errors.New("token: not numeric")

// currencySymbols maps the recognized symbols to ISO currency codes.
var currencySymbols = map[rune]string{
	'$': "USD",
	'€': "EUR",
	'£': "GBP",
	'¥': "JPY",
	'₹': "INR",
}

// suffixMultipliers are applied only when the suffix immediately follows the
// numeric literal (case-insensitive).
var suffixMultipliers = map[byte]float64{
	'k': 1e3,
	'm': 1e6,
	'b': 1e9,
}

// Value is a successfully parsed numeric token.
type Value struct {
	Amount float64
	// Currency is the ISO code inferred from a leading/trailing symbol,
	// or "" when no symbol was present.
	Currency string
}

// Parse resolves a raw cell or line fragment into a signed value.
//
//	Parse("$1.5M")     -> 1500000, USD
//	Parse("(100K)")    -> -100000
//	Parse("€2,500.50") -> 2500.50, EUR
//	Parse("2.500,50")  -> 2500.50 (EU grouping)
//	Parse("abc")       -> ErrNotNumeric
func Parse(text string) (Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Value{}, ErrNotNumeric
	}

	// Accounting negative: the whole token wrapped in parentheses.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Strip currency symbols, remembering the first one seen.
	currency := ""
	var b strings.Builder
	for _, r := range s {
		if code, ok := currencySymbols[r]; ok {
			if currency == "" {
				currency = code
			}
			continue
		}
		b.WriteRune(r)
	}
	s = strings.TrimSpace(b.String())

	// Leading sign (explicit minus combines with accounting parens).
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}

	// Magnitude suffix, only directly after the literal (no space between).
	multiplier := 1.0
	if len(s) >= 2 {
		last := s[len(s)-1] | 0x20 // lowercase ASCII
		if mult, ok := suffixMultipliers[last]; ok && isDigitOrSep(s[len(s)-2]) {
			multiplier = mult
			s = s[:len(s)-1]
		}
	}

	normalized, ok := normalizeSeparators(s)
	if !ok {
		return Value{}, ErrNotNumeric
	}

	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return Value{}, ErrNotNumeric
	}

	amount *= multiplier
	if negative {
		amount = -amount
	}
	return Value{Amount: amount, Currency: currency}, nil
}

func isDigitOrSep(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == ','
}

// normalizeSeparators resolves thousands vs decimal separators using locale
// cues and returns a plain ASCII float literal. Rules:
//   - both ',' and '.' present: the one appearing last is the decimal
//     separator, the other is grouping;
//   - only ',' present: decimal when followed by 1-2 trailing digits and it
//     appears once ("2,50" EU style), grouping otherwise;
//   - only '.' present: decimal when it appears once, grouping when it
//     repeats ("1.500.000").
func normalizeSeparators(s string) (string, bool) {
	hasDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			hasDigit = true
		} else if c != '.' && c != ',' {
			return "", false
		}
	}
	if !hasDigit {
		return "", false
	}

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	var decimal byte
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			decimal = ','
		} else {
			decimal = '.'
		}
	case lastComma >= 0:
		trailing := len(s) - lastComma - 1
		if strings.Count(s, ",") == 1 && (trailing == 1 || trailing == 2) {
			decimal = ','
		}
	case lastDot >= 0:
		if strings.Count(s, ".") == 1 {
			decimal = '.'
		}
	}

	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out.WriteByte(c)
		case c == decimal:
			out.WriteByte('.')
		default:
			// grouping separator, dropped
		}
	}
	// A bare separator with no digits on either side was rejected above by
	// the hasDigit check; "1." / ".5" are fine for ParseFloat.
	return out.String(), true
}
