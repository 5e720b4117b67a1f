// Package commission encodes a transfer fee into the free-text description of
// a transaction and recovers it on reversal.
//
// The fee is not a structured column: it survives only as a textual marker of
// the form "(کارمزد: 1,000 ریال)" appended to the description. This is a
// compatibility shim, kept so stored descriptions stay readable and reversals
// stay exact. TODO: promote the commission to a first-class column on
// transactions and backfill it from the marker.
package commission

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// markerPattern tolerates Latin and Persian digit glyphs, both the Latin
// comma and the Arabic comma (U+060C) as thousands separators, and an
// optional fractional tail.
var markerPattern = regexp.MustCompile(`\(کارمزد:\s*([0-9,،۰-۹]+(?:\.[0-9۰-۹]+)?)\s*ریال\)`)

// persianDigits translates Persian-Indic digit glyphs to Latin digits.
var persianDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// Encode appends the commission marker to the description. A zero or negative
// commission leaves the description unchanged.
func Encode(description string, commission decimal.Decimal) string {
	if !commission.IsPositive() {
		return description
	}
	return fmt.Sprintf("%s (کارمزد: %s ریال)", description, groupDigits(commission.String()))
}

// Decode recovers the commission from a description. When no marker is found,
// or the marker does not parse, the commission is zero: a transfer recorded
// without a marker carried no fee.
func Decode(description string) decimal.Decimal {
	if description == "" {
		return decimal.Zero
	}

	match := markerPattern.FindStringSubmatch(description)
	if match == nil {
		return decimal.Zero
	}

	raw := persianDigits.Replace(match[1])
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, "،", "")

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// groupDigits inserts comma thousands separators into a plain decimal string.
// Only the integer part is grouped; a fractional part passes through intact.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
