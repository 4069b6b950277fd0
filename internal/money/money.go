// Package money handles monetary amounts that may arrive as decorated
// strings ("$1,234.50", "1.200,00 RWF") from legacy documents. Parsing is
// defensive: anything unparsable degrades to zero instead of failing a
// batch report. Arithmetic that accumulates amounts should go through
// decimal to avoid float drift.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Parse extracts a numeric value from a raw amount string. Every character
// that is not a digit, '.' or '-' is stripped before parsing. Empty or
// unparsable input yields 0.
func Parse(raw string) float64 {
	v, _ := ParseChecked(raw)
	return v
}

// ParseChecked is Parse with an ok flag for callers that want to log
// unparsable amounts instead of silently folding them into 0.
func ParseChecked(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, raw == ""
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePtr is Parse for optional fields; nil yields 0.
func ParsePtr(raw *string) float64 {
	if raw == nil {
		return 0
	}
	return Parse(*raw)
}

// Format rounds a value to two decimal places, returned as a number so it
// serializes as JSON without string quoting.
func Format(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Sum accumulates values in fixed-point decimal and returns the 2dp result.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

var displayPrinter = message.NewPrinter(language.English)

// Display renders an amount with thousands separators for presentation,
// e.g. Display(1234.5, "USD") == "USD 1,234.50".
func Display(v float64, currency string) string {
	formatted := displayPrinter.Sprintf("%.2f", Format(v))
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}
