package feequery

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown for a missing fee or timestamp.
const Placeholder = "—"

const timestampLayout = "2006-01-02 15:04:05"

// FormatFee renders a fee with English thousands grouping.
func FormatFee(v float64, ok bool) string {
	if !ok {
		return Placeholder
	}
	return message.NewPrinter(language.English).Sprint(number.Decimal(v))
}

// FormatTimestamp renders value in UTC as "YYYY-MM-DD HH:MM:SS".
func FormatTimestamp(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return Placeholder
	}
	return t.UTC().Format(timestampLayout)
}
