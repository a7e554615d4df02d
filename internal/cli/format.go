// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/kerem6790/financeX/internal/money"
)

// FormatMoney renders an amount with the configured currency symbol.
// e.g. 1234567.5 -> "₺1,234,567.50".
func FormatMoney(v float64, symbol string) string {
	if v < 0 {
		return "-" + symbol + money.Format(-v)
	}
	return symbol + money.Format(v)
}

// FormatSignedMoney is FormatMoney with an explicit sign for positives,
// used for deltas.
func FormatSignedMoney(v float64, symbol string) string {
	if v >= 0 {
		return "+" + FormatMoney(v, symbol)
	}
	return FormatMoney(v, symbol)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDate renders a calendar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders a timestamp for history listings.
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

// FormatMonths renders a fractional month count.
// e.g. 4 -> "4 months", 2.5 -> "2.5 months", 1 -> "1 month".
func FormatMonths(m float64) string {
	if m == 1 {
		return "1 month"
	}
	if m == float64(int(m)) {
		return fmt.Sprintf("%d months", int(m))
	}
	return fmt.Sprintf("%.1f months", m)
}

// ShortID returns a display-friendly prefix of an opaque id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
