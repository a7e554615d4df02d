// Package money parses and formats free-text monetary amounts.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse normalizes locale-formatted numeric text to a float64.
// Whitespace is stripped, a decimal comma becomes a decimal point, and
// anything unparseable (including NaN and ±Inf) yields 0. Every numeric
// field in the app is free text so partial typing must never fail.
func Parse(raw string) float64 {
	s := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Format renders an amount with thousands separators and two decimals,
// dropping the fraction when it is zero. e.g. 1234567.5 -> "1,234,567.50",
// 2000 -> "2,000".
func Format(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	whole := int64(v)
	frac := v - float64(whole)

	s := groupThousands(whole)
	if frac >= 0.005 {
		s += fmt.Sprintf(".%02d", int(math.Round(frac*100))%100)
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatSigned is Format with an explicit leading sign for positives.
func FormatSigned(v float64) string {
	if v >= 0 {
		return "+" + Format(v)
	}
	return Format(v)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
